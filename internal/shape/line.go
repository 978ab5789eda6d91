package shape

import "github.com/inamate/vecdraw/internal/document"

// Line is a straight segment from its anchor to End.
type Line struct {
	base
	start Point
	end   Point
}

// NewLine creates a line segment from start to end.
func NewLine(start, end Point) *Line {
	return &Line{base: newBase(), start: start, end: end}
}

func (l *Line) Kind() Kind      { return KindLine }
func (l *Line) Position() Point { return l.start }
func (l *Line) End() Point      { return l.end }
func (l *Line) Points() []Point { return []Point{l.start, l.end} }
func (l *Line) Bounds() Rect    { return boundsOf(l.start, l.end) }

func (l *Line) Draw(s Surface) error {
	return l.paint(s, func(s Surface) {
		s.MoveTo(l.start.X, l.start.Y)
		s.LineTo(l.end.X, l.end.Y)
	})
}

func (l *Line) Contains(p Point) bool {
	if !l.Bounds().Inset(-HitTolerance).Contains(p.X, p.Y) {
		return false
	}
	return distanceToSegment(p, l.start, l.end) <= HitTolerance
}

func (l *Line) MoveTo(p Point) {
	d := l.dragDelta(l.start, p)
	l.start = l.start.Add(d)
	l.end = l.end.Add(d)
}

func (l *Line) Record() document.Record {
	return l.record(KindLine, l.Points())
}
