package shape

import "github.com/inamate/vecdraw/internal/document"

// Ellipse is the ellipse inscribed in the box spanned by two opposite
// corners.
type Ellipse struct {
	base
	corners [2]Point
}

// NewEllipse creates the ellipse inscribed in the given corner box.
func NewEllipse(corner, opposite Point) *Ellipse {
	return &Ellipse{base: newBase(), corners: [2]Point{corner, opposite}}
}

func (e *Ellipse) Kind() Kind      { return KindEllipse }
func (e *Ellipse) Position() Point { return e.corners[0] }
func (e *Ellipse) Points() []Point { return []Point{e.corners[0], e.corners[1]} }
func (e *Ellipse) Bounds() Rect    { return boundsOf(e.corners[:]...) }

// Radii returns the horizontal and vertical radii.
func (e *Ellipse) Radii() (float64, float64) {
	b := e.Bounds()
	return b.Width / 2, b.Height / 2
}

func (e *Ellipse) Draw(s Surface) error {
	cx, cy := e.Bounds().Center()
	rx, ry := e.Radii()
	return e.paint(s, func(s Surface) {
		s.DrawEllipse(cx, cy, rx, ry)
	})
}

// Contains tests p against the ellipse grown by HitTolerance.
func (e *Ellipse) Contains(p Point) bool {
	cx, cy := e.Bounds().Center()
	rx, ry := e.Radii()
	rx += HitTolerance
	ry += HitTolerance
	dx := (p.X - cx) / rx
	dy := (p.Y - cy) / ry
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) MoveTo(p Point) {
	translate(e.corners[:], e.dragDelta(e.corners[0], p))
}

func (e *Ellipse) Record() document.Record {
	return e.record(KindEllipse, e.Points())
}
