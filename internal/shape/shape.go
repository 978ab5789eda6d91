// Package shape implements the drawable primitives of a drawing: their
// geometry, hit testing, dragging and serialization.
package shape

import (
	"errors"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/inamate/vecdraw/internal/document"
)

const (
	// StrokeWidth is the border width every shape is painted with.
	StrokeWidth = 2.0

	// HitTolerance is how far (in pixels) a pointer may be from a shape's
	// outline and still hit it.
	HitTolerance = 4.0
)

var ErrUnknownKind = errors.New("unknown shape kind")

// Kind discriminates the shape variants.
type Kind = document.ShapeType

const (
	KindLine      = document.ShapeTypeLine
	KindTriangle  = document.ShapeTypeTriangle
	KindRectangle = document.ShapeTypeRectangle
	KindEllipse   = document.ShapeTypeEllipse
)

// Surface is the painting target shapes draw onto. *gg.Context satisfies it.
type Surface interface {
	SetColor(c color.Color)
	SetLineWidth(width float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	DrawEllipse(x, y, rx, ry float64)
	Fill() error
	Stroke() error
}

// Props are the editor-level attributes of a shape.
type Props struct {
	Name       string
	DrawBorder bool
	DrawFill   bool
}

// Shape is a drawable, selectable and draggable canvas primitive.
type Shape interface {
	Kind() Kind

	// Position is the anchor point (the first geometry point).
	Position() Point
	// Points returns a copy of the geometry points, anchor first.
	Points() []Point
	Bounds() Rect

	Color() color.NRGBA
	SetColor(c color.NRGBA)
	FillColor() color.NRGBA
	SetFillColor(c color.NRGBA)
	Props() Props
	SetProps(p Props)

	Draw(s Surface) error
	Contains(p Point) bool

	// SetDraggingPoint arms drag tracking at p, or disarms it when p is nil.
	SetDraggingPoint(p *Point)
	// MoveTo translates the shape so the dragging point lands on p. When
	// no dragging point is armed the anchor lands on p instead.
	MoveTo(p Point)

	Record() document.Record
}

// base holds the state shared by all variants.
type base struct {
	color     color.NRGBA
	fillColor color.NRGBA
	props     Props
	dragging  *Point
}

func newBase() base {
	return base{
		color:     document.ToNRGBA(colornames.Black),
		fillColor: document.ToNRGBA(colornames.White),
		props:     Props{DrawBorder: true},
	}
}

func (b *base) Color() color.NRGBA         { return b.color }
func (b *base) SetColor(c color.NRGBA)     { b.color = c }
func (b *base) FillColor() color.NRGBA     { return b.fillColor }
func (b *base) SetFillColor(c color.NRGBA) { b.fillColor = c }
func (b *base) Props() Props               { return b.props }
func (b *base) SetProps(p Props)           { b.props = p }

func (b *base) SetDraggingPoint(p *Point) {
	if p == nil {
		b.dragging = nil
		return
	}
	d := *p
	b.dragging = &d
}

// dragDelta returns the translation that carries the current reference
// point (dragging point, or anchor when disarmed) onto p, and advances the
// dragging point.
func (b *base) dragDelta(anchor, p Point) Point {
	if b.dragging == nil {
		return p.Sub(anchor)
	}
	delta := p.Sub(*b.dragging)
	*b.dragging = p
	return delta
}

// paint fills then strokes the path produced by trace, honoring the
// border and fill flags.
func (b *base) paint(s Surface, trace func(Surface)) error {
	if b.props.DrawFill {
		trace(s)
		s.SetColor(b.fillColor)
		if err := s.Fill(); err != nil {
			return err
		}
	}
	if b.props.DrawBorder {
		trace(s)
		s.SetColor(b.color)
		s.SetLineWidth(StrokeWidth)
		if err := s.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func (b *base) record(kind Kind, pts []Point) document.Record {
	return document.Record{
		Type:       kind,
		Points:     pts,
		Color:      document.FormatColor(b.color),
		FillColor:  document.FormatColor(b.fillColor),
		Name:       b.props.Name,
		DrawBorder: b.props.DrawBorder,
		DrawFill:   b.props.DrawFill,
	}
}

func translate(pts []Point, d Point) {
	for i := range pts {
		pts[i] = pts[i].Add(d)
	}
}

func tracePolygon(pts []Point) func(Surface) {
	return func(s Surface) {
		s.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			s.LineTo(p.X, p.Y)
		}
		s.ClosePath()
	}
}
