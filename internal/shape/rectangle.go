package shape

import "github.com/inamate/vecdraw/internal/document"

// Rectangle is an axis-aligned rectangle spanned by two opposite corners.
// The anchor is the corner it was created from.
type Rectangle struct {
	base
	corners [2]Point
}

// NewRectangle creates a rectangle between two opposite corners.
func NewRectangle(corner, opposite Point) *Rectangle {
	return &Rectangle{base: newBase(), corners: [2]Point{corner, opposite}}
}

func (r *Rectangle) Kind() Kind      { return KindRectangle }
func (r *Rectangle) Position() Point { return r.corners[0] }
func (r *Rectangle) Points() []Point { return []Point{r.corners[0], r.corners[1]} }
func (r *Rectangle) Bounds() Rect    { return boundsOf(r.corners[:]...) }

func (r *Rectangle) Draw(s Surface) error {
	b := r.Bounds()
	return r.paint(s, tracePolygon([]Point{
		Pt(b.X, b.Y),
		Pt(b.X+b.Width, b.Y),
		Pt(b.X+b.Width, b.Y+b.Height),
		Pt(b.X, b.Y+b.Height),
	}))
}

func (r *Rectangle) Contains(p Point) bool {
	return r.Bounds().Inset(-HitTolerance).Contains(p.X, p.Y)
}

func (r *Rectangle) MoveTo(p Point) {
	translate(r.corners[:], r.dragDelta(r.corners[0], p))
}

func (r *Rectangle) Record() document.Record {
	return r.record(KindRectangle, r.Points())
}
