package shape

import "github.com/inamate/vecdraw/internal/document"

// Triangle is a closed three-vertex polygon anchored at its first vertex.
type Triangle struct {
	base
	vertices [3]Point
}

// NewTriangle creates a triangle from three vertices.
func NewTriangle(p1, p2, p3 Point) *Triangle {
	return &Triangle{base: newBase(), vertices: [3]Point{p1, p2, p3}}
}

func (t *Triangle) Kind() Kind      { return KindTriangle }
func (t *Triangle) Position() Point { return t.vertices[0] }
func (t *Triangle) Points() []Point { return []Point{t.vertices[0], t.vertices[1], t.vertices[2]} }
func (t *Triangle) Bounds() Rect    { return boundsOf(t.vertices[:]...) }

func (t *Triangle) Draw(s Surface) error {
	return t.paint(s, tracePolygon(t.vertices[:]))
}

// Contains reports whether p is inside the triangle or within HitTolerance
// of one of its edges. The edge test keeps degenerate triangles selectable.
func (t *Triangle) Contains(p Point) bool {
	a, b, c := t.vertices[0], t.vertices[1], t.vertices[2]

	// A zero-area triangle has no interior; only its edges are hittable.
	if cross(a, b, c) != 0 {
		d1 := cross(a, b, p)
		d2 := cross(b, c, p)
		d3 := cross(c, a, p)
		hasNeg := d1 < 0 || d2 < 0 || d3 < 0
		hasPos := d1 > 0 || d2 > 0 || d3 > 0
		if !(hasNeg && hasPos) {
			return true
		}
	}

	return distanceToSegment(p, a, b) <= HitTolerance ||
		distanceToSegment(p, b, c) <= HitTolerance ||
		distanceToSegment(p, c, a) <= HitTolerance
}

func (t *Triangle) MoveTo(p Point) {
	translate(t.vertices[:], t.dragDelta(t.vertices[0], p))
}

func (t *Triangle) Record() document.Record {
	return t.record(KindTriangle, t.Points())
}
