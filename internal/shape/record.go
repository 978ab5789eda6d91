package shape

import (
	"fmt"

	"github.com/inamate/vecdraw/internal/document"
)

// New builds a shape of the given kind from its geometry points, anchor
// first.
func New(kind Kind, pts []Point) (Shape, error) {
	want := map[Kind]int{KindLine: 2, KindTriangle: 3, KindRectangle: 2, KindEllipse: 2}[kind]
	if want == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if len(pts) != want {
		return nil, fmt.Errorf("%s: expected %d points, got %d", kind, want, len(pts))
	}

	switch kind {
	case KindLine:
		return NewLine(pts[0], pts[1]), nil
	case KindTriangle:
		return NewTriangle(pts[0], pts[1], pts[2]), nil
	case KindRectangle:
		return NewRectangle(pts[0], pts[1]), nil
	default:
		return NewEllipse(pts[0], pts[1]), nil
	}
}

// FromRecord reconstructs a shape from its serialized record.
func FromRecord(r document.Record) (Shape, error) {
	s, err := New(r.Type, r.Points)
	if err != nil {
		return nil, err
	}

	stroke, err := document.ParseColor(r.Color)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", r.Type, r.Name, err)
	}
	fill, err := document.ParseColor(r.FillColor)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", r.Type, r.Name, err)
	}

	s.SetColor(stroke)
	s.SetFillColor(fill)
	s.SetProps(Props{Name: r.Name, DrawBorder: r.DrawBorder, DrawFill: r.DrawFill})
	return s, nil
}
