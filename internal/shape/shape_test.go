package shape

import (
	"errors"
	"fmt"
	"image/color"
	"reflect"
	"testing"

	"github.com/inamate/vecdraw/internal/document"
)

// traceSurface records the calls shapes make while drawing.
type traceSurface struct {
	ops []string
}

func (s *traceSurface) SetColor(c color.Color) {
	s.ops = append(s.ops, "color "+document.FormatColor(document.ToNRGBA(c)))
}
func (s *traceSurface) SetLineWidth(w float64) { s.ops = append(s.ops, fmt.Sprintf("width %g", w)) }
func (s *traceSurface) MoveTo(x, y float64)    { s.ops = append(s.ops, fmt.Sprintf("M %g %g", x, y)) }
func (s *traceSurface) LineTo(x, y float64)    { s.ops = append(s.ops, fmt.Sprintf("L %g %g", x, y)) }
func (s *traceSurface) ClosePath()             { s.ops = append(s.ops, "Z") }
func (s *traceSurface) DrawEllipse(x, y, rx, ry float64) {
	s.ops = append(s.ops, fmt.Sprintf("E %g %g %g %g", x, y, rx, ry))
}

func (s *traceSurface) Fill() error {
	s.ops = append(s.ops, "fill")
	return nil
}

func (s *traceSurface) Stroke() error {
	s.ops = append(s.ops, "stroke")
	return nil
}

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		p     Point
		want  bool
	}{
		{name: "line midpoint", shape: NewLine(Pt(0, 0), Pt(100, 100)), p: Pt(50, 50), want: true},
		{name: "line near", shape: NewLine(Pt(0, 0), Pt(100, 100)), p: Pt(52, 50), want: true},
		{name: "line far", shape: NewLine(Pt(0, 0), Pt(100, 100)), p: Pt(70, 50), want: false},
		{name: "line past end", shape: NewLine(Pt(0, 0), Pt(100, 100)), p: Pt(110, 110), want: false},
		{name: "zero length line", shape: NewLine(Pt(10, 10), Pt(10, 10)), p: Pt(12, 10), want: true},
		{name: "triangle inside", shape: NewTriangle(Pt(0, 0), Pt(100, 0), Pt(0, 100)), p: Pt(20, 20), want: true},
		{name: "triangle reversed winding", shape: NewTriangle(Pt(0, 0), Pt(0, 100), Pt(100, 0)), p: Pt(20, 20), want: true},
		{name: "triangle outside", shape: NewTriangle(Pt(0, 0), Pt(100, 0), Pt(0, 100)), p: Pt(80, 80), want: false},
		{name: "triangle edge tolerance", shape: NewTriangle(Pt(0, 0), Pt(100, 0), Pt(0, 100)), p: Pt(50, -3), want: true},
		{name: "degenerate triangle", shape: NewTriangle(Pt(0, 0), Pt(50, 0), Pt(100, 0)), p: Pt(75, 1), want: true},
		{name: "collinear triangle beyond its edges", shape: NewTriangle(Pt(0, 0), Pt(50, 0), Pt(100, 0)), p: Pt(500, 0), want: false},
		{name: "collinear triangle off its line", shape: NewTriangle(Pt(0, 0), Pt(50, 0), Pt(100, 0)), p: Pt(50, 30), want: false},
		{name: "point triangle near", shape: NewTriangle(Pt(10, 10), Pt(10, 10), Pt(10, 10)), p: Pt(12, 11), want: true},
		{name: "point triangle far", shape: NewTriangle(Pt(10, 10), Pt(10, 10), Pt(10, 10)), p: Pt(400, 300), want: false},
		{name: "rectangle inside", shape: NewRectangle(Pt(10, 10), Pt(50, 30)), p: Pt(30, 20), want: true},
		{name: "rectangle reversed corners", shape: NewRectangle(Pt(50, 30), Pt(10, 10)), p: Pt(30, 20), want: true},
		{name: "rectangle outside", shape: NewRectangle(Pt(10, 10), Pt(50, 30)), p: Pt(60, 20), want: false},
		{name: "ellipse center", shape: NewEllipse(Pt(0, 0), Pt(100, 50)), p: Pt(50, 25), want: true},
		{name: "ellipse bounding corner", shape: NewEllipse(Pt(0, 0), Pt(100, 50)), p: Pt(2, 2), want: false},
		{name: "ellipse right edge", shape: NewEllipse(Pt(0, 0), Pt(100, 50)), p: Pt(102, 25), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMoveToPreservesGeometry(t *testing.T) {
	shapes := []Shape{
		NewLine(Pt(0, 0), Pt(100, 100)),
		NewTriangle(Pt(0, 0), Pt(100, 0), Pt(0, 100)),
		NewRectangle(Pt(10, 10), Pt(50, 30)),
		NewEllipse(Pt(0, 0), Pt(100, 50)),
	}

	for _, s := range shapes {
		t.Run(string(s.Kind()), func(t *testing.T) {
			before := s.Points()
			start := Pt(20, 10)
			s.SetDraggingPoint(&start)
			s.MoveTo(Pt(25, 12))
			s.MoveTo(Pt(30, 30))
			s.SetDraggingPoint(nil)

			after := s.Points()
			for i := range before {
				want := before[i].Add(Pt(10, 20))
				if after[i] != want {
					t.Errorf("point %d = %v, want %v", i, after[i], want)
				}
			}
		})
	}
}

func TestMoveToWithoutDraggingPointMovesAnchor(t *testing.T) {
	tri := NewTriangle(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	tri.MoveTo(Pt(5, 5))

	want := []Point{Pt(5, 5), Pt(15, 5), Pt(5, 15)}
	if got := tri.Points(); !reflect.DeepEqual(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}

func TestPointsReturnsCopy(t *testing.T) {
	tri := NewTriangle(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	pts := tri.Points()
	pts[0] = Pt(99, 99)
	if tri.Position() != Pt(0, 0) {
		t.Errorf("mutating Points() changed the triangle: %v", tri.Position())
	}
}

func TestDrawHonorsFlags(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  []string
	}{
		{
			name:  "border only",
			props: Props{DrawBorder: true},
			want:  []string{"M 0 0", "L 10 0", "L 0 10", "Z", "color #ff0000", "width 2", "stroke"},
		},
		{
			name:  "fill only",
			props: Props{DrawFill: true},
			want:  []string{"M 0 0", "L 10 0", "L 0 10", "Z", "color #0000ff", "fill"},
		},
		{
			name:  "fill then border",
			props: Props{DrawBorder: true, DrawFill: true},
			want: []string{
				"M 0 0", "L 10 0", "L 0 10", "Z", "color #0000ff", "fill",
				"M 0 0", "L 10 0", "L 0 10", "Z", "color #ff0000", "width 2", "stroke",
			},
		},
		{
			name:  "neither",
			props: Props{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri := NewTriangle(Pt(0, 0), Pt(10, 0), Pt(0, 10))
			tri.SetColor(color.NRGBA{R: 0xff, A: 0xff})
			tri.SetFillColor(color.NRGBA{B: 0xff, A: 0xff})
			tri.SetProps(tt.props)

			var s traceSurface
			if err := tri.Draw(&s); err != nil {
				t.Fatalf("Draw: %v", err)
			}
			if !reflect.DeepEqual(s.ops, tt.want) {
				t.Errorf("ops = %v, want %v", s.ops, tt.want)
			}
		})
	}
}

func TestDrawEllipse(t *testing.T) {
	e := NewEllipse(Pt(0, 0), Pt(100, 50))
	var s traceSurface
	if err := e.Draw(&s); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(s.ops) == 0 || s.ops[0] != "E 50 25 50 25" {
		t.Errorf("ops = %v", s.ops)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	shapes := []Shape{
		NewLine(Pt(10, 10), Pt(110, 110)),
		NewTriangle(Pt(0, 0), Pt(100, 0), Pt(0, 100)),
		NewRectangle(Pt(10, 10), Pt(50, 30)),
		NewEllipse(Pt(0, 0), Pt(100, 50)),
	}

	for i, s := range shapes {
		s.SetColor(color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})
		s.SetFillColor(color.NRGBA{R: 4, G: 5, B: 6, A: 7})
		s.SetProps(Props{Name: fmt.Sprintf("shape-%d", i), DrawBorder: i%2 == 0, DrawFill: true})

		rec := s.Record()
		if err := rec.Validate(); err != nil {
			t.Fatalf("%s: Validate: %v", s.Kind(), err)
		}

		got, err := FromRecord(rec)
		if err != nil {
			t.Fatalf("%s: FromRecord: %v", s.Kind(), err)
		}
		if !reflect.DeepEqual(got.Record(), rec) {
			t.Errorf("%s: round trip = %+v, want %+v", s.Kind(), got.Record(), rec)
		}
	}
}

func TestLineRecord(t *testing.T) {
	l := NewLine(Pt(10, 10), Pt(110, 110))
	l.SetProps(Props{Name: "Abdallah", DrawBorder: true})

	rec := l.Record()
	if rec.Type != "line" || rec.Name != "Abdallah" {
		t.Errorf("record = %+v", rec)
	}
	if want := []Point{Pt(10, 10), Pt(110, 110)}; !reflect.DeepEqual(rec.Points, want) {
		t.Errorf("points = %v, want %v", rec.Points, want)
	}
}

func TestFromRecordErrors(t *testing.T) {
	_, err := FromRecord(document.Record{Type: "hexagon", Color: "#000000", FillColor: "#000000"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown type error = %v, want ErrUnknownKind", err)
	}

	_, err = FromRecord(document.Record{Type: KindLine, Points: []Point{Pt(0, 0)}, Color: "#000000", FillColor: "#000000"})
	if err == nil {
		t.Error("short line accepted")
	}

	_, err = FromRecord(document.Record{Type: KindLine, Points: []Point{Pt(0, 0), Pt(1, 1)}, Color: "black", FillColor: "#000000"})
	if err == nil {
		t.Error("bad color accepted")
	}
}

func TestDefaults(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(1, 1))
	if p := l.Props(); !p.DrawBorder || p.DrawFill {
		t.Errorf("default props = %+v", p)
	}
	if l.Color() != (color.NRGBA{A: 0xff}) {
		t.Errorf("default color = %v", l.Color())
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: -5, Width: 20, Height: 5}
	want := Rect{X: 0, Y: -5, Width: 25, Height: 15}
	if got := a.Union(b); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := (Rect{Width: -1, Height: -1}).Union(a); got != a {
		t.Errorf("empty Union = %+v, want %+v", got, a)
	}
}
