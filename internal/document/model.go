package document

import (
	"encoding/json"
	"fmt"
)

// Point is a position on the canvas in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

type ShapeType string

const (
	ShapeTypeLine      ShapeType = "line"
	ShapeTypeTriangle  ShapeType = "triangle"
	ShapeTypeRectangle ShapeType = "rectangle"
	ShapeTypeEllipse   ShapeType = "ellipse"
)

// pointCounts is the number of geometry points each shape type carries.
var pointCounts = map[ShapeType]int{
	ShapeTypeLine:      2,
	ShapeTypeTriangle:  3,
	ShapeTypeRectangle: 2,
	ShapeTypeEllipse:   2,
}

// Record is the serialized form of a single shape. A drawing document is a
// JSON array of records in z-order (first record is drawn first).
type Record struct {
	Type       ShapeType `json:"type"`
	Points     []Point   `json:"points"`
	Color      string    `json:"color"`
	FillColor  string    `json:"fillColor"`
	Name       string    `json:"name"`
	DrawBorder bool      `json:"drawBorder"`
	DrawFill   bool      `json:"drawFill"`
}

// Validate checks the discriminator, the point count and both colors.
func (r Record) Validate() error {
	want, ok := pointCounts[r.Type]
	if !ok {
		return fmt.Errorf("unknown shape type %q", r.Type)
	}
	if len(r.Points) != want {
		return fmt.Errorf("%s %q: expected %d points, got %d", r.Type, r.Name, want, len(r.Points))
	}
	if _, err := ParseColor(r.Color); err != nil {
		return fmt.Errorf("%s %q: color: %w", r.Type, r.Name, err)
	}
	if _, err := ParseColor(r.FillColor); err != nil {
		return fmt.Errorf("%s %q: fill color: %w", r.Type, r.Name, err)
	}
	return nil
}

// Marshal encodes records as a single JSON array.
func Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(records)
}

// Unmarshal decodes a JSON array of records and validates each one.
func Unmarshal(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode drawing: %w", err)
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}
