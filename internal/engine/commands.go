package engine

import (
	"encoding/json"
	"image/color"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/shape"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op        string        `json:"op"`                  // Operation: "fill" or "stroke"
	Shape     string        `json:"shape,omitempty"`     // Shape name, for hit correlation
	Selected  bool          `json:"selected,omitempty"`  // Shape is the current selection
	Path      []PathCommand `json:"path,omitempty"`      // Path data
	Color     string        `json:"color,omitempty"`     // Fill or stroke color
	LineWidth float64       `json:"lineWidth,omitempty"` // Stroke width
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"], and
// ["E", cx, cy, rx, ry] for a full ellipse.
type PathCommand []interface{}

// recorder is a shape.Surface that turns paint calls into draw commands.
type recorder struct {
	shape     string
	selected  bool
	path      []PathCommand
	color     string
	lineWidth float64
	commands  []DrawCommand
}

func (r *recorder) SetColor(c color.Color) {
	r.color = document.FormatColor(document.ToNRGBA(c))
}

func (r *recorder) SetLineWidth(width float64) { r.lineWidth = width }
func (r *recorder) MoveTo(x, y float64)        { r.path = append(r.path, PathCommand{"M", x, y}) }
func (r *recorder) LineTo(x, y float64)        { r.path = append(r.path, PathCommand{"L", x, y}) }
func (r *recorder) ClosePath()                 { r.path = append(r.path, PathCommand{"Z"}) }

func (r *recorder) DrawEllipse(x, y, rx, ry float64) {
	r.path = append(r.path, PathCommand{"E", x, y, rx, ry})
}

func (r *recorder) Fill() error {
	r.emit(DrawCommand{Op: "fill"})
	return nil
}

func (r *recorder) Stroke() error {
	r.emit(DrawCommand{Op: "stroke", LineWidth: r.lineWidth})
	return nil
}

// emit flushes the current path into a command; like a canvas context,
// filling or stroking consumes the path.
func (r *recorder) emit(cmd DrawCommand) {
	cmd.Shape = r.shape
	cmd.Selected = r.selected
	cmd.Path = r.path
	cmd.Color = r.color
	r.commands = append(r.commands, cmd)
	r.path = nil
}

// CompileDrawCommands generates a draw command buffer from the shapes.
// Commands are in painter's order (back to front).
func CompileDrawCommands(shapes []shape.Shape, selected int) ([]DrawCommand, error) {
	rec := &recorder{}
	for i, s := range shapes {
		rec.shape = s.Props().Name
		rec.selected = i == selected
		if err := s.Draw(rec); err != nil {
			return nil, err
		}
	}
	return rec.commands, nil
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// DrawCommands compiles the drawing into draw commands and clears the
// dirty flag.
func (e *Engine) DrawCommands() ([]DrawCommand, error) {
	commands, err := CompileDrawCommands(e.shapes, e.selected)
	if err != nil {
		return nil, err
	}
	e.dirty = false
	return commands, nil
}

// RenderJSON returns the draw commands of the drawing as JSON.
func (e *Engine) RenderJSON() string {
	commands, err := e.DrawCommands()
	if err != nil {
		return "[]"
	}
	result, _ := DrawCommandsToJSON(commands)
	return result
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r shape.Rect) string {
	data, _ := json.Marshal(map[string]float64{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	})
	return string(data)
}

// GetDocument returns the drawing as a JSON array of shape records.
func (e *Engine) GetDocument() string {
	data, err := document.Marshal(e.Records())
	if err != nil {
		return "[]"
	}
	return string(data)
}

// LoadDocument replaces the drawing with a JSON array of shape records.
func (e *Engine) LoadDocument(jsonData string) error {
	records, err := document.Unmarshal([]byte(jsonData))
	if err != nil {
		return err
	}
	return e.LoadRecords(records)
}
