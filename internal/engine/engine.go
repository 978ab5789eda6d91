package engine

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/shape"
)

var (
	ErrInvalidName     = errors.New("invalid shape name")
	ErrIndexOutOfRange = errors.New("shape index out of range")
)

const (
	// NoSelection is the selected index when no shape is picked.
	NoSelection = -1

	// SelectPrompt is the sentinel first entry of the selection widget.
	SelectPrompt = "Select Shape"
)

// SelectionSink is the external list widget that mirrors the shape list.
// The engine writes its items and selected index but never owns it.
type SelectionSink interface {
	SetItems(items []string)
	SetSelectedIndex(index int)
}

// Engine owns the ordered shape list of a drawing and turns pointer input
// into selection and dragging. Insertion order is z-order: later shapes are
// drawn on top and hit first.
//
// Engine is not safe for concurrent use; all calls are expected to come
// from the UI event loop.
type Engine struct {
	shapes []shape.Shape
	sink   SelectionSink

	// Selection state (engine owns this)
	selected int
	dragging bool

	// Canvas size in pixels; pointer moves outside it are ignored
	width  int
	height int

	// Dirty flag - canvas needs repaint
	dirty bool
}

// New creates an engine for a canvas of the given size. sink may be nil.
func New(width, height int, sink SelectionSink) *Engine {
	e := &Engine{
		sink:     sink,
		selected: NoSelection,
		width:    width,
		height:   height,
		dirty:    true,
	}
	e.Refresh()
	return e
}

// --- Shape collection ---

// AddShape registers s on top of the drawing. A shape without a name gets
// a generated one; a named shape must not collide with an existing name.
func (e *Engine) AddShape(s shape.Shape) error {
	props := s.Props()
	if props.Name == "" {
		props.Name = e.generateName(s.Kind(), func(name string) bool {
			return e.ShapeByName(name) != nil
		})
	} else if err := e.CheckShapeName(props.Name); err != nil {
		return err
	}
	s.SetProps(props)

	e.shapes = append(e.shapes, s)
	e.dirty = true
	e.Refresh()
	return nil
}

// RemoveShape removes s from the drawing. It reports whether s was found.
func (e *Engine) RemoveShape(s shape.Shape) bool {
	for i, existing := range e.shapes {
		if existing == s {
			_ = e.RemoveAt(i)
			return true
		}
	}
	return false
}

// RemoveAt removes the shape at index i.
func (e *Engine) RemoveAt(i int) error {
	if i < 0 || i >= len(e.shapes) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	e.shapes[i].SetDraggingPoint(nil)
	e.shapes = append(e.shapes[:i], e.shapes[i+1:]...)

	switch {
	case e.selected == i:
		e.selected = NoSelection
		e.dragging = false
	case e.selected > i:
		e.selected--
	}

	e.dirty = true
	e.Refresh()
	return nil
}

// Shapes returns the shapes in z-order (bottom first).
func (e *Engine) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(e.shapes))
	copy(out, e.shapes)
	return out
}

// Len returns the number of shapes.
func (e *Engine) Len() int {
	return len(e.shapes)
}

// ShapeAt returns the shape at index i.
func (e *Engine) ShapeAt(i int) (shape.Shape, bool) {
	if i < 0 || i >= len(e.shapes) {
		return nil, false
	}
	return e.shapes[i], true
}

// GetShape returns the first shape whose name matches template's name,
// or nil.
func (e *Engine) GetShape(template shape.Shape) shape.Shape {
	if template == nil {
		return nil
	}
	return e.ShapeByName(template.Props().Name)
}

// ShapeByName returns the first shape with the given name, or nil.
func (e *Engine) ShapeByName(name string) shape.Shape {
	for _, s := range e.shapes {
		if s.Props().Name == name {
			return s
		}
	}
	return nil
}

// CheckShapeName fails with ErrInvalidName iff a shape already uses name.
func (e *Engine) CheckShapeName(name string) error {
	if e.ShapeByName(name) != nil {
		return fmt.Errorf("%w: %q is already in use", ErrInvalidName, name)
	}
	return nil
}

// RenameShape gives s a new name. Renaming to the current name is a no-op;
// an empty or taken name fails with ErrInvalidName and changes nothing.
func (e *Engine) RenameShape(s shape.Shape, name string) error {
	props := s.Props()
	if props.Name == name {
		return nil
	}
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if err := e.CheckShapeName(name); err != nil {
		return err
	}

	props.Name = name
	s.SetProps(props)
	e.dirty = true
	e.Refresh()
	return nil
}

// ChangeColor updates the stroke and fill colors of s (nil leaves a color
// unchanged) and sets its border and fill flags.
func (e *Engine) ChangeColor(s shape.Shape, stroke, fill color.Color, drawBorder, drawFill bool) {
	if stroke != nil {
		s.SetColor(document.ToNRGBA(stroke))
	}
	if fill != nil {
		s.SetFillColor(document.ToNRGBA(fill))
	}

	props := s.Props()
	props.DrawBorder = drawBorder
	props.DrawFill = drawFill
	s.SetProps(props)

	e.dirty = true
}

// generateName returns "<kind> <n>" for the smallest n above the shape
// count that is not taken.
func (e *Engine) generateName(kind shape.Kind, taken func(string) bool) string {
	for n := len(e.shapes) + 1; ; n++ {
		name := fmt.Sprintf("%s %d", kind, n)
		if !taken(name) {
			return name
		}
	}
}

// --- Selection ---

// Selected returns the selected index, or NoSelection.
func (e *Engine) Selected() int {
	return e.selected
}

// SelectedShape returns the selected shape, or nil.
func (e *Engine) SelectedShape() shape.Shape {
	if e.selected == NoSelection {
		return nil
	}
	return e.shapes[e.selected]
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool {
	return e.dragging
}

// Select picks the shape at index i, as when the user chooses it in the
// selection widget. NoSelection clears the selection. The widget is told
// about the new index so selections made from script stay in sync.
func (e *Engine) Select(i int) error {
	if i != NoSelection && (i < 0 || i >= len(e.shapes)) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if e.selected != NoSelection {
		e.shapes[e.selected].SetDraggingPoint(nil)
	}
	e.selected = i
	e.dragging = false
	e.dirty = true

	if e.sink != nil {
		e.sink.SetSelectedIndex(e.selected + 1)
	}
	return nil
}

// Refresh repopulates the selection widget: the prompt entry followed by
// every shape name in z-order, with the current selection highlighted.
func (e *Engine) Refresh() {
	if e.sink == nil {
		return
	}

	items := make([]string, 0, len(e.shapes)+1)
	items = append(items, SelectPrompt)
	for _, s := range e.shapes {
		items = append(items, s.Props().Name)
	}
	e.sink.SetItems(items)
	e.sink.SetSelectedIndex(e.selected + 1)
}

// --- Pointer input ---

// HitTest returns the index of the topmost shape containing p, or
// NoSelection.
func (e *Engine) HitTest(p shape.Point) int {
	for i := len(e.shapes) - 1; i >= 0; i-- {
		if e.shapes[i].Contains(p) {
			return i
		}
	}
	return NoSelection
}

// PointerDown selects the topmost shape under p and arms dragging on it.
// Pressing on empty canvas clears the selection.
func (e *Engine) PointerDown(p shape.Point) {
	if e.selected != NoSelection {
		e.shapes[e.selected].SetDraggingPoint(nil)
	}

	e.selected = e.HitTest(p)
	e.dragging = e.selected != NoSelection
	if e.dragging {
		e.shapes[e.selected].SetDraggingPoint(&p)
	}

	if e.sink != nil {
		e.sink.SetSelectedIndex(e.selected + 1)
	}
	e.dirty = true
}

// PointerMove drags the selected shape to p. Moves outside the canvas or
// without a preceding PointerDown hit are ignored.
func (e *Engine) PointerMove(p shape.Point) {
	if !e.dragging || !e.inBounds(p) {
		return
	}
	e.shapes[e.selected].MoveTo(p)
	e.dirty = true
}

// PointerUp ends a drag. The selection is kept.
func (e *Engine) PointerUp(shape.Point) {
	if e.selected != NoSelection {
		e.shapes[e.selected].SetDraggingPoint(nil)
	}
	e.dragging = false
}

func (e *Engine) inBounds(p shape.Point) bool {
	return p.X >= 0 && p.X <= float64(e.width) && p.Y >= 0 && p.Y <= float64(e.height)
}

// --- Canvas ---

// Size returns the canvas size in pixels.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// Resize changes the canvas size.
func (e *Engine) Resize(width, height int) {
	if e.width != width || e.height != height {
		e.width = width
		e.height = height
		e.dirty = true
	}
}

// Dirty reports whether the canvas needs repainting.
func (e *Engine) Dirty() bool {
	return e.dirty
}

// Render paints every shape onto the on-screen surface s and clears the
// dirty flag.
func (e *Engine) Render(s shape.Surface) error {
	if err := e.Paint(s); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// Paint draws every shape onto s in z-order without touching the dirty
// flag, for off-screen targets.
func (e *Engine) Paint(s shape.Surface) error {
	for _, sh := range e.shapes {
		if err := sh.Draw(s); err != nil {
			return fmt.Errorf("draw %s %q: %w", sh.Kind(), sh.Props().Name, err)
		}
	}
	return nil
}

// SelectionBounds returns the bounding box of the selected shape.
func (e *Engine) SelectionBounds() shape.Rect {
	if s := e.SelectedShape(); s != nil {
		return s.Bounds()
	}
	return shape.Rect{}
}

// --- Persistence ---

// Records serializes the drawing in z-order.
func (e *Engine) Records() []document.Record {
	records := make([]document.Record, 0, len(e.shapes))
	for _, s := range e.shapes {
		records = append(records, s.Record())
	}
	return records
}

// LoadRecords replaces the drawing with the given records. Nothing changes
// if any record is invalid or two records share a name.
func (e *Engine) LoadRecords(records []document.Record) error {
	shapes := make([]shape.Shape, 0, len(records))
	names := make(map[string]bool, len(records))
	for i, r := range records {
		s, err := shape.FromRecord(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if name := s.Props().Name; name != "" {
			if names[name] {
				return fmt.Errorf("record %d: %w: %q is already in use", i, ErrInvalidName, name)
			}
			names[name] = true
		}
		shapes = append(shapes, s)
	}

	e.shapes = e.shapes[:0]
	e.selected = NoSelection
	e.dragging = false
	for _, s := range shapes {
		if s.Props().Name == "" {
			props := s.Props()
			props.Name = e.generateName(s.Kind(), func(name string) bool { return names[name] })
			names[props.Name] = true
			s.SetProps(props)
		}
		e.shapes = append(e.shapes, s)
	}

	e.dirty = true
	e.Refresh()
	return nil
}
