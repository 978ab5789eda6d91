//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"syscall/js"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/shape"
)

var eng *engine.Engine

// jsSink forwards selection widget updates to window.vecdrawSelection.
type jsSink struct {
	items []string
}

func (s *jsSink) SetItems(items []string) {
	s.items = append(s.items[:0], items...)
}

func (s *jsSink) SetSelectedIndex(index int) {
	cb := js.Global().Get("vecdrawSelection")
	if cb.Type() != js.TypeFunction {
		return
	}
	arr := make([]interface{}, len(s.items))
	for i, item := range s.items {
		arr[i] = item
	}
	cb.Invoke(js.ValueOf(arr), index)
}

func main() {
	eng = engine.New(800, 600, &jsSink{})

	vecdrawEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	vecdrawEngine.Set("addShape", js.FuncOf(addShape))
	vecdrawEngine.Set("removeShape", js.FuncOf(removeShape))
	vecdrawEngine.Set("renameShape", js.FuncOf(renameShape))
	vecdrawEngine.Set("changeColor", js.FuncOf(changeColor))
	vecdrawEngine.Set("select", js.FuncOf(selectShape))
	vecdrawEngine.Set("pointerDown", js.FuncOf(pointerDown))
	vecdrawEngine.Set("pointerMove", js.FuncOf(pointerMove))
	vecdrawEngine.Set("pointerUp", js.FuncOf(pointerUp))
	vecdrawEngine.Set("resize", js.FuncOf(resize))
	vecdrawEngine.Set("loadDocument", js.FuncOf(loadDocument))
	vecdrawEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))

	// --- Queries (frontend ← engine) ---
	vecdrawEngine.Set("render", js.FuncOf(render))
	vecdrawEngine.Set("isDirty", js.FuncOf(isDirty))
	vecdrawEngine.Set("hitTest", js.FuncOf(hitTest))
	vecdrawEngine.Set("selectionBounds", js.FuncOf(selectionBounds))
	vecdrawEngine.Set("getDocument", js.FuncOf(getDocument))

	js.Global().Set("vecdrawEngine", vecdrawEngine)
	js.Global().Set("vecdrawWasmReady", js.ValueOf(true))

	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func point(args []js.Value) (shape.Point, bool) {
	if len(args) < 2 {
		return shape.Point{}, false
	}
	return shape.Pt(args[0].Float(), args[1].Float()), true
}

func byName(name string) (shape.Shape, error) {
	s := eng.ShapeByName(name)
	if s == nil {
		return nil, fmt.Errorf("no shape named %q", name)
	}
	return s, nil
}

// --- Command Handlers ---

func addShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail(fmt.Errorf("missing shape JSON"))
	}

	var r document.Record
	if err := json.Unmarshal([]byte(args[0].String()), &r); err != nil {
		return fail(err)
	}
	s, err := shape.FromRecord(r)
	if err != nil {
		return fail(err)
	}
	if err := eng.AddShape(s); err != nil {
		return fail(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "name": s.Props().Name})
}

func removeShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail(fmt.Errorf("missing shape name"))
	}
	s, err := byName(args[0].String())
	if err != nil {
		return fail(err)
	}
	eng.RemoveShape(s)
	return ok()
}

func renameShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return fail(fmt.Errorf("usage: renameShape(old, new)"))
	}
	s, err := byName(args[0].String())
	if err != nil {
		return fail(err)
	}
	if err := eng.RenameShape(s, args[1].String()); err != nil {
		return fail(err)
	}
	return ok()
}

// changeColor(name, stroke, fill, drawBorder, drawFill). Empty colors keep
// the current ones.
func changeColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return fail(fmt.Errorf("usage: changeColor(name, stroke, fill, drawBorder, drawFill)"))
	}
	s, err := byName(args[0].String())
	if err != nil {
		return fail(err)
	}

	stroke, err := optionalColor(args[1])
	if err != nil {
		return fail(err)
	}
	fill, err := optionalColor(args[2])
	if err != nil {
		return fail(err)
	}

	eng.ChangeColor(s, stroke, fill, args[3].Bool(), args[4].Bool())
	return ok()
}

func optionalColor(v js.Value) (color.Color, error) {
	if v.Type() != js.TypeString || v.String() == "" {
		return nil, nil
	}
	c, err := document.ParseColor(v.String())
	if err != nil {
		return nil, err
	}
	return c, nil
}

func selectShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.Select(args[0].Int()); err != nil {
		return fail(err)
	}
	return ok()
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if p, ok := point(args); ok {
		eng.PointerDown(p)
	}
	return js.ValueOf(eng.Selected())
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if p, ok := point(args); ok {
		eng.PointerMove(p)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if p, ok := point(args); ok {
		eng.PointerUp(p)
	}
	return nil
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.Resize(args[0].Int(), args[1].Int())
	return nil
}

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail(fmt.Errorf("missing document JSON"))
	}
	if err := eng.LoadDocument(args[0].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	if err := eng.LoadRecords(document.SampleDrawing()); err != nil {
		return fail(err)
	}
	return ok()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RenderJSON())
}

func isDirty(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Dirty())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	p, ok := point(args)
	if !ok {
		return js.ValueOf(engine.NoSelection)
	}
	return js.ValueOf(eng.HitTest(p))
}

func selectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(engine.RectToJSON(eng.SelectionBounds()))
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}
