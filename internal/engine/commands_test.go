package engine

import (
	"encoding/json"
	"testing"

	"github.com/inamate/vecdraw/internal/shape"
)

func TestCompileDrawCommands(t *testing.T) {
	rect := shape.NewRectangle(shape.Pt(0, 0), shape.Pt(10, 20))
	rect.SetProps(shape.Props{Name: "r", DrawBorder: true, DrawFill: true})
	ell := shape.NewEllipse(shape.Pt(0, 0), shape.Pt(10, 10))
	ell.SetProps(shape.Props{Name: "e"})

	cmds, err := CompileDrawCommands([]shape.Shape{rect, ell}, 0)
	if err != nil {
		t.Fatalf("CompileDrawCommands: %v", err)
	}

	// fill + stroke for the rectangle, nothing for the flagless ellipse
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2: %+v", len(cmds), cmds)
	}
	if cmds[0].Op != "fill" || cmds[0].Color != "#ffffff" || !cmds[0].Selected || cmds[0].Shape != "r" {
		t.Errorf("fill command = %+v", cmds[0])
	}
	if cmds[1].Op != "stroke" || cmds[1].Color != "#000000" || cmds[1].LineWidth != shape.StrokeWidth {
		t.Errorf("stroke command = %+v", cmds[1])
	}
	if n := len(cmds[1].Path); n != 5 {
		t.Errorf("stroke path has %d segments, want 5", n)
	}
}

func TestRenderJSON(t *testing.T) {
	e := New(100, 100, nil)
	if got := e.RenderJSON(); got != "[]" {
		t.Errorf("empty RenderJSON = %s", got)
	}

	if err := e.AddShape(shape.NewLine(shape.Pt(0, 0), shape.Pt(5, 5))); err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	if !e.Dirty() {
		t.Fatal("engine not dirty after AddShape")
	}

	var cmds []DrawCommand
	if err := json.Unmarshal([]byte(e.RenderJSON()), &cmds); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(cmds) != 1 || cmds[0].Op != "stroke" || cmds[0].Shape != "line 1" {
		t.Errorf("commands = %+v", cmds)
	}
	if e.Dirty() {
		t.Error("RenderJSON did not clear the dirty flag")
	}
}

func TestRectToJSON(t *testing.T) {
	got := RectToJSON(shape.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	want := `{"height":4,"width":3,"x":1,"y":2}`
	if got != want {
		t.Errorf("RectToJSON = %s, want %s", got, want)
	}
}
