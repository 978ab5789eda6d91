package export

import (
	"bytes"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/shape"
)

type recordingNotifier struct {
	ops []string
}

func (n *recordingNotifier) Notify(op string, err error) {
	n.ops = append(n.ops, op)
}

func newTestExporter(t *testing.T) (*Exporter, *engine.Engine, *recordingNotifier) {
	t.Helper()
	eng := engine.New(120, 80, nil)
	rect := shape.NewRectangle(shape.Pt(20, 20), shape.Pt(100, 60))
	if err := eng.AddShape(rect); err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	eng.ChangeColor(rect, color.Black, color.NRGBA{R: 0xff, A: 0xff}, true, true)

	n := &recordingNotifier{}
	return NewExporter(eng, n, color.White, 95), eng, n
}

func TestWriteImage(t *testing.T) {
	x, _, _ := newTestExporter(t)

	var buf bytes.Buffer
	if err := x.WriteImage(&buf); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Fatalf("image size = %dx%d, want 120x80", b.Dx(), b.Dy())
	}

	r, g, b, _ := img.At(60, 40).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
		t.Errorf("inside pixel = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(5, 5).RGBA()
	if r>>8 < 200 || g>>8 < 200 || b>>8 < 200 {
		t.Errorf("background pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestWriteImageEmptyCanvas(t *testing.T) {
	x := NewExporter(engine.New(0, 10, nil), nil, nil, 0)
	if err := x.WriteImage(&bytes.Buffer{}); err == nil {
		t.Error("WriteImage on empty canvas succeeded")
	}
}

func TestExportImageAppendsExtension(t *testing.T) {
	x, _, n := newTestExporter(t)
	base := filepath.Join(t.TempDir(), "drawing.jpg")

	if !x.ExportImage(base) {
		t.Fatalf("ExportImage failed: %v", n.ops)
	}
	if _, err := os.Stat(base + ".jpg"); err != nil {
		t.Errorf("expected %s.jpg: %v", base, err)
	}
}

func TestExportImageFailureIsReported(t *testing.T) {
	x, _, n := newTestExporter(t)
	path := filepath.Join(t.TempDir(), "missing", "drawing")

	if x.ExportImage(path) {
		t.Fatal("ExportImage into a missing directory succeeded")
	}
	if !reflect.DeepEqual(n.ops, []string{"export image"}) {
		t.Errorf("notifications = %v", n.ops)
	}
}

func TestCancelledDialogsAreNoOps(t *testing.T) {
	x, eng, n := newTestExporter(t)

	if x.ExportImage("") || x.SaveDrawing("") || x.LoadDrawing("") {
		t.Error("empty path reported success")
	}
	if len(n.ops) != 0 {
		t.Errorf("notifications = %v", n.ops)
	}
	if eng.Len() != 1 {
		t.Errorf("drawing changed: %d shapes", eng.Len())
	}
}

func TestSaveThenLoad(t *testing.T) {
	x, eng, n := newTestExporter(t)
	tri := shape.NewTriangle(shape.Pt(0, 0), shape.Pt(10, 0), shape.Pt(0, 10))
	tri.SetProps(shape.Props{Name: "tri", DrawFill: true})
	if err := eng.AddShape(tri); err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	want := eng.Records()

	path := filepath.Join(t.TempDir(), "drawing.json")
	if !x.SaveDrawing(path) {
		t.Fatalf("SaveDrawing failed: %v", n.ops)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := document.Unmarshal(data); err != nil {
		t.Fatalf("saved document invalid: %v", err)
	}

	fresh := engine.New(120, 80, nil)
	loader := NewExporter(fresh, n, nil, 0)
	if !loader.LoadDrawing(path) {
		t.Fatalf("LoadDrawing failed: %v", n.ops)
	}
	if !reflect.DeepEqual(fresh.Records(), want) {
		t.Errorf("loaded %+v, want %+v", fresh.Records(), want)
	}
}

func TestLoadDrawingInvalidKeepsDrawing(t *testing.T) {
	x, eng, n := newTestExporter(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[{"type":"star"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	if x.LoadDrawing(path) {
		t.Fatal("LoadDrawing accepted an invalid document")
	}
	if eng.Len() != 1 {
		t.Errorf("drawing changed: %d shapes", eng.Len())
	}
	if !reflect.DeepEqual(n.ops, []string{"load drawing"}) {
		t.Errorf("notifications = %v", n.ops)
	}
}
