// Package export moves a drawing across the file boundary: raster export
// of the canvas and save/load of the shape document.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/shape"
)

const (
	// ImageExt is appended to every exported image path.
	ImageExt = ".jpg"

	// DrawingExt is the extension the save/load dialogs filter on.
	DrawingExt = ".json"

	DefaultQuality = 90
)

var _ shape.Surface = (*gg.Context)(nil)

var ErrEmptyCanvas = errors.New("canvas has no pixels")

// Notifier surfaces a failed file operation to the user. Failures never
// escape the export methods; the editor stays usable after them.
type Notifier interface {
	Notify(op string, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(op string, err error)

func (f NotifierFunc) Notify(op string, err error) { f(op, err) }

// LogNotifier reports failures on the default logger only.
type LogNotifier struct{}

func (LogNotifier) Notify(op string, err error) {
	slog.Warn("operation failed", "op", op, "error", err)
}

// Exporter writes the drawing held by an engine to files.
type Exporter struct {
	eng        *engine.Engine
	notifier   Notifier
	background color.Color
	quality    int
}

// NewExporter creates an exporter for eng. A nil notifier falls back to
// LogNotifier; a quality outside 1..100 falls back to DefaultQuality.
func NewExporter(eng *engine.Engine, notifier Notifier, background color.Color, quality int) *Exporter {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if background == nil {
		background = color.White
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Exporter{
		eng:        eng,
		notifier:   notifier,
		background: background,
		quality:    quality,
	}
}

// WriteImage renders the canvas at its current pixel size and writes it
// as JPEG.
func (x *Exporter) WriteImage(w io.Writer) error {
	width, height := x.eng.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, width, height)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(x.background))
	if err := x.eng.Paint(dc); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	if err := dc.EncodeJPEG(w, x.quality); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// WriteDrawing writes the shape document as a JSON array.
func (x *Exporter) WriteDrawing(w io.Writer) error {
	data, err := document.Marshal(x.eng.Records())
	if err != nil {
		return fmt.Errorf("marshal drawing: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write drawing: %w", err)
	}
	return nil
}

// ReadDrawing replaces the engine's drawing with the document read from r.
func (x *Exporter) ReadDrawing(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read drawing: %w", err)
	}
	records, err := document.Unmarshal(data)
	if err != nil {
		return err
	}
	return x.eng.LoadRecords(records)
}

// ExportImage writes the canvas to path + ImageExt. An empty path means
// the file dialog was cancelled and nothing happens. It reports whether
// the image was written.
func (x *Exporter) ExportImage(path string) bool {
	if path == "" {
		return false
	}
	path += ImageExt

	if err := writeFile(path, x.WriteImage); err != nil {
		x.fail("export image", path, err)
		return false
	}
	slog.Info("image exported", "path", path)
	return true
}

// SaveDrawing writes the shape document to path. An empty path means the
// file dialog was cancelled.
func (x *Exporter) SaveDrawing(path string) bool {
	if path == "" {
		return false
	}

	if err := writeFile(path, x.WriteDrawing); err != nil {
		x.fail("save drawing", path, err)
		return false
	}
	slog.Info("drawing saved", "path", path, "shapes", x.eng.Len())
	return true
}

// LoadDrawing replaces the drawing with the document at path. On failure
// the current drawing is left untouched.
func (x *Exporter) LoadDrawing(path string) bool {
	if path == "" {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		x.fail("load drawing", path, err)
		return false
	}
	defer f.Close()

	if err := x.ReadDrawing(f); err != nil {
		x.fail("load drawing", path, err)
		return false
	}
	slog.Info("drawing loaded", "path", path, "shapes", x.eng.Len())
	return true
}

func (x *Exporter) fail(op, path string, err error) {
	slog.Error(op, "path", path, "error", err)
	x.notifier.Notify(op, fmt.Errorf("%s: %w", path, err))
}

// writeFile creates path and fills it with write. A partially written file
// is removed.
func writeFile(path string, write func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	err = write(out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
