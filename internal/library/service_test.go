package library

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"
	"time"

	"github.com/inamate/vecdraw/internal/document"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(newSQLiteStore(t), color.White, 90)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func TestServiceCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "sample", 800, 600, document.SampleDrawing())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Version != 1 || len(created.Shapes) != 4 {
		t.Fatalf("created = %+v", created)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "sample" || got.Version != 1 || len(got.Shapes) != 4 {
		t.Errorf("got = %+v", got)
	}
	if got.Shapes[3].Name != "Abdallah" {
		t.Errorf("last shape = %q, want Abdallah", got.Shapes[3].Name)
	}
}

func TestServiceCreateNamesUnnamedShapes(t *testing.T) {
	svc := newTestService(t)
	shapes := []document.Record{{
		Type:      document.ShapeTypeLine,
		Points:    []document.Point{{X: 0, Y: 0}, {X: 10, Y: 10}},
		Color:     "#000000",
		FillColor: "#ffffff",
	}}

	created, err := svc.Create(context.Background(), "lines", 100, 100, shapes)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Shapes[0].Name == "" {
		t.Error("stored shape has no name")
	}
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc := newTestService(t)
	line := document.Record{
		Type:      document.ShapeTypeLine,
		Points:    []document.Point{{}, {X: 1}},
		Color:     "#000000",
		FillColor: "#ffffff",
		Name:      "a",
	}

	tests := []struct {
		name          string
		drawing       string
		width, height int
		shapes        []document.Record
	}{
		{"no name", "", 10, 10, nil},
		{"empty canvas", "d", 0, 10, nil},
		{"bad point count", "d", 10, 10, []document.Record{{Type: document.ShapeTypeTriangle, Points: []document.Point{{}}}}},
		{"duplicate names", "d", 10, 10, []document.Record{line, line}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.drawing, tt.width, tt.height, tt.shapes)
			if !errors.Is(err, ErrInvalidDrawing) {
				t.Errorf("err = %v, want ErrInvalidDrawing", err)
			}
		})
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("invalid drawings were stored: %+v", list)
	}
}

func TestServiceSaveBumpsVersion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "d", 100, 100, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	saved, err := svc.Save(ctx, created.ID, document.SampleDrawing()[:1])
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Version != 2 || len(saved.Shapes) != 1 {
		t.Errorf("saved = %+v", saved)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Version != 2 || len(got.Shapes) != 1 || !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("got = %+v", got)
	}
}

func TestServiceConcurrentSaves(t *testing.T) {
	svc := NewService(newSQLiteStore(t), color.White, 90)
	ctx := context.Background()

	created, err := svc.Create(ctx, "d", 100, 100, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const saves = 8
	var wg sync.WaitGroup
	errs := make(chan error, saves)
	for i := 0; i < saves; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Save(ctx, created.ID, document.SampleDrawing())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Save: %v", err)
		}
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Version != saves+1 {
		t.Errorf("version = %d, want %d", got.Version, saves+1)
	}
}

func TestServiceUnknownDrawing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"nope", "drw_01h455vb4pex5vsknk084sn02q"} {
		if _, err := svc.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) err = %v", id, err)
		}
		if _, err := svc.Save(ctx, id, nil); !errors.Is(err, ErrNotFound) {
			t.Errorf("Save(%q) err = %v", id, err)
		}
		if err := svc.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(%q) err = %v", id, err)
		}
	}
}

func TestServiceRenderJPEG(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "sample", 320, 240, document.SampleDrawing())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.RenderJPEG(ctx, created.ID, &buf); err != nil {
		t.Fatalf("RenderJPEG: %v", err)
	}
	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("image size = %dx%d", b.Dx(), b.Dy())
	}
}
