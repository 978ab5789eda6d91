package library

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"time"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/export"
	"github.com/inamate/vecdraw/internal/typeid"
)

// Detail is a drawing together with the shapes of its latest snapshot.
type Detail struct {
	Drawing
	Shapes []document.Record `json:"shapes"`
}

type Service struct {
	store      Store
	background color.Color
	quality    int
	now        func() time.Time
}

func NewService(store Store, background color.Color, quality int) *Service {
	return &Service{
		store:      store,
		background: background,
		quality:    quality,
		now:        time.Now,
	}
}

// Create stores a new drawing with its first snapshot.
func (s *Service) Create(ctx context.Context, name string, width, height int, shapes []document.Record) (*Detail, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidDrawing)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidDrawing, width, height)
	}

	records, doc, err := normalize(width, height, shapes)
	if err != nil {
		return nil, err
	}

	now := s.now()
	d := Drawing{
		ID:        typeid.NewDrawingID(),
		Name:      name,
		Width:     width,
		Height:    height,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateDrawing(ctx, d); err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}

	d.Version, err = s.store.CreateSnapshot(ctx, Snapshot{
		ID:        typeid.NewSnapshotID(),
		DrawingID: d.ID,
		Document:  doc,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}

	slog.Info("drawing created", "drawing", d.ID, "shapes", len(records))
	return &Detail{Drawing: d, Shapes: records}, nil
}

// Save stores shapes as the next version of the drawing. Concurrent saves
// each get their own version.
func (s *Service) Save(ctx context.Context, id string, shapes []document.Record) (*Detail, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	d, err := s.store.GetDrawing(ctx, id)
	if err != nil {
		return nil, err
	}

	records, doc, err := normalize(d.Width, d.Height, shapes)
	if err != nil {
		return nil, err
	}

	now := s.now()
	d.Version, err = s.store.CreateSnapshot(ctx, Snapshot{
		ID:        typeid.NewSnapshotID(),
		DrawingID: d.ID,
		Document:  doc,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("save drawing: %w", err)
	}
	d.UpdatedAt = now

	slog.Info("drawing saved", "drawing", d.ID, "version", d.Version, "shapes", len(records))
	return &Detail{Drawing: *d, Shapes: records}, nil
}

// Get returns the drawing with its latest shapes.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	d, err := s.store.GetDrawing(ctx, id)
	if err != nil {
		return nil, err
	}

	records := []document.Record{}
	snap, err := s.store.LatestSnapshot(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if records, err = document.Unmarshal(snap.Document); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
		}
	}
	return &Detail{Drawing: *d, Shapes: records}, nil
}

func (s *Service) List(ctx context.Context) ([]Drawing, error) {
	return s.store.ListDrawings(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.store.DeleteDrawing(ctx, id); err != nil {
		return err
	}
	slog.Info("drawing deleted", "drawing", id)
	return nil
}

// RenderJPEG writes the latest version of the drawing as a JPEG image at
// its saved canvas size.
func (s *Service) RenderJPEG(ctx context.Context, id string, w io.Writer) error {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	eng := engine.New(detail.Width, detail.Height, nil)
	if err := eng.LoadRecords(detail.Shapes); err != nil {
		return fmt.Errorf("load drawing %s: %w", id, err)
	}
	return export.NewExporter(eng, nil, s.background, s.quality).WriteImage(w)
}

// checkID reports a malformed drawing id as an unknown drawing.
func checkID(id string) error {
	err := typeid.Validate(id, typeid.PrefixDrawing)
	if errors.Is(err, typeid.ErrInvalidID) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

// normalize loads shapes into a scratch engine so the stored document
// carries the same names and defaults an editor would produce.
func normalize(width, height int, shapes []document.Record) ([]document.Record, []byte, error) {
	for i, r := range shapes {
		if err := r.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: shape %d: %v", ErrInvalidDrawing, i, err)
		}
	}

	eng := engine.New(width, height, nil)
	if err := eng.LoadRecords(shapes); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDrawing, err)
	}

	records := eng.Records()
	doc, err := document.Marshal(records)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal drawing: %w", err)
	}
	return records, doc, nil
}
