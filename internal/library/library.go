// Package library keeps saved drawings as versioned snapshots of their
// shape documents.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("drawing not found")
	ErrInvalidDrawing = errors.New("invalid drawing")
)

// Drawing is the metadata of a saved drawing. Version is the latest
// snapshot version.
type Drawing struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot is one saved version of a drawing's shape document.
type Snapshot struct {
	ID        string
	DrawingID string
	Version   int
	Document  json.RawMessage
	CreatedAt time.Time
}

// Store persists drawings and their snapshots. Lookups of unknown drawings
// fail with ErrNotFound.
type Store interface {
	CreateDrawing(ctx context.Context, d Drawing) error
	GetDrawing(ctx context.Context, id string) (*Drawing, error)
	ListDrawings(ctx context.Context) ([]Drawing, error)
	DeleteDrawing(ctx context.Context, id string) error

	// CreateSnapshot stores s.Document as the drawing's next version and
	// bumps its updated time. The version is assigned inside the store's
	// transaction and returned; s.Version is ignored.
	CreateSnapshot(ctx context.Context, s Snapshot) (int, error)
	LatestSnapshot(ctx context.Context, drawingID string) (*Snapshot, error)

	Close() error
}

// timeLayout is a fixed-width UTC layout so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
