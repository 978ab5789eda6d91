// Package typeid generates the prefixed, sortable ids used for stored
// drawings and their snapshots.
package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixDrawing  = "drw"
	PrefixSnapshot = "snap"
)

// ErrInvalidID is returned for ids that are malformed or carry the wrong
// prefix.
var ErrInvalidID = errors.New("invalid id")

func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewDrawingID() string  { return New(PrefixDrawing) }
func NewSnapshotID() string { return New(PrefixSnapshot) }

// Validate checks that id parses and has the expected prefix.
func Validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}
	if got := parsed.Prefix(); got != prefix {
		return fmt.Errorf("%w %q: prefix %q, want %q", ErrInvalidID, id, got, prefix)
	}
	return nil
}
