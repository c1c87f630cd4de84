package interfaces

import (
	"context"
	"errors"

	"github.com/sparkpad/sparkpad/internal/models"
)

// ErrNotesNotFound indicates the note collection key is absent from
// storage (first run); callers start from an empty collection.
var ErrNotesNotFound = errors.New("note collection not found")

// NoteStorage is the durable persistence boundary for the note store.
// The entire ordered collection is serialized and written under a fixed
// key on every mutation and read back once at process start.
type NoteStorage interface {
	// SaveNotes serializes and writes the full collection in display order.
	SaveNotes(ctx context.Context, notes []*models.Note) error

	// LoadNotes reads the collection back in display order. Returns
	// ErrNotesNotFound when nothing has been persisted yet.
	LoadNotes(ctx context.Context) ([]*models.Note, error)
}
