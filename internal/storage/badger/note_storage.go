package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

// notesKey is the fixed key the serialized note collection lives under.
const notesKey = "notes"

// noteRecord wraps the JSON-serialized note collection for storage.
type noteRecord struct {
	Key       string
	Payload   string
	UpdatedAt time.Time
}

// NoteStorage implements the NoteStorage interface for Badger. The whole
// ordered collection is written as one record so display order survives
// round trips without a secondary index.
type NoteStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewNoteStorage creates a new NoteStorage instance
func NewNoteStorage(db *BadgerDB, logger arbor.ILogger) interfaces.NoteStorage {
	return &NoteStorage{
		db:     db,
		logger: logger,
	}
}

// SaveNotes serializes the full collection and upserts it under the fixed key
func (s *NoteStorage) SaveNotes(ctx context.Context, notes []*models.Note) error {
	payload, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to serialize note collection: %w", err)
	}

	record := noteRecord{
		Key:       notesKey,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	}

	if err := s.db.Store().Upsert(notesKey, &record); err != nil {
		return fmt.Errorf("failed to save note collection: %w", err)
	}

	return nil
}

// LoadNotes reads the collection back in display order
func (s *NoteStorage) LoadNotes(ctx context.Context) ([]*models.Note, error) {
	var record noteRecord
	err := s.db.Store().Get(notesKey, &record)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load note collection: %w", err)
	}

	var notes []*models.Note
	if err := json.Unmarshal([]byte(record.Payload), &notes); err != nil {
		return nil, fmt.Errorf("failed to deserialize note collection: %w", err)
	}

	s.logger.Debug().Int("count", len(notes)).Msg("Loaded note collection")
	return notes, nil
}
