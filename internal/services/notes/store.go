package notes

import (
	"context"
	"sync"
	"time"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/ternarybob/arbor"
)

// Store owns the authoritative note collection and the active selection.
// Notes are kept most-recent-first; newly created or generated notes are
// always prepended. All mutations are serialized by the mutex, and the
// full collection is written through to durable storage after each one.
//
// Store mutations never fail: unknown ids are ignored and empty titles
// fall back to defaults, so callers need no error handling for local
// state changes.
type Store struct {
	mu       sync.RWMutex
	notes    []*models.Note
	activeID string
	storage  interfaces.NoteStorage
	logger   arbor.ILogger

	// persistMu serializes storage writes; seq/persisted keep a slow
	// older write from clobbering a newer snapshot.
	persistMu sync.Mutex
	persistWG sync.WaitGroup
	seq       uint64
	persisted uint64
}

// NewStore creates an empty note store backed by the given storage
func NewStore(storage interfaces.NoteStorage, logger arbor.ILogger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
	}
}

// Load reads the persisted collection once at startup. An absent key
// yields an empty collection; the selection invariant is applied to
// whatever was loaded.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.storage.LoadNotes(ctx)
	if err == interfaces.ErrNotesNotFound {
		s.logger.Debug().Msg("No persisted notes found, starting with empty collection")
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = loaded
	if len(s.notes) > 0 {
		s.activeID = s.notes[0].ID
	}
	s.logger.Info().Int("count", len(s.notes)).Msg("Note collection loaded")
	return nil
}

// Create allocates a blank note, prepends it, and makes it the active selection
func (s *Store) Create() *models.Note {
	return s.insert(models.DefaultNoteTitle, "", false)
}

// Import creates a note from externally sourced content (file or URL
// import). The title is truncated to the display limit.
func (s *Store) Import(title, content string) *models.Note {
	return s.insert(models.TruncateTitle(title, models.DefaultImportTitle), content, false)
}

// CreateGenerated creates an AI-produced note. Same insertion path as
// Create, flagged immutably as generated.
func (s *Store) CreateGenerated(title, content string) *models.Note {
	return s.insert(models.TruncateTitle(title, models.DefaultNoteTitle), content, true)
}

func (s *Store) insert(title, content string, generated bool) *models.Note {
	note := &models.Note{
		ID:          common.NewNoteID(),
		Title:       title,
		Content:     content,
		CreatedAt:   time.Now(),
		IsGenerated: generated,
	}

	s.mu.Lock()
	s.notes = append([]*models.Note{note}, s.notes...)
	s.activeID = note.ID
	snapshot, seq := s.stageLocked()
	s.mu.Unlock()

	s.persist(snapshot, seq)
	return copyNote(note)
}

// UpdateContent replaces a note's content and re-derives its title from
// the first content line. Unknown ids are a silent no-op.
func (s *Store) UpdateContent(id, content string) {
	s.mu.Lock()
	note := s.findLocked(id)
	if note == nil {
		s.mu.Unlock()
		return
	}
	note.Content = content
	note.Title = models.DeriveTitle(content)
	snapshot, seq := s.stageLocked()
	s.mu.Unlock()

	s.persist(snapshot, seq)
}

// Delete removes a note. Deleting the active selection reassigns it to
// the most recent remaining note, or clears it when the store empties.
// Unknown ids are a silent no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	idx := -1
	for i, n := range s.notes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	if s.activeID == id {
		if len(s.notes) > 0 {
			s.activeID = s.notes[0].ID
		} else {
			s.activeID = ""
		}
	}
	snapshot, seq := s.stageLocked()
	s.mu.Unlock()

	s.persist(snapshot, seq)
}

// Select makes the given note the active selection; unknown ids are ignored
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(id) != nil {
		s.activeID = id
	}
}

// List returns a snapshot of the collection in display order
func (s *Store) List() []*models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Get returns a copy of the note with the given id
func (s *Store) Get(id string) (*models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note := s.findLocked(id)
	if note == nil {
		return nil, false
	}
	return copyNote(note), true
}

// Active returns a copy of the currently selected note
func (s *Store) Active() (*models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note := s.findLocked(s.activeID)
	if note == nil {
		return nil, false
	}
	return copyNote(note), true
}

// ActiveID returns the id of the current selection, or "" when none
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

func (s *Store) findLocked(id string) *models.Note {
	if id == "" {
		return nil
	}
	for _, n := range s.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (s *Store) snapshotLocked() []*models.Note {
	snapshot := make([]*models.Note, len(s.notes))
	for i, n := range s.notes {
		snapshot[i] = copyNote(n)
	}
	return snapshot
}

// stageLocked snapshots the collection and stamps it with the next
// persistence sequence number.
func (s *Store) stageLocked() ([]*models.Note, uint64) {
	s.seq++
	return s.snapshotLocked(), s.seq
}

// persist writes the collection through to storage without blocking the
// caller. Writes are serialized and stale snapshots are skipped, so a
// slow older write can never overwrite a newer one. Failures are logged,
// not surfaced or retried; the in-memory collection remains
// authoritative.
func (s *Store) persist(snapshot []*models.Note, seq uint64) {
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()

		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if seq <= s.persisted {
			return
		}
		s.persisted = seq

		if err := s.storage.SaveNotes(context.Background(), snapshot); err != nil {
			s.logger.Error().Err(err).Int("count", len(snapshot)).Msg("Failed to persist note collection")
		}
	}()
}

// Close drains in-flight persistence writes. Call before closing the
// underlying storage.
func (s *Store) Close() {
	s.persistWG.Wait()
}

func copyNote(n *models.Note) *models.Note {
	c := *n
	return &c
}
