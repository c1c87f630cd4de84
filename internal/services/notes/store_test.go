package notes

import (
	"context"
	"sync"
	"testing"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage is an in-memory NoteStorage for store tests
type fakeStorage struct {
	mu    sync.Mutex
	saved []*models.Note
	has   bool
}

func (f *fakeStorage) SaveNotes(ctx context.Context, notes []*models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = notes
	f.has = true
	return nil
}

func (f *fakeStorage) LoadNotes(ctx context.Context) ([]*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.has {
		return nil, interfaces.ErrNotesNotFound
	}
	return f.saved, nil
}

func newTestStore(t *testing.T) (*Store, *fakeStorage) {
	t.Helper()
	storage := &fakeStorage{}
	return NewStore(storage, common.GetLogger()), storage
}

func TestLoadEmptyStorage(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Load(context.Background()))

	assert.Empty(t, store.List())
	assert.Equal(t, "", store.ActiveID())
}

func TestLoadSelectsMostRecent(t *testing.T) {
	storage := &fakeStorage{
		saved: []*models.Note{
			{ID: "note_b", Title: "Newest"},
			{ID: "note_a", Title: "Older"},
		},
		has: true,
	}
	store := NewStore(storage, common.GetLogger())

	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, "note_b", store.ActiveID())
	assert.Len(t, store.List(), 2)
}

func TestCreatePrependsAndSelects(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.Create()
	second := store.Create()

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, second.ID, store.ActiveID())
	assert.Equal(t, models.DefaultNoteTitle, second.Title)
}

func TestImportTruncatesTitle(t *testing.T) {
	store, _ := newTestStore(t)

	note := store.Import("a title that is far far too long to display in full", "body")

	assert.LessOrEqual(t, len([]rune(note.Title)), models.MaxTitleLength)
	assert.Equal(t, note.ID, store.ActiveID())
	assert.False(t, note.IsGenerated)
}

func TestImportBlankTitleFallsBack(t *testing.T) {
	store, _ := newTestStore(t)

	note := store.Import("   ", "body")

	assert.Equal(t, models.DefaultImportTitle, note.Title)
}

func TestCreateGeneratedFlagsNote(t *testing.T) {
	store, _ := newTestStore(t)

	note := store.CreateGenerated("PRD for Idea", "content")

	assert.True(t, note.IsGenerated)
	assert.Equal(t, note.ID, store.ActiveID())
}

func TestUpdateContentRederivesTitle(t *testing.T) {
	store, _ := newTestStore(t)
	note := store.Create()

	store.UpdateContent(note.ID, "Grocery list\n- milk\n- eggs")

	updated, ok := store.Get(note.ID)
	require.True(t, ok)
	assert.Equal(t, "Grocery list", updated.Title)
	assert.Equal(t, "Grocery list\n- milk\n- eggs", updated.Content)
}

func TestUpdateContentUnknownIDIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	note := store.Create()

	store.UpdateContent(common.NewNoteID(), "should go nowhere")

	unchanged, ok := store.Get(note.ID)
	require.True(t, ok)
	assert.Equal(t, "", unchanged.Content)
	assert.Len(t, store.List(), 1)
}

func TestDeleteActiveReassignsSelection(t *testing.T) {
	store, _ := newTestStore(t)
	older := store.Create()
	newest := store.Create()
	require.Equal(t, newest.ID, store.ActiveID())

	store.Delete(newest.ID)

	assert.Equal(t, older.ID, store.ActiveID())
	assert.Len(t, store.List(), 1)
}

func TestDeleteInactiveKeepsSelection(t *testing.T) {
	store, _ := newTestStore(t)
	older := store.Create()
	newest := store.Create()

	store.Delete(older.ID)

	assert.Equal(t, newest.ID, store.ActiveID())
}

func TestDeleteLastNoteClearsSelection(t *testing.T) {
	store, _ := newTestStore(t)
	note := store.Create()

	store.Delete(note.ID)

	assert.Empty(t, store.List())
	assert.Equal(t, "", store.ActiveID())
	_, ok := store.Active()
	assert.False(t, ok)
}

func TestSelectUnknownIDIgnored(t *testing.T) {
	store, _ := newTestStore(t)
	note := store.Create()

	store.Select("note_does_not_exist")

	assert.Equal(t, note.ID, store.ActiveID())
}

func TestSelectSwitchesActiveNote(t *testing.T) {
	store, _ := newTestStore(t)
	older := store.Create()
	store.Create()

	store.Select(older.ID)

	active, ok := store.Active()
	require.True(t, ok)
	assert.Equal(t, older.ID, active.ID)
}

// gatedStorage blocks its first SaveNotes call until the gate closes,
// simulating a slow write racing a faster later one.
type gatedStorage struct {
	mu    sync.Mutex
	last  []*models.Note
	calls int
	gate  chan struct{}
}

func (g *gatedStorage) SaveNotes(ctx context.Context, notes []*models.Note) error {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()

	if first {
		<-g.gate
	}

	g.mu.Lock()
	g.last = notes
	g.mu.Unlock()
	return nil
}

func (g *gatedStorage) LoadNotes(ctx context.Context) ([]*models.Note, error) {
	return nil, interfaces.ErrNotesNotFound
}

func TestSlowPersistCannotRegressCollection(t *testing.T) {
	storage := &gatedStorage{gate: make(chan struct{})}
	store := NewStore(storage, common.GetLogger())

	older := store.Create()
	newest := store.Create()

	// Release the stalled write, then drain everything in flight.
	close(storage.gate)
	store.Close()

	storage.mu.Lock()
	defer storage.mu.Unlock()
	require.Len(t, storage.last, 2, "durable state must reflect the latest mutation")
	assert.Equal(t, newest.ID, storage.last[0].ID)
	assert.Equal(t, older.ID, storage.last[1].ID)
}

func TestCloseDrainsPendingWrites(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, common.GetLogger())

	note := store.Create()
	store.UpdateContent(note.ID, "final content")
	store.Close()

	storage.mu.Lock()
	defer storage.mu.Unlock()
	require.Len(t, storage.saved, 1)
	assert.Equal(t, "final content", storage.saved[0].Content)
}

func TestUpdateContentWithCurrentContentIsStable(t *testing.T) {
	store, _ := newTestStore(t)
	note := store.Create()
	store.UpdateContent(note.ID, "Title line\nbody text")
	newest := store.Create()
	before, _ := store.Get(note.ID)

	store.UpdateContent(note.ID, "Title line\nbody text")

	after, ok := store.Get(note.ID)
	require.True(t, ok)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, newest.ID, list[0].ID, "display order unchanged")
	assert.Equal(t, note.ID, list[1].ID)
	assert.Equal(t, newest.ID, store.ActiveID(), "selection unchanged")
}

func TestListReturnsCopies(t *testing.T) {
	store, _ := newTestStore(t)
	note := store.Create()

	list := store.List()
	list[0].Content = "mutated externally"

	unchanged, _ := store.Get(note.ID)
	assert.Equal(t, "", unchanged.Content)
}
