package badger

import (
	"context"
	"testing"
	"time"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()
	config := &common.BadgerConfig{Path: t.TempDir()}
	db, err := NewBadgerDB(common.GetLogger(), config)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestLoadNotesEmpty(t *testing.T) {
	db := newTestDB(t)
	storage := NewNoteStorage(db, common.GetLogger())

	_, err := storage.LoadNotes(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrNotesNotFound)
}

func TestSaveAndLoadPreservesOrder(t *testing.T) {
	db := newTestDB(t)
	storage := NewNoteStorage(db, common.GetLogger())
	ctx := context.Background()

	notes := []*models.Note{
		{ID: "note_c", Title: "Newest", Content: "c", CreatedAt: time.Now().UTC(), IsGenerated: true},
		{ID: "note_b", Title: "Middle", Content: "b", CreatedAt: time.Now().UTC()},
		{ID: "note_a", Title: "Oldest", Content: "a", CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, storage.SaveNotes(ctx, notes))

	loaded, err := storage.LoadNotes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "note_c", loaded[0].ID)
	assert.Equal(t, "note_b", loaded[1].ID)
	assert.Equal(t, "note_a", loaded[2].ID)
	assert.True(t, loaded[0].IsGenerated)
	assert.Equal(t, "Middle", loaded[1].Title)
}

func TestSaveOverwritesPreviousCollection(t *testing.T) {
	db := newTestDB(t)
	storage := NewNoteStorage(db, common.GetLogger())
	ctx := context.Background()

	require.NoError(t, storage.SaveNotes(ctx, []*models.Note{{ID: "note_a", Title: "A"}}))
	require.NoError(t, storage.SaveNotes(ctx, []*models.Note{{ID: "note_b", Title: "B"}}))

	loaded, err := storage.LoadNotes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "note_b", loaded[0].ID)
}

func TestSaveEmptyCollection(t *testing.T) {
	db := newTestDB(t)
	storage := NewNoteStorage(db, common.GetLogger())
	ctx := context.Background()

	require.NoError(t, storage.SaveNotes(ctx, []*models.Note{}))

	loaded, err := storage.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
