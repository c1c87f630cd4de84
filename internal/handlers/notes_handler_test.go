package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/sparkpad/sparkpad/internal/services/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullStorage struct{}

func (nullStorage) SaveNotes(ctx context.Context, n []*models.Note) error { return nil }
func (nullStorage) LoadNotes(ctx context.Context) ([]*models.Note, error) {
	return nil, interfaces.ErrNotesNotFound
}

func newNotesHandler(t *testing.T) (*NotesHandler, *notes.Store) {
	t.Helper()
	store := notes.NewStore(nullStorage{}, common.GetLogger())
	return NewNotesHandler(store, common.GetLogger()), store
}

func TestListHandler(t *testing.T) {
	handler, store := newNotesHandler(t)
	note := store.Create()

	req := httptest.NewRequest("GET", "/api/notes", nil)
	rec := httptest.NewRecorder()
	handler.ListHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Notes    []models.Note `json:"notes"`
		ActiveID string        `json:"active_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, note.ID, resp.Notes[0].ID)
	assert.Equal(t, note.ID, resp.ActiveID)
}

func TestCreateHandler(t *testing.T) {
	handler, store := newNotesHandler(t)

	req := httptest.NewRequest("POST", "/api/notes", nil)
	rec := httptest.NewRecorder()
	handler.CreateHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var note models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	assert.Equal(t, models.DefaultNoteTitle, note.Title)
	assert.Equal(t, note.ID, store.ActiveID())
}

func TestCreateHandlerRejectsGet(t *testing.T) {
	handler, _ := newNotesHandler(t)

	req := httptest.NewRequest("GET", "/api/notes", nil)
	rec := httptest.NewRecorder()
	handler.CreateHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpdateNote(t *testing.T) {
	handler, store := newNotesHandler(t)
	note := store.Create()

	body := strings.NewReader(`{"content": "New first line\nrest"}`)
	req := httptest.NewRequest("PUT", "/api/notes/"+note.ID, body)
	rec := httptest.NewRecorder()
	handler.NoteHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	updated, _ := store.Get(note.ID)
	assert.Equal(t, "New first line", updated.Title)
}

func TestUpdateUnknownNote(t *testing.T) {
	handler, _ := newNotesHandler(t)

	body := strings.NewReader(`{"content": "x"}`)
	req := httptest.NewRequest("PUT", "/api/notes/note_missing", body)
	rec := httptest.NewRecorder()
	handler.NoteHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteNoteReassignsSelection(t *testing.T) {
	handler, store := newNotesHandler(t)
	older := store.Create()
	newest := store.Create()

	req := httptest.NewRequest("DELETE", "/api/notes/"+newest.ID, nil)
	rec := httptest.NewRecorder()
	handler.NoteHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, older.ID, resp["active_id"])
}

func TestSelectNote(t *testing.T) {
	handler, store := newNotesHandler(t)
	older := store.Create()
	store.Create()

	req := httptest.NewRequest("POST", "/api/notes/"+older.ID+"/select", nil)
	rec := httptest.NewRecorder()
	handler.NoteHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, older.ID, store.ActiveID())
}

func TestSelectUnknownNote(t *testing.T) {
	handler, store := newNotesHandler(t)
	note := store.Create()

	req := httptest.NewRequest("POST", "/api/notes/note_missing/select", nil)
	rec := httptest.NewRecorder()
	handler.NoteHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, note.ID, store.ActiveID())
}
