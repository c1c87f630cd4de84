package handlers

import (
	"net/http"
	"strings"

	"github.com/sparkpad/sparkpad/internal/services/notes"
	"github.com/ternarybob/arbor"
)

// NotesHandler exposes the note collection over HTTP: list, create,
// read, update, delete, and selection.
type NotesHandler struct {
	store  *notes.Store
	logger arbor.ILogger
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(store *notes.Store, logger arbor.ILogger) *NotesHandler {
	return &NotesHandler{
		store:  store,
		logger: logger,
	}
}

// ListHandler returns all notes in display order plus the active selection.
// GET /api/notes
func (h *NotesHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notes":     h.store.List(),
		"active_id": h.store.ActiveID(),
	})
}

// CreateHandler creates a blank note and selects it.
// POST /api/notes
func (h *NotesHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	note := h.store.Create()
	h.logger.Info().Str("note_id", note.ID).Msg("Note created")
	WriteJSON(w, http.StatusCreated, note)
}

// NoteHandler dispatches /api/notes/{id} and /api/notes/{id}/select
func (h *NotesHandler) NoteHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/notes/")

	if strings.HasSuffix(id, "/select") {
		h.selectNote(w, r, strings.TrimSuffix(id, "/select"))
		return
	}

	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Not found: "+r.URL.Path)
		return
	}

	switch r.Method {
	case "GET":
		h.getNote(w, id)
	case "PUT":
		h.updateNote(w, r, id)
	case "DELETE":
		h.deleteNote(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *NotesHandler) getNote(w http.ResponseWriter, id string) {
	note, ok := h.store.Get(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "Note not found: "+id)
		return
	}
	WriteJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) updateNote(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Content string `json:"content"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}

	if _, ok := h.store.Get(id); !ok {
		WriteError(w, http.StatusNotFound, "Note not found: "+id)
		return
	}

	h.store.UpdateContent(id, req.Content)
	note, _ := h.store.Get(id)
	WriteJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) deleteNote(w http.ResponseWriter, id string) {
	if _, ok := h.store.Get(id); !ok {
		WriteError(w, http.StatusNotFound, "Note not found: "+id)
		return
	}

	h.store.Delete(id)
	h.logger.Info().Str("note_id", id).Msg("Note deleted")
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"active_id": h.store.ActiveID(),
	})
}

func (h *NotesHandler) selectNote(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if _, ok := h.store.Get(id); !ok {
		WriteError(w, http.StatusNotFound, "Note not found: "+id)
		return
	}

	h.store.Select(id)
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"active_id": h.store.ActiveID(),
	})
}
