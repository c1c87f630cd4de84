package handlers

import (
	"net/http"

	"github.com/sparkpad/sparkpad/internal/services/chat"
	"github.com/ternarybob/arbor"
)

// ChatHandler exposes the assistant conversation over HTTP
type ChatHandler struct {
	session *chat.Session
	logger  arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(session *chat.Session, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		session: session,
		logger:  logger,
	}
}

// SendHandler issues one conversation turn. Failed exchanges still
// return 200; the transcript carries the error entry.
// POST /api/chat
func (h *ChatHandler) SendHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}

	reply := h.session.Send(r.Context(), req.Message)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reply":      reply,
		"transcript": h.session.Transcript(),
	})
}

// TranscriptHandler returns the full message history in order.
// GET /api/chat/transcript
func (h *ChatHandler) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transcript": h.session.Transcript(),
	})
}
