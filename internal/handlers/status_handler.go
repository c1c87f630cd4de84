package handlers

import (
	"net/http"

	"github.com/sparkpad/sparkpad/internal/services/generation"
	"github.com/ternarybob/arbor"
)

// StatusHandler reports the generation busy flag and status label
type StatusHandler struct {
	orchestrator *generation.Orchestrator
	logger       arbor.ILogger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(orchestrator *generation.Orchestrator, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// GetStatusHandler returns whether a generation action is in flight.
// GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	busy, label := h.orchestrator.Status()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"busy":   busy,
		"status": label,
	})
}
