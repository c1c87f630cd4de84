package handlers

import (
	"net/http"
	"time"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/ternarybob/arbor"
)

// APIHandler serves system-level endpoints: version, health, and the
// API 404 fallback.
type APIHandler struct {
	logger    arbor.ILogger
	startTime time.Time
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		logger:    logger,
		startTime: time.Now(),
	}
}

// VersionHandler returns the application version and build info
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"name":    "sparkpad",
		"version": common.GetFullVersion(),
	})
}

// HealthHandler returns service health and uptime
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startTime).String(),
	})
}

// NotFoundHandler handles unmatched API routes
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug().Str("path", r.URL.Path).Msg("Unknown API route")
	WriteError(w, http.StatusNotFound, "Not found: "+r.URL.Path)
}
