package handlers

import (
	"net/http"
	"strings"

	"github.com/sparkpad/sparkpad/internal/services/importer"
	"github.com/ternarybob/arbor"
)

// TransferHandler moves note content across the application boundary:
// file and URL import, and export in the supported formats.
type TransferHandler struct {
	importer *importer.Service
	logger   arbor.ILogger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(service *importer.Service, logger arbor.ILogger) *TransferHandler {
	return &TransferHandler{
		importer: service,
		logger:   logger,
	}
}

// ImportFileHandler imports a server-local markdown or text file.
// POST /api/import/file
func (h *TransferHandler) ImportFileHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Path string `json:"path"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		WriteError(w, http.StatusBadRequest, "File path is required")
		return
	}

	note, err := h.importer.ImportFile(req.Path)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, note)
}

// ImportURLHandler fetches a remote document into a new note.
// POST /api/import/url
func (h *TransferHandler) ImportURLHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		WriteError(w, http.StatusBadRequest, "URL is required")
		return
	}

	note, err := h.importer.ImportURL(r.Context(), req.URL)
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, note)
}

// ExportHandler renders a note for download.
// GET /api/export/{id}?format=md|txt|html
func (h *TransferHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/export/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Not found: "+r.URL.Path)
		return
	}

	format := importer.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = importer.FormatMarkdown
	}

	filename, data, err := h.importer.Export(id, format)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType := "text/plain; charset=utf-8"
	switch format {
	case importer.FormatMarkdown:
		contentType = "text/markdown; charset=utf-8"
	case importer.FormatHTML:
		contentType = "text/html; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
