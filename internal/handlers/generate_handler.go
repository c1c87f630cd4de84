package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/sparkpad/sparkpad/internal/services/generation"
	"github.com/ternarybob/arbor"
)

// GenerateHandler exposes the generation actions over HTTP. Image
// payloads cross the wire base64-encoded; raw bytes stay internal.
type GenerateHandler struct {
	orchestrator *generation.Orchestrator
	logger       arbor.ILogger
}

// NewGenerateHandler creates a new generation handler
func NewGenerateHandler(orchestrator *generation.Orchestrator, logger arbor.ILogger) *GenerateHandler {
	return &GenerateHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// imagePayload is the wire form of an image
type imagePayload struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

func encodeImage(image *models.ImagePayload) imagePayload {
	return imagePayload{
		Data:     base64.StdEncoding.EncodeToString(image.Data),
		MIMEType: image.MIMEType,
	}
}

func decodeImage(w http.ResponseWriter, payload imagePayload) (*models.ImagePayload, bool) {
	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid base64 image data: "+err.Error())
		return nil, false
	}
	mimeType := payload.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &models.ImagePayload{Data: data, MIMEType: mimeType}, true
}

// writeActionError maps orchestrator errors to HTTP status codes
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generation.ErrBusy):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, generation.ErrNoActiveNote),
		errors.Is(err, generation.ErrEmptyInput),
		errors.Is(err, generation.ErrNoImage):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// IdeasFromQueryHandler appends generated ideas for a query to the active note.
// POST /api/generate/ideas/query
func (h *GenerateHandler) IdeasFromQueryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}

	if err := h.orchestrator.IdeasFromQuery(r.Context(), req.Query); err != nil {
		writeActionError(w, err)
		return
	}
	WriteSuccess(w, "Ideas appended to active note")
}

// IdeasFromNoteHandler appends next-step ideas derived from the active note.
// POST /api/generate/ideas/note
func (h *GenerateHandler) IdeasFromNoteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := h.orchestrator.IdeasFromNote(r.Context()); err != nil {
		writeActionError(w, err)
		return
	}
	WriteSuccess(w, "Ideas appended to active note")
}

// RefineHandler rewrites the active note for clarity and tone.
// POST /api/generate/refine
func (h *GenerateHandler) RefineHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := h.orchestrator.Refine(r.Context()); err != nil {
		writeActionError(w, err)
		return
	}
	WriteSuccess(w, "Note refined")
}

// DocumentsHandler generates a paired PRD and development plan from the
// active note.
// POST /api/generate/documents
func (h *GenerateHandler) DocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	set, err := h.orchestrator.GenerateDocuments(r.Context())
	if err != nil {
		writeActionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, set)
}

// WireframeHandler generates a UI wireframe image from a prompt.
// POST /api/generate/wireframe
func (h *GenerateHandler) WireframeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}

	image, err := h.orchestrator.GenerateWireframe(r.Context(), req.Prompt)
	if err != nil {
		writeActionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, encodeImage(image))
}

// EditImageHandler applies an instruction to the retained image.
// POST /api/generate/image/edit
func (h *GenerateHandler) EditImageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Instruction string `json:"instruction"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}

	image, err := h.orchestrator.EditImage(r.Context(), req.Instruction)
	if err != nil {
		writeActionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, encodeImage(image))
}

// AnalyzeImageHandler answers a question about an uploaded image.
// POST /api/generate/image/analyze
func (h *GenerateHandler) AnalyzeImageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Image    imagePayload `json:"image"`
		Question string       `json:"question"`
	}
	if !DecodeBody(w, r, &req) {
		return
	}

	image, ok := decodeImage(w, req.Image)
	if !ok {
		return
	}

	answer, err := h.orchestrator.AnalyzeImage(r.Context(), image, req.Question)
	if err != nil {
		writeActionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// ImageHandler uploads or fetches the retained image.
// GET/PUT /api/generate/image
func (h *GenerateHandler) ImageHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		image := h.orchestrator.CurrentImage()
		if image == nil {
			WriteError(w, http.StatusNotFound, "No image available")
			return
		}
		WriteJSON(w, http.StatusOK, encodeImage(image))
	case "PUT":
		var req imagePayload
		if !DecodeBody(w, r, &req) {
			return
		}
		image, ok := decodeImage(w, req)
		if !ok {
			return
		}
		h.orchestrator.SetImage(image)
		WriteSuccess(w, "Image stored")
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
