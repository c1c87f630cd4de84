package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Notes
	mux.HandleFunc("/api/notes", s.handleNotesRoute)
	mux.HandleFunc("/api/notes/", s.app.NotesHandler.NoteHandler) // GET/PUT/DELETE /{id}, POST /{id}/select

	// API routes - Generation actions
	mux.HandleFunc("/api/generate/ideas/query", s.app.GenerateHandler.IdeasFromQueryHandler)
	mux.HandleFunc("/api/generate/ideas/note", s.app.GenerateHandler.IdeasFromNoteHandler)
	mux.HandleFunc("/api/generate/refine", s.app.GenerateHandler.RefineHandler)
	mux.HandleFunc("/api/generate/documents", s.app.GenerateHandler.DocumentsHandler)
	mux.HandleFunc("/api/generate/wireframe", s.app.GenerateHandler.WireframeHandler)
	mux.HandleFunc("/api/generate/image", s.app.GenerateHandler.ImageHandler)
	mux.HandleFunc("/api/generate/image/edit", s.app.GenerateHandler.EditImageHandler)
	mux.HandleFunc("/api/generate/image/analyze", s.app.GenerateHandler.AnalyzeImageHandler)

	// API routes - Chat
	mux.HandleFunc("/api/chat", s.app.ChatHandler.SendHandler)
	mux.HandleFunc("/api/chat/transcript", s.app.ChatHandler.TranscriptHandler)

	// API routes - Import/Export
	mux.HandleFunc("/api/import/file", s.app.TransferHandler.ImportFileHandler)
	mux.HandleFunc("/api/import/url", s.app.TransferHandler.ImportURLHandler)
	mux.HandleFunc("/api/export/", s.app.TransferHandler.ExportHandler)

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleNotesRoute dispatches /api/notes by method
func (s *Server) handleNotesRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.app.NotesHandler.ListHandler(w, r)
	case "POST":
		s.app.NotesHandler.CreateHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
