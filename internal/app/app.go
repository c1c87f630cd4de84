package app

import (
	"context"
	"fmt"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/handlers"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/services/chat"
	"github.com/sparkpad/sparkpad/internal/services/generation"
	"github.com/sparkpad/sparkpad/internal/services/importer"
	"github.com/sparkpad/sparkpad/internal/services/llm"
	"github.com/sparkpad/sparkpad/internal/services/notes"
	badgerstore "github.com/sparkpad/sparkpad/internal/storage/badger"
	"github.com/ternarybob/arbor"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB          *badgerstore.BadgerDB
	NoteStorage interfaces.NoteStorage
	Maintenance *badgerstore.Maintenance

	// Core services
	NoteStore         *notes.Store
	GenerationService interfaces.GenerationService
	Orchestrator      *generation.Orchestrator
	ChatSession       *chat.Session
	ImportService     *importer.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	NotesHandler    *handlers.NotesHandler
	GenerateHandler *handlers.GenerateHandler
	ChatHandler     *handlers.ChatHandler
	TransferHandler *handlers.TransferHandler
	StatusHandler   *handlers.StatusHandler
}

// New wires the full application: storage, services, and handlers.
// The note collection is loaded before New returns, so the server never
// serves an unpopulated store.
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.DB = db
	a.NoteStorage = badgerstore.NewNoteStorage(db, logger)

	a.Maintenance = badgerstore.NewMaintenance(db, logger)
	if err := a.Maintenance.Start(config.Maintenance.GCSchedule); err != nil {
		a.Close()
		return nil, err
	}

	a.NoteStore = notes.NewStore(a.NoteStorage, logger)
	if err := a.NoteStore.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load note collection: %w", err)
	}

	generationService, err := llm.NewGeminiService(&config.Gemini, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.GenerationService = generationService

	a.Orchestrator = generation.NewOrchestrator(a.NoteStore, a.GenerationService, &config.Gemini, logger)
	a.ChatSession = chat.NewSession(a.GenerationService, logger)

	importService, err := importer.NewService(a.NoteStore, &config.Import, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.ImportService = importService

	a.APIHandler = handlers.NewAPIHandler(logger)
	a.NotesHandler = handlers.NewNotesHandler(a.NoteStore, logger)
	a.GenerateHandler = handlers.NewGenerateHandler(a.Orchestrator, logger)
	a.ChatHandler = handlers.NewChatHandler(a.ChatSession, logger)
	a.TransferHandler = handlers.NewTransferHandler(a.ImportService, logger)
	a.StatusHandler = handlers.NewStatusHandler(a.Orchestrator, logger)

	logger.Info().
		Str("storage", config.Storage.Badger.Path).
		Msg("Application initialized")

	return a, nil
}

// Close shuts down services and storage in reverse dependency order
func (a *App) Close() error {
	if a.GenerationService != nil {
		if err := a.GenerationService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close generation service")
		}
	}

	if a.Maintenance != nil {
		a.Maintenance.Stop()
	}

	// Drain pending note writes before the database goes away.
	if a.NoteStore != nil {
		a.NoteStore.Close()
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close database")
			return err
		}
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}
