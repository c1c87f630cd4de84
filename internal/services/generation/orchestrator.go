package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/sparkpad/sparkpad/internal/services/docsplit"
	"github.com/sparkpad/sparkpad/internal/services/notes"
	"github.com/ternarybob/arbor"
)

// Precondition errors. An unmet precondition is a no-op: no request is
// sent and the busy state is never entered.
var (
	ErrNoActiveNote = errors.New("no note is selected")
	ErrEmptyInput   = errors.New("input text is empty")
	ErrNoImage      = errors.New("no image available")
)

// Orchestrator coordinates every generation action: validate, enter the
// busy state, call the generative service, apply the result to the note
// store or image slot, release. Failures leave prior state untouched;
// the busy state is released on every exit path.
type Orchestrator struct {
	store   *notes.Store
	service interfaces.GenerationService
	tracker *StatusTracker
	config  *common.GeminiConfig
	logger  arbor.ILogger

	imageMu sync.RWMutex
	image   *models.ImagePayload
}

// NewOrchestrator creates a generation orchestrator
func NewOrchestrator(store *notes.Store, service interfaces.GenerationService, config *common.GeminiConfig, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		store:   store,
		service: service,
		tracker: NewStatusTracker(logger),
		config:  config,
		logger:  logger,
	}
}

// Status returns the busy flag and in-flight action label
func (o *Orchestrator) Status() (bool, string) {
	return o.tracker.Snapshot()
}

// IdeasFromQuery generates ideas for a free-text query and appends them
// to the active note under a heading naming the query.
func (o *Orchestrator) IdeasFromQuery(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyInput
	}
	note, ok := o.store.Active()
	if !ok {
		return ErrNoActiveNote
	}

	if err := o.tracker.Acquire("Generating ideas from your query..."); err != nil {
		return err
	}
	defer o.tracker.Release()

	prompt := fmt.Sprintf("Generate a list of 5 innovative ideas based on this query: %q. Provide a brief description for each.", query)
	ideas, err := o.service.GenerateText(ctx, prompt, interfaces.TextOptions{})
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to generate ideas from query")
		return err
	}

	o.store.UpdateContent(note.ID, fmt.Sprintf("%s\n\n## Ideas based on %q:\n\n%s", note.Content, query, ideas))
	return nil
}

// IdeasFromNote generates actionable next steps from the active note's
// content and appends them under a fixed heading.
func (o *Orchestrator) IdeasFromNote(ctx context.Context) error {
	note, ok := o.store.Active()
	if !ok {
		return ErrNoActiveNote
	}
	if strings.TrimSpace(note.Content) == "" {
		return ErrEmptyInput
	}

	if err := o.tracker.Acquire("Generating ideas from your note..."); err != nil {
		return err
	}
	defer o.tracker.Release()

	prompt := fmt.Sprintf("Based on the following note, generate a list of 5 actionable ideas or next steps:\n\n---\n\n%s", note.Content)
	ideas, err := o.service.GenerateText(ctx, prompt, interfaces.TextOptions{})
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to generate ideas from note")
		return err
	}

	o.store.UpdateContent(note.ID, fmt.Sprintf("%s\n\n## Ideas based on this note:\n\n%s", note.Content, ideas))
	return nil
}

// Refine rewrites the active note's content wholesale for grammar,
// clarity, and tone.
func (o *Orchestrator) Refine(ctx context.Context) error {
	note, ok := o.store.Active()
	if !ok {
		return ErrNoActiveNote
	}
	if strings.TrimSpace(note.Content) == "" {
		return ErrEmptyInput
	}

	if err := o.tracker.Acquire("Refining your note..."); err != nil {
		return err
	}
	defer o.tracker.Release()

	prompt := fmt.Sprintf("Refine and improve the following text. Fix any grammatical errors, improve clarity, and make the tone more professional. Return only the improved text.\n\n---\n\n%s", note.Content)
	refined, err := o.service.GenerateText(ctx, prompt, interfaces.TextOptions{Model: o.config.LiteModel})
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to refine note")
		return err
	}

	o.store.UpdateContent(note.ID, refined)
	return nil
}

// GenerateDocuments produces a paired PRD and development plan from the
// active note via a search-grounded completion, decomposes the payload,
// and inserts both parts as generated notes with the PRD selected.
func (o *Orchestrator) GenerateDocuments(ctx context.Context) (*models.DocumentSet, error) {
	note, ok := o.store.Active()
	if !ok {
		return nil, ErrNoActiveNote
	}
	if strings.TrimSpace(note.Content) == "" {
		return nil, ErrEmptyInput
	}

	if err := o.tracker.Acquire("Generating PRD & Dev Plan..."); err != nil {
		return nil, err
	}
	defer o.tracker.Release()

	prompt := fmt.Sprintf(`Based on the following idea, generate a detailed Product Requirements Document (PRD) and a high-level Development Plan. Use web search to find relevant up-to-date information, market trends, and potential competitor details to make the documents comprehensive.

Idea: %q

Format the output strictly as markdown with exactly two top-level headings, in this order: "# %s" followed by "# %s". Place each document under its heading.`, note.Content, docsplit.PRDHeading, docsplit.DevPlanHeading)

	result, err := o.service.GenerateTextWithSources(ctx, prompt)
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to generate documents")
		return nil, err
	}

	set := docsplit.Split(result.Text, result.Sources)

	// Insert the plan first so the PRD ends up on top and selected.
	o.store.CreateGenerated("Dev Plan for "+note.Title, set.DevPlan)
	o.store.CreateGenerated("PRD for "+note.Title, set.PRD)

	o.logger.Info().Int("sources", len(set.Sources)).Str("from", note.Title).Msg("Generated paired documents")
	return &set, nil
}

// GenerateWireframe produces a UI wireframe image from a text prompt.
// The payload is retained in memory for follow-up edits; it is never
// stored as a note.
func (o *Orchestrator) GenerateWireframe(ctx context.Context, prompt string) (*models.ImagePayload, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyInput
	}

	if err := o.tracker.Acquire("Generating UI wireframe..."); err != nil {
		return nil, err
	}
	defer o.tracker.Release()

	framed := fmt.Sprintf("A high-fidelity, professional UI wireframe for a web application. %s. Clean, modern, minimalist design.", prompt)
	image, err := o.service.GenerateImage(ctx, framed)
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to generate wireframe")
		return nil, err
	}

	o.setImage(image)
	return image, nil
}

// EditImage applies an edit instruction to the current image payload,
// replacing it on success.
func (o *Orchestrator) EditImage(ctx context.Context, instruction string) (*models.ImagePayload, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, ErrEmptyInput
	}
	current := o.CurrentImage()
	if current == nil {
		return nil, ErrNoImage
	}

	if err := o.tracker.Acquire("Editing image..."); err != nil {
		return nil, err
	}
	defer o.tracker.Release()

	edited, err := o.service.EditImage(ctx, current, instruction)
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to edit image")
		return nil, err
	}

	o.setImage(edited)
	return edited, nil
}

// AnalyzeImage answers a question about the given image. The result is
// display text only; nothing is stored.
func (o *Orchestrator) AnalyzeImage(ctx context.Context, image *models.ImagePayload, question string) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", ErrNoImage
	}
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyInput
	}

	if err := o.tracker.Acquire("Analyzing image..."); err != nil {
		return "", err
	}
	defer o.tracker.Release()

	answer, err := o.service.DescribeImage(ctx, image, question)
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to analyze image")
		return "", err
	}
	return answer, nil
}

// SetImage replaces the retained image payload with an uploaded one so
// subsequent edits start from it.
func (o *Orchestrator) SetImage(image *models.ImagePayload) {
	o.setImage(image)
}

// CurrentImage returns the retained image payload, or nil
func (o *Orchestrator) CurrentImage() *models.ImagePayload {
	o.imageMu.RLock()
	defer o.imageMu.RUnlock()
	return o.image
}

func (o *Orchestrator) setImage(image *models.ImagePayload) {
	o.imageMu.Lock()
	defer o.imageMu.Unlock()
	o.image = image
}
