package interfaces

import (
	"context"
	"errors"

	"github.com/sparkpad/sparkpad/internal/models"
)

// ErrNoImageReturned indicates the generative service completed an image
// request without returning an image payload.
var ErrNoImageReturned = errors.New("no image returned by generative service")

// GroundedResult is a text completion augmented with retrieval; Sources
// may be empty when the model did not consult the web.
type GroundedResult struct {
	Text    string
	Sources []models.SourceRef
}

// TextOptions carries per-call overrides for plain text generation.
type TextOptions struct {
	// Model overrides the configured default model when non-empty.
	Model string
}

// ChatSession is one ongoing conversation with the generative service.
// Send issues a single turn and returns the assistant reply text.
type ChatSession interface {
	Send(ctx context.Context, text string) (string, error)
}

// GenerationService is the boundary to the external generative-AI service.
// All calls block until the service responds or ctx is done; any transport
// or service error is returned unwrapped for uniform handling upstream.
type GenerationService interface {
	// GenerateText performs a single-turn text completion.
	GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error)

	// GenerateTextWithSources performs a completion grounded in web search
	// and returns the citation references the model consulted.
	GenerateTextWithSources(ctx context.Context, prompt string) (*GroundedResult, error)

	// GenerateImage produces an image from a text prompt.
	GenerateImage(ctx context.Context, prompt string) (*models.ImagePayload, error)

	// EditImage applies an instruction to an existing image. Returns
	// ErrNoImageReturned when the service responds without an image part.
	EditImage(ctx context.Context, image *models.ImagePayload, instruction string) (*models.ImagePayload, error)

	// DescribeImage answers a free-text question about an image.
	DescribeImage(ctx context.Context, image *models.ImagePayload, question string) (string, error)

	// NewChatSession creates a fresh conversation handle.
	NewChatSession(ctx context.Context) (ChatSession, error)

	// Close releases client resources.
	Close() error
}
