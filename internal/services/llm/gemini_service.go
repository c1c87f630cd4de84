package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiService implements the GenerationService interface against the
// Google Gemini API. One client serves all actions; model selection is
// per action via configuration. Every call passes through a shared rate
// limiter so burst traffic stays inside the API quota window.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewGeminiService creates a new Gemini generation service instance
func NewGeminiService(config *common.GeminiConfig, logger arbor.ILogger) (*GeminiService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required (set SPARKPAD_GEMINI_API_KEY, GEMINI_API_KEY, or gemini.api_key in config)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	rateLimit, err := time.ParseDuration(config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit duration '%s': %w", config.RateLimit, err)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  config,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(rateLimit), 1),
		timeout: timeout,
	}

	logger.Info().
		Str("flash_model", config.FlashModel).
		Str("pro_model", config.ProModel).
		Str("image_model", config.ImageModel).
		Dur("timeout", timeout).
		Msg("Gemini generation service initialized")

	return service, nil
}

// GenerateText performs a single-turn text completion
func (s *GeminiService) GenerateText(ctx context.Context, prompt string, opts interfaces.TextOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = s.config.FlashModel
	}

	callCtx, cancel, err := s.prepareCall(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	startTime := time.Now()
	resp, err := s.client.Models.GenerateContent(callCtx, model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{Temperature: genai.Ptr(s.config.Temperature)},
	)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text returned from model %s", model)
	}

	s.logger.Debug().
		Str("model", model).
		Int("prompt_length", len(prompt)).
		Int("response_length", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("Text generation complete")

	return text, nil
}

// GenerateTextWithSources performs a completion grounded in Google
// Search and extracts the consulted sources from grounding metadata.
func (s *GeminiService) GenerateTextWithSources(ctx context.Context, prompt string) (*interfaces.GroundedResult, error) {
	callCtx, cancel, err := s.prepareCall(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	searchTool := &genai.Tool{GoogleSearch: &genai.GoogleSearch{}}
	resp, err := s.client.Models.GenerateContent(callCtx, s.config.ProModel,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{Tools: []*genai.Tool{searchTool}},
	)
	if err != nil {
		return nil, fmt.Errorf("grounded generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no text returned from model %s", s.config.ProModel)
	}

	result := &interfaces.GroundedResult{
		Text:    text,
		Sources: []models.SourceRef{},
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web != nil {
				result.Sources = append(result.Sources, models.SourceRef{
					URL:   chunk.Web.URI,
					Title: chunk.Web.Title,
				})
			}
		}
	}

	s.logger.Debug().
		Str("model", s.config.ProModel).
		Int("sources", len(result.Sources)).
		Msg("Grounded generation complete")

	return result, nil
}

// GenerateImage produces an image from a text prompt
func (s *GeminiService) GenerateImage(ctx context.Context, prompt string) (*models.ImagePayload, error) {
	callCtx, cancel, err := s.prepareCall(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := s.client.Models.GenerateImages(callCtx, s.config.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/png",
		AspectRatio:    "16:9",
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, interfaces.ErrNoImageReturned
	}

	image := resp.GeneratedImages[0].Image
	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}

	s.logger.Debug().
		Str("model", s.config.ImageModel).
		Int("bytes", len(image.ImageBytes)).
		Msg("Image generation complete")

	return &models.ImagePayload{Data: image.ImageBytes, MIMEType: mimeType}, nil
}

// EditImage applies an instruction to an existing image. The edit model
// answers with mixed parts; the first inline image part wins.
func (s *GeminiService) EditImage(ctx context.Context, image *models.ImagePayload, instruction string) (*models.ImagePayload, error) {
	callCtx, cancel, err := s.prepareCall(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	parts := []*genai.Part{
		genai.NewPartFromBytes(image.Data, image.MIMEType),
		genai.NewPartFromText(instruction),
	}
	resp, err := s.client.Models.GenerateContent(callCtx, s.config.EditModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE"}},
	)
	if err != nil {
		return nil, fmt.Errorf("image edit failed: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return &models.ImagePayload{Data: part.InlineData.Data, MIMEType: mimeType}, nil
			}
		}
	}

	return nil, interfaces.ErrNoImageReturned
}

// DescribeImage answers a free-text question about an image
func (s *GeminiService) DescribeImage(ctx context.Context, image *models.ImagePayload, question string) (string, error) {
	callCtx, cancel, err := s.prepareCall(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	parts := []*genai.Part{
		genai.NewPartFromBytes(image.Data, image.MIMEType),
		genai.NewPartFromText(question),
	}
	resp, err := s.client.Models.GenerateContent(callCtx, s.config.FlashModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("image description failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text returned from model %s", s.config.FlashModel)
	}
	return text, nil
}

// NewChatSession creates a fresh conversation handle against the flash model
func (s *GeminiService) NewChatSession(ctx context.Context) (interfaces.ChatSession, error) {
	chatHandle, err := s.client.Chats.Create(ctx, s.config.FlashModel, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return &geminiChatSession{service: s, chat: chatHandle}, nil
}

// Close releases client resources. The genai client needs no explicit
// cleanup beyond dropping the reference.
func (s *GeminiService) Close() error {
	s.logger.Info().Msg("Closing Gemini generation service")
	s.client = nil
	return nil
}

// prepareCall waits on the rate limiter and wraps ctx with the
// configured operation timeout.
func (s *GeminiService) prepareCall(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	return callCtx, cancel, nil
}

// geminiChatSession adapts a genai chat handle to the ChatSession interface
type geminiChatSession struct {
	service *GeminiService
	chat    *genai.Chat
}

// Send issues one conversation turn and returns the assistant reply text
func (c *geminiChatSession) Send(ctx context.Context, text string) (string, error) {
	callCtx, cancel, err := c.service.prepareCall(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	resp, err := c.chat.SendMessage(callCtx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("chat message failed: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", fmt.Errorf("no reply returned from chat model")
	}
	return reply, nil
}
