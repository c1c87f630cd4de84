package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/ternarybob/arbor"
)

// errorReply is the assistant-role text appended when an exchange fails.
// Conversation failures are self-narrating within the transcript rather
// than surfaced through a separate error channel.
const errorReply = "Sorry, I encountered an error."

// Session holds the ordered transcript of the ad-hoc assistant feature
// and one lazily created generative chat handle. The transcript is
// append-only: entries are never reordered or edited after their status
// settles.
type Session struct {
	mu         sync.Mutex // guards transcript only
	transcript []models.ChatMessage

	exchangeMu sync.Mutex // serializes exchanges, guards handle
	handle     interfaces.ChatSession

	service interfaces.GenerationService
	logger  arbor.ILogger
}

// NewSession creates an empty conversation session
func NewSession(service interfaces.GenerationService, logger arbor.ILogger) *Session {
	return &Session{
		service: service,
		logger:  logger,
	}
}

// Send appends the user message optimistically, issues the request, and
// appends the assistant reply. Empty input is a no-op. A failed exchange
// appends an assistant-role error entry instead of returning an error,
// so the returned reply text is always what the transcript shows.
//
// The transcript lock is released for the duration of the exchange, so
// readers observe the pending user entry while the request is in flight.
// Entries are only ever appended, so the captured index stays valid.
func (s *Session) Send(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	s.mu.Lock()
	userIdx := len(s.transcript)
	s.transcript = append(s.transcript, models.ChatMessage{
		ID:     common.NewMessageID(),
		Role:   models.RoleUser,
		Text:   text,
		Status: models.MessagePending,
	})
	s.mu.Unlock()

	reply, err := s.exchange(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript[userIdx].Status = models.MessageConfirmed
	if err != nil {
		s.logger.Error().Err(err).Msg("Chat exchange failed")
		s.transcript = append(s.transcript, models.ChatMessage{
			ID:     common.NewMessageID(),
			Role:   models.RoleAssistant,
			Text:   errorReply,
			Status: models.MessageErrored,
		})
		return errorReply
	}

	s.transcript = append(s.transcript, models.ChatMessage{
		ID:     common.NewMessageID(),
		Role:   models.RoleAssistant,
		Text:   reply,
		Status: models.MessageConfirmed,
	})
	return reply
}

// exchange creates the service handle on first use and issues one turn.
// Exchanges are serialized: the handle is a single ongoing conversation.
func (s *Session) exchange(ctx context.Context, text string) (string, error) {
	s.exchangeMu.Lock()
	defer s.exchangeMu.Unlock()

	if s.handle == nil {
		handle, err := s.service.NewChatSession(ctx)
		if err != nil {
			return "", err
		}
		s.handle = handle
	}
	return s.handle.Send(ctx, text)
}

// Transcript returns a snapshot of the message history in order
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.ChatMessage, len(s.transcript))
	copy(snapshot, s.transcript)
	return snapshot
}
