package models

// ChatRole identifies the sender of a transcript message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// MessageStatus tags the delivery state of a transcript entry so callers
// can render intermediate states without re-deriving them from call order.
type MessageStatus string

const (
	// MessagePending marks an optimistically appended message whose
	// request is still in flight.
	MessagePending MessageStatus = "pending"
	// MessageConfirmed marks a message whose exchange completed.
	MessageConfirmed MessageStatus = "confirmed"
	// MessageErrored marks an assistant entry that narrates a failed exchange.
	MessageErrored MessageStatus = "errored"
)

// ChatMessage is one entry in a conversation transcript.
// Transcripts are append-only; entries are never reordered or edited
// after their status settles.
type ChatMessage struct {
	ID     string        `json:"id"`
	Role   ChatRole      `json:"role"`
	Text   string        `json:"text"`
	Status MessageStatus `json:"status"`
}
