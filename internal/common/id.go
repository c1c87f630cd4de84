package common

import (
	"github.com/google/uuid"
)

// NewNoteID generates a unique note ID with the "note_" prefix
// Format: note_<uuid>
func NewNoteID() string {
	return "note_" + uuid.New().String()
}

// NewMessageID generates a unique chat message ID with the "msg_" prefix
// Format: msg_<uuid>
func NewMessageID() string {
	return "msg_" + uuid.New().String()
}
