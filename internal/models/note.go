package models

import (
	"strings"
	"time"
)

const (
	// MaxTitleLength is the display limit for note titles.
	MaxTitleLength = 30

	// DefaultNoteTitle is used when a title cannot be derived from content.
	DefaultNoteTitle = "New Note"

	// DefaultImportTitle is used when an imported note arrives without a usable title.
	DefaultImportTitle = "Untitled Note"
)

// Note represents one unit of user or generated content.
// Notes are owned exclusively by the note store; other components
// reference them by ID only.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	IsGenerated bool      `json:"is_generated,omitempty"`
}

// DeriveTitle computes a note title from its content: the first line,
// truncated to MaxTitleLength, falling back to DefaultNoteTitle when
// that line is empty.
func DeriveTitle(content string) string {
	firstLine := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}
	return TruncateTitle(firstLine, DefaultNoteTitle)
}

// TruncateTitle trims a candidate title to MaxTitleLength runes,
// substituting fallback when the candidate is blank.
func TruncateTitle(candidate, fallback string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return fallback
	}
	runes := []rune(candidate)
	if len(runes) > MaxTitleLength {
		candidate = strings.TrimSpace(string(runes[:MaxTitleLength]))
	}
	if candidate == "" {
		return fallback
	}
	return candidate
}
