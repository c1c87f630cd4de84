package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	t.Run("uses first line", func(t *testing.T) {
		assert.Equal(t, "My big idea", DeriveTitle("My big idea\n\nmore detail here"))
	})

	t.Run("truncates long first line", func(t *testing.T) {
		title := DeriveTitle(strings.Repeat("a", 50) + "\nrest")
		assert.Equal(t, strings.Repeat("a", MaxTitleLength), title)
	})

	t.Run("falls back on empty content", func(t *testing.T) {
		assert.Equal(t, DefaultNoteTitle, DeriveTitle(""))
		assert.Equal(t, DefaultNoteTitle, DeriveTitle("\nbody only"))
		assert.Equal(t, DefaultNoteTitle, DeriveTitle("   \ncontent"))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		title := DeriveTitle(strings.Repeat("ü", 40))
		assert.Equal(t, MaxTitleLength, len([]rune(title)))
	})
}

func TestTruncateTitle(t *testing.T) {
	t.Run("passes short titles through", func(t *testing.T) {
		assert.Equal(t, "Roadmap", TruncateTitle("Roadmap", DefaultImportTitle))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, "Roadmap", TruncateTitle("  Roadmap  ", DefaultImportTitle))
	})

	t.Run("uses fallback for blank candidates", func(t *testing.T) {
		assert.Equal(t, DefaultImportTitle, TruncateTitle("", DefaultImportTitle))
		assert.Equal(t, DefaultImportTitle, TruncateTitle("   ", DefaultImportTitle))
	})
}
