package docsplit

import (
	"testing"

	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSplitWellFormedPayload(t *testing.T) {
	raw := "# Product Requirements Document\n\nPRD body here.\n\n# Development Plan\n\nPlan body here."

	set := Split(raw, nil)

	assert.Equal(t, "PRD body here.", set.PRD)
	assert.Equal(t, "Plan body here.", set.DevPlan)
	assert.NotNil(t, set.Sources)
	assert.Empty(t, set.Sources)
}

func TestSplitToleratesHeadingVariations(t *testing.T) {
	// Models vary depth and decoration on headings.
	raw := "## Product Requirements Document (PRD)\nPRD text\n### development plan\nPlan text"

	set := Split(raw, nil)

	assert.Equal(t, "PRD text", set.PRD)
	assert.Equal(t, "Plan text", set.DevPlan)
}

func TestSplitMissingPlanHeadingFallsBack(t *testing.T) {
	raw := "# Product Requirements Document\n\nEverything ended up in one document."

	set := Split(raw, nil)

	assert.Equal(t, "Everything ended up in one document.", set.PRD)
	assert.Equal(t, DevPlanPlaceholder, set.DevPlan)
}

func TestSplitNoHeadingsAtAll(t *testing.T) {
	raw := "Plain prose with no markdown structure."

	set := Split(raw, nil)

	assert.Equal(t, raw, set.PRD)
	assert.Equal(t, DevPlanPlaceholder, set.DevPlan)
}

func TestSplitPreservesSources(t *testing.T) {
	sources := []models.SourceRef{
		{URL: "https://example.com/a", Title: "A"},
		{URL: "https://example.com/b", Title: "B"},
	}

	set := Split("# Product Requirements Document\nX\n# Development Plan\nY", sources)

	assert.Equal(t, sources, set.Sources)
}

func TestSplitPlanHeadingNotAHeadingLine(t *testing.T) {
	// The marker inside body text must not trigger a split.
	raw := "# Product Requirements Document\nWe will write a Development Plan later."

	set := Split(raw, nil)

	assert.Equal(t, "We will write a Development Plan later.", set.PRD)
	assert.Equal(t, DevPlanPlaceholder, set.DevPlan)
}
