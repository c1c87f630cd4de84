// Package docsplit decomposes one raw generation payload into the two
// named documents the paired-document flow expects. The upstream model
// is prompted to emit a PRD heading followed by a development-plan
// heading, but compliance is not guaranteed, so decomposition degrades
// gracefully instead of discarding the already-paid-for result.
package docsplit

import (
	"strings"

	"github.com/sparkpad/sparkpad/internal/models"
)

const (
	// PRDHeading is the heading text expected above the first document.
	PRDHeading = "Product Requirements Document"

	// DevPlanHeading is the heading text expected above the second document.
	DevPlanHeading = "Development Plan"

	// DevPlanPlaceholder replaces the second document when the payload
	// carries no recognizable development-plan heading.
	DevPlanPlaceholder = "_The development plan could not be separated from the response. The full output is in the requirements document._"
)

// Split decomposes raw text into a two-document set. The primary path
// splits at the development-plan heading; when that heading is absent
// the whole payload (minus a leading PRD heading) becomes the PRD and
// the plan is an explicit placeholder. Split never fails and always
// returns a well-formed set so callers can proceed with partial output.
func Split(raw string, sources []models.SourceRef) models.DocumentSet {
	if sources == nil {
		sources = []models.SourceRef{}
	}

	lines := strings.Split(raw, "\n")
	splitAt := -1
	for i, line := range lines {
		if headingMatches(line, DevPlanHeading) {
			splitAt = i
			break
		}
	}

	if splitAt < 0 {
		return models.DocumentSet{
			PRD:     stripLeadingHeading(lines, PRDHeading),
			DevPlan: DevPlanPlaceholder,
			Sources: sources,
		}
	}

	return models.DocumentSet{
		PRD:     stripLeadingHeading(lines[:splitAt], PRDHeading),
		DevPlan: strings.TrimSpace(strings.Join(lines[splitAt+1:], "\n")),
		Sources: sources,
	}
}

// headingMatches reports whether a line is a markdown heading whose text
// contains the marker, case-insensitively. Models vary the heading depth
// and decoration, so the match is deliberately loose about everything
// except the leading '#'.
func headingMatches(line, marker string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	text := strings.TrimLeft(trimmed, "# ")
	return strings.Contains(strings.ToLower(text), strings.ToLower(marker))
}

// stripLeadingHeading drops the first line when it is a heading matching
// the marker, then joins and trims the remainder.
func stripLeadingHeading(lines []string, marker string) string {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headingMatches(line, marker) {
			lines = append(append([]string{}, lines[:i]...), lines[i+1:]...)
		}
		break
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
