// Package importer brings external content into the note store (local
// files and fetched URLs) and exports note content back out as plain
// text, markdown, or rendered HTML.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/sparkpad/sparkpad/internal/services/notes"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
)

// Service imports external text into the note store and exports notes.
// Import failures leave store state unchanged.
type Service struct {
	store       *notes.Store
	logger      arbor.ILogger
	httpClient  *http.Client
	maxBodySize int64
}

// NewService creates an importer with fetch limits from configuration
func NewService(store *notes.Store, config *common.ImportConfig, logger arbor.ILogger) (*Service, error) {
	timeout, err := time.ParseDuration(config.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid import request timeout '%s': %w", config.RequestTimeout, err)
	}

	return &Service{
		store:       store,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
		maxBodySize: config.MaxBodySize,
	}, nil
}

// ImportFile reads a local markdown or text file into a new note. The
// title comes from the file name with its extension stripped.
func (s *Service) ImportFile(filePath string) (*models.Note, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	title := titleFromName(filepath.Base(filePath))
	note := s.store.Import(title, string(data))
	s.logger.Info().Str("file", filePath).Str("note_id", note.ID).Msg("Imported note from file")
	return note, nil
}

// ImportURL fetches a remote document into a new note. HTML responses
// are converted to markdown with the page title seeding the note title;
// anything else is imported verbatim with a title from the URL path.
// Fetch failures alter no store state.
func (s *Service) ImportURL(ctx context.Context, rawURL string) (*models.Note, error) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	title := titleFromName(path.Base(parsed.Path))
	if title == "" {
		title = "imported-note"
	}
	content := string(body)

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		title, content, err = s.convertHTML(rawURL, content, title)
		if err != nil {
			return nil, err
		}
	}

	note := s.store.Import(title, content)
	s.logger.Info().Str("url", rawURL).Str("note_id", note.ID).Msg("Imported note from URL")
	return note, nil
}

// convertHTML turns a fetched HTML page into markdown note content,
// preferring the page <title> over the URL-derived fallback.
func (s *Service) convertHTML(baseURL, html, fallbackTitle string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	converter := md.NewConverter(baseURL, true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return title, markdown, nil
}

// ExportFormat names a supported export encoding
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "md"
	FormatText     ExportFormat = "txt"
	FormatHTML     ExportFormat = "html"
)

// Export renders a note's content for download. Markdown and text
// exports are the raw content; HTML is rendered with goldmark. The
// returned filename derives from the note title.
func (s *Service) Export(noteID string, format ExportFormat) (string, []byte, error) {
	note, ok := s.store.Get(noteID)
	if !ok {
		return "", nil, fmt.Errorf("note not found: %s", noteID)
	}

	filename := strings.ReplaceAll(note.Title, " ", "_") + "." + string(format)

	switch format {
	case FormatMarkdown, FormatText:
		return filename, []byte(note.Content), nil
	case FormatHTML:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(note.Content), &buf); err != nil {
			return "", nil, fmt.Errorf("failed to render markdown: %w", err)
		}
		return filename, buf.Bytes(), nil
	default:
		return "", nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// titleFromName strips a trailing .md or .txt extension from a file or
// URL path segment.
func titleFromName(name string) string {
	for _, ext := range []string{".md", ".txt"} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
