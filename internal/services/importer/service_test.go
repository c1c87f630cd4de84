package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sparkpad/sparkpad/internal/common"
	"github.com/sparkpad/sparkpad/internal/interfaces"
	"github.com/sparkpad/sparkpad/internal/models"
	"github.com/sparkpad/sparkpad/internal/services/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullStorage struct{}

func (nullStorage) SaveNotes(ctx context.Context, n []*models.Note) error { return nil }
func (nullStorage) LoadNotes(ctx context.Context) ([]*models.Note, error) {
	return nil, interfaces.ErrNotesNotFound
}

func newTestService(t *testing.T) (*Service, *notes.Store) {
	t.Helper()
	logger := common.GetLogger()
	store := notes.NewStore(nullStorage{}, logger)
	config := &common.ImportConfig{
		RequestTimeout: "5s",
		MaxBodySize:    1024 * 1024,
	}
	service, err := NewService(store, config, logger)
	require.NoError(t, err)
	return service, store
}

func TestImportFile(t *testing.T) {
	service, store := newTestService(t)

	path := filepath.Join(t.TempDir(), "Meeting Notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Agenda\n\n- item one"), 0644))

	note, err := service.ImportFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Meeting Notes", note.Title)
	assert.Equal(t, "# Agenda\n\n- item one", note.Content)
	assert.Equal(t, note.ID, store.ActiveID())
}

func TestImportFileMissing(t *testing.T) {
	service, store := newTestService(t)

	_, err := service.ImportFile(filepath.Join(t.TempDir(), "absent.md"))

	require.Error(t, err)
	assert.Empty(t, store.List(), "failed import must not touch the store")
}

func TestImportURLPlainText(t *testing.T) {
	service, store := newTestService(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("plain body"))
	}))
	defer srv.Close()

	note, err := service.ImportURL(context.Background(), srv.URL+"/readme.txt")
	require.NoError(t, err)

	assert.Equal(t, "readme", note.Title)
	assert.Equal(t, "plain body", note.Content)
	assert.Len(t, store.List(), 1)
}

func TestImportURLConvertsHTML(t *testing.T) {
	service, _ := newTestService(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><head><title>Page Title</title></head><body><h1>Heading</h1><p>Some <strong>bold</strong> text.</p></body></html>"))
	}))
	defer srv.Close()

	note, err := service.ImportURL(context.Background(), srv.URL+"/page")
	require.NoError(t, err)

	assert.Equal(t, "Page Title", note.Title)
	assert.Contains(t, note.Content, "# Heading")
	assert.Contains(t, note.Content, "**bold**")
}

func TestImportURLNonOKStatus(t *testing.T) {
	service, store := newTestService(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := service.ImportURL(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Empty(t, store.List())
}

func TestImportURLInvalid(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.ImportURL(context.Background(), "not a url")
	require.Error(t, err)
}

func TestExportMarkdownAndText(t *testing.T) {
	service, store := newTestService(t)
	note := store.Import("My Note", "# Title\n\nbody")

	filename, data, err := service.Export(note.ID, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "My_Note.md", filename)
	assert.Equal(t, "# Title\n\nbody", string(data))

	filename, data, err = service.Export(note.ID, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "My_Note.txt", filename)
	assert.Equal(t, "# Title\n\nbody", string(data))
}

func TestExportHTMLRendersMarkdown(t *testing.T) {
	service, store := newTestService(t)
	note := store.Import("Doc", "# Title\n\nsome *emphasis*")

	filename, data, err := service.Export(note.ID, FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "Doc.html", filename)
	assert.Contains(t, string(data), "<h1>Title</h1>")
	assert.Contains(t, string(data), "<em>emphasis</em>")
}

func TestExportUnknownNote(t *testing.T) {
	service, _ := newTestService(t)

	_, _, err := service.Export("note_missing", FormatMarkdown)
	require.Error(t, err)
}

func TestExportUnsupportedFormat(t *testing.T) {
	service, store := newTestService(t)
	note := store.Import("Doc", "body")

	_, _, err := service.Export(note.ID, ExportFormat("pdf"))
	require.Error(t, err)
}

func TestTitleFromName(t *testing.T) {
	assert.Equal(t, "notes", titleFromName("notes.md"))
	assert.Equal(t, "notes", titleFromName("notes.TXT"))
	assert.Equal(t, "archive.tar", titleFromName("archive.tar"))
	assert.Equal(t, "", titleFromName(""))
}
