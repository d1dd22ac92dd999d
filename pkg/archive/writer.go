// Package archive persists fetched pages as JSON files under a
// date-stamped output directory, one file per page.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/page-archiver/pkg/client"
)

// Prometheus metrics for persistence operations.
var (
	pagesPersistedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "archiver_pages_persisted_total",
		Help: "Total pages written to disk",
	})

	persistedBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "archiver_persisted_bytes_total",
		Help: "Total bytes written to page files",
	})
)

// ErrNoResults is returned when a page has no results field or the
// results sequence is empty. Such a page is never written.
var ErrNoResults = errors.New("results missing or empty")

// ItemURLError is returned when the last result item has no url field or
// its url carries no identifier segment.
type ItemURLError struct {
	URL string
}

// Error implements the error interface.
func (e *ItemURLError) Error() string {
	if e.URL == "" {
		return "last result item has no url field"
	}
	return fmt.Sprintf("no identifier segment in item url %q", e.URL)
}

// Writer writes page results to the output directory.
type Writer struct {
	dir    string
	now    func() time.Time
	logger zerolog.Logger
}

// Config holds the writer configuration.
type Config struct {
	// Dir is the output root (default: "data"). Page files land in
	// Dir/<YYYY-MM-DD>/<last-item-id>.json.
	Dir string

	// Now supplies the process-local clock (default: time.Now). The date
	// directory is derived from it.
	Now func() time.Time
}

// New creates a new page writer.
func New(cfg Config) *Writer {
	if cfg.Dir == "" {
		cfg.Dir = "data"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Writer{
		dir:    cfg.Dir,
		now:    cfg.Now,
		logger: log.With().Str("component", "archive").Logger(),
	}
}

// PersistPage writes the page's results sequence to
// <dir>/<YYYY-MM-DD>/<id>.json, where id is the identifier of the last
// result item. The write truncates any existing file at that path, so a
// re-run on the same day with the same last item wins. Returns the
// written path.
func (w *Writer) PersistPage(page *client.Page) (string, error) {
	if page == nil || len(page.Results) == 0 {
		return "", ErrNoResults
	}

	id, err := lastItemID(page.Results)
	if err != nil {
		return "", err
	}

	date := w.now().Format("2006-01-02")
	dir := filepath.Join(w.dir, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	// Results items are raw JSON, so this reproduces the server's item
	// data untransformed.
	data, err := json.Marshal(page.Results)
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}

	path := filepath.Join(dir, id+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	pagesPersistedTotal.Inc()
	persistedBytesTotal.Add(float64(len(data)))

	w.logger.Debug().
		Str("path", path).
		Int("results", len(page.Results)).
		Msg("Persisted page")

	return path, nil
}

// lastItemID extracts the identifier of the last result item: the
// second-from-end "/"-delimited segment of its url field. The rule keeps
// filenames stable for trailing-slash item URLs (".../items/7/" -> "7").
func lastItemID(results []json.RawMessage) (string, error) {
	var item struct {
		URL string `json:"url"`
	}

	last := results[len(results)-1]
	if err := json.Unmarshal(last, &item); err != nil {
		// Item is not a mapping: treat like a missing url field.
		return "", &ItemURLError{}
	}
	if item.URL == "" {
		return "", &ItemURLError{}
	}

	parts := strings.Split(item.URL, "/")
	if len(parts) < 2 {
		return "", &ItemURLError{URL: item.URL}
	}

	id := parts[len(parts)-2]
	if id == "" {
		return "", &ItemURLError{URL: item.URL}
	}

	return id, nil
}
