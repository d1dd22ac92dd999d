package pagination

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/page-archiver/pkg/archive"
	"github.com/Sternrassler/page-archiver/pkg/client"
	"github.com/Sternrassler/page-archiver/pkg/config"
)

// Prometheus metrics for walk progress.
var pagesWalkedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "archiver_pages_walked_total",
	Help: "Total walked pages by result",
}, []string{"result"})

// Error classes owned by the walker, complementing the fetch classes.
const (
	errorClassResults client.ErrorClass = "results"
	errorClassItemURL client.ErrorClass = "item_url"
	errorClassIO      client.ErrorClass = "io"
)

// PageFetcher fetches a single page. An empty url requests the default
// first page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*client.Page, error)
}

// PageWriter persists a fetched page and returns the written path.
type PageWriter interface {
	PersistPage(page *client.Page) (string, error)
}

// Walker drives the fetch-then-persist loop across all pages.
type Walker struct {
	fetcher PageFetcher
	writer  PageWriter
	logger  zerolog.Logger
}

// NewWalker creates a new page walker.
func NewWalker(fetcher PageFetcher, writer PageWriter, logger zerolog.Logger) *Walker {
	return &Walker{
		fetcher: fetcher,
		writer:  writer,
		logger:  logger.With().Str("component", "walker").Logger(),
	}
}

// Run walks all pages starting from the default first page. It returns
// nil once a page reports no next link, or the first error encountered.
func (w *Walker) Run(ctx context.Context) error {
	url := ""
	pageNum := 0

	for {
		pageNum++

		page, err := w.fetcher.FetchPage(ctx, url)
		if err != nil {
			pagesWalkedTotal.WithLabelValues("error").Inc()
			w.logFailure(err, pageNum, url)
			return err
		}

		path, err := w.writer.PersistPage(page)
		if err != nil {
			pagesWalkedTotal.WithLabelValues("error").Inc()
			w.logFailure(err, pageNum, url)
			return err
		}

		pagesWalkedTotal.WithLabelValues("ok").Inc()
		w.logger.Info().
			Int("page", pageNum).
			Int("results", len(page.Results)).
			Str("path", path).
			Msg("Page persisted")

		if !page.HasNext() {
			w.logger.Info().
				Int("pages", pageNum).
				Msg("No more pages to fetch")
			return nil
		}

		url = page.NextURL()
		w.logger.Info().
			Str("url", url).
			Msg("Fetching next page")
	}
}

// logFailure logs a walk-ending error with its class. Every class is
// treated identically for control flow; the distinction exists for
// operators reading the log stream.
func (w *Walker) logFailure(err error, pageNum int, url string) {
	var statusErr *client.StatusError
	var decodeErr *client.DecodeError
	var itemErr *archive.ItemURLError

	evt := w.logger.Error().Err(err).Int("page", pageNum)
	if url != "" {
		evt = evt.Str("url", url)
	}

	switch {
	case errors.Is(err, config.ErrMissing):
		evt.Str("error_class", string(client.ErrorClassConfig)).
			Msg("Configuration file missing")
	case errors.Is(err, config.ErrKeyMissing):
		evt.Str("error_class", string(client.ErrorClassConfig)).
			Msg("Configuration key missing")
	case errors.As(err, &statusErr):
		evt.Str("error_class", string(client.ErrorClassHTTP)).
			Int("status_code", statusErr.StatusCode).
			Msg("Page fetch returned unexpected status")
	case errors.As(err, &decodeErr):
		evt.Str("error_class", string(client.ErrorClassDecode)).
			Msg("Page body is not valid JSON")
	case errors.Is(err, archive.ErrNoResults):
		evt.Str("error_class", string(errorClassResults)).
			Msg("Page has no results")
	case errors.As(err, &itemErr):
		evt.Str("error_class", string(errorClassItemURL)).
			Msg("Last result item has no usable identifier")
	default:
		evt.Str("error_class", string(errorClassIO)).
			Msg("Error occurred while processing page")
	}
}
