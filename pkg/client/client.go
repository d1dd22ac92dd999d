// Package client provides the page fetcher: one HTTP GET per page of a
// paginated REST endpoint, decoded into a generic Page.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for page fetch operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "archiver_requests_total",
		Help: "Total page requests by response status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "archiver_request_duration_seconds",
		Help:    "Page request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "archiver_fetch_errors_total",
		Help: "Total fetch errors by class",
	}, []string{"class"})
)

// DefaultLimit is the page-size limit applied when the first-page URL is
// resolved from configuration.
const DefaultLimit = 50

// Page is one page of a paginated API response. Fields other than
// results and next are ignored. Result items are kept as raw JSON so the
// persisted payload is the untransformed server data.
type Page struct {
	Results []json.RawMessage `json:"results"`
	Next    *string           `json:"next"`
}

// HasNext reports whether the page carries a follow-up page link.
// A null or empty next field marks the last page.
func (p *Page) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// NextURL returns the follow-up page URL, or "" on the last page.
func (p *Page) NextURL() string {
	if p.Next == nil {
		return ""
	}
	return *p.Next
}

// URLResolver supplies the default first-page URL when FetchPage is
// called without one.
type URLResolver interface {
	FirstPageURL(limit int) (string, error)
}

// Client fetches pages from the paginated endpoint.
type Client struct {
	httpClient *http.Client
	resolver   URLResolver
	limit      int
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Resolver supplies the default first-page URL. Required.
	Resolver URLResolver

	// Limit is appended to the resolved first-page URL (default: DefaultLimit).
	Limit int

	// HTTPClient overrides the default HTTP client (for testing).
	HTTPClient *http.Client
}

// New creates a new page fetcher.
func New(cfg Config) (*Client, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("url resolver is required")
	}

	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No explicit timeout: a fetch blocks until the transport's own
		// defaults give up or the request context is cancelled.
		httpClient = &http.Client{}
	}

	logger := log.With().Str("component", "fetcher").Logger()

	return &Client{
		httpClient: httpClient,
		resolver:   cfg.Resolver,
		limit:      cfg.Limit,
		logger:     logger,
	}, nil
}

// FetchPage performs one GET against url and decodes the body. An empty
// url means "first page": it is resolved through the URLResolver with the
// configured limit, so resolution errors surface before any network
// activity.
func (c *Client) FetchPage(ctx context.Context, url string) (*Page, error) {
	if url == "" {
		resolved, err := c.resolver.FirstPageURL(c.limit)
		if err != nil {
			errorsTotal.WithLabelValues(string(ErrorClassConfig)).Inc()
			return nil, fmt.Errorf("resolve first page url: %w", err)
		}
		url = resolved
		c.logger.Debug().
			Str("url", url).
			Int("limit", c.limit).
			Msg("Resolved first page URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Str("url", url).Msg("HTTP request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	// Strict equality: 2xx statuses other than 200 are failures too.
	if resp.StatusCode != http.StatusOK {
		errorsTotal.WithLabelValues(string(ErrorClassHTTP)).Inc()
		c.logger.Warn().
			Str("url", url).
			Int("status_code", resp.StatusCode).
			Msg("Unexpected response status")
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Error().Err(err).Str("url", url).Msg("Response body is not valid JSON")
		return nil, &DecodeError{URL: url, Err: err}
	}

	c.logger.Debug().
		Str("url", url).
		Int("results", len(page.Results)).
		Bool("has_next", page.HasNext()).
		Msg("Fetched page")

	return &page, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
