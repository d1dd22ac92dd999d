// Package testutil provides testing utilities for the page archiver.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockAPI is a configurable mock paginated API server for testing.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		// Default handler
		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// PageFixture describes one page served by SetPages: the url field of
// each item in the page's results sequence.
type PageFixture struct {
	ItemURLs []string
}

// SetPages serves a chain of pages. Page 1 answers at basePath; page N
// answers at basePath + "page/N" and each page's next field points at its
// successor on this server. The last page has next: null.
func (m *MockAPI) SetPages(basePath string, pages []PageFixture) {
	for i, page := range pages {
		path := basePath
		if i > 0 {
			path = fmt.Sprintf("%spage/%d", basePath, i+1)
		}

		var next *string
		if i < len(pages)-1 {
			url := m.URL() + fmt.Sprintf("%spage/%d", basePath, i+2)
			next = &url
		}

		m.SetResponse(path, MockResponse{
			StatusCode: http.StatusOK,
			Body:       PageBody(page.ItemURLs, next),
			Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
		})
	}
}

// PageBody builds a JSON page body with the given item urls and next link
// (nil renders as JSON null).
func PageBody(itemURLs []string, next *string) string {
	items := make([]map[string]string, 0, len(itemURLs))
	for _, u := range itemURLs {
		items = append(items, map[string]string{"url": u})
	}

	body, _ := json.Marshal(map[string]any{
		"results": items,
		"next":    next,
	})
	return string(body)
}

// defaultHandler answers unregistered paths with 404, mirroring an API
// that has no such page.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"detail": "Not found."}`))
}
