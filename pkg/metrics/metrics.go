// Package metrics provides the central Prometheus registry reference for
// the page archiver. All metrics are defined in their respective packages
// (client, archive, pagination) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the archiver.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - archiver_requests_total{status} (Counter): Page requests by HTTP status
//     (or "network_error" when the request never completed)
//   - archiver_request_duration_seconds (Histogram): Page request duration
//   - archiver_fetch_errors_total{class} (Counter): Fetch errors by class
//     (config, http, decode, network)
//
// Persistence Metrics (pkg/archive):
//   - archiver_pages_persisted_total (Counter): Pages written to disk
//   - archiver_persisted_bytes_total (Counter): Bytes written to page files
//
// Walk Metrics (pkg/pagination):
//   - archiver_pages_walked_total{result} (Counter): Walked pages by
//     result (ok, error)
//
// Example Prometheus Queries:
//
//   # Fetch error rate
//   rate(archiver_fetch_errors_total[5m])
//
//   # P95 page request latency
//   histogram_quantile(0.95, rate(archiver_request_duration_seconds_bucket[5m]))
//
//   # Failed walk iterations
//   increase(archiver_pages_walked_total{result="error"}[1h])
