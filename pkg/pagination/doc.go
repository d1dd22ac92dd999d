// Package pagination provides the sequential page walker for REST
// endpoints that link their pages with a next field.
//
// The walk is strictly sequential: each iteration fetches one page,
// persists it, then follows the response's next link until a page
// reports no successor. Page N+1 is never fetched before page N is
// fully persisted.
//
// Example usage:
//
//	walker := pagination.NewWalker(fetcher, writer, logger)
//	if err := walker.Run(ctx); err != nil {
//		// walk failed; the error is already logged with its class
//	}
//
// Every error raised by the fetcher or the writer is fatal to the walk:
// there is no retry and no page skip. The walker classifies the failure
// (config, http, decode, results, item_url, io) in a single switch at the
// loop boundary, purely for logging and metrics.
package pagination
