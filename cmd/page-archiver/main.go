// Command page-archiver walks a paginated REST API and stores each
// page's results as a JSON file under a date-stamped data directory.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/page-archiver/pkg/archive"
	"github.com/Sternrassler/page-archiver/pkg/client"
	"github.com/Sternrassler/page-archiver/pkg/config"
	"github.com/Sternrassler/page-archiver/pkg/logging"
	"github.com/Sternrassler/page-archiver/pkg/pagination"
)

func main() {
	os.Exit(run())
}

// run executes one archiving walk and returns the process exit code:
// 0 when all pages were fetched and persisted, 1 otherwise.
func run() int {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	flag.Parse()

	// Bootstrap logger so configuration problems are visible before the
	// configured logger exists.
	logger, _, _ := logging.Setup(logging.DefaultConfig())

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
		return 1
	}

	logger, logFile, err := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
		File:   cfg.Log.File,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up logging")
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	fetcher, err := client.New(client.Config{Resolver: cfg})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create fetcher")
		return 1
	}

	writer := archive.New(archive.Config{Dir: cfg.Archive.Dir})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	walker := pagination.NewWalker(fetcher, writer, logger)
	if err := walker.Run(ctx); err != nil {
		// The walker already logged the failure with its class.
		return 1
	}

	logger.Info().Msg("The run has finished with success")
	return 0
}

// serveMetrics exposes the Prometheus registry on addr for the duration
// of the run.
func serveMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Msg("Metrics listener stopped")
	}
}
