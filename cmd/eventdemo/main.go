// Package main provides a small command-line demonstration of the
// dispatcher: it declares a handful of named events on one source and
// walks through a nested breadth-first trigger, printing each callback
// as it runs.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	lsevent "github.com/lsevent/dispatcher"
	"github.com/lsevent/dispatcher/config"
	"github.com/lsevent/dispatcher/pkg/lib/log"
	"github.com/lsevent/dispatcher/pkg/types"
)

var (
	source      = flag.String("source", "eventdemo", "source identity to bind the dispatcher to")
	metricsNS   = flag.String("metrics-namespace", "eventdemo", "Prometheus namespace for dispatcher metrics")
	noMetrics   = flag.Bool("no-metrics", false, "disable Prometheus metrics collection")
	metricsAddr = flag.String("metrics-addr", ":9090", "address to serve /metrics on, when metrics are enabled")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

var logger = log.Logger("eventdemo")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	cfg := config.NewConfig()
	cfg.Metrics.Enabled = !*noMetrics
	cfg.Metrics.Namespace = *metricsNS
	cfg.Logging.Level = *logLevel
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// NewWithConfig installs cfg.Logging as the default logger, so every
	// log call below this point already reflects -log-level.
	d, err := lsevent.NewWithConfig(*source, cfg)
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}
	defer d.Destroy()

	if cfg.Metrics.Enabled {
		serveMetrics(d.Registry())
	}

	connect, err := d.CreateEvent("connect")
	if err != nil {
		return fmt.Errorf("create connect event: %w", err)
	}
	disconnect, err := d.CreateEvent("disconnect")
	if err != nil {
		return fmt.Errorf("create disconnect event: %w", err)
	}

	if err := connect.Bind(func(evt *types.EventData, arg interface{}) {
		peer := evt.Data
		fmt.Printf("connect: peer=%v\n", peer)
		if err := disconnect.Trigger(peer, func(evt *types.EventData, handled bool, arg interface{}) {
			fmt.Printf("disconnect settled: peer=%v handled=%v\n", evt.Data, handled)
		}, nil); err != nil {
			logger.Warn("failed to trigger disconnect", "error", err)
		}
	}, nil); err != nil {
		return fmt.Errorf("bind connect: %w", err)
	}

	if err := disconnect.Bind(func(evt *types.EventData, arg interface{}) {
		evt.Handled = true
		fmt.Printf("disconnect: peer=%v\n", evt.Data)
	}, nil); err != nil {
		return fmt.Errorf("bind disconnect: %w", err)
	}

	return connect.Trigger("peer-1", func(evt *types.EventData, handled bool, arg interface{}) {
		fmt.Printf("connect settled: peer=%v handled=%v\n", evt.Data, handled)
	}, nil)
}

// serveMetrics mounts reg under /metrics on metricsAddr in the background.
// The demo exits shortly after starting it; a long-running host would
// instead fold this into its own HTTP server lifecycle.
func serveMetrics(reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "addr", *metricsAddr)
	go func() {
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()
}
