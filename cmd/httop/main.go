// Package main provides the httop CLI entry point.
//
// httop is a real-time terminal dashboard for web-server access logs: pipe an
// access log into stdin and watch request rates, status codes, and per-path
// traffic update live.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/randomizedcoder/httop/internal/config"
	"github.com/randomizedcoder/httop/internal/control"
	"github.com/randomizedcoder/httop/internal/ingest"
	"github.com/randomizedcoder/httop/internal/logging"
	"github.com/randomizedcoder/httop/internal/metrics"
	"github.com/randomizedcoder/httop/internal/stats"
	"github.com/randomizedcoder/httop/internal/tui"
	"github.com/randomizedcoder/httop/internal/view"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/httop
var version = "dev"

// commandQueueSize bounds the typed-command queue. Commands drain one per
// render tick, so even a paste of held-down keys fits comfortably.
const commandQueueSize = 64

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("httop %s\n", version)
			return 0
		}
	}

	// Parse command-line flags
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	// Initialize logger. Stdout carries the dashboard and stdin carries log
	// data, so diagnostics go to a file when configured and nowhere otherwise.
	var logger *slog.Logger
	var logFile *os.File
	if cfg.LogFile != "" {
		logger, logFile, err = logging.NewFileLogger(cfg.LogFile, cfg.LogFormat, "info", cfg.Verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			return 1
		}
		defer logFile.Close()
	} else {
		logger = logging.NewDiscardLogger()
	}
	logging.SetDefault(logger)

	// A TTY on stdin means nothing is piped in; the dashboard would sit
	// empty waiting on terminal input.
	if term.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "httop: stdin is a terminal; pipe an access log in, e.g.")
		fmt.Fprintln(os.Stderr, "  tail -f /var/log/nginx/access.log | httop")
		return 1
	}

	logger.Info("starting",
		"version", version,
		"tick", cfg.TickInterval,
		"sort", cfg.SortBy,
		"limit", cfg.DisplayLimit,
		"metrics_addr", cfg.MetricsAddr,
	)

	// Aggregate store and optional Prometheus surface.
	store := stats.NewStore(cfg.RecentEvents)

	var collector *metrics.Collector
	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		collector = metrics.NewCollector(version)
		metricsServer = metrics.NewServer(cfg.MetricsAddr, logger)
		if err := metricsServer.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting metrics server: %v\n", err)
			return 1
		}
	}

	// Ingestion goroutine: stdin to store for the process lifetime.
	ingestLoop := ingest.NewLoop(store, collector, logger)
	go ingestLoop.Run(os.Stdin)

	// Control goroutine: typed commands from the controlling terminal. If
	// the control source can't be opened (no terminal attached), report once
	// and run without interactivity.
	commands := make(chan control.Command, commandQueueSize)
	ctrlSource, err := control.OpenTTY(cfg.ControlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "httop: %s unavailable, running without interactive commands: %v\n",
			cfg.ControlPath, err)
		logger.Warn("control_source_unavailable", "path", cfg.ControlPath, "error", err)
	} else {
		defer ctrlSource.Close()
		go control.NewLoop(logger).Run(ctrlSource, commands)
	}

	// Render loop. Program input is disabled: stdin carries log data and the
	// control goroutine owns the terminal.
	sortKey, err := control.ParseSortKey(cfg.SortBy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	model := tui.New(tui.Config{
		TickInterval: cfg.TickInterval,
		Source:       store,
		Commands:     commands,
		State:        view.NewState(sortKey, cfg.DisplayLimit),
		Collector:    collector,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(nil))
	if _, err := program.Run(); err != nil {
		logger.Error("tui_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		return 1
	}

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Warn("metrics_shutdown_error", "error", err)
		}
	}

	// Final figures after the alt screen is restored.
	fmt.Print(stats.FormatExitSummary(store.Snapshot(), stats.SummaryConfig{
		Duration:      store.Elapsed(),
		LinesRead:     ingestLoop.LinesRead(),
		LinesRejected: ingestLoop.LinesRejected(),
		MetricsAddr:   cfg.MetricsAddr,
	}))

	logger.Info("finished",
		"lines_read", ingestLoop.LinesRead(),
		"lines_rejected", ingestLoop.LinesRejected(),
	)

	return 0
}
