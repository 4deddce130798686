// Package ingest runs the log-line ingestion loop: read a line, parse it,
// fold it into the shared store.
package ingest

import (
	"bufio"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/randomizedcoder/httop/internal/metrics"
	"github.com/randomizedcoder/httop/internal/parser"
	"github.com/randomizedcoder/httop/internal/stats"
)

const (
	// Scanner buffer sizing. Access-log lines with long user agents and
	// query strings can exceed bufio's 64KB default token limit only in
	// pathological cases, but a dropped line is worse than a bigger buffer.
	scannerInitialBuf = 64 * 1024
	scannerMaxBuf     = 1024 * 1024
)

// Loop consumes an access-log stream and records parsed events.
//
// It runs on its own goroutine for the process lifetime and is not joined on
// exit. Malformed lines are counted and skipped; they never stop ingestion.
type Loop struct {
	store     *stats.Store
	collector *metrics.Collector
	logger    *slog.Logger

	linesRead     atomic.Int64
	linesParsed   atomic.Int64
	linesRejected atomic.Int64
}

// NewLoop creates an ingestion loop. collector may be nil when metrics are
// disabled.
func NewLoop(store *stats.Store, collector *metrics.Collector, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		store:     store,
		collector: collector,
		logger:    logger,
	}
}

// Run reads r line by line until the stream ends. Stream end — EOF or a read
// error — is one terminal outcome: the loop returns and the aggregates stay
// frozen at their final values for the render loop to keep displaying.
func (l *Loop) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerInitialBuf), scannerMaxBuf)

	for scanner.Scan() {
		line := scanner.Text()
		l.linesRead.Add(1)
		l.collector.IncLinesRead()

		ev, ok := parser.Parse(line)
		if !ok {
			l.linesRejected.Add(1)
			l.collector.IncLinesRejected()
			continue
		}

		l.store.Record(ev)
		l.linesParsed.Add(1)
		l.collector.ObserveEvent(ev)
	}

	if err := scanner.Err(); err != nil {
		l.logger.Warn("ingest_stream_error", "error", err, "lines_read", l.LinesRead())
		return
	}
	l.logger.Debug("ingest_stream_closed",
		"lines_read", l.LinesRead(),
		"lines_parsed", l.LinesParsed(),
		"lines_rejected", l.LinesRejected())
}

// LinesRead returns how many lines have been pulled off the stream.
func (l *Loop) LinesRead() int64 {
	return l.linesRead.Load()
}

// LinesParsed returns how many lines parsed into events.
func (l *Loop) LinesParsed() int64 {
	return l.linesParsed.Load()
}

// LinesRejected returns how many lines the parser refused.
func (l *Loop) LinesRejected() int64 {
	return l.linesRejected.Load()
}
