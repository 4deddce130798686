// Package stats maintains the shared aggregate statistics for httop.
//
// This file implements the exit summary printed after the dashboard closes.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SummaryConfig holds the run-level figures the store doesn't track itself.
type SummaryConfig struct {
	// Duration is the total run duration.
	Duration time.Duration

	// LinesRead and LinesRejected come from the ingestion loop.
	LinesRead     int64
	LinesRejected int64

	// MetricsAddr is the Prometheus endpoint address, if one was enabled.
	MetricsAddr string
}

// FormatExitSummary formats the final statistics for display at exit.
func FormatExitSummary(snap *Snapshot, cfg SummaryConfig) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("═══════════════════════════════════════════════════════════════════\n")
	b.WriteString("                          httop Exit Summary\n")
	b.WriteString("═══════════════════════════════════════════════════════════════════\n\n")

	fmt.Fprintf(&b, "Run Duration:           %s\n", FormatDuration(cfg.Duration))
	fmt.Fprintf(&b, "Total Requests:         %s\n", FormatNumber(int64(snap.TotalCount)))
	fmt.Fprintf(&b, "Requests/sec:           %.2f\n", snap.RPS)
	fmt.Fprintf(&b, "Total Bytes:            %s\n", FormatBytes(int64(snap.BytesTotal)))
	fmt.Fprintf(&b, "Unique Paths:           %d\n", len(snap.Paths))
	fmt.Fprintf(&b, "Unique Clients:         %d\n\n", len(snap.IPs))

	if len(snap.StatusCodes) > 0 {
		b.WriteString("Status Codes:\n")
		codes := make([]int, 0, len(snap.StatusCodes))
		for code := range snap.StatusCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		for _, code := range codes {
			fmt.Fprintf(&b, "  %3d: %s\n", code, FormatNumber(int64(snap.StatusCodes[code])))
		}
		b.WriteString("\n")
	}

	if snap.LatencySamples > 0 {
		b.WriteString("Response Time:\n")
		fmt.Fprintf(&b, "  p50:                  %.3fs\n", snap.LatencyP50)
		fmt.Fprintf(&b, "  p95:                  %.3fs\n", snap.LatencyP95)
		fmt.Fprintf(&b, "  p99:                  %.3fs\n", snap.LatencyP99)
		fmt.Fprintf(&b, "  samples:              %s\n\n", FormatNumber(int64(snap.LatencySamples)))
	}

	if cfg.LinesRejected > 0 {
		fmt.Fprintf(&b, "Lines rejected:         %s of %s read (%.2f%%)\n\n",
			FormatNumber(cfg.LinesRejected),
			FormatNumber(cfg.LinesRead),
			float64(cfg.LinesRejected)*100/float64(cfg.LinesRead),
		)
	}

	if cfg.MetricsAddr != "" {
		fmt.Fprintf(&b, "Metrics endpoint was: http://%s/metrics\n", cfg.MetricsAddr)
	}

	b.WriteString("═══════════════════════════════════════════════════════════════════\n")

	return b.String()
}

// FormatDuration formats a duration as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatNumber formats a number with K/M suffixes for readability.
func FormatNumber(n int64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatBytes formats bytes with KB/MB/GB suffixes.
func FormatBytes(n int64) string {
	if n >= 1_000_000_000 {
		return fmt.Sprintf("%.2f GB", float64(n)/1_000_000_000)
	}
	if n >= 1_000_000 {
		return fmt.Sprintf("%.2f MB", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.2f KB", float64(n)/1_000)
	}
	return fmt.Sprintf("%d B", n)
}
