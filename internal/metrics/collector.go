// Package metrics provides Prometheus metrics for httop.
//
// The collector is optional: httop is a terminal tool first, so all methods
// are nil-receiver safe and the HTTP endpoint only starts when an address is
// configured. Metric cardinality is kept low on purpose — counters are keyed
// by status code and command kind only, never by path, IP, or user agent.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/randomizedcoder/httop/internal/parser"
)

// Collector holds all Prometheus metrics for one httop run.
type Collector struct {
	info prometheus.Gauge

	linesReadTotal     prometheus.Counter
	linesRejectedTotal prometheus.Counter
	eventsTotal        *prometheus.CounterVec // by status code
	bytesTotal         prometheus.Counter

	renderTicksTotal prometheus.Counter
	commandsTotal    *prometheus.CounterVec // by command kind

	requestsPerSecond prometheus.Gauge
	recentEvents      prometheus.Gauge
	uniquePaths       prometheus.Gauge
	uniqueIPs         prometheus.Gauge

	responseTimeSeconds prometheus.Histogram
}

// NewCollector creates a collector registered with the default registry.
func NewCollector(version string) *Collector {
	return NewCollectorWithRegistry(version, prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector with a custom registry.
// Useful for testing.
func NewCollectorWithRegistry(version string, registry prometheus.Registerer) *Collector {
	c := &Collector{
		info: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "httop_info",
			Help:        "Information about the httop process (value always 1)",
			ConstLabels: prometheus.Labels{"version": version},
		}),
		linesReadTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httop_lines_read_total",
			Help: "Total log lines read from the input stream",
		}),
		linesRejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httop_lines_rejected_total",
			Help: "Total log lines rejected by the parser",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httop_events_total",
			Help: "Total parsed events by HTTP status code",
		}, []string{"status_code"}),
		bytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httop_bytes_total",
			Help: "Total response bytes observed across all events",
		}),
		renderTicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httop_render_ticks_total",
			Help: "Total dashboard render ticks",
		}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httop_commands_total",
			Help: "Total interactive commands applied, by kind",
		}, []string{"kind"}),
		requestsPerSecond: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "httop_requests_per_second",
			Help: "Current request rate over the process lifetime",
		}),
		recentEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "httop_recent_events",
			Help: "Events currently held in the retention window",
		}),
		uniquePaths: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "httop_unique_paths",
			Help: "Distinct request paths seen so far",
		}),
		uniqueIPs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "httop_unique_ips",
			Help: "Distinct client IPs seen so far",
		}),
		responseTimeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "httop_response_time_seconds",
			Help: "Upstream response time distribution (when present in the log)",
			Buckets: []float64{
				0.005, 0.01, 0.025, 0.05, 0.075,
				0.1, 0.25, 0.5, 0.75,
				1.0, 2.5, 5.0, 10.0,
			},
		}),
	}

	registry.MustRegister(
		c.info,
		c.linesReadTotal,
		c.linesRejectedTotal,
		c.eventsTotal,
		c.bytesTotal,
		c.renderTicksTotal,
		c.commandsTotal,
		c.requestsPerSecond,
		c.recentEvents,
		c.uniquePaths,
		c.uniqueIPs,
		c.responseTimeSeconds,
	)

	c.info.Set(1)

	return c
}

// IncLinesRead counts one line pulled off the input stream.
func (c *Collector) IncLinesRead() {
	if c == nil {
		return
	}
	c.linesReadTotal.Inc()
}

// IncLinesRejected counts one line the parser refused.
func (c *Collector) IncLinesRejected() {
	if c == nil {
		return
	}
	c.linesRejectedTotal.Inc()
}

// ObserveEvent counts one parsed event.
func (c *Collector) ObserveEvent(ev parser.Event) {
	if c == nil {
		return
	}
	c.eventsTotal.WithLabelValues(strconv.Itoa(ev.Status)).Inc()
	c.bytesTotal.Add(float64(ev.BytesSent))
	if ev.ResponseTime > 0 {
		c.responseTimeSeconds.Observe(ev.ResponseTime)
	}
}

// IncRenderTick counts one render-loop tick.
func (c *Collector) IncRenderTick() {
	if c == nil {
		return
	}
	c.renderTicksTotal.Inc()
}

// IncCommand counts one applied command by kind label.
func (c *Collector) IncCommand(kind string) {
	if c == nil {
		return
	}
	c.commandsTotal.WithLabelValues(kind).Inc()
}

// SnapshotStats is the slice of snapshot state the gauges track. Defined here
// to avoid importing the stats package from metrics.
type SnapshotStats struct {
	RPS          float64
	RecentEvents int
	UniquePaths  int
	UniqueIPs    int
}

// ObserveSnapshot updates the gauges from the latest snapshot.
func (c *Collector) ObserveSnapshot(s SnapshotStats) {
	if c == nil {
		return
	}
	c.requestsPerSecond.Set(s.RPS)
	c.recentEvents.Set(float64(s.RecentEvents))
	c.uniquePaths.Set(float64(s.UniquePaths))
	c.uniqueIPs.Set(float64(s.UniqueIPs))
}
