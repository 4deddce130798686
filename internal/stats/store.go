// Package stats maintains the shared aggregate statistics for httop.
//
// One Store is created at process start. The ingestion goroutine mutates it
// through Record; the render loop reads it through Snapshot, which returns an
// independently owned copy so rendering never holds the write lock longer
// than the copy itself.
package stats

import (
	"maps"
	"sync"
	"time"

	"github.com/influxdata/tdigest"

	"github.com/randomizedcoder/httop/internal/parser"
)

// DefaultRecentCapacity is the default number of events retained for the
// path-to-sample join.
const DefaultRecentCapacity = 100

// minElapsed guards the requests-per-second division against the very first
// events arriving within the same clock reading as store creation.
const minElapsed = 1e-6 // seconds

// Store is the mutually-exclusive-guarded aggregate store.
//
// All access is serialized through the one mutex; no other synchronization
// primitive touches it.
type Store struct {
	mu sync.Mutex

	startTime time.Time

	totalCount uint64
	bytesTotal uint64

	statusCodes map[int]uint64
	paths       map[string]uint64
	ips         map[string]uint64
	methods     map[string]uint64

	// Ring buffer of the most recent events. recent[head] is the oldest
	// once the buffer is full; before that, head stays 0 and the slice is
	// already in arrival order.
	recent   []parser.Event
	head     int
	capacity int

	// Requests-per-second, recomputed after every Record and cached for
	// display.
	rps float64

	// Response-time percentiles. Events without a response-time field
	// carry 0.0 and are excluded so they don't drag the quantiles down.
	latency        *tdigest.TDigest
	latencySamples uint64
}

// NewStore creates an empty store retaining up to capacity recent events.
// capacity < 1 falls back to DefaultRecentCapacity.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultRecentCapacity
	}
	return &Store{
		startTime:   time.Now(),
		statusCodes: make(map[int]uint64),
		paths:       make(map[string]uint64),
		ips:         make(map[string]uint64),
		methods:     make(map[string]uint64),
		recent:      make([]parser.Event, 0, capacity),
		capacity:    capacity,
		latency:     tdigest.NewWithCompression(100),
	}
}

// Record folds one event into the aggregates. Each event contributes exactly
// one increment to every histogram, so each histogram's value-sum always
// equals the total count.
func (s *Store) Record(ev parser.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalCount++
	s.bytesTotal += ev.BytesSent

	s.statusCodes[ev.Status]++
	s.paths[ev.Path]++
	s.ips[ev.IP]++
	s.methods[ev.Method]++

	if len(s.recent) < s.capacity {
		s.recent = append(s.recent, ev)
	} else {
		// At capacity: overwrite the oldest slot and advance the head.
		s.recent[s.head] = ev
		s.head = (s.head + 1) % s.capacity
	}

	if ev.ResponseTime > 0 {
		s.latency.Add(ev.ResponseTime, 1)
		s.latencySamples++
	}

	elapsed := time.Since(s.startTime).Seconds()
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	s.rps = float64(s.totalCount) / elapsed
}

// Snapshot is a point-in-time, independently owned copy of the store.
type Snapshot struct {
	StartTime time.Time
	TakenAt   time.Time

	TotalCount uint64
	BytesTotal uint64
	RPS        float64

	StatusCodes map[int]uint64
	Paths       map[string]uint64
	IPs         map[string]uint64
	Methods     map[string]uint64

	// Recent events in arrival order, oldest first.
	Recent []parser.Event

	LatencySamples uint64
	LatencyP50     float64 // seconds
	LatencyP95     float64
	LatencyP99     float64
}

// Snapshot deep-copies all counters and the recent-event buffer under the
// lock, then releases it before the caller touches the copy.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		StartTime:      s.startTime,
		TakenAt:        time.Now(),
		TotalCount:     s.totalCount,
		BytesTotal:     s.bytesTotal,
		RPS:            s.rps,
		StatusCodes:    maps.Clone(s.statusCodes),
		Paths:          maps.Clone(s.paths),
		IPs:            maps.Clone(s.ips),
		Methods:        maps.Clone(s.methods),
		Recent:         make([]parser.Event, len(s.recent)),
		LatencySamples: s.latencySamples,
	}

	// Unroll the ring into arrival order.
	for i := range s.recent {
		snap.Recent[i] = s.recent[(s.head+i)%len(s.recent)]
	}

	if s.latencySamples > 0 {
		snap.LatencyP50 = s.latency.Quantile(0.50)
		snap.LatencyP95 = s.latency.Quantile(0.95)
		snap.LatencyP99 = s.latency.Quantile(0.99)
	}

	return snap
}

// StartTime returns when the store was created.
func (s *Store) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// Elapsed returns the duration since the store was created.
func (s *Store) Elapsed() time.Duration {
	return time.Since(s.StartTime())
}
