package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/randomizedcoder/httop/internal/parser"
)

func testEvent(path string, status int, ip string) parser.Event {
	return parser.Event{
		Timestamp: time.Now().UTC(),
		IP:        ip,
		Method:    "GET",
		Path:      path,
		Status:    status,
		UserAgent: "test-agent",
		BytesSent: 100,
	}
}

func TestStore_RecordCounts(t *testing.T) {
	s := NewStore(0)

	const n = 25
	for i := 0; i < n; i++ {
		s.Record(testEvent(fmt.Sprintf("/p%d", i%3), 200+i%2, "10.0.0.1"))
	}

	snap := s.Snapshot()

	if snap.TotalCount != n {
		t.Errorf("TotalCount = %d, want %d", snap.TotalCount, n)
	}
	if snap.BytesTotal != n*100 {
		t.Errorf("BytesTotal = %d, want %d", snap.BytesTotal, n*100)
	}

	// Each event contributes exactly one increment per histogram, so every
	// histogram's value-sum equals the total count.
	histograms := map[string]uint64{
		"status": sumInts(snap.StatusCodes),
		"path":   sumStrings(snap.Paths),
		"ip":     sumStrings(snap.IPs),
		"method": sumStrings(snap.Methods),
	}
	for name, sum := range histograms {
		if sum != n {
			t.Errorf("%s histogram sum = %d, want %d", name, sum, n)
		}
	}
}

func sumInts(m map[int]uint64) uint64 {
	var total uint64
	for _, v := range m {
		total += v
	}
	return total
}

func sumStrings(m map[string]uint64) uint64 {
	var total uint64
	for _, v := range m {
		total += v
	}
	return total
}

func TestStore_RecentEvictionBoundary(t *testing.T) {
	s := NewStore(100)

	for i := 1; i <= 101; i++ {
		s.Record(testEvent(fmt.Sprintf("/event-%d", i), 200, "10.0.0.1"))
	}

	snap := s.Snapshot()

	if len(snap.Recent) != 100 {
		t.Fatalf("len(Recent) = %d, want 100", len(snap.Recent))
	}
	// Event #1 was evicted; #2..#101 remain in arrival order.
	if snap.Recent[0].Path != "/event-2" {
		t.Errorf("oldest retained = %q, want %q", snap.Recent[0].Path, "/event-2")
	}
	if snap.Recent[99].Path != "/event-101" {
		t.Errorf("newest retained = %q, want %q", snap.Recent[99].Path, "/event-101")
	}
	for i, ev := range snap.Recent {
		want := fmt.Sprintf("/event-%d", i+2)
		if ev.Path != want {
			t.Fatalf("Recent[%d].Path = %q, want %q (arrival order broken)", i, ev.Path, want)
		}
	}
}

func TestStore_RecentPartialFill(t *testing.T) {
	s := NewStore(100)

	for i := 1; i <= 3; i++ {
		s.Record(testEvent(fmt.Sprintf("/e%d", i), 200, "10.0.0.1"))
	}

	snap := s.Snapshot()
	if len(snap.Recent) != 3 {
		t.Fatalf("len(Recent) = %d, want 3", len(snap.Recent))
	}
	for i, want := range []string{"/e1", "/e2", "/e3"} {
		if snap.Recent[i].Path != want {
			t.Errorf("Recent[%d].Path = %q, want %q", i, snap.Recent[i].Path, want)
		}
	}
}

func TestStore_RPS(t *testing.T) {
	s := NewStore(0)

	for i := 0; i < 3; i++ {
		s.Record(testEvent("/x", 200, "10.0.0.1"))
	}

	snap := s.Snapshot()
	if snap.RPS <= 0 {
		t.Errorf("RPS = %v, want > 0", snap.RPS)
	}

	// RPS is total/elapsed; with 3 events recorded near-instantly the figure
	// is huge but finite.
	elapsed := time.Since(s.StartTime()).Seconds()
	upperBound := 3.0 / minElapsed
	if snap.RPS > upperBound {
		t.Errorf("RPS = %v exceeds divide-by-zero guard bound %v (elapsed %v)", snap.RPS, upperBound, elapsed)
	}
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	s := NewStore(0)
	s.Record(testEvent("/a", 200, "1.1.1.1"))

	snap := s.Snapshot()

	// Mutating the store after the snapshot must not change the snapshot.
	s.Record(testEvent("/b", 500, "2.2.2.2"))

	if snap.TotalCount != 1 {
		t.Errorf("snapshot TotalCount = %d, want 1", snap.TotalCount)
	}
	if _, ok := snap.Paths["/b"]; ok {
		t.Error("snapshot Paths contains an event recorded after Snapshot()")
	}

	// Mutating the snapshot must not change the store.
	snap.Paths["/poison"] = 99
	snap.Recent = append(snap.Recent, testEvent("/poison", 200, "3.3.3.3"))

	fresh := s.Snapshot()
	if _, ok := fresh.Paths["/poison"]; ok {
		t.Error("store was mutated through a snapshot map")
	}
	if len(fresh.Recent) != 2 {
		t.Errorf("store Recent length = %d, want 2", len(fresh.Recent))
	}
}

func TestStore_LatencyPercentiles(t *testing.T) {
	s := NewStore(0)

	for i := 0; i < 100; i++ {
		ev := testEvent("/x", 200, "10.0.0.1")
		ev.ResponseTime = float64(i+1) / 100 // 0.01 .. 1.00
		s.Record(ev)
	}
	// Zero response times (field absent) must not be sampled.
	s.Record(testEvent("/y", 200, "10.0.0.1"))

	snap := s.Snapshot()
	if snap.LatencySamples != 100 {
		t.Errorf("LatencySamples = %d, want 100", snap.LatencySamples)
	}
	if snap.LatencyP50 < 0.3 || snap.LatencyP50 > 0.7 {
		t.Errorf("LatencyP50 = %v, want around 0.5", snap.LatencyP50)
	}
	if snap.LatencyP99 < snap.LatencyP50 {
		t.Errorf("LatencyP99 (%v) < LatencyP50 (%v)", snap.LatencyP99, snap.LatencyP50)
	}
}

func TestStore_ConcurrentRecordAndSnapshot(t *testing.T) {
	s := NewStore(100)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			s.Record(testEvent("/x", 200, "10.0.0.1"))
		}
	}()

	for i := 0; i < 100; i++ {
		snap := s.Snapshot()
		if got := sumStrings(snap.Paths); got != snap.TotalCount {
			t.Fatalf("path histogram sum %d != total %d in concurrent snapshot", got, snap.TotalCount)
		}
		if len(snap.Recent) > 100 {
			t.Fatalf("len(Recent) = %d exceeds capacity", len(snap.Recent))
		}
	}
	<-done
}
