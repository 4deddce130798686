package view

import (
	"fmt"
	"testing"

	"github.com/randomizedcoder/httop/internal/control"
	"github.com/randomizedcoder/httop/internal/parser"
	"github.com/randomizedcoder/httop/internal/stats"
)

func event(ip, path string, status int, ua string) parser.Event {
	return parser.Event{
		IP:        ip,
		Method:    "GET",
		Path:      path,
		Status:    status,
		UserAgent: ua,
		BytesSent: 100,
	}
}

func TestBuildRows_JoinsFirstSample(t *testing.T) {
	store := stats.NewStore(10)
	store.Record(event("10.0.0.1", "/a", 200, "curl"))
	store.Record(event("10.0.0.2", "/a", 404, "wget"))
	store.Record(event("10.0.0.3", "/b", 500, "curl"))

	rows := BuildRows(store.Snapshot())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// /a keeps the fields of its first retained event, not the latest.
	if rows[0].Path != "/a" || rows[0].Count != 2 || rows[0].IP != "10.0.0.1" || rows[0].Status != 200 {
		t.Errorf("row[0] = %+v, want /a count=2 sampled from first event", rows[0])
	}
	if rows[1].Path != "/b" || rows[1].Count != 1 || rows[1].Status != 500 {
		t.Errorf("row[1] = %+v, want /b count=1 status=500", rows[1])
	}
}

func TestBuildRows_SkipsEvictedPaths(t *testing.T) {
	store := stats.NewStore(2)
	store.Record(event("10.0.0.1", "/old", 200, "curl"))
	store.Record(event("10.0.0.2", "/new-1", 200, "curl"))
	store.Record(event("10.0.0.3", "/new-2", 200, "curl"))

	snap := store.Snapshot()
	if snap.Paths["/old"] != 1 {
		t.Fatalf("histogram lost /old: %v", snap.Paths)
	}

	rows := BuildRows(snap)
	for _, r := range rows {
		if r.Path == "/old" {
			t.Error("/old has no retained sample and must not produce a row")
		}
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestSortRows_CountDescendingStable(t *testing.T) {
	rows := []Row{
		{Path: "/a", Count: 5},
		{Path: "/b", Count: 1},
		{Path: "/c", Count: 5},
	}
	SortRows(rows, control.SortCount)

	want := []string{"/a", "/c", "/b"}
	for i, p := range want {
		if rows[i].Path != p {
			t.Errorf("rows[%d].Path = %q, want %q (ties must keep input order)", i, rows[i].Path, p)
		}
	}
}

func TestSortRows_Keys(t *testing.T) {
	base := []Row{
		{Path: "/z", Count: 1, IP: "10.0.0.9", Status: 500, UserAgent: "wget"},
		{Path: "/a", Count: 3, IP: "10.0.0.1", Status: 200, UserAgent: "curl"},
		{Path: "/m", Count: 2, IP: "10.0.0.5", Status: 404, UserAgent: "moz"},
	}

	tests := []struct {
		key  control.SortKey
		want []string // expected path order
	}{
		{control.SortCount, []string{"/a", "/m", "/z"}},
		{control.SortPath, []string{"/a", "/m", "/z"}},
		{control.SortStatus, []string{"/a", "/m", "/z"}},
		{control.SortIP, []string{"/a", "/m", "/z"}},
		{control.SortUserAgent, []string{"/a", "/m", "/z"}},
	}

	for _, tt := range tests {
		rows := make([]Row, len(base))
		copy(rows, base)
		SortRows(rows, tt.key)
		for i, p := range tt.want {
			if rows[i].Path != p {
				t.Errorf("key %v: rows[%d].Path = %q, want %q", tt.key, i, rows[i].Path, p)
			}
		}
	}
}

func TestTopStatuses(t *testing.T) {
	store := stats.NewStore(200)
	for i := 0; i < 5; i++ {
		store.Record(event("10.0.0.1", fmt.Sprintf("/x-%d", i), 200, "curl"))
	}
	for i := 0; i < 3; i++ {
		store.Record(event("10.0.0.1", "/y", 404, "curl"))
	}
	store.Record(event("10.0.0.1", "/z", 500, "curl"))
	store.Record(event("10.0.0.1", "/w", 301, "curl"))

	top := TopStatuses(store.Snapshot(), 3)
	if len(top) != 3 {
		t.Fatalf("got %d entries, want 3", len(top))
	}
	if top[0].Code != 200 || top[0].Count != 5 {
		t.Errorf("top[0] = %+v, want 200x5", top[0])
	}
	if top[1].Code != 404 || top[1].Count != 3 {
		t.Errorf("top[1] = %+v, want 404x3", top[1])
	}
	// 301 and 500 tie at 1; the lower code wins the last slot.
	if top[2].Code != 301 || top[2].Count != 1 {
		t.Errorf("top[2] = %+v, want 301x1", top[2])
	}
}
