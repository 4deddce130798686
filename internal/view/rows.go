package view

import (
	"sort"

	"github.com/randomizedcoder/httop/internal/control"
	"github.com/randomizedcoder/httop/internal/stats"
)

// Row is one line of the dashboard table: a path, its all-time hit count,
// and the fields of its representative retained event.
type Row struct {
	Path      string
	Count     uint64
	IP        string
	Status    int
	UserAgent string
}

// BuildRows joins the path histogram with the retained events: each path is
// paired with the first (oldest) retained event matching it. Paths whose
// sample has already been evicted from the retention window are excluded
// even though their count is nonzero.
//
// Paths are visited in lexicographic order so two renders of the same
// snapshot produce the same rows; the stable sort in SortRows then keeps
// that order for ties.
func BuildRows(snap *stats.Snapshot) []Row {
	paths := make([]string, 0, len(snap.Paths))
	for p := range snap.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	rows := make([]Row, 0, len(paths))
	for _, p := range paths {
		for i := range snap.Recent {
			if snap.Recent[i].Path != p {
				continue
			}
			rows = append(rows, Row{
				Path:      p,
				Count:     snap.Paths[p],
				IP:        snap.Recent[i].IP,
				Status:    snap.Recent[i].Status,
				UserAgent: snap.Recent[i].UserAgent,
			})
			break
		}
	}
	return rows
}

// SortRows orders rows in place by the active key: count descending, status
// ascending numeric, everything else ascending lexicographic. The sort is
// stable, so ties keep their input order.
func SortRows(rows []Row, key control.SortKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		switch key {
		case control.SortPath:
			return rows[i].Path < rows[j].Path
		case control.SortStatus:
			return rows[i].Status < rows[j].Status
		case control.SortIP:
			return rows[i].IP < rows[j].IP
		case control.SortUserAgent:
			return rows[i].UserAgent < rows[j].UserAgent
		default:
			return rows[i].Count > rows[j].Count
		}
	})
}

// StatusCount is one entry of the status panel.
type StatusCount struct {
	Code  int
	Count uint64
}

// TopStatuses returns the n most frequent status codes, count descending,
// code ascending on ties.
func TopStatuses(snap *stats.Snapshot, n int) []StatusCount {
	out := make([]StatusCount, 0, len(snap.StatusCodes))
	for code, count := range snap.StatusCodes {
		out = append(out, StatusCount{Code: code, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
