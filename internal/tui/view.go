package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/randomizedcoder/httop/internal/stats"
)

const (
	// statusPanelSize is how many status codes the breakdown panel shows.
	statusPanelSize = 5

	// Table column widths, matching a typical 130-column terminal.
	pathWidth      = 36
	userAgentWidth = 64
)

// render assembles the full dashboard frame.
func (m Model) render() string {
	sections := []string{
		m.renderHeader(),
		m.renderSummary(),
		m.renderStatusPanel(),
		m.renderTable(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	header := fmt.Sprintf(" httop │ %s ", time.Now().Format("15:04:05"))
	return headerStyle.Width(m.width).Render(header)
}

func (m Model) renderSummary() string {
	if m.snap == nil {
		return mutedStyle.Render("waiting for log data...")
	}

	s := m.snap
	line := fmt.Sprintf("Total: %s   RPS: %.2f   Bytes: %s",
		stats.FormatNumber(int64(s.TotalCount)),
		s.RPS,
		stats.FormatBytes(int64(s.BytesTotal)),
	)
	if s.LatencySamples > 0 {
		line += fmt.Sprintf("   p50: %.0fms  p95: %.0fms  p99: %.0fms",
			s.LatencyP50*1000, s.LatencyP95*1000, s.LatencyP99*1000)
	}
	return valueStyle.Render(line)
}

func (m Model) renderStatusPanel() string {
	if len(m.statuses) == 0 {
		return ""
	}

	parts := make([]string, 0, len(m.statuses))
	for _, sc := range m.statuses {
		parts = append(parts, statusStyle(sc.Code).Render(
			fmt.Sprintf("%d: %s", sc.Code, stats.FormatNumber(int64(sc.Count)))))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render("Status Codes"),
		strings.Join(parts, mutedStyle.Render("  │  ")),
	)
}

func (m Model) renderTable() string {
	if len(m.rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.rows)+2)
	lines = append(lines, sectionHeaderStyle.Render("Requests"))
	lines = append(lines, tableHeaderStyle.Render(
		fmt.Sprintf("%-7s %-16s %-9s %-*s %-*s",
			"COUNT", "IP", "STATUS", pathWidth, "PATH", userAgentWidth, "USER AGENT")))

	for _, r := range m.rows {
		// Pad before styling: ANSI escapes would break %-9s width math.
		status := statusStyle(r.Status).Render(fmt.Sprintf("%-9d", r.Status))
		line := fmt.Sprintf("%-7d %-16s %s %-*s %-*s",
			r.Count,
			r.IP,
			status,
			pathWidth, truncatePath(r.Path),
			userAgentWidth, truncateUserAgent(r.UserAgent),
		)
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFooter() string {
	sort := fmt.Sprintf("sort: %s   rows: %d", m.state.SortBy, m.state.Limit)
	keys := "q quit │ c/p/s/i/u sort │ +/- rows (Enter to submit)"
	return footerStyle.Render(sort + "   " + keys)
}

// truncatePath trims long paths to the table column, marking the cut.
func truncatePath(p string) string {
	if len(p) > pathWidth {
		return p[:pathWidth-3] + "..."
	}
	return p
}

// truncateUserAgent trims long user agents to the table column.
func truncateUserAgent(ua string) string {
	if len(ua) > userAgentWidth {
		return ua[:userAgentWidth-3] + "..."
	}
	return ua
}
