package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/httop/internal/control"
	"github.com/randomizedcoder/httop/internal/metrics"
	"github.com/randomizedcoder/httop/internal/stats"
	"github.com/randomizedcoder/httop/internal/view"
)

// DefaultTickInterval is the dashboard refresh cadence.
const DefaultTickInterval = 500 * time.Millisecond

// TickMsg is sent periodically to update the display.
type TickMsg time.Time

// SnapshotSource provides point-in-time copies of the aggregate store.
type SnapshotSource interface {
	Snapshot() *stats.Snapshot
}

// Config holds TUI configuration.
type Config struct {
	TickInterval time.Duration
	Source       SnapshotSource
	Commands     <-chan control.Command
	State        view.State
	Collector    *metrics.Collector
}

// Model represents the TUI state. One snapshot and one pending command are
// consumed per tick; between ticks nothing is read, so a burst of typed
// commands drains at the tick cadence.
type Model struct {
	tickInterval time.Duration
	source       SnapshotSource
	commands     <-chan control.Command
	collector    *metrics.Collector

	state view.State

	snap     *stats.Snapshot
	rows     []view.Row
	statuses []view.StatusCount

	width  int
	height int

	quitting bool
}

// New creates a new TUI model.
func New(cfg Config) Model {
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	return Model{
		tickInterval: tick,
		source:       cfg.Source,
		commands:     cfg.Commands,
		collector:    cfg.Collector,
		state:        cfg.State,
		width:        80,
		height:       24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	// tea.WithAltScreen() is passed when creating the program.
	return m.tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keyboard input arrives on the control channel, not through
		// bubbletea; ctrl+c stays as the escape hatch.
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.collector.IncRenderTick()

		if m.applyPendingCommand() {
			m.quitting = true
			return m, tea.Quit
		}
		m.refresh()
		return m, m.tickCmd()
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// applyPendingCommand consumes at most one queued command and reports whether
// it requested shutdown.
func (m *Model) applyPendingCommand() bool {
	if m.commands == nil {
		return false
	}
	select {
	case cmd := <-m.commands:
		m.collector.IncCommand(cmd.Kind.String())
		return m.state.Apply(cmd)
	default:
		return false
	}
}

// refresh pulls a fresh snapshot and rebuilds the derived display data.
func (m *Model) refresh() {
	if m.source == nil {
		return
	}

	m.snap = m.source.Snapshot()

	rows := view.BuildRows(m.snap)
	view.SortRows(rows, m.state.SortBy)
	if len(rows) > m.state.Limit {
		rows = rows[:m.state.Limit]
	}
	m.rows = rows
	m.statuses = view.TopStatuses(m.snap, statusPanelSize)

	m.collector.ObserveSnapshot(metrics.SnapshotStats{
		RPS:          m.snap.RPS,
		RecentEvents: len(m.snap.Recent),
		UniquePaths:  len(m.snap.Paths),
		UniqueIPs:    len(m.snap.IPs),
	})
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
