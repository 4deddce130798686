// Package view holds the user-controlled view state and the pure row
// building and sorting logic behind the dashboard table.
package view

import "github.com/randomizedcoder/httop/internal/control"

const (
	// DefaultLimit is the initial number of table rows shown.
	DefaultLimit = 20

	// LimitStep is how much one +/- command adjusts the row limit.
	LimitStep = 5

	// MinLimit is the row-limit floor; there is no ceiling.
	MinLimit = 5
)

// State is the render loop's view of the operator's choices. It is owned by
// the render loop and mutated only when a command is applied.
type State struct {
	SortBy control.SortKey
	Limit  int
}

// NewState creates a view state, clamping the limit to the floor.
func NewState(sort control.SortKey, limit int) State {
	if limit < MinLimit {
		limit = MinLimit
	}
	return State{SortBy: sort, Limit: limit}
}

// Apply applies one command to the state and reports whether the command
// requests shutdown. Noop commands change nothing.
func (s *State) Apply(cmd control.Command) (quit bool) {
	switch cmd.Kind {
	case control.Quit:
		return true
	case control.SetSort:
		s.SortBy = cmd.Sort
	case control.IncreaseLimit:
		s.Limit += LimitStep
	case control.DecreaseLimit:
		if s.Limit > MinLimit {
			s.Limit -= LimitStep
		}
	}
	return false
}
