// Package control reads interactive commands from a control stream.
//
// The control stream is independent of the log stream: the access log is
// piped into stdin while the operator types at the terminal, so the two
// producers never share a channel. Each control line's first character
// selects a command; anything unrecognized is a no-op.
package control

import "fmt"

// SortKey selects the column the dashboard table is ordered by.
type SortKey int

const (
	SortCount SortKey = iota
	SortPath
	SortStatus
	SortIP
	SortUserAgent
)

// String returns the flag/display name of the sort key.
func (k SortKey) String() string {
	switch k {
	case SortPath:
		return "path"
	case SortStatus:
		return "status"
	case SortIP:
		return "ip"
	case SortUserAgent:
		return "user-agent"
	default:
		return "count"
	}
}

// ParseSortKey parses a sort key name as accepted by the -sort flag.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "count":
		return SortCount, nil
	case "path":
		return SortPath, nil
	case "status":
		return SortStatus, nil
	case "ip":
		return SortIP, nil
	case "user-agent":
		return SortUserAgent, nil
	default:
		return SortCount, fmt.Errorf("unknown sort key %q (want count, path, status, ip, or user-agent)", s)
	}
}

// Kind discriminates the closed set of commands.
type Kind int

const (
	Noop Kind = iota
	Quit
	SetSort
	IncreaseLimit
	DecreaseLimit
)

// String returns the metrics label for the command kind.
func (k Kind) String() string {
	switch k {
	case Quit:
		return "quit"
	case SetSort:
		return "set-sort"
	case IncreaseLimit:
		return "increase-limit"
	case DecreaseLimit:
		return "decrease-limit"
	default:
		return "noop"
	}
}

// Command is one typed directive from the operator.
type Command struct {
	Kind Kind

	// Sort is only meaningful when Kind == SetSort.
	Sort SortKey
}

// Map translates the first character of a control line into a Command.
func Map(c byte) Command {
	switch c {
	case 'q':
		return Command{Kind: Quit}
	case 's':
		return Command{Kind: SetSort, Sort: SortStatus}
	case 'p':
		return Command{Kind: SetSort, Sort: SortPath}
	case 'c':
		return Command{Kind: SetSort, Sort: SortCount}
	case 'i':
		return Command{Kind: SetSort, Sort: SortIP}
	case 'u':
		return Command{Kind: SetSort, Sort: SortUserAgent}
	case '+':
		return Command{Kind: IncreaseLimit}
	case '-':
		return Command{Kind: DecreaseLimit}
	default:
		return Command{Kind: Noop}
	}
}
