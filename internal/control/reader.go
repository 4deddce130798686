package control

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultTTYPath is the default interactive control source.
const DefaultTTYPath = "/dev/tty"

// OpenTTY opens the control source at path. The caller reports a failure
// once and runs without interactivity; there are no retries.
func OpenTTY(path string) (*os.File, error) {
	if path == "" {
		path = DefaultTTYPath
	}
	return os.Open(path)
}

// Loop reads control lines and forwards typed commands to the render loop.
//
// It runs on its own goroutine for the process lifetime and is not joined on
// exit; after forwarding Quit it stops reading.
type Loop struct {
	logger *slog.Logger

	commandsSent atomic.Int64
}

// NewLoop creates a control input loop.
func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{logger: logger}
}

// Run reads r line by line until the stream ends or a Quit command has been
// sent. Empty lines produce nothing; every other line maps through Map.
func (l *Loop) Run(r io.Reader, ch chan<- Command) {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		cmd := Map(line[0])
		ch <- cmd
		l.commandsSent.Add(1)

		if cmd.Kind == Quit {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		l.logger.Warn("control_stream_error", "error", err)
		return
	}
	l.logger.Debug("control_stream_closed", "commands_sent", l.CommandsSent())
}

// CommandsSent returns how many commands have been forwarded.
func (l *Loop) CommandsSent() int64 {
	return l.commandsSent.Load()
}
