package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"gocalc/internal/capability"
	"gocalc/internal/metrics"
	"gocalc/internal/session"
	"gocalc/util"
)

// ConsoleMode runs the interactive calculator on the process's own
// stdin/stdout.  When stdin is a terminal it switches it to raw mode
// and offers line editing; otherwise it reads plain lines, which
// makes "echo '2+3' | gocalc" work.
type ConsoleMode struct {
	NewShell ShellFactory
	Banner   string
	Logger   *util.Logger
	Metrics  *metrics.Collector

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ConsoleMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ConsoleMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *ConsoleMode) String() string { return "console" }

// Run serves one session on stdin/stdout.
func (m *ConsoleMode) Run(ctx context.Context) error {
	in, out := m.stdin(), m.stdout()
	sess := session.New(in, out, m.NewShell(), m.Logger.With("console"))

	var c capability.Capability = &capability.Lines{}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("console: %w", err)
		}
		defer term.Restore(int(f.Fd()), state) //nolint:errcheck
		c = &capability.Terminal{Banner: m.Banner}
	}

	return runSession(sess, m.Metrics, func() error {
		return c.Handle(ctx, sess)
	})
}
