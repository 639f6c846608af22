// Package session represents one calculator conversation: an input
// stream, an output stream and the shell that evaluates what arrives.
//
// Sessions decouple capabilities from concrete I/O sources.  A
// capability doesn't know whether it is reading from os.Stdin, a TCP
// connection or an SSH channel; it just uses the session's In/Out.
package session

import (
	"io"

	"gocalc/internal/metrics"
	"gocalc/internal/shell"
	"gocalc/util"
)

// Session encapsulates the runtime context for a single conversation.
type Session struct {
	In     io.Reader
	Out    io.Writer
	Shell  *shell.Shell
	Logger *util.Logger
	Remote string // peer address; empty for local sessions
}

// New creates a Session bound to the given I/O pair.  A nil sh gets a
// shell over a fresh engine.
func New(in io.Reader, out io.Writer, sh *shell.Shell, logger *util.Logger) *Session {
	if sh == nil {
		sh = shell.New(nil)
	}
	return &Session{
		In:     in,
		Out:    out,
		Shell:  sh,
		Logger: logger,
	}
}

// Track records the session as open in c and returns the function that
// records it as closed.
func (s *Session) Track(c *metrics.Collector) func() {
	c.SessionOpened()
	s.Logger.Verbose("session opened")
	return func() {
		c.SessionClosed()
		s.Logger.Verbose("session closed")
	}
}
