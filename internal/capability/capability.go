// Package capability defines what happens over an established
// session.  Each Capability encapsulates one way of driving the shell
// (a plain line protocol, an interactive terminal, a fixed list of
// expressions) and operates on a Session rather than a raw net.Conn,
// which keeps capabilities testable and decoupled from transport
// details.
package capability

import (
	"context"

	"gocalc/internal/session"
)

// Capability drives a session's shell according to a specific
// behaviour.  Implementations include Lines (one reply per input
// line), Terminal (line editing over a TTY) and Eval (a fixed list of
// expressions).
type Capability interface {
	// Handle runs the capability against the given session.
	// It blocks until the input is exhausted, the user quits or the
	// context is cancelled.
	Handle(ctx context.Context, sess *session.Session) error
}
