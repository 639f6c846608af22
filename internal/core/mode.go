// Package core is the orchestration layer.  It composes transports
// and capabilities into complete operational modes and provides a
// builder that selects the right mode from a Config.
//
// Architecture layers (bottom → top):
//
//	calculator  →  shell  →  session  →  capability  →  transport  →  core  →  cmd (CLI)
//
// The builder in this package is the single dispatch point between
// the command line and the front-ends.
package core

import (
	"context"

	"gocalc/internal/metrics"
	"gocalc/internal/session"
	"gocalc/internal/shell"
	"gocalc/util"
)

// Mode represents a complete front-end of gocalc (console, script,
// TCP server, SSH server or MCP server).  Each mode owns its full
// lifecycle from start-up to teardown.
type Mode interface {
	Run(ctx context.Context) error

	// String describes the mode for --dry-run and logs.
	String() string
}

// ShellFactory returns a new shell over a fresh engine.  Modes that
// serve several sessions call it once per session.
type ShellFactory func() *shell.Shell

// runSession tracks sess in m for the duration of fn.
func runSession(sess *session.Session, m *metrics.Collector, fn func() error) error {
	done := sess.Track(m)
	defer done()
	return fn()
}

func sessionLogger(l *util.Logger, kind, remote string) *util.Logger {
	if remote == "" {
		return l.With(kind)
	}
	return l.With(kind + " " + remote)
}
