package core

import (
	"context"
	"net"
	"time"

	"gocalc/internal/capability"
	"gocalc/internal/metrics"
	"gocalc/internal/session"
	"gocalc/internal/transport"
	"gocalc/util"
)

// ListenMode serves the line protocol over TCP.  Every connection gets
// its own engine.  With KeepOpen it serves connections concurrently;
// otherwise it handles one connection and returns.
type ListenMode struct {
	Address  string // "host:port"
	KeepOpen bool
	Timeout  time.Duration
	Banner   string
	Prompt   bool
	NewShell ShellFactory
	Logger   *util.Logger
	Metrics  *metrics.Collector

	// Ready, if set, is called with the bound address.
	Ready func(net.Addr)
}

func (m *ListenMode) String() string { return "listen tcp " + m.Address }

// Run starts listening and serves accepted connections until ctx is
// cancelled (or after the first connection without KeepOpen).
func (m *ListenMode) Run(ctx context.Context) error {
	l := &transport.Listener{
		Address:  m.Address,
		KeepOpen: m.KeepOpen,
		Timeout:  m.Timeout,
		Logger:   m.Logger,
		Ready:    m.Ready,
	}
	return l.Serve(ctx, m.serveConn)
}

func (m *ListenMode) serveConn(ctx context.Context, conn net.Conn) error {
	remote := conn.RemoteAddr().String()
	sess := session.New(conn, conn, m.NewShell(), sessionLogger(m.Logger, "tcp", remote))
	sess.Remote = remote

	return runSession(sess, m.Metrics, func() error {
		return (&capability.Lines{Banner: m.Banner, Prompt: m.Prompt}).Handle(ctx, sess)
	})
}
