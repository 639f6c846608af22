package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"gocalc/util"
)

// Listener accepts TCP connections and hands each one to a
// ConnHandler.  With KeepOpen it serves connections concurrently, one
// goroutine each, until the context is cancelled; otherwise it serves
// a single connection and returns.
type Listener struct {
	Address  string        // "host:port"
	KeepOpen bool          // keep accepting after the first connection
	Timeout  time.Duration // idle timeout per connection (0 = none)
	Logger   *util.Logger

	// Ready, if set, is called with the bound address once the
	// listener is accepting.
	Ready func(net.Addr)
}

// Serve listens on l.Address and dispatches accepted connections to h.
// Cancelling ctx closes the listener and every open connection.
func (l *Listener) Serve(ctx context.Context, h ConnHandler) error {
	ln, err := net.Listen("tcp", l.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", l.Address, err)
	}
	defer ln.Close()

	l.Logger.Verbose("listening on %s (tcp)", ln.Addr())
	if l.Ready != nil {
		l.Ready(ln.Addr())
	}

	// Shut the listener down when the context expires.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("accept: %w", err)
			}
		}

		l.Logger.Verbose("connection from %s", conn.RemoteAddr())

		if !l.KeepOpen {
			ln.Close()
			return l.serveConn(ctx, conn, h)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.serveConn(ctx, conn, h); err != nil {
				l.Logger.Warn("%s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

func (l *Listener) serveConn(ctx context.Context, conn net.Conn, h ConnHandler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if l.Timeout > 0 {
		conn = &idleConn{Conn: conn, timeout: l.Timeout}
	}
	err := h(ctx, conn)
	var ne net.Error
	switch {
	case util.IsClosed(err):
		return nil
	case errors.As(err, &ne) && ne.Timeout():
		l.Logger.Verbose("%s: idle timeout", conn.RemoteAddr())
		return nil
	}
	return err
}

// idleConn pushes the read deadline forward before every read, so a
// connection is dropped only after Timeout without input.
type idleConn struct {
	net.Conn
	timeout time.Duration
}

func (c *idleConn) Read(p []byte) (int, error) {
	c.Conn.SetReadDeadline(time.Now().Add(c.timeout)) //nolint:errcheck
	return c.Conn.Read(p)
}
