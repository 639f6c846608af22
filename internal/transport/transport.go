// Package transport provides the network side of the calculator
// servers: a TCP accept loop and an SSH server that runs on top of it.
// Transports handle the "how" of reaching a client, independent of
// what is said over the connection (which is the capability layer's
// job).
package transport

import (
	"context"
	"net"
)

// ConnHandler serves one accepted connection.  It should return when
// the conversation ends or ctx is cancelled.
type ConnHandler func(ctx context.Context, conn net.Conn) error
