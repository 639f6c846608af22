package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the TCP port of the line-protocol server.
	DefaultPort = 7777

	// DefaultSSHPort is the port of the SSH shell server.  It avoids 22
	// so the server runs without privileges next to a system sshd.
	DefaultSSHPort = 2222

	// DefaultPrecision is the number of significant digits printed.
	DefaultPrecision = 10

	// MaxPrecision is the largest useful precision for a float64.
	MaxPrecision = 17

	// DefaultDebounce is how long watch mode waits for file events to
	// settle before re-evaluating.
	DefaultDebounce = 200 * time.Millisecond

	// EnvPrefix prefixes every environment variable gocalc reads.
	EnvPrefix = "GOCALC_"
)
