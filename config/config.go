// Package config defines the runtime configuration for gocalc: which
// front-end to run, where to listen and how to present results.
package config

import (
	"time"

	calcerr "gocalc/internal/errors"
)

// Config holds every tuneable for a single gocalc run.
type Config struct {
	// ── Mode ─────────────────────────────────────────────────────────
	Listen     bool     // serve the line protocol over TCP
	SSH        bool     // serve the shell over SSH
	MCP        bool     // serve MCP tools on stdin/stdout
	Eval       []string // -e: evaluate these lines and exit
	ScriptPath string   // -s: evaluate a script file
	Watch      bool     // re-evaluate ScriptPath whenever it changes

	// ── Network ──────────────────────────────────────────────────────
	Host     string // bind address; empty = all interfaces
	Port     int    // 0 = mode default
	KeepOpen bool
	Timeout  time.Duration // per-connection idle timeout

	// ── SSH server ───────────────────────────────────────────────────
	HostKeyPath        string
	AuthorizedKeysPath string
	SSHPassword        string // environment only, never a flag
	SSHPasswordPrompt  bool   // read the password from the terminal
	SSHNoAuth          bool

	// ── Calculator ───────────────────────────────────────────────────
	Radians   bool // start in radians instead of degrees
	Precision int  // significant digits; 0 = shortest exact form

	// ── Output ───────────────────────────────────────────────────────
	Verbose  int
	Metrics  bool // print a metrics snapshot on exit
	DryRun   bool // validate and describe the mode, then exit
	Debounce time.Duration
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Precision: DefaultPrecision,
		Debounce:  DefaultDebounce,
	}
}

// Network reports whether the configuration selects a network server.
func (c *Config) Network() bool { return c.Listen || c.SSH }

// ListenPort returns the configured port or the mode's default.
func (c *Config) ListenPort() int {
	switch {
	case c.Port != 0:
		return c.Port
	case c.SSH:
		return DefaultSSHPort
	default:
		return DefaultPort
	}
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	modes := 0
	for _, on := range []bool{c.Listen, c.SSH, c.MCP, len(c.Eval) > 0, c.ScriptPath != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return &calcerr.ConfigError{
			Field:   "mode",
			Message: "choose at most one of --listen, --ssh, --mcp, --eval and --script",
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return &calcerr.ConfigError{Field: "port", Value: c.Port, Message: "out of range 1-65535"}
	}
	if c.Port != 0 && !c.Network() {
		return &calcerr.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "only applies to network modes",
			Hint:    "add --listen or --ssh",
		}
	}
	if c.KeepOpen && !c.Network() {
		return &calcerr.ConfigError{
			Field:   "keep-open",
			Message: "only applies to network modes",
			Hint:    "add --listen or --ssh",
		}
	}
	if c.Timeout < 0 {
		return &calcerr.ConfigError{Field: "timeout", Value: c.Timeout, Message: "must not be negative"}
	}

	if c.Watch && c.ScriptPath == "" {
		return &calcerr.ConfigError{
			Field:   "watch",
			Message: "requires a script file",
			Hint:    "use --script <file> --watch",
		}
	}
	if c.Debounce < 0 {
		return &calcerr.ConfigError{Field: "debounce", Value: c.Debounce, Message: "must not be negative"}
	}

	if c.Precision < 0 || c.Precision > MaxPrecision {
		return &calcerr.ConfigError{
			Field:   "precision",
			Value:   c.Precision,
			Message: "out of range 0-17",
			Hint:    "0 prints the shortest exact form",
		}
	}

	return c.validateSSH()
}

func (c *Config) validateSSH() error {
	if !c.SSH {
		switch {
		case c.HostKeyPath != "":
			return &calcerr.ConfigError{Field: "host-key", Message: "requires --ssh"}
		case c.AuthorizedKeysPath != "":
			return &calcerr.ConfigError{Field: "authorized-keys", Message: "requires --ssh"}
		case c.SSHNoAuth:
			return &calcerr.ConfigError{Field: "ssh-no-auth", Message: "requires --ssh"}
		case c.SSHPasswordPrompt:
			return &calcerr.ConfigError{Field: "ssh-password", Message: "requires --ssh"}
		}
		return nil
	}

	hasAuth := c.SSHPassword != "" || c.SSHPasswordPrompt || c.AuthorizedKeysPath != ""
	if c.SSHNoAuth && hasAuth {
		return &calcerr.ConfigError{
			Field:   "ssh-no-auth",
			Message: "conflicts with password and key authentication",
		}
	}
	if !c.SSHNoAuth && !hasAuth {
		return &calcerr.ConfigError{
			Field:   "ssh",
			Message: "no authentication method configured",
			Hint:    "set " + EnvPrefix + "SSH_PASSWORD, use --ssh-password, --authorized-keys, or --ssh-no-auth",
		}
	}
	return nil
}
