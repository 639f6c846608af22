package core

import (
	"fmt"
	"io"

	"gocalc/calculator"
	"gocalc/config"
	"gocalc/internal/mcp"
	"gocalc/internal/metrics"
	"gocalc/internal/shell"
	"gocalc/util"
)

// Env carries the process-level dependencies shared by every mode.
type Env struct {
	Logger  *util.Logger
	Metrics *metrics.Collector
	Version string

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

// Build constructs the appropriate Mode from the given configuration.
func Build(cfg *config.Config, env Env) (Mode, error) {
	if env.Logger == nil {
		env.Logger = util.NewLogger(cfg.Verbose)
	}
	newShell := shellFactory(cfg, env.Metrics)

	switch {
	case cfg.MCP:
		return buildMCP(cfg, env), nil
	case cfg.SSH:
		return buildSSH(cfg, env, newShell), nil
	case cfg.Listen:
		return buildListen(cfg, env, newShell), nil
	case cfg.ScriptPath != "" || len(cfg.Eval) > 0:
		return buildScript(cfg, env, newShell), nil
	default:
		return &ConsoleMode{
			NewShell: newShell,
			Banner:   banner(env.Version),
			Logger:   env.Logger,
			Metrics:  env.Metrics,
			Stdin:    env.Stdin,
			Stdout:   env.Stdout,
		}, nil
	}
}

// ── mode builders ────────────────────────────────────────────────────

func buildScript(cfg *config.Config, env Env, newShell ShellFactory) Mode {
	return &ScriptMode{
		Lines:    cfg.Eval,
		Path:     cfg.ScriptPath,
		Watch:    cfg.Watch,
		Debounce: cfg.Debounce,
		NewShell: newShell,
		Logger:   env.Logger,
		Metrics:  env.Metrics,
		Stdout:   env.Stdout,
	}
}

func buildListen(cfg *config.Config, env Env, newShell ShellFactory) Mode {
	return &ListenMode{
		Address:  util.FormatAddr(cfg.Host, cfg.ListenPort()),
		KeepOpen: cfg.KeepOpen,
		Timeout:  cfg.Timeout,
		Banner:   banner(env.Version),
		NewShell: newShell,
		Logger:   env.Logger,
		Metrics:  env.Metrics,
	}
}

func buildSSH(cfg *config.Config, env Env, newShell ShellFactory) Mode {
	return &SSHMode{
		Address:            util.FormatAddr(cfg.Host, cfg.ListenPort()),
		Timeout:            cfg.Timeout,
		HostKeyPath:        cfg.HostKeyPath,
		AuthorizedKeysPath: cfg.AuthorizedKeysPath,
		Password:           cfg.SSHPassword,
		PasswordPrompt:     cfg.SSHPasswordPrompt,
		NoAuth:             cfg.SSHNoAuth,
		Banner:             banner(env.Version),
		NewShell:           newShell,
		Logger:             env.Logger,
		Metrics:            env.Metrics,
	}
}

func buildMCP(cfg *config.Config, env Env) Mode {
	e := calculator.New()
	e.SetAngleMode(!cfg.Radians)
	return &MCPMode{
		Server: mcp.New(calculator.NewShared(e), mcp.Options{
			Version:   env.Version,
			Precision: cfg.Precision,
			Metrics:   env.Metrics,
			Logger:    env.Logger,
		}),
		Stdin:  env.Stdin,
		Stdout: env.Stdout,
	}
}

// ── shared helpers ───────────────────────────────────────────────────

// shellFactory returns a ShellFactory honouring the configured angle
// mode and precision.
func shellFactory(cfg *config.Config, m *metrics.Collector) ShellFactory {
	return func() *shell.Shell {
		e := calculator.New()
		e.SetAngleMode(!cfg.Radians)
		return shell.New(e, shell.WithPrecision(cfg.Precision), shell.WithMetrics(m))
	}
}

func banner(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("gocalc %s - type 'help' for commands, 'quit' to leave", version)
}
