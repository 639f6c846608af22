// Package cmd wires up the CLI flags and dispatches to the gocalc core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"gocalc/config"
	"gocalc/internal/core"
	"gocalc/internal/metrics"
	"gocalc/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X gocalc/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate gocalc mode.
func Execute(ctx context.Context, args []string) error {
	cfg := config.New()
	config.LoadFromEnv(cfg)
	fs := flag.NewFlagSet("gocalc", flag.ContinueOnError)

	// ── mode ─────────────────────────────────────────────────────
	fs.BoolVarP(&cfg.Listen, "listen", "l", cfg.Listen, "Serve the calculator over TCP")
	fs.BoolVar(&cfg.SSH, "ssh", cfg.SSH, "Serve the calculator over SSH")
	fs.BoolVar(&cfg.MCP, "mcp", cfg.MCP, "Serve MCP tools on stdin/stdout")
	fs.StringArrayVarP(&cfg.Eval, "eval", "e", nil, "Evaluate a line and exit (repeatable)")
	fs.StringVarP(&cfg.ScriptPath, "script", "s", "", "Evaluate a script file")
	fs.BoolVar(&cfg.Watch, "watch", false, "Re-evaluate the script whenever it changes")

	// ── network ──────────────────────────────────────────────────
	fs.StringVar(&cfg.Host, "bind", cfg.Host, "Bind address (default all interfaces)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Listen port (default 7777, 2222 with --ssh)")
	fs.BoolVarP(&cfg.KeepOpen, "keep-open", "k", cfg.KeepOpen, "Accept multiple connections (with -l)")

	timeoutSec := int(cfg.Timeout / time.Second)
	fs.IntVarP(&timeoutSec, "timeout", "w", timeoutSec, "Idle timeout in seconds")

	// ── SSH server ───────────────────────────────────────────────
	fs.StringVar(&cfg.HostKeyPath, "host-key", cfg.HostKeyPath, "SSH host key file (ephemeral if empty)")
	fs.StringVar(&cfg.AuthorizedKeysPath, "authorized-keys", cfg.AuthorizedKeysPath, "Accept public keys from this file")
	fs.BoolVar(&cfg.SSHPasswordPrompt, "ssh-password", false, "Prompt for the password clients must use")
	fs.BoolVar(&cfg.SSHNoAuth, "ssh-no-auth", cfg.SSHNoAuth, "Accept SSH clients without authentication")

	// ── calculator ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.Radians, "radians", "r", cfg.Radians, "Start in radians instead of degrees")
	fs.IntVar(&cfg.Precision, "precision", cfg.Precision, "Significant digits in results (0 = shortest exact)")

	// ── output ───────────────────────────────────────────────────
	fs.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "Delay before re-evaluating a watched script")
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "Print a metrics snapshot to stderr on exit")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Validate flags, print the selected mode and exit")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("gocalc %s\n", version)
		return nil
	}

	if fs.Changed("timeout") {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}

	// Positional arguments are lines to evaluate: gocalc 2+3 'sin 30'
	cfg.Eval = append(cfg.Eval, fs.Args()...)

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	var collector *metrics.Collector
	if cfg.Metrics {
		collector = metrics.New()
	}

	mode, err := core.Build(cfg, core.Env{
		Logger:  logger,
		Metrics: collector,
		Version: version,
	})
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Println(mode.String())
		return nil
	}

	logger.Verbose("starting %s", mode)
	err = mode.Run(ctx)
	if collector != nil {
		fmt.Fprintln(os.Stderr, collector.JSON())
	}
	return err
}

// ── helpers ──────────────────────────────────────────────────────────

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gocalc – scientific calculator v%s

Arithmetic, trigonometry and a memory register, served on the
console, from scripts, over TCP or SSH, or as MCP tools.

Usage:
  gocalc [options]                            Interactive console
  gocalc [options] <line> [line...]           Evaluate and exit
  gocalc -s <file> [--watch]                  Evaluate a script
  gocalc -l [-p port] [-k]                    Serve over TCP
  gocalc --ssh [-p port] [auth options]       Serve over SSH
  gocalc --mcp                                Serve MCP tools on stdio

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  GOCALC_LISTEN, GOCALC_SSH, GOCALC_MCP, GOCALC_HOST, GOCALC_PORT,
  GOCALC_KEEP_OPEN, GOCALC_TIMEOUT, GOCALC_HOST_KEY,
  GOCALC_AUTHORIZED_KEYS, GOCALC_SSH_PASSWORD, GOCALC_SSH_NO_AUTH,
  GOCALC_ANGLE_MODE, GOCALC_PRECISION, GOCALC_VERBOSE,
  GOCALC_METRICS, GOCALC_DEBOUNCE_MS

Examples:
  gocalc '2 + 3' 'sin 30'                     One-shot evaluation
  echo '6 * 7' | gocalc                       Pipe lines in
  gocalc -l -k -p 7777                        Shared TCP calculator
  GOCALC_SSH_PASSWORD=s3cret gocalc --ssh     SSH calculator
  ssh -p 2222 calc@host 'ms 42; m * 2'        Remote one-shot
`)
}
