package core

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/term"

	"gocalc/internal/capability"
	calcerr "gocalc/internal/errors"
	"gocalc/internal/metrics"
	"gocalc/internal/session"
	"gocalc/internal/transport"
	"gocalc/util"
)

// SSHMode serves the calculator over SSH.  Interactive sessions with a
// pty get line editing and tab completion; sessions without one get
// the plain line protocol; "ssh host '2+3; sin 30'" evaluates the
// command and reports failures through the exit status (see
// exitStatus).
type SSHMode struct {
	Address            string
	Timeout            time.Duration
	HostKeyPath        string // empty = ephemeral ed25519 key
	AuthorizedKeysPath string
	Password           string
	PasswordPrompt     bool
	NoAuth             bool
	Banner             string
	NewShell           ShellFactory
	Logger             *util.Logger
	Metrics            *metrics.Collector

	// Ready, if set, is called with the bound address.
	Ready func(net.Addr)
}

func (m *SSHMode) String() string { return "listen ssh " + m.Address }

// Run loads the key material and serves SSH connections until ctx is
// cancelled.
func (m *SSHMode) Run(ctx context.Context) error {
	cfg, err := m.serverConfig()
	if err != nil {
		return err
	}

	srv := &transport.SSHServer{Config: cfg, Handler: m.handle, Logger: m.Logger}
	l := &transport.Listener{
		Address:  m.Address,
		KeepOpen: true,
		Timeout:  m.Timeout,
		Logger:   m.Logger,
		Ready:    m.Ready,
	}
	return l.Serve(ctx, srv.ServeConn)
}

func (m *SSHMode) serverConfig() (*ssh.ServerConfig, error) {
	hostKey, err := transport.LoadHostKey(m.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if m.HostKeyPath == "" {
		m.Logger.Info("using ephemeral host key %s", ssh.FingerprintSHA256(hostKey.PublicKey()))
	}

	auth := transport.SSHAuth{Password: m.Password, NoAuth: m.NoAuth}
	if m.PasswordPrompt && auth.Password == "" {
		if auth.Password, err = promptPassword(); err != nil {
			return nil, err
		}
	}
	if m.AuthorizedKeysPath != "" {
		if auth.AuthorizedKeys, err = transport.LoadAuthorizedKeys(m.AuthorizedKeysPath); err != nil {
			return nil, err
		}
		m.Logger.Verbose("loaded %d authorized keys", len(auth.AuthorizedKeys))
	}
	if m.NoAuth {
		m.Logger.Warn("SSH authentication disabled")
	}
	return transport.NewSSHServerConfig(auth, hostKey)
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "SSH password for clients: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(pass) == 0 {
		return "", fmt.Errorf("empty password")
	}
	return string(pass), nil
}

// handle serves one SSH session channel and returns its exit status.
func (m *SSHMode) handle(ctx context.Context, req transport.SSHRequest) uint32 {
	log := sessionLogger(m.Logger, "ssh", req.User+"@"+req.Remote)
	sess := session.New(req.Channel, req.Channel, m.NewShell(), log)
	sess.Remote = req.Remote

	var c capability.Capability
	switch {
	case req.Command != "":
		c = &capability.Eval{Lines: SplitCommands(req.Command)}
	case req.PTY:
		c = &capability.Terminal{Banner: m.Banner}
	default:
		c = &capability.Lines{Banner: m.Banner}
	}

	err := runSession(sess, m.Metrics, func() error { return c.Handle(ctx, sess) })
	if err != nil {
		log.Verbose("%v", err)
	}
	return exitStatus(err)
}

// exitStatus maps a session error to an SSH exit status: 0 on success,
// 1 when a calculation failed and 2 for input or I/O errors.
func exitStatus(err error) uint32 {
	switch {
	case err == nil:
		return 0
	case calcerr.IsCalculation(err):
		return 1
	default:
		return 2
	}
}

// SplitCommands splits a one-shot command line into shell lines at
// ';' and newlines.
func SplitCommands(cmd string) []string {
	return strings.FieldsFunc(cmd, func(r rune) bool { return r == ';' || r == '\n' })
}
