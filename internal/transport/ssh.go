package transport

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"golang.org/x/crypto/ssh"

	"gocalc/util"
)

// SSHRequest describes one SSH session channel that asked for a shell
// or a command.
type SSHRequest struct {
	Channel io.ReadWriter
	Command string // exec payload; empty for an interactive shell
	PTY     bool   // the client allocated a pseudo-terminal
	User    string
	Remote  string
}

// SSHHandler serves one session channel and returns the exit status
// reported to the client.
type SSHHandler func(ctx context.Context, req SSHRequest) uint32

// SSHAuth selects how clients authenticate.
type SSHAuth struct {
	Password       string          // accept this password for any user
	AuthorizedKeys []ssh.PublicKey // accept these public keys
	NoAuth         bool            // accept every client
}

// NewSSHServerConfig returns a server configuration presenting
// hostKey and enforcing auth.  At least one method must be enabled.
func NewSSHServerConfig(auth SSHAuth, hostKey ssh.Signer) (*ssh.ServerConfig, error) {
	cfg := &ssh.ServerConfig{
		NoClientAuth:  auth.NoAuth,
		ServerVersion: "SSH-2.0-gocalc",
	}

	if auth.Password != "" {
		want := []byte(auth.Password)
		cfg.PasswordCallback = func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if subtle.ConstantTimeCompare(pass, want) == 1 {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %s", c.User())
		}
	}

	if len(auth.AuthorizedKeys) > 0 {
		allowed := make(map[string]bool, len(auth.AuthorizedKeys))
		for _, k := range auth.AuthorizedKeys {
			allowed[string(k.Marshal())] = true
		}
		cfg.PublicKeyCallback = func(c ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if allowed[string(key.Marshal())] {
				return &ssh.Permissions{
					Extensions: map[string]string{"pubkey-fp": ssh.FingerprintSHA256(key)},
				}, nil
			}
			return nil, fmt.Errorf("unknown public key for %s", c.User())
		}
	}

	if !auth.NoAuth && cfg.PasswordCallback == nil && cfg.PublicKeyCallback == nil {
		return nil, fmt.Errorf("no SSH authentication method configured")
	}

	cfg.AddHostKey(hostKey)
	return cfg, nil
}

// ── key material ─────────────────────────────────────────────────────

// LoadHostKey reads a PEM private key from path.  An empty path
// generates an ephemeral ed25519 key.
func LoadHostKey(path string) (ssh.Signer, error) {
	if path == "" {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generating host key: %w", err)
		}
		return ssh.NewSignerFromKey(priv)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading host key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %s: %w", path, err)
	}
	return signer, nil
}

// LoadAuthorizedKeys parses an OpenSSH authorized_keys file.
func LoadAuthorizedKeys(path string) ([]ssh.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading authorized keys: %w", err)
	}
	return ParseAuthorizedKeys(data)
}

// ParseAuthorizedKeys parses authorized_keys content.  Blank lines and
// comments are skipped.
func ParseAuthorizedKeys(data []byte) ([]ssh.PublicKey, error) {
	var keys []ssh.PublicKey
	for len(data) > 0 {
		key, _, _, rest, err := ssh.ParseAuthorizedKey(data)
		if err != nil {
			if len(keys) == 0 {
				return nil, fmt.Errorf("parsing authorized keys: %w", err)
			}
			break // only trailing blank lines or comments remain
		}
		keys = append(keys, key)
		data = rest
	}
	return keys, nil
}

// ── server ───────────────────────────────────────────────────────────

// SSHServer runs SSH handshakes on accepted connections and dispatches
// "session" channels to Handler.  Its ServeConn method is a
// ConnHandler, so it plugs into a Listener.
type SSHServer struct {
	Config  *ssh.ServerConfig
	Handler SSHHandler
	Logger  *util.Logger
}

// ServeConn performs the handshake on conn and serves its channels
// until the client disconnects or ctx is cancelled.
func (s *SSHServer) ServeConn(ctx context.Context, conn net.Conn) error {
	sconn, chans, reqs, err := ssh.NewServerConn(conn, s.Config)
	if err != nil {
		return fmt.Errorf("ssh handshake: %w", err)
	}
	defer sconn.Close()

	log := s.Logger.With(fmt.Sprintf("ssh %s@%s", sconn.User(), sconn.RemoteAddr()))
	log.Verbose("authenticated (%s)", sconn.ClientVersion())

	go ssh.DiscardRequests(reqs)
	go func() {
		<-ctx.Done()
		sconn.Close()
	}()

	var wg sync.WaitGroup
	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			newCh.Reject(ssh.UnknownChannelType, "only session channels are supported") //nolint:errcheck
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			log.Warn("accept channel: %v", err)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serveChannel(ctx, ch, requests, sconn, log)
		}()
	}
	wg.Wait()
	return nil
}

func (s *SSHServer) serveChannel(ctx context.Context, ch ssh.Channel, requests <-chan *ssh.Request, sconn *ssh.ServerConn, log *util.Logger) {
	defer ch.Close()

	var (
		pty     bool
		started bool
		done    = make(chan uint32, 1)
	)

	for {
		select {
		case status := <-done:
			sendExitStatus(ch, status)
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			switch req.Type {
			case "pty-req":
				pty = true
				req.Reply(true, nil) //nolint:errcheck
			case "env", "window-change":
				req.Reply(true, nil) //nolint:errcheck
			case "shell", "exec":
				if started {
					req.Reply(false, nil) //nolint:errcheck
					continue
				}
				var cmd string
				if req.Type == "exec" {
					var payload struct{ Command string }
					if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
						req.Reply(false, nil) //nolint:errcheck
						continue
					}
					cmd = payload.Command
				}
				started = true
				req.Reply(true, nil) //nolint:errcheck
				log.Debug("%s %q (pty=%v)", req.Type, cmd, pty)

				r := SSHRequest{
					Channel: ch,
					Command: cmd,
					PTY:     pty,
					User:    sconn.User(),
					Remote:  sconn.RemoteAddr().String(),
				}
				go func() { done <- s.Handler(ctx, r) }()
			default:
				req.Reply(false, nil) //nolint:errcheck
			}
		}
	}
}

func sendExitStatus(ch ssh.Channel, status uint32) {
	msg := struct{ Status uint32 }{status}
	ch.SendRequest("exit-status", false, ssh.Marshal(&msg)) //nolint:errcheck
}
