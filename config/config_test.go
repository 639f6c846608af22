package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	calcerr "gocalc/internal/errors"
)

// ── Defaults ─────────────────────────────────────────────────────────

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.Precision != DefaultPrecision {
		t.Errorf("Precision = %d, want %d", cfg.Precision, DefaultPrecision)
	}
	if cfg.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", cfg.Debounce, DefaultDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestListenPort(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"tcp default", Config{Listen: true}, DefaultPort},
		{"ssh default", Config{SSH: true}, DefaultSSHPort},
		{"explicit", Config{SSH: true, Port: 9000}, 9000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ListenPort(); got != tt.want {
				t.Errorf("ListenPort() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ── Validate ─────────────────────────────────────────────────────────

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"console", Config{Precision: 10}},
		{"eval", Config{Eval: []string{"2+3"}}},
		{"script watch", Config{ScriptPath: "calc.txt", Watch: true}},
		{"listen", Config{Listen: true, Port: 7000, KeepOpen: true, Timeout: time.Minute}},
		{"ssh password", Config{SSH: true, SSHPassword: "pw"}},
		{"ssh prompt", Config{SSH: true, SSHPasswordPrompt: true}},
		{"ssh keys", Config{SSH: true, AuthorizedKeysPath: "keys", HostKeyPath: "hk"}},
		{"ssh open", Config{SSH: true, SSHNoAuth: true}},
		{"mcp", Config{MCP: true, Radians: true}},
		{"shortest precision", Config{Precision: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

// TestValidate_ErrorMessages verifies that Validate returns actionable
// error messages, with hints where a fix is obvious.
func TestValidate_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		field   string
		wantSub string
	}{
		{"two modes", Config{Listen: true, MCP: true}, "mode", "at most one"},
		{"eval and script", Config{Eval: []string{"1"}, ScriptPath: "x"}, "mode", "at most one"},
		{"port range", Config{Listen: true, Port: 70000}, "port", "out of range"},
		{"port without server", Config{Port: 8080}, "port", "hint:"},
		{"keep-open without server", Config{KeepOpen: true}, "keep-open", "hint:"},
		{"negative timeout", Config{Listen: true, Timeout: -time.Second}, "timeout", "negative"},
		{"watch without script", Config{Watch: true}, "watch", "hint:"},
		{"precision", Config{Precision: 40}, "precision", "0-17"},
		{"ssh without auth", Config{SSH: true}, "ssh", "GOCALC_SSH_PASSWORD"},
		{"ssh no-auth conflict", Config{SSH: true, SSHNoAuth: true, SSHPassword: "pw"}, "ssh-no-auth", "conflicts"},
		{"host key without ssh", Config{HostKeyPath: "k"}, "host-key", "requires --ssh"},
		{"authorized keys without ssh", Config{AuthorizedKeysPath: "k"}, "authorized-keys", "requires --ssh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			var ce *calcerr.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not a ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}
