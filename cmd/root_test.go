package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	calcerr "gocalc/internal/errors"
)

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	if err := Execute(context.Background(), []string{"--version"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"-h"}} {
		t.Run(args[0], func(t *testing.T) {
			if err := Execute(context.Background(), args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestExecute_DryRun verifies --dry-run validates and exits cleanly
// for every mode.
func TestExecute_DryRun(t *testing.T) {
	tests := [][]string{
		{"-l", "-p", "8080", "-k"},
		{"--ssh", "--ssh-no-auth", "-w", "30"},
		{"--mcp", "-r"},
		{"-e", "2+3", "-e", "sin 30"},
		{"-s", "calc.txt", "--watch", "--debounce", "50ms"},
		{"--precision", "4"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if err := Execute(context.Background(), append(args, "--dry-run")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	tests := []struct {
		args  []string
		field string
	}{
		{[]string{"-l", "--mcp"}, "mode"},
		{[]string{"-p", "8080"}, "port"},
		{[]string{"-l", "-p", "70000"}, "port"},
		{[]string{"--watch"}, "watch"},
		{[]string{"--ssh"}, "ssh"},
		{[]string{"--host-key", "key"}, "host-key"},
		{[]string{"--precision", "30"}, "precision"},
		{[]string{"-e", "1+1", "2+2", "-l"}, "mode"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			err := Execute(context.Background(), append(tt.args, "--dry-run"))
			var ce *calcerr.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	if err := Execute(context.Background(), []string{"--nonexistent-flag"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// TestExecute_EnvDefaults verifies GOCALC_* variables act as flag
// defaults that flags can override.
func TestExecute_EnvDefaults(t *testing.T) {
	t.Setenv("GOCALC_PRECISION", "40")
	err := Execute(context.Background(), []string{"--dry-run"})
	if err == nil {
		t.Fatal("expected precision from environment to be validated")
	}
	if err := Execute(context.Background(), []string{"--precision", "5", "--dry-run"}); err != nil {
		t.Fatalf("flag should override environment: %v", err)
	}
}

// TestExecute_Eval runs positional lines and reports failures.
func TestExecute_Eval(t *testing.T) {
	if err := Execute(context.Background(), []string{"2+3", "ans * 2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Execute(context.Background(), []string{"-e", "1/0"})
	if !errors.Is(err, calcerr.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestExecute_Script(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.txt")
	if err := os.WriteFile(path, []byte("ms 2\nm * 21\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Execute(context.Background(), []string{"-s", path, "--metrics"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
