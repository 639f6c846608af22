package core

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gocalc/config"
	"gocalc/internal/metrics"
	"gocalc/util"
)

// TestConsoleMode_Pipe verifies that non-terminal input is read as
// plain lines, without banner or prompt.
func TestConsoleMode_Pipe(t *testing.T) {
	var out bytes.Buffer
	m := metrics.New()
	mode := &ConsoleMode{
		NewShell: shellFactory(config.New(), m),
		Banner:   "hello",
		Logger:   util.NewLogger(0),
		Metrics:  m,
		Stdin:    strings.NewReader("2 x 3\nans + 1\n"),
		Stdout:   &out,
	}

	if err := mode.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "2 * 3 = 6\n6 + 1 = 7\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if n := m.Operations(); n != 2 {
		t.Errorf("Operations = %d, want 2", n)
	}
	if n := m.TotalSessions(); n != 1 {
		t.Errorf("TotalSessions = %d, want 1", n)
	}
}

func TestMCPMode_String(t *testing.T) {
	mode, err := Build(&config.Config{MCP: true}, Env{Logger: util.NewLogger(0)})
	if err != nil {
		t.Fatal(err)
	}
	if mode.String() != "mcp stdio" {
		t.Errorf("String() = %q", mode.String())
	}
}
