package core

import (
	"context"
	"io"
	"os"

	"gocalc/internal/mcp"
)

// MCPMode serves the calculator as MCP tools on stdin/stdout.  All
// tool calls share one engine.
type MCPMode struct {
	Server *mcp.Server

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *MCPMode) String() string { return "mcp stdio" }

// Run serves until stdin closes or ctx is cancelled.
func (m *MCPMode) Run(ctx context.Context) error {
	in, out := m.Stdin, m.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return m.Server.Serve(ctx, in, out)
}
