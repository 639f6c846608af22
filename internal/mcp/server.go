// Package mcp exposes the calculator engine as Model Context Protocol
// tools, served over stdio with mark3labs/mcp-go.
//
// Every tool runs against one calculator.Shared, so memory, angle mode
// and last result persist across calls and concurrent calls are
// serialised.
package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"gocalc/calculator"
	"gocalc/internal/metrics"
	"gocalc/internal/shell"
	"gocalc/util"
)

// Options configures a Server.
type Options struct {
	Version   string
	Precision int // significant digits in results; 0 = shortest
	Metrics   *metrics.Collector
	Logger    *util.Logger
}

// Server holds the shared engine and the registered MCP tools.
type Server struct {
	calc    *calculator.Shared
	opts    Options
	mcp     *server.MCPServer
	metrics *metrics.Collector
	logger  *util.Logger
}

// New registers every calculator tool on a fresh MCP server.
func New(calc *calculator.Shared, opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Logger == nil {
		opts.Logger = util.NewLogger(0)
	}
	s := &Server{
		calc:    calc,
		opts:    opts,
		metrics: opts.Metrics,
		logger:  opts.Logger.With("mcp"),
		mcp: server.NewMCPServer(
			"gocalc",
			opts.Version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// Serve speaks MCP over in/out until in is exhausted or ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Verbose("serving tools on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) num(v float64) string { return shell.FormatNumber(v, s.opts.Precision) }
