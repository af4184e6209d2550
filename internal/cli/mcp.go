package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/vigor"
	"github.com/aretw0/vigor/internal/config"
	"github.com/aretw0/vigor/pkg/adapters/mcp"
)

// NewMCPServer builds the MCP server over a fresh store seeded from cfg.
func NewMCPServer(cfg config.Config, logger *slog.Logger) (*mcp.Server, error) {
	st, err := NewStore(cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(vigor.NewReducer(vigor.WithLogger(logger)), st, mcp.WithLogger(logger)), nil
}

// MCP transports accepted by ServeMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP runs the MCP server on the given transport. stdio runs until the
// client disconnects; sse listens on port until ctx is done.
func ServeMCP(ctx context.Context, cfg config.Config, logger *slog.Logger, transport string, port int) error {
	srv, err := NewMCPServer(cfg, logger)
	if err != nil {
		return err
	}

	switch transport {
	case TransportStdio:
		logger.Info("Starting vigor MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		logger.Info("Starting vigor MCP server (SSE)", "port", port)
		return srv.ServeSSE(ctx, port)
	default:
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", transport, TransportStdio, TransportSSE)
	}
}
