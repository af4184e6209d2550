package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/vigor"
	"github.com/aretw0/vigor/internal/logging"
	"github.com/aretw0/vigor/pkg/domain"
	"github.com/aretw0/vigor/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StateURI identifies the store snapshot resource.
const StateURI = "vigor://state"

// ReduceArgs are the arguments of the reduce tool.
type ReduceArgs struct {
	Action string   `json:"action"`
	Energy *float64 `json:"energy,omitempty"`
}

// DispatchArgs are the arguments of the dispatch tool.
type DispatchArgs struct {
	Action string `json:"action"`
}

// StateResponse aligns with the HTTP snapshot and provides a unified structure across adapters.
type StateResponse struct {
	State    domain.State `json:"state" jsonschema_description:"The resulting state"`
	Revision *uint64      `json:"revision,omitempty" jsonschema_description:"Store revision, present on snapshots only"`
}

// Server exposes the reducer and the store as an MCP Server.
type Server struct {
	reducer   ports.Reducer
	store     ports.Dispatcher
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for tool failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(reducer ports.Reducer, store ports.Dispatcher, opts ...Option) *Server {
	s := &Server{
		reducer: reducer,
		store:   store,
		logger:  logging.NewNop(),
		mcpServer: server.NewMCPServer("vigor-mcp", vigor.Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// SSEHandler returns the HTTP handler for the SSE transport, mounting the
// event stream at /sse and the client message endpoint at /message.
func (s *Server) SSEHandler(baseURL string) http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	return mux
}

// ServeSSE starts the server using Server-Sent Events on the given port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.SSEHandler(fmt.Sprintf("http://localhost:%d", port)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// SSE streams stay open until the client leaves; Close ends them.
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return httpServer.Close()
		}
		return nil
	}
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func actionNames() []string {
	names := make([]string, 0, len(domain.Actions()))
	for _, a := range domain.Actions() {
		names = append(names, a.String())
	}
	return names
}

func (s *Server) registerTools() {
	// TOOL: reduce
	reduceTool := mcp.NewTool("reduce",
		mcp.WithDescription("Compute the next state for an action without touching the shared store. If energy is omitted, the initial state is used."),
		mcp.WithString("action", mcp.Required(), mcp.Enum(actionNames()...), mcp.Description("The action that happened")),
		mcp.WithNumber("energy", mcp.Description("Current energy (optional)")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(reduceTool, mcp.NewStructuredToolHandler(s.handleReduce))

	// TOOL: dispatch
	dispatchTool := mcp.NewTool("dispatch",
		mcp.WithDescription("Dispatch an action into the shared store and return the state it produced. Use get_state for the revision."),
		mcp.WithString("action", mcp.Required(), mcp.Enum(actionNames()...), mcp.Description("The action that happened")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(dispatchTool, mcp.NewStructuredToolHandler(s.handleDispatch))

	// TOOL: get_state
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the current state of the shared store."),
	), s.handleGetState)
}

func (s *Server) handleReduce(ctx context.Context, request mcp.CallToolRequest, args ReduceArgs) (StateResponse, error) {
	action, err := domain.ParseAction(args.Action)
	if err != nil {
		return StateResponse{}, err
	}

	var state *domain.State
	if args.Energy != nil {
		state = &domain.State{Energy: *args.Energy}
	}

	next, err := s.reducer.Reduce(ctx, action, state)
	if err != nil {
		s.logger.Warn("reduce tool failed", "error", err)
		return StateResponse{}, fmt.Errorf("reduce failed: %w", err)
	}
	return StateResponse{State: next}, nil
}

func (s *Server) handleDispatch(ctx context.Context, request mcp.CallToolRequest, args DispatchArgs) (StateResponse, error) {
	action, err := domain.ParseAction(args.Action)
	if err != nil {
		return StateResponse{}, err
	}

	next, err := s.store.Dispatch(ctx, action)
	if err != nil {
		s.logger.Warn("dispatch tool failed", "error", err)
		return StateResponse{}, fmt.Errorf("dispatch failed: %w", err)
	}
	return StateResponse{State: next}, nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := s.snapshotJSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: vigor://state
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Current Store State",
		mcp.WithResourceDescription("Snapshot of the shared store"),
		mcp.WithMIMEType("application/json"),
	), s.handleReadState)
}

func (s *Server) handleReadState(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := s.snapshotJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StateURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) snapshotJSON() ([]byte, error) {
	state, rev := s.store.Snapshot()
	return json.Marshal(StateResponse{State: state, Revision: &rev})
}
