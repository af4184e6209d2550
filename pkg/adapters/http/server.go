package http

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/vigor"
	"github.com/aretw0/vigor/internal/logging"
	"github.com/aretw0/vigor/pkg/domain"
	"github.com/aretw0/vigor/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodyBytes bounds request bodies; a reduce request is a few dozen bytes.
const maxBodyBytes = 64 << 10

// Snapshot is the body returned by the store routes.
type Snapshot struct {
	State    domain.State `json:"state"`
	Revision uint64       `json:"revision"`
}

// DispatchResponse is the body returned by POST /actions/{action}.
type DispatchResponse struct {
	State domain.State      `json:"state"`
	Diff  *domain.StateDiff `json:"diff"`
}

// ReduceRequest is the body accepted by POST /reduce.
type ReduceRequest struct {
	Action domain.Action `json:"action"`
	State  *domain.State `json:"state,omitempty"`
}

// Server serves the stateless reducer and the shared store over HTTP.
type Server struct {
	Reducer ports.Reducer
	Store   ports.Dispatcher

	spec    *openapi3.T
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the reducer and the store.
func NewHandler(reducer ports.Reducer, store ports.Dispatcher, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	s := &Server{
		Reducer: reducer,
		Store:   store,
		spec:    spec,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/reduce", s.GetReduce)
	r.Post("/reduce", s.PostReduce)
	r.Get("/state", s.GetState)
	r.Delete("/state", s.ResetState)
	r.Post("/actions/{action}", s.DispatchAction)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "vigor-http",
		"version":     vigor.Version,
		"api_version": apiVersion,
	})
}

// PostReduce handles the POST /reduce request.
func (s *Server) PostReduce(w http.ResponseWriter, r *http.Request) {
	var body ReduceRequest
	if err := s.decodeValidated(r, "ReduceRequest", &body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		s.logger.Warn("PostReduce: Invalid request body", "error", err)
		return
	}

	next, err := s.Reducer.Reduce(r.Context(), body.Action, body.State)
	if err != nil {
		s.fail(w, "PostReduce", err)
		return
	}
	s.writeJSON(w, http.StatusOK, next)
}

// GetReduce handles the GET /reduce?action=...&energy=... request.
func (s *Server) GetReduce(w http.ResponseWriter, r *http.Request) {
	var actionText string
	if err := runtime.BindQueryParameter("form", true, true, "action", r.URL.Query(), &actionText); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter action: %w", err))
		return
	}

	var energy *float64
	if err := runtime.BindQueryParameter("form", true, false, "energy", r.URL.Query(), &energy); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter energy: %w", err))
		return
	}

	action, err := domain.ParseAction(actionText)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var state *domain.State
	if energy != nil {
		state = &domain.State{Energy: *energy}
		if err := state.Validate(); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	next, err := s.Reducer.Reduce(r.Context(), action, state)
	if err != nil {
		s.fail(w, "GetReduce", err)
		return
	}
	s.writeJSON(w, http.StatusOK, next)
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.snapshot())
}

// ResetState handles the DELETE /state request.
func (s *Server) ResetState(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Store.Reset(r.Context()); err != nil {
		s.fail(w, "ResetState", err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.snapshot())
}

// DispatchAction handles the POST /actions/{action} request.
func (s *Server) DispatchAction(w http.ResponseWriter, r *http.Request) {
	var actionText string
	err := runtime.BindStyledParameterWithOptions("simple", "action", chi.URLParam(r, "action"), &actionText,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter action: %w", err))
		return
	}

	action, err := domain.ParseAction(actionText)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	next, err := s.Store.Dispatch(r.Context(), action)
	if err != nil {
		s.fail(w, "DispatchAction", err)
		return
	}

	s.logger.Debug("DispatchAction: Applied", "action", action.String(), "energy", next.Energy)
	s.writeJSON(w, http.StatusOK, DispatchResponse{
		State: next,
		Diff:  &domain.StateDiff{Energy: next.Energy, Delta: domain.Delta(action)},
	})
}

func (s *Server) snapshot() Snapshot {
	state, rev := s.Store.Snapshot()
	return Snapshot{State: state, Revision: rev}
}

// decodeValidated reads a JSON body, validates it against the named component schema
// and decodes it into dest.
func (s *Server) decodeValidated(r *http.Request, schemaName string, dest any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	ref, ok := s.spec.Components.Schemas[schemaName]
	if !ok || ref.Value == nil {
		return fmt.Errorf("schema %q not found", schemaName)
	}
	if err := ref.Value.VisitJSON(raw); err != nil {
		return fmt.Errorf("request does not match %s: %w", schemaName, err)
	}

	return json.Unmarshal(data, dest)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownAction), errors.Is(err, domain.ErrInvalidEnergy):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.writeError(w, http.StatusInternalServerError, err)
		s.logger.Error(op+" failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeJSON encodes v before writing the status, so an encode failure is reported as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "{\"error\":%q}\n", "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
