package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/vigor/internal/config"
	"github.com/aretw0/vigor/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogFormat = "json"

	logger, err := NewLogger(&buf, cfg, true)
	require.NoError(t, err)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)

	cfg.LogLevel = "shout"
	_, err = NewLogger(&buf, cfg, false)
	assert.Error(t, err)
}

func TestNewServeHandler(t *testing.T) {
	cfg := config.Default()
	cfg.InitialEnergy = 10

	handler, st, err := NewServeHandler(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 10.0, st.State().Energy)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/actions/run", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, -5.0, st.State().Energy)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "vigor_energy -5")
}

func TestNewServeHandler_WithoutMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics = false

	handler, _, err := NewServeHandler(cfg, logging.NewNop())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.NoError(t, Serve(ctx, cfg, logger))
}

func TestNewMCPServer(t *testing.T) {
	srv, err := NewMCPServer(config.Default(), logging.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, srv.MCPServer())
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	err := ServeMCP(context.Background(), config.Default(), logging.NewNop(), "carrier-pigeon", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
