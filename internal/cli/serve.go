package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/vigor"
	"github.com/aretw0/vigor/internal/config"
	"github.com/aretw0/vigor/internal/metrics"
	httpAdapter "github.com/aretw0/vigor/pkg/adapters/http"
	"github.com/aretw0/vigor/pkg/store"
)

// shutdownTimeout is the deadline given to outstanding requests on shutdown.
const shutdownTimeout = 5 * time.Second

// NewStore builds the shared store from cfg, wiring debug logging and, when collector is non-nil, metrics.
func NewStore(cfg config.Config, logger *slog.Logger, collector *metrics.Collector) (*store.Store, error) {
	opts := []store.Option{
		store.WithInitialState(cfg.InitialState()),
		store.WithLogger(logger),
		store.WithHooks(createDebugHooks(logger)),
	}
	if collector != nil {
		opts = append(opts, store.WithHooks(collector.Hooks()))
	}

	st := store.New(opts...)
	if collector != nil {
		if err := collector.Observe(st); err != nil {
			return nil, fmt.Errorf("failed to register store metrics: %w", err)
		}
	}
	return st, nil
}

// NewServeHandler builds the HTTP handler served by the serve command.
func NewServeHandler(cfg config.Config, logger *slog.Logger) (http.Handler, *store.Store, error) {
	var collector *metrics.Collector
	if cfg.Metrics {
		collector = metrics.New()
	}

	st, err := NewStore(cfg, logger, collector)
	if err != nil {
		return nil, nil, err
	}

	opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if collector != nil {
		opts = append(opts, httpAdapter.WithMetricsHandler(collector.Handler()))
	}

	handler, err := httpAdapter.NewHandler(vigor.NewReducer(vigor.WithLogger(logger)), st, opts...)
	if err != nil {
		return nil, nil, err
	}
	return handler, st, nil
}

// Serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	handler, _, err := NewServeHandler(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Starting vigor server", "addr", srv.Addr, "initial_energy", cfg.InitialEnergy, "metrics", cfg.Metrics)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("Vigor server stopped gracefully")
		return nil
	}
}
