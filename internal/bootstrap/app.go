package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/yanqian/weatherchap/internal/infra/config"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	tracer *sdktrace.TracerProvider
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, tracer *sdktrace.TracerProvider) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, tracer: tracer}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting",
			"address", a.cfg.HTTP.Address,
			"wardrobe_source", a.cfg.Wardrobe.Source,
			"default_location", a.cfg.Location.Label,
		)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	shutdownCtx := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), shutdownTimeout)
	}

	select {
	case <-ctx.Done():
		sctx, cancel := shutdownCtx()
		defer cancel()
		a.logger.Info("shutdown signal received")
		err := a.server.Shutdown(sctx)
		return errors.Join(err, a.flushTraces(sctx))
	case err := <-errCh:
		sctx, cancel := shutdownCtx()
		defer cancel()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return errors.Join(err, a.flushTraces(sctx))
	}
}

// flushTraces exports buffered spans before the process exits.
func (a *App) flushTraces(ctx context.Context) error {
	if a.tracer == nil {
		return nil
	}
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", "error", err)
		return err
	}
	return nil
}
