// cmd/advice-server/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"advice-service/internal/common/config"
	"advice-service/internal/common/logger"
	"advice-service/internal/common/observability"
	ga "advice-service/internal/workers/coaching/generate-advice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	zapLog.Info("Starting advice server...", zap.String("version", cfg.App.Version))

	obs := observability.New(cfg.App.Name)

	tracing, err := observability.NewTracing(cfg.App.Name, cfg.App.Version, cfg.Tracing.JaegerEndpoint, cfg.Tracing.SampleRatio)
	if err != nil {
		zapLog.Warn("tracing disabled", zap.Error(err))
	} else {
		obs.AttachTracing(tracing)
		if tracing.Enabled() {
			zapLog.Info("tracing enabled", zap.String("endpoint", cfg.Tracing.JaegerEndpoint))
		}
	}

	handler, err := ga.NewHandler(ga.HandlerOptions{
		AppConfig:     cfg,
		Logger:        log,
		Observability: obs,
	})
	if err != nil {
		zapLog.Fatal("advice handler init failed", zap.Error(err))
	}

	router := newRouter(cfg, handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      otelhttp.NewHandler(router, "advice-server"),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// --- Graceful Shutdown ---
	g.Go(func() error {
		<-gCtx.Done()
		zapLog.Info("Shutdown signal received, draining requests...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error shutting down HTTP server", zap.Error(err))
		}
		if err := obs.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error flushing telemetry", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("advice server stopped with error", zap.Error(err))
		os.Exit(1)
	}

	zapLog.Info("Advice server stopped")
}

func newRouter(cfg *config.Config, handler *ga.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !handler.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "api key not configured")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	r.Handle("/metrics", promhttp.Handler())

	if config.IsWorkerEnabled(cfg, ga.TaskType) && handler.Enabled() {
		handler.Routes(r)
	}

	return r
}

func writeStatus(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": text})
}
