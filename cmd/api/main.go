package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/comitanigiacomo/kanso-study-engine/docs"
	"github.com/comitanigiacomo/kanso-study-engine/internal/config"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/observability"
)

// @title           Kanso Study Engine API
// @version         1.0
// @description     Study progress, login streaks, user stats and module votes.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitTracing(ctx, log, observability.TracingConfig{
		Enabled:      cfg.OtelEnabled,
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Env,
		OTLPEndpoint: cfg.OtelEndpoint,
	})

	application, err := newApp(ctx, cfg, log, time.Now)
	if err != nil {
		log.Fatal("failed to start", "error", err)
	}
	defer application.Close()

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	application.worker.Start(workerCtx)

	// WriteTimeout stays zero: /progress/events holds the response open.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("kanso study engine running", "port", cfg.Port, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	cancelWorker()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracing shutdown failed", "error", err)
	}

	log.Info("server stopped gracefully")
}
