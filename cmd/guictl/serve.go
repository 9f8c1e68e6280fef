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

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"ffmpeg-gui/internal/configstore"
	"ffmpeg-gui/internal/filesystem"
	"ffmpeg-gui/internal/handlers"
	"ffmpeg-gui/internal/logging"
	"ffmpeg-gui/internal/metrics"
	"ffmpeg-gui/internal/middleware"
	"ffmpeg-gui/internal/startup"
	"ffmpeg-gui/internal/status"
)

const shutdownTimeout = 30 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	var (
		addr            string
		refreshInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only health, status and metrics endpoints",
		Long: `Serve /healthz, /livez and /readyz for orchestration probes, /api/config and
/api/boots for status, and /metrics for Prometheus. /readyz succeeds once the
configuration store exists and parses.`,
		GroupID: "system",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context(), addr, refreshInterval)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9100", "listen address")
	cmd.Flags().DurationVar(&refreshInterval, "refresh-interval", 30*time.Second, "how often config store metrics are refreshed")
	return cmd
}

func (c *cli) serve(ctx context.Context, addr string, refreshInterval time.Duration) error {
	startTime := time.Now()
	if refreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", refreshInterval)
	}

	metrics.InitializeMetrics()
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"config": c.config.ConfigDir,
		"app":    c.config.AppDir,
	}))

	j := c.openJournal(ctx)
	defer closeJournal(j)

	store := configstore.New(c.config.ConfigPath)
	h := handlers.New(store, c.config.TemplatePath, bootLister(j))

	collector := metrics.NewCollector(func(ctx context.Context) error {
		_, err := status.Collect(ctx, status.Source{Store: store, TemplatePath: c.config.TemplatePath})
		return err
	}, refreshInterval)
	collector.Start()
	defer collector.Stop()

	router := setupRouter(h)
	startup.LogHTTPRoutes(router, c.config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = c.config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errCh := make(chan error, 1)
	go func() {
		startup.LogServerStarted(addr, time.Since(startTime))
		errCh <- srv.ListenAndServe()
	}()

	reason := "context cancellation"
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		reason = sig.String()
	case <-ctx.Done():
	}

	return shutdown(srv, reason)
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Probes
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")

	// Status API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", h.GetConfigStatus).Methods("GET")
	api.HandleFunc("/boots", h.ListBoots).Methods("GET")
	api.HandleFunc("/version", h.GetVersion).Methods("GET")

	r.Handle("/metrics", h.MetricsHandler()).Methods("GET")

	return r
}

func shutdown(srv *http.Server, reason string) error {
	startup.LogShutdownInitiated(reason)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
		return err
	}
	startup.LogShutdownStepComplete("HTTP server stopped")

	startup.LogShutdownComplete()
	return nil
}
