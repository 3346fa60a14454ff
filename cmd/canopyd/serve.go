package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/canopy-ui/canopy/internal/config"
	"github.com/canopy-ui/canopy/pkg/bridge"
	"github.com/canopy-ui/canopy/pkg/dispatch"
	"github.com/canopy-ui/canopy/pkg/middleware"
	"github.com/canopy-ui/canopy/pkg/scene"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the mirror daemon",
		Long: `Start the websocket endpoint for native host peers.

Endpoints:
  /ws        websocket bridge for native hosts
  /healthz   liveness probe
  /metrics   Prometheus metrics (when enabled)

Examples:
  canopyd serve
  canopyd serve --config /etc/canopy/canopy.yaml
  canopyd serve --listen 0.0.0.0:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, listen)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to canopy.yaml (default ./canopy.yaml)")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (overrides config)")

	return cmd
}

func runServe(configPath, listen string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	addr := cfg.Address()
	if listen != "" {
		addr = listen
	}

	ws := bridge.NewServer(demoSession,
		bridge.WithConfig(cfg.BridgeConfig()),
		bridge.WithServerLogger(logger),
		bridge.WithRouterOptions(
			dispatch.WithMiddleware(
				middleware.Prometheus(),
				middleware.OpenTelemetry(),
			),
			dispatch.WithSynthesisHook(middleware.ClicksSynthesized()),
		),
	)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Handle("/ws", ws)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// demoSession builds a minimal tree so a freshly connected peer has
// something to render and interact with.
func demoSession(conn *bridge.Conn) {
	s := conn.Session()
	logger := s.Logger()

	root, err := s.Root()
	if err != nil {
		logger.Error("root lookup failed", "error", err)
		return
	}

	panel, err := s.CreateContainer("panel", scene.Props{
		"border":  "1px solid #888",
		"padding": "8px",
	})
	if err != nil {
		logger.Error("panel create failed", "error", err)
		return
	}

	label, err := s.CreateText("canopy mirror connected")
	if err != nil {
		logger.Error("label create failed", "error", err)
		return
	}

	button, err := s.CreateContainer("button", scene.Props{
		"onClick": func(ev *dispatch.MouseEvent) {
			logger.Info("demo button clicked", "x", ev.X, "y", ev.Y)
			if err := label.SetText(fmt.Sprintf("clicked at %d,%d", ev.X, ev.Y)); err != nil {
				logger.Error("text update failed", "error", err)
			}
		},
	})
	if err != nil {
		logger.Error("button create failed", "error", err)
		return
	}

	for _, child := range []*scene.Node{label, button} {
		if err := panel.AppendChild(child); err != nil {
			logger.Error("append failed", "error", err)
			return
		}
	}
	if err := root.AppendChild(panel); err != nil {
		logger.Error("append failed", "error", err)
		return
	}
	if err := s.FinalizeCommit(); err != nil {
		logger.Error("commit failed", "error", err)
	}
}
