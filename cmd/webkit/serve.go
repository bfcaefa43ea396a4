package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/webkit/internal/app"
	"github.com/vango-dev/webkit/internal/config"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		debug      bool
		noSession  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo HTTP server",
		Long: `Start an HTTP server exposing every helper:

  GET  /encode?data=…                    base64url encode
  GET  /decode?data=…                    base64url decode
  GET  /tag?tag=…&text=…[&class=…&id=…]  wrap text in a tag
  GET  /option?text=…&value=…&selected=… render an option
  GET  /session                          start a session, count visits
  POST /session/destroy                  destroy the session
  GET  /metrics                          Prometheus metrics

Configuration is read from webkit.json (when --config names the file or
its directory), then WEBKIT_* environment variables, then flags.

Examples:
  webkit serve
  webkit serve --config=webkit.json --addr=:9000 --debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.LookupEnv)
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = debug
			}
			if cmd.Flags().Changed("no-session") {
				cfg.NoSession = noSession
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to webkit.json or its directory")
	cmd.Flags().StringVarP(&addr, "addr", "a", config.DefaultAddr, "Listen address")
	cmd.Flags().BoolVar(&debug, "debug", false, "Use the plain debug session cookie name")
	cmd.Flags().BoolVar(&noSession, "no-session", false, "Disable sessions")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.New(), nil
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return config.Load(path)
	}
	return config.LoadFile(path)
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger := slog.Default()
	a := app.New(cfg, logger)
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	success(cmd, "Listening on %s", cfg.Addr)
	if cfg.Path() != "" {
		info(cmd, "config=%s", cfg.Path())
	}
	info(cmd, "debug=%t sessions=%t metrics=%t", cfg.Debug, !cfg.NoSession, cfg.Metrics.Enabled)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
