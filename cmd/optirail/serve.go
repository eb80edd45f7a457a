package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/optirail/internal/cli"
	"github.com/aretw0/optirail/internal/presentation/tui"
	httpAdapter "github.com/aretw0/optirail/pkg/adapters/http"
	"github.com/aretw0/optirail/pkg/domain"
	"github.com/aretw0/optirail/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Starts the optirail engine in server mode, exposing the JSON API over HTTP.
Workspaces are kept in memory unless a Redis address is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("redis") {
			cfg.Redis.Addr, _ = cmd.Flags().GetString("redis")
		}

		logger := cli.CreateLogger(cfg.LogLevel, cfg.LogJSON)
		debug, _ := cmd.Flags().GetBool("debug")

		var metrics *observability.Metrics
		var hooks []domain.LifecycleHooks
		if cfg.MetricsEnabled() {
			metrics = observability.NewMetrics(prometheus.NewRegistry())
			hooks = append(hooks, metrics.Hooks())
		}

		engine, err := cli.NewEngine(cfg, logger, debug, hooks...)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		store, closeStore, err := cli.NewStore(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer closeStore()

		opts := []httpAdapter.Option{
			httpAdapter.WithStore(store),
			httpAdapter.WithMaxBodyBytes(cfg.MaxBodyBytes),
			httpAdapter.WithLogger(logger),
		}
		if metrics != nil {
			opts = append(opts, httpAdapter.WithMetrics(metrics.Handler()))
		}

		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.Port),
			Handler:           httpAdapter.NewHandler(engine, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
				tui.PrintBanner(cmd.OutOrStdout())
			}
			logger.Info("Starting optirail server",
				"addr", srv.Addr,
				"components", engine.Catalog().Len(),
				"redis", cfg.Redis.Addr != "",
				"metrics", metrics != nil)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "error", err)
				}
			}
			logger.Info("optirail server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the workspace store (default in-memory)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
