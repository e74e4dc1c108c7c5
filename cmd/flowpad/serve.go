package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/internal/server"
	"github.com/flowpad/flowpad/internal/setup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the setup persistence server",
	Long:  "Serves saved canvas setups over a JSON HTTP API, backed by memory or Redis.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		var store setup.Store
		if redisAddr != "" {
			rs := setup.NewRedisStore(redisAddr, setup.WithTTL(ttl))
			defer rs.Close()
			store = rs
			slog.Info("using redis store", "addr", redisAddr)
		} else {
			store = setup.NewMemoryStore()
			slog.Info("using in-memory store")
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: server.New(store, cfg.Rules()).Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			slog.Info("flowpad server listening", "addr", addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			slog.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "listen address")
	serveCmd.Flags().String("redis", "", "redis address (empty for in-memory)")
	serveCmd.Flags().Duration("ttl", 0, "setup expiration when using redis (0 = never)")
}
