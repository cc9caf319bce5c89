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

	"timekeeper/internal/server"
	"timekeeper/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveAddr string

// serveCmd runs the backend
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the /api/logs backend",
	Long: `Starts the HTTP backend the tracker submits to and reads history from.

Entries are stored in SQLite at server.database_path. Set server.driver to
"sqlite" to use the pure Go driver instead of the cgo one.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	logs, err := store.Open(cfg.Server.Driver, cfg.Server.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open log store: %w", err)
	}
	defer logs.Close()

	backend, err := server.New(logs, nil)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           backend.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Backend listening",
			zap.String("addr", addr),
			zap.String("driver", cfg.Server.Driver),
			zap.String("db", cfg.Server.DatabasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down backend")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
