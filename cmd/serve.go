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

	"github.com/spf13/cobra"

	"advisory-console/internal/api"
	"advisory-console/internal/backoffice"
	"advisory-console/internal/config"
	"advisory-console/internal/console"
	"advisory-console/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer logger.Close()

	client := backoffice.New(cfg, logger)
	svc := console.New(client, logger, cfg)
	r := api.NewRouter(svc, logger, cfg)

	srv := &http.Server{Addr: cfg.API.Port, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("API started on %s (back office: %s)", cfg.API.Port, cfg.Backoffice.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case err := <-errCh:
		logger.Errorf("API run failed: %v", err)
		return err
	}

	logger.Infof("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
		return err
	}
	logger.Infof("Service stopped")
	return nil
}
