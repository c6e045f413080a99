// Package server boots the shop: config, database, cache, then the HTTP
// listener, and drains in-flight requests on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/internal/kernel"
	"github.com/xcursi322/prakt/pkg/cache"
	"github.com/xcursi322/prakt/pkg/database"
	"github.com/xcursi322/prakt/pkg/logger"
	"github.com/xcursi322/prakt/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Boot loads config and connects the database, cache and media disk. A Redis or S3
// outage is not fatal: the memory cache and local disk stay active.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := database.Connect(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "error", err)
	}
	if err := storage.Connect(context.Background()); err != nil {
		logger.Warn("media disk unavailable, serving from local disk", "error", err)
	}
	return nil
}

// Start serves HTTP until the process is signalled.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	httpKernel, err := kernel.NewHTTPKernel()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("shop listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return database.Close()
}
