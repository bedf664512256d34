// Package server boots and gracefully stops the HTTP application.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/app/routes"
	"github.com/shashiranjanraj/fitsetup/config"
	"github.com/shashiranjanraj/fitsetup/pkg/cache"
	"github.com/shashiranjanraj/fitsetup/pkg/database"
	"github.com/shashiranjanraj/fitsetup/pkg/logger"
	"github.com/shashiranjanraj/fitsetup/pkg/storage"
	"github.com/shashiranjanraj/fitsetup/pkg/ws"
)

// Run boots every subsystem, serves HTTP and blocks until SIGINT/SIGTERM.
func Run() error {
	config.Load()

	bootCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := database.Connect(bootCtx); err != nil {
		return fmt.Errorf("server: mongo: %w", err)
	}
	defer func() {
		shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		_ = database.Disconnect(shutdownCtx)
	}()

	if err := repositories.EnsureIndexes(bootCtx); err != nil {
		return fmt.Errorf("server: indexes: %w", err)
	}

	// Redis is best effort; a dead cache degrades to direct reads.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}

	storage.Connect()

	hub := ws.NewHub()
	go hub.Run()

	r := routes.Build(hub)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
