package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmgblabel-png/bigharvestfarming/internal/bootstrap"
	"github.com/mmgblabel-png/bigharvestfarming/internal/config"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Store failed", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
	}, s)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("Server failed to start", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{Server: srv})
}
