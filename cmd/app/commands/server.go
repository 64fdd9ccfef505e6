package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/accounts/internal/app"
	"github.com/allisson/accounts/internal/config"
)

// server is the part of the API and metrics servers RunServer drives.
type server interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the API server and, when enabled, the metrics server. It blocks
// until SIGINT/SIGTERM or until one server fails, then shuts both down within
// DBConnMaxLifetime.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))
	defer closeContainer(container, logger)

	httpServer, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []server{httpServer}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, logger, cfg, servers...)
}

// serve runs every server until ctx is done or one of them returns an error.
func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, servers ...server) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, s := range servers {
		group.Go(func() error {
			return s.Start(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
		defer shutdownCancel()

		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown failed", slog.Any("error", err))
			}
		}
		return nil
	})

	return group.Wait()
}
