package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/narwhalmedia/requestbot/internal/container"
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	bootLog := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("Failed to load configuration", interfaces.Error(err))
	}

	log, err := cfg.Logger.ToLoggerConfig(cfg.Service).Build()
	if err != nil {
		bootLog.Fatal("Failed to build logger", interfaces.Error(err))
	}
	defer log.Sync()

	log.Info("Request bot starting",
		interfaces.String("version", config.GetServiceVersion(&cfg.Service)),
		interfaces.String("environment", cfg.Service.Environment),
		interfaces.String("overseerr_url", cfg.Overseerr.URL),
		interfaces.Bool("owner_only", cfg.Access.OwnerID != ""),
		interfaces.Bool("request_4k", cfg.Overseerr.Request4K))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := container.InitializeBot(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize bot", interfaces.Error(err))
	}

	app.Health.Start()

	// Blocks until a signal arrives and in-flight updates are answered.
	if err := app.Poller.Run(ctx); err != nil {
		log.Error("Polling failed", interfaces.Error(err))
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Health.Shutdown(shutdownCtx); err != nil {
		log.Error("Health server shutdown failed", interfaces.Error(err))
	}

	cleanup()
	log.Info("Request bot stopped")
}
