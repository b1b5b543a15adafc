package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/congo-pay/pocketbank/internal/config"
	"github.com/congo-pay/pocketbank/internal/infra"
	"github.com/congo-pay/pocketbank/internal/logging"
	"github.com/congo-pay/pocketbank/internal/notification"
	"github.com/congo-pay/pocketbank/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	res, err := infra.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := res.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	notifier, closeNotifier := buildNotifier(cfg, logger)
	defer closeNotifier()

	srv, err := server.New(cfg, res, notifier, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}

// buildNotifier always logs notifications and additionally publishes them
// to RabbitMQ when a broker URL is configured. A broker that cannot be
// reached at startup is logged and skipped.
func buildNotifier(cfg config.Config, logger *slog.Logger) (notification.Notifier, func()) {
	logNotifier := notification.NewLoggerNotifier(logger)
	if cfg.RabbitMQURL == "" {
		return logNotifier, func() {}
	}

	broker, err := notification.NewAMQPNotifier(cfg.RabbitMQURL, cfg.NotificationExchange, logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable, notifications are log only", "error", err)
		return logNotifier, func() {}
	}
	return notification.Multi{logNotifier, broker}, func() {
		if err := broker.Close(); err != nil {
			logger.Warn("close rabbitmq", "error", err)
		}
	}
}
