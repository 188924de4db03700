package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/oversea-labs/compass/internal/app"
	"github.com/oversea-labs/compass/internal/observability"
	"github.com/oversea-labs/compass/jobs"
)

func main() {
	_ = godotenv.Load()

	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, "compass-worker")
	metrics := observability.NewMetrics()

	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Mailer:    jobs.NewMailer(logger, metrics, cfg.MailFrom, cfg.MailTo),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- worker.Run()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down worker")
		worker.Shutdown()
	case err := <-errCh:
		if err != nil {
			logger.Error("worker stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
