package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"moving_quote_backend/internal/email"
	"moving_quote_backend/internal/scheduler"
	"moving_quote_backend/platform/config"
	"moving_quote_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	if !cfg.IsSchedulerEnabled() {
		log.Error("REDIS_URL is required for the scheduler")
		panic("REDIS_URL is required for the scheduler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSender(cfg)
	if !cfg.GetEmailEnabled() {
		log.Warn("SMTP_HOST not configured; offer confirmations are dropped")
	}
	offers := scheduler.NewOfferHandler(sender, cfg.GetPhoneDefaultRegion(), log)

	worker, err := scheduler.NewWorker(cfg, offers, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
