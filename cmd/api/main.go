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

	"moving_quote_backend/internal/email"
	apphttp "moving_quote_backend/internal/http"
	"moving_quote_backend/internal/http/router"
	"moving_quote_backend/internal/preoffer"
	"moving_quote_backend/internal/preoffer/repository"
	"moving_quote_backend/internal/rate"
	"moving_quote_backend/internal/scheduler"
	"moving_quote_backend/platform/config"
	"moving_quote_backend/platform/logger"
	"moving_quote_backend/platform/redisconn"
	"moving_quote_backend/platform/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	repo, health, closeRepo := initRepository(ctx, cfg, log)
	if closeRepo != nil {
		defer closeRepo()
	}

	rates := rate.NewHTTPClient(cfg, log)
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	preOfferModule := preoffer.NewModule(repo, rates, val, log)

	notifier, closeNotifier := initOfferNotifier(cfg, log)
	if closeNotifier != nil {
		defer closeNotifier()
	}
	preOfferModule.SetOfferNotifier(notifier)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		Modules: []apphttp.Module{
			preOfferModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRepository picks Redis when REDIS_URL is set so sessions survive
// restarts and are shared between replicas, and process memory otherwise.
func initRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Repository, apphttp.HealthChecker, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; pre-offer sessions kept in memory")
		return repository.NewMemoryRepository(cfg.GetSessionTTL()), nil, nil
	}

	client, err := redisconn.NewClient(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to initialize redis client", "error", err)
		panic("failed to initialize redis client: " + err.Error())
	}

	repo := repository.NewRedisRepository(client, cfg.GetSessionTTL())
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return repo.Ping(ctx)
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis session store connected")

	return repo, repo, func() {
		_ = client.Close()
	}
}

// initOfferNotifier queues follow-ups through asynq when Redis is available
// and sends the confirmation e-mail inline otherwise.
func initOfferNotifier(cfg *config.Config, log *logger.Logger) (scheduler.OfferNotifier, func()) {
	if !cfg.IsSchedulerEnabled() {
		log.Warn("REDIS_URL not configured; offer follow-ups sent inline")
		handler := scheduler.NewOfferHandler(email.NewSender(cfg), cfg.GetPhoneDefaultRegion(), log)
		return scheduler.NewInlineNotifier(handler), nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize offer scheduler client", "error", err)
		panic("failed to initialize offer scheduler client: " + err.Error())
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
