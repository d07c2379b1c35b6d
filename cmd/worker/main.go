// Command worker keeps the Redis item cache in step with the item store by
// consuming the item.saved and item.updated events relayed from the outbox.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/itemvalidation/pkg/app"
	"github.com/ghuser/itemvalidation/pkg/cache"
	"github.com/ghuser/itemvalidation/pkg/config"
	"github.com/ghuser/itemvalidation/pkg/events"
	"github.com/ghuser/itemvalidation/pkg/logger"
	"github.com/ghuser/itemvalidation/pkg/telemetry"
	"github.com/ghuser/itemvalidation/services/item/application/subscribers"
	itemEvents "github.com/ghuser/itemvalidation/services/item/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("component", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("worker failed", "error", err)
		stop()
		os.Exit(1)
	}
	log.Info("worker stopped")
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if err := config.ValidateForProduction(cfg); err != nil {
		return fmt.Errorf("production config: %w", err)
	}
	if cfg.StoreBackend != config.StorePostgres || !cfg.CacheEnabled() {
		return fmt.Errorf("worker needs STORE_BACKEND=postgres and REDIS_URL (got store=%s, redis=%t)",
			cfg.StoreBackend, cfg.CacheEnabled())
	}

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus, err := events.NewEventBus(events.OptionsFromConfig(cfg), log)
	if err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	// Close waits for in-flight handlers before the Redis pool goes away.
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cache.DefaultPoolOptions())
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer redisClient.Close() //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}
	if err := registerSubscribers(ctx, a); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutting down worker")
	return nil
}

// registerSubscribers points every item topic at the cache refresher.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	refresher := subscribers.NewCacheRefresher(cache.NewItemCache(a.Redis), a.Logger)

	var errs []error
	for _, topic := range itemEvents.Topics() {
		errCh, err := a.EventBus.Subscribe(ctx, topic, refresher.Handle)
		if err != nil {
			errs = append(errs, fmt.Errorf("subscribe %s: %w", topic, err))
			continue
		}
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	a.Logger.Info("event subscribers registered", "topics", itemEvents.Topics())
	return nil
}
