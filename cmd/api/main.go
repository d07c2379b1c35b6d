package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/itemvalidation/docs/swagger"
	"github.com/ghuser/itemvalidation/pkg/app"
	"github.com/ghuser/itemvalidation/pkg/cache"
	"github.com/ghuser/itemvalidation/pkg/config"
	"github.com/ghuser/itemvalidation/pkg/database"
	"github.com/ghuser/itemvalidation/pkg/events"
	"github.com/ghuser/itemvalidation/pkg/httpx"
	"github.com/ghuser/itemvalidation/pkg/logger"
	"github.com/ghuser/itemvalidation/pkg/messages"
	"github.com/ghuser/itemvalidation/pkg/session"
	"github.com/ghuser/itemvalidation/pkg/telemetry"
	itemApi "github.com/ghuser/itemvalidation/services/item/application/api"
	appsvcs "github.com/ghuser/itemvalidation/services/item/application/services"
)

// @title			Item Validation API
// @version		1.0
// @description	Item registration forms validated by hand, through a pluggable validator and through declarative rules.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	msgs, err := messages.NewSource(cfg.DefaultLocale)
	if err != nil {
		log.Error("failed to load message bundles", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}

	appConfig := &app.Application{
		Config:   cfg,
		Logger:   log,
		Messages: msgs,
	}
	health := httpx.HealthChecks{}

	if cfg.StoreBackend == config.StorePostgres {
		pool, err := database.NewPool(ctx, cfg.DefinitionDatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer pool.Close()
		log.Info("database pool connected")

		eventBus, err := events.NewEventBusWithForwarder(events.OptionsFromConfig(cfg), log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck

		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1) //nolint:gocritic
		}

		appConfig.Db = pool
		appConfig.EventBus = eventBus
		health.Database = pool
		health.EventBus = eventBus
	}

	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cache.DefaultPoolOptions())
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")

		appConfig.Redis = redisClient
		health.Redis = redisClient
	}

	appConfig.SessionStore = newSessionStore(cfg, appConfig.Redis)
	log.Info("session store initialized", "backend", sessionBackend(appConfig.Redis))

	svcs := appsvcs.New(appConfig)
	if cfg.SeedTestData {
		if err := svcs.Item.Seed(ctx); err != nil {
			log.Error("failed to seed items", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			MaxBodyBytes:       cfg.MaxBodyBytes,
			RequestTimeout:     cfg.RequestTimeout,
		},
		httpx.Instrumentation{
			Recover: logger.Recovery(log),
			Sentry:  telemetry.SentryMiddleware(),
			Trace:   otelhttp.NewMiddleware(cfg.ServiceName),
			Log:     logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(health))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	registerRoutes(r, appConfig, svcs)

	srv := httpx.NewServer(cfg.HTTPAddr, r, cfg.RequestTimeout)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	itemApi.ItemRoutes(r, a, svcs)
}

// newSessionStore keeps flash sessions in Redis when it is configured and in
// the encrypted cookie otherwise.
func newSessionStore(cfg *config.Config, redisClient *cache.RedisClient) sessions.Store {
	keys := session.Keys{
		Auth:       []byte(cfg.SessionAuthKey),
		Encryption: []byte(cfg.SessionEncryptionKey),
	}
	secure := cfg.Environment == config.EnvProduction
	if redisClient != nil {
		return session.NewRedisStore(redisClient.Client(), keys, secure)
	}
	return session.NewCookieStore(keys, secure)
}

func sessionBackend(redisClient *cache.RedisClient) string {
	if redisClient != nil {
		return "redis"
	}
	return "cookie"
}
