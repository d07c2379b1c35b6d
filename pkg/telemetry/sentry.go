package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ghuser/itemvalidation/pkg/config"
)

// SentryOptions builds the client options for cfg. Traces are sampled less
// aggressively in production.
func SentryOptions(cfg *config.Config) sentry.ClientOptions {
	rate := 1.0
	if cfg.Environment == config.EnvProduction {
		rate = 0.2
	}
	return sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName,
		AttachStacktrace: true,
		TracesSampleRate: rate,
		Tags: map[string]string{
			"store_backend": cfg.StoreBackend,
		},
	}
}

// SetupSentry initializes the SDK. Without a DSN it does nothing and every
// capture below is dropped.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(SentryOptions(cfg)); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware puts a request-scoped hub on the context. Panics are
// re-raised for logger.Recovery to answer.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true, Timeout: 2 * time.Second}).Handle
}

// CaptureError reports err on the request's hub (the global one outside a
// request), tagged with the chi request id when there is one.
func CaptureError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if id := middleware.GetReqID(ctx); id != "" {
			scope.SetTag("request_id", id)
		}
		hub.CaptureException(err)
	})
}
