package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/itemvalidation/pkg/cache"
	"github.com/ghuser/itemvalidation/pkg/config"
	"github.com/ghuser/itemvalidation/pkg/database"
	"github.com/ghuser/itemvalidation/pkg/events"
	"github.com/ghuser/itemvalidation/pkg/logger"
	"github.com/ghuser/itemvalidation/pkg/messages"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's route registration during server initialization.
//
// Optional dependencies are nil when not configured:
//   - Db, EventBus: nil with STORE_BACKEND=memory
//   - Redis: nil when REDIS_URL is empty
//   - SessionStore, Messages: nil in the worker process
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context
// methods so trace_id, span_id and request_id are injected:
//
//	app.Logger.InfoContext(ctx, "item saved", "item_id", id)
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store
	Messages     *messages.Source
}
