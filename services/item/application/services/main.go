package services

import (
	"github.com/ghuser/itemvalidation/pkg/app"
	"github.com/ghuser/itemvalidation/pkg/cache"
	"github.com/ghuser/itemvalidation/services/item/domain/repositories"
	"github.com/ghuser/itemvalidation/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/itemvalidation/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the
// Application container: PostgreSQL when a database is configured, otherwise
// the in-memory store; the Redis cache only when Redis is configured.
func New(a *app.Application) *Services {
	var repo repositories.ItemRepository
	if a.Db != nil {
		repo = postgres.NewItemRepository(a.Db, a.EventBus)
	} else {
		repo = memory.NewItemRepository()
	}

	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	return &Services{
		Item: NewItemService(repo, itemCache, a.Logger),
	}
}
