package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/itemvalidation/pkg/cache"
	"github.com/ghuser/itemvalidation/pkg/logger"
	"github.com/ghuser/itemvalidation/services/item/domain/models"
	"github.com/ghuser/itemvalidation/services/item/domain/repositories"
)

// ItemCache is the read cache ItemService keeps in step with the store.
// *cache.ItemCache implements it.
type ItemCache interface {
	Get(ctx context.Context, itemID int64) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Fill(ctx context.Context, item *pkgcache.CachedItem) (bool, error)
	Delete(ctx context.Context, itemID int64) error
}

// ItemService orchestrates storage and retrieval of Items.
// Event publishing is handled by the repository layer (outbox pattern).
// Single-item reads are served from Redis when a cache is configured.
type ItemService struct {
	repo  repositories.ItemRepository
	cache ItemCache
	log   logger.Logger
}

// NewItemService returns an ItemService. itemCache may be nil.
func NewItemService(repo repositories.ItemRepository, itemCache ItemCache, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, cache: itemCache, log: log}
}

// Save persists a validated item and returns it with its assigned id.
func (s *ItemService) Save(ctx context.Context, item *models.Item) (*models.Item, error) {
	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	s.log.InfoContext(ctx, "item saved", "item_id", saved.ID)
	return saved, nil
}

// Update overwrites name, price and quantity of item id.
// Returns ErrItemNotFound if it does not exist.
func (s *ItemService) Update(ctx context.Context, id int64, param *models.Item) error {
	if err := s.repo.Update(ctx, id, param); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if s.cache != nil {
		updated := *param
		updated.ID = id
		entry := ToCachedItem(&updated)
		if err := s.cache.Set(ctx, &entry); err != nil {
			s.log.WarnContext(ctx, "cache write failed, invalidating", "item_id", id, "error", err)
			if err := s.cache.Delete(ctx, id); err != nil {
				s.log.WarnContext(ctx, "cache invalidation failed", "item_id", id, "error", err)
			}
		}
	}
	s.log.InfoContext(ctx, "item updated", "item_id", id)
	return nil
}

// GetByID retrieves an Item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query the store.
//  3. Warm the cache with Fill, which never replaces an entry written by a
//     concurrent Update in the meantime.
func (s *ItemService) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return &models.Item{
				ID:       cached.ID,
				ItemName: cached.ItemName,
				Price:    cached.Price,
				Quantity: cached.Quantity,
			}, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "cache read failed, falling back to store", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		entry := ToCachedItem(item)
		if _, err := s.cache.Fill(ctx, &entry); err != nil {
			s.log.WarnContext(ctx, "cache warm failed", "item_id", id, "error", err)
		}
	}

	return item, nil
}

// List returns every item ordered by id.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// SeedItems are stored on startup when SEED_TEST_DATA is true.
var SeedItems = []models.Item{
	{ItemName: "itemA", Price: 10000, Quantity: 10},
	{ItemName: "itemB", Price: 20000, Quantity: 20},
}

// Seed stores SeedItems when the store is empty, so restarts against a
// persistent store do not duplicate them.
func (s *ItemService) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed items: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, seed := range SeedItems {
		item := seed
		if _, err := s.repo.Save(ctx, &item); err != nil {
			return fmt.Errorf("seed item %s: %w", item.ItemName, err)
		}
	}
	s.log.InfoContext(ctx, "test data seeded", "count", len(SeedItems))
	return nil
}

// ToCachedItem maps an item to its Redis read model.
func ToCachedItem(item *models.Item) pkgcache.CachedItem {
	return pkgcache.CachedItem{
		ID:       item.ID,
		ItemName: item.ItemName,
		Price:    item.Price,
		Quantity: item.Quantity,
	}
}
