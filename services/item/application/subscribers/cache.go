// Package subscribers holds the event handlers the worker registers on the
// EventBus for the item context.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/itemvalidation/pkg/cache"
	"github.com/ghuser/itemvalidation/pkg/logger"
	itemEvents "github.com/ghuser/itemvalidation/services/item/domain/events"
)

type itemCacheWriter interface {
	Set(ctx context.Context, item *cache.CachedItem) error
}

// CacheRefresher writes the item carried by item.saved and item.updated
// events into the Redis read cache.
type CacheRefresher struct {
	cache itemCacheWriter
	log   logger.Logger
}

func NewCacheRefresher(c itemCacheWriter, log logger.Logger) *CacheRefresher {
	return &CacheRefresher{cache: c, log: log}
}

// Handle is idempotent: the event holds the full item state, so a redelivered
// message overwrites the entry with the same values. A malformed payload is
// returned as an error; a cache write failure is only logged.
func (h *CacheRefresher) Handle(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.ItemChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode item event %s: %w", msg.UUID, err)
	}

	if err := h.cache.Set(ctx, &cache.CachedItem{
		ID:       evt.ItemID,
		ItemName: evt.ItemName,
		Price:    evt.Price,
		Quantity: evt.Quantity,
	}); err != nil {
		h.log.WarnContext(ctx, "cache refresh failed",
			"item_id", evt.ItemID, "event_id", evt.EventID, "error", err)
		return nil
	}

	h.log.InfoContext(ctx, "cache refreshed", "item_id", evt.ItemID, "event_id", evt.EventID)
	return nil
}
