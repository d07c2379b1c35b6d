package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ItemCacheTTL bounds how long a stale entry can survive a missed event.
const ItemCacheTTL = 24 * time.Hour

// CachedItem is the item read model, stored as one Redis hash per item.
type CachedItem struct {
	ID       int64  `json:"id" redis:"id"`
	ItemName string `json:"item_name" redis:"item_name"`
	Price    int    `json:"price" redis:"price"`
	Quantity int    `json:"quantity" redis:"quantity"`
}

// ItemCache reads and writes "item:<id>" hashes.
type ItemCache struct {
	client *RedisClient
}

func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get returns redis.Nil when the item is not cached.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	cmd := c.client.Client().HGetAll(ctx, Key(itemID))
	fields, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("cache get %d: %w", itemID, err)
	}
	if len(fields) == 0 {
		return nil, redis.Nil
	}
	var item CachedItem
	if err := cmd.Scan(&item); err != nil {
		return nil, fmt.Errorf("cache decode %d: %w", itemID, err)
	}
	return &item, nil
}

// Set replaces the hash and refreshes its TTL in one MULTI/EXEC.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := Key(item.ID)
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, item)
		pipe.Expire(ctx, key, ItemCacheTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache set %d: %w", item.ID, err)
	}
	return nil
}

// Fill stores item only when no entry exists yet. Readers warm the cache with
// Fill so a snapshot taken before a concurrent write cannot replace the newer
// entry that write stored with Set. It reports whether the entry was written.
func (c *ItemCache) Fill(ctx context.Context, item *CachedItem) (bool, error) {
	key := Key(item.ID)
	written := false
	err := c.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil || n > 0 {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, item)
			pipe.Expire(ctx, key, ItemCacheTTL)
			return nil
		})
		if err == nil {
			written = true
		}
		return err
	}, key)
	switch {
	case errors.Is(err, redis.TxFailedErr):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache fill %d: %w", item.ID, err)
	}
	return written, nil
}

func (c *ItemCache) Delete(ctx context.Context, itemID int64) error {
	if err := c.client.Client().Del(ctx, Key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete %d: %w", itemID, err)
	}
	return nil
}

// Key is the Redis key of an item hash.
func Key(itemID int64) string {
	return "item:" + strconv.FormatInt(itemID, 10)
}
