package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicItemSaved is the Watermill topic published when an Item is saved.
	TopicItemSaved = "item.saved"

	// TopicItemUpdated is the Watermill topic published when an Item is edited.
	TopicItemUpdated = "item.updated"
)

// ItemChangedEvent carries the full item state after a save or update.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemSaved) or
// events.TopicItemUpdated; the payload is the same for both.
type ItemChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Price      int       `json:"price"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Topics lists every topic the item context publishes.
func Topics() []string {
	return []string{TopicItemSaved, TopicItemUpdated}
}
