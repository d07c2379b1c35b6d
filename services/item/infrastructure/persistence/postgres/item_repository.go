package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/itemvalidation/pkg/database"
	"github.com/ghuser/itemvalidation/pkg/events"
	itemdomain "github.com/ghuser/itemvalidation/services/item/domain"
	domainevents "github.com/ghuser/itemvalidation/services/item/domain/events"
	"github.com/ghuser/itemvalidation/services/item/domain/models"
	"github.com/ghuser/itemvalidation/services/item/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. When bus is non-nil, item.saved / item.updated events are
// written to the outbox in the same transaction as the row.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Save inserts item; the id comes from the BIGSERIAL sequence.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) (*models.Item, error) {
	params, err := insertParams(item)
	if err != nil {
		return nil, err
	}

	var saved *models.Item
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertItem(ctx, params)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		saved = rowToItem(row)

		if r.bus != nil {
			if err := r.publish(ctx, tx, domainevents.TopicItemSaved, saved, row.CreatedAt); err != nil {
				return fmt.Errorf("publish item saved: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	item.ID = saved.ID
	return saved, nil
}

// FindByID returns ErrItemNotFound if no row has the id.
func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find item %d: %w", id, itemdomain.ErrItemNotFound)
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// FindAll returns every item ordered by id.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// Update overwrites the editable columns of the row with the given id.
func (r *ItemRepository) Update(ctx context.Context, id int64, param *models.Item) error {
	price, err := toInt32("price", param.Price)
	if err != nil {
		return err
	}
	quantity, err := toInt32("quantity", param.Quantity)
	if err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateItem(ctx, db.UpdateItemParams{
			ID:       id,
			ItemName: param.ItemName,
			Price:    price,
			Quantity: quantity,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("update item %d: %w", id, itemdomain.ErrItemNotFound)
			}
			return fmt.Errorf("update item: %w", err)
		}

		if r.bus != nil {
			if err := r.publish(ctx, tx, domainevents.TopicItemUpdated, rowToItem(row), row.UpdatedAt); err != nil {
				return fmt.Errorf("publish item updated: %w", err)
			}
		}
		return nil
	})
}

// Count returns the number of stored items.
func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	n, err := db.New(r.db.DB()).CountItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, item *models.Item, at time.Time) error {
	event := domainevents.ItemChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		ItemName:   item.ItemName,
		Price:      item.Price,
		Quantity:   item.Quantity,
		OccurredAt: at.UTC(),
	}
	return r.bus.PublishTx(ctx, tx, topic, event, map[string]string{
		"event_id":      event.EventID.String(),
		"event_version": strconv.Itoa(event.Version),
	})
}

func insertParams(item *models.Item) (db.InsertItemParams, error) {
	if item == nil {
		return db.InsertItemParams{}, fmt.Errorf("save item: nil item")
	}
	price, err := toInt32("price", item.Price)
	if err != nil {
		return db.InsertItemParams{}, err
	}
	quantity, err := toInt32("quantity", item.Quantity)
	if err != nil {
		return db.InsertItemParams{}, err
	}
	return db.InsertItemParams{
		ItemName: item.ItemName,
		Price:    price,
		Quantity: quantity,
	}, nil
}

// toInt32 guards the INTEGER columns; unvalidated edits can carry any int.
func toInt32(column string, n int) (int32, error) {
	if n < itemdomain.MinStoredValue || n > itemdomain.MaxStoredValue {
		return 0, fmt.Errorf("%w: %s %d does not fit an INTEGER column", itemdomain.ErrValueOutOfRange, column, n)
	}
	return int32(n), nil
}

// rowToItem maps a db.ItemItem to a domain models.Item.
func rowToItem(row db.ItemItem) *models.Item {
	return &models.Item{
		ID:       row.ID,
		ItemName: row.ItemName,
		Price:    int(row.Price),
		Quantity: int(row.Quantity),
	}
}
