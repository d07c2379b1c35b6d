package repositories

import (
	"context"

	"github.com/ghuser/itemvalidation/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Save assigns the next id to item, stores it and returns it.
	Save(ctx context.Context, item *models.Item) (*models.Item, error)

	// FindByID returns ErrItemNotFound when no item has the given id.
	FindByID(ctx context.Context, id int64) (*models.Item, error)

	// FindAll returns every item ordered by id.
	FindAll(ctx context.Context) ([]*models.Item, error)

	// Update overwrites name, price and quantity of the item with the given id.
	// Returns ErrItemNotFound when it does not exist.
	Update(ctx context.Context, id int64, param *models.Item) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int64, error)
}
