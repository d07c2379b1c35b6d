// Package memory is the in-process ItemRepository used when no database is
// configured. Contents are lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	itemdomain "github.com/ghuser/itemvalidation/services/item/domain"
	"github.com/ghuser/itemvalidation/services/item/domain/models"
)

// ItemRepository implements repositories.ItemRepository with a map guarded by
// a RWMutex. Ids are assigned from a counter starting at 1.
type ItemRepository struct {
	mu     sync.RWMutex
	items  map[int64]*models.Item
	lastID int64
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[int64]*models.Item)}
}

// Save assigns the next id and stores a copy of item. item.ID is updated too.
func (r *ItemRepository) Save(_ context.Context, item *models.Item) (*models.Item, error) {
	if item == nil {
		return nil, fmt.Errorf("save item: nil item")
	}
	if err := itemdomain.CheckStorable(item.Price, item.Quantity); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	item.ID = r.lastID
	stored := *item
	r.items[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *ItemRepository) FindByID(_ context.Context, id int64) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("find item %d: %w", id, itemdomain.ErrItemNotFound)
	}
	out := *item
	return &out, nil
}

func (r *ItemRepository) FindAll(_ context.Context) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Item, 0, len(r.items))
	for _, item := range r.items {
		c := *item
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ItemRepository) Update(_ context.Context, id int64, param *models.Item) error {
	if err := itemdomain.CheckStorable(param.Price, param.Quantity); err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("update item %d: %w", id, itemdomain.ErrItemNotFound)
	}
	item.Apply(param)
	return nil
}

func (r *ItemRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// ClearStore drops every item and resets the id counter.
func (r *ItemRepository) ClearStore() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[int64]*models.Item)
	r.lastID = 0
}
