package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	itemdomain "github.com/ghuser/itemvalidation/services/item/domain"
	"github.com/ghuser/itemvalidation/services/item/domain/models"
)

func TestItemRepository_SaveAssignsSequentialIDs(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()

	a, err := repo.Save(ctx, models.NewItem("itemA", 10000, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := repo.Save(ctx, models.NewItem("itemB", 20000, 20))

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}

	found, err := repo.FindByID(ctx, 2)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if *found != *b {
		t.Fatalf("got %+v, want %+v", found, b)
	}
}

func TestItemRepository_ReturnsCopies(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	saved, _ := repo.Save(ctx, models.NewItem("itemA", 10000, 10))

	saved.ItemName = "mutated"
	found, _ := repo.FindByID(ctx, saved.ID)
	if found.ItemName != "itemA" {
		t.Fatalf("stored item was mutated through returned pointer: %+v", found)
	}
}

func TestItemRepository_FindByIDNotFound(t *testing.T) {
	repo := NewItemRepository()
	_, err := repo.FindByID(context.Background(), 42)
	if !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemRepository_FindAllOrdered(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		_, _ = repo.Save(ctx, models.NewItem(name, 1000, 10))
	}

	items, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, item := range items {
		if item.ID != int64(i+1) {
			t.Errorf("position %d: got id %d", i, item.ID)
		}
	}
}

func TestItemRepository_Update(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	saved, _ := repo.Save(ctx, models.NewItem("itemA", 10000, 10))

	if err := repo.Update(ctx, saved.ID, &models.Item{ID: 99, ItemName: "itemZ", Price: 5000, Quantity: 3}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	found, _ := repo.FindByID(ctx, saved.ID)
	want := models.Item{ID: saved.ID, ItemName: "itemZ", Price: 5000, Quantity: 3}
	if *found != want {
		t.Fatalf("got %+v, want %+v", *found, want)
	}

	if err := repo.Update(ctx, 77, &models.Item{}); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemRepository_RejectsUnstorableValues(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	saved, _ := repo.Save(ctx, models.NewItem("itemA", 10000, 10))

	if err := repo.Update(ctx, saved.ID, models.NewItem("itemA", 10000, 1<<40)); !errors.Is(err, itemdomain.ErrValueOutOfRange) {
		t.Fatalf("Update: expected ErrValueOutOfRange, got %v", err)
	}
	found, _ := repo.FindByID(ctx, saved.ID)
	if found.Quantity != 10 {
		t.Fatalf("rejected update was applied: %+v", found)
	}

	if _, err := repo.Save(ctx, models.NewItem("itemB", 1<<40, 1)); !errors.Is(err, itemdomain.ErrValueOutOfRange) {
		t.Fatalf("Save: expected ErrValueOutOfRange, got %v", err)
	}
}

func TestItemRepository_ClearStore(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	_, _ = repo.Save(ctx, models.NewItem("itemA", 10000, 10))
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("Count before clear = %d, want 1", n)
	}
	repo.ClearStore()

	items, _ := repo.FindAll(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty store, got %d", len(items))
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("Count after clear = %d, want 0", n)
	}
	again, _ := repo.Save(ctx, models.NewItem("itemB", 10000, 10))
	if again.ID != 1 {
		t.Fatalf("expected id counter reset, got %d", again.ID)
	}
}

func TestItemRepository_ConcurrentSaves(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Save(ctx, models.NewItem("x", 1000, 10))
		}()
	}
	wg.Wait()

	items, _ := repo.FindAll(ctx)
	if len(items) != n {
		t.Fatalf("expected %d items, got %d", n, len(items))
	}
	seen := make(map[int64]bool, n)
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %d", item.ID)
		}
		seen[item.ID] = true
	}
}
