// Package forms holds the request shapes bound from item form submissions.
// Numeric fields are pointers so "absent" and "not a number" stay
// distinguishable from zero.
package forms

import "github.com/ghuser/itemvalidation/services/item/domain/models"

// ObjectName is the name item forms are registered under in message codes.
const ObjectName = "item"

// ItemForm is the single form shared by add and edit in the v2 and v3 flows.
// The validate tags are only consulted by the declarative (v3) handlers.
type ItemForm struct {
	ID       *int64 `form:"id" json:"id"`
	ItemName string `form:"itemName" json:"itemName" validate:"notblank"`
	Price    *int   `form:"price" json:"price" validate:"required,range=1000:1000000"`
	Quantity *int   `form:"quantity" json:"quantity" validate:"required,lt=9999"`
} // @name ItemForm

// FromItem fills a form from a stored item, e.g. for the edit view.
func FromItem(item *models.Item) *ItemForm {
	id, price, quantity := item.ID, item.Price, item.Quantity
	return &ItemForm{
		ID:       &id,
		ItemName: item.ItemName,
		Price:    &price,
		Quantity: &quantity,
	}
}

// ToItem converts a validated form. Nil numbers become zero.
func (f *ItemForm) ToItem() *models.Item {
	item := models.NewItem(f.ItemName, deref(f.Price), deref(f.Quantity))
	if f.ID != nil {
		item.ID = *f.ID
	}
	return item
}

// ItemSaveForm is bound on add in the v4 flow. It has no id.
type ItemSaveForm struct {
	ItemName string `form:"itemName" json:"itemName" validate:"notblank"`
	Price    *int   `form:"price" json:"price" validate:"required,range=1000:1000000"`
	Quantity *int   `form:"quantity" json:"quantity" validate:"required,lt=9999"`
} // @name ItemSaveForm

func (f *ItemSaveForm) ToItem() *models.Item {
	return models.NewItem(f.ItemName, deref(f.Price), deref(f.Quantity))
}

// ItemUpdateForm is bound on edit in the v4 flow. Quantity is not limited
// when editing.
type ItemUpdateForm struct {
	ID       *int64 `form:"id" json:"id" validate:"required"`
	ItemName string `form:"itemName" json:"itemName" validate:"notblank"`
	Price    *int   `form:"price" json:"price" validate:"required,range=1000:1000000"`
	Quantity *int   `form:"quantity" json:"quantity"`
} // @name ItemUpdateForm

func (f *ItemUpdateForm) ToItem() *models.Item {
	item := models.NewItem(f.ItemName, deref(f.Price), deref(f.Quantity))
	if f.ID != nil {
		item.ID = *f.ID
	}
	return item
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
