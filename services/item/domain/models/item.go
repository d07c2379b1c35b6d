package models

// Item is the stored aggregate. ID is assigned by the repository on Save and
// never changes afterwards.
type Item struct {
	ID       int64  `json:"id"`
	ItemName string `json:"itemName"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// NewItem returns an unsaved Item (ID 0).
func NewItem(itemName string, price, quantity int) *Item {
	return &Item{
		ItemName: itemName,
		Price:    price,
		Quantity: quantity,
	}
}

// TotalPrice is price times quantity.
func (i *Item) TotalPrice() int {
	return i.Price * i.Quantity
}

// Apply copies the editable fields of src onto i, keeping i's ID.
func (i *Item) Apply(src *Item) {
	i.ItemName = src.ItemName
	i.Price = src.Price
	i.Quantity = src.Quantity
}
