package db

import "time"

type ItemItem struct {
	ID        int64
	ItemName  string
	Price     int32
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}
