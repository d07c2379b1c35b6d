package db

import (
	"context"
)

const countItems = `-- name: CountItems :one
SELECT count(*) FROM item.items
`

func (q *Queries) CountItems(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countItems)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getItemByID = `-- name: GetItemByID :one
SELECT id, item_name, price, quantity, created_at, updated_at FROM item.items
WHERE id = $1
`

func (q *Queries) GetItemByID(ctx context.Context, id int64) (ItemItem, error) {
	row := q.db.QueryRowContext(ctx, getItemByID, id)
	var i ItemItem
	err := row.Scan(
		&i.ID,
		&i.ItemName,
		&i.Price,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertItem = `-- name: InsertItem :one
INSERT INTO item.items (item_name, price, quantity)
VALUES ($1, $2, $3)
RETURNING id, item_name, price, quantity, created_at, updated_at
`

type InsertItemParams struct {
	ItemName string
	Price    int32
	Quantity int32
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) (ItemItem, error) {
	row := q.db.QueryRowContext(ctx, insertItem, arg.ItemName, arg.Price, arg.Quantity)
	var i ItemItem
	err := row.Scan(
		&i.ID,
		&i.ItemName,
		&i.Price,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listItems = `-- name: ListItems :many
SELECT id, item_name, price, quantity, created_at, updated_at FROM item.items
ORDER BY id
`

func (q *Queries) ListItems(ctx context.Context) ([]ItemItem, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ItemItem
	for rows.Next() {
		var i ItemItem
		if err := rows.Scan(
			&i.ID,
			&i.ItemName,
			&i.Price,
			&i.Quantity,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateItem = `-- name: UpdateItem :one
UPDATE item.items
SET item_name = $2, price = $3, quantity = $4, updated_at = now()
WHERE id = $1
RETURNING id, item_name, price, quantity, created_at, updated_at
`

type UpdateItemParams struct {
	ID       int64
	ItemName string
	Price    int32
	Quantity int32
}

func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (ItemItem, error) {
	row := q.db.QueryRowContext(ctx, updateItem,
		arg.ID,
		arg.ItemName,
		arg.Price,
		arg.Quantity,
	)
	var i ItemItem
	err := row.Scan(
		&i.ID,
		&i.ItemName,
		&i.Price,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
