package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItemID indicates a path or form id that is not a positive integer.
	ErrInvalidItemID = errors.New("invalid item id")

	// ErrBindingFailed indicates request values could not be converted onto a
	// form that is not re-rendered with errors (the v2 edit flow).
	ErrBindingFailed = errors.New("request binding failed")

	// ErrUnknownVariant indicates a v2 add route naming no validation variant.
	ErrUnknownVariant = errors.New("unknown validation variant")

	// ErrValueOutOfRange indicates a price or quantity that no store can hold.
	// Edits that skip validation can carry any integer.
	ErrValueOutOfRange = errors.New("value out of storable range")
)
