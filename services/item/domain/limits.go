package domain

import (
	"fmt"
	"math"
)

// Price and quantity are stored as 32-bit integers by every backend.
const (
	MinStoredValue = math.MinInt32
	MaxStoredValue = math.MaxInt32
)

// CheckStorable returns ErrValueOutOfRange when price or quantity does not
// fit the stored column type.
func CheckStorable(price, quantity int) error {
	for _, v := range []struct {
		name string
		n    int
	}{{"price", price}, {"quantity", quantity}} {
		if v.n < MinStoredValue || v.n > MaxStoredValue {
			return fmt.Errorf("%w: %s %d", ErrValueOutOfRange, v.name, v.n)
		}
	}
	return nil
}
