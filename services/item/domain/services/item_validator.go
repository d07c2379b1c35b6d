// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types.
package services

import (
	"math"
	"math/bits"

	"github.com/ghuser/itemvalidation/pkg/binding"
	"github.com/ghuser/itemvalidation/services/item/domain/forms"
)

// Item rules shared by every validation flow.
const (
	MinPrice      = 1000
	MaxPrice      = 1000000
	MaxQuantity   = 9999 // exclusive
	MinTotalPrice = 10000
)

// PriceInRange reports whether price lies in [MinPrice, MaxPrice].
func PriceInRange(price int) bool {
	return price >= MinPrice && price <= MaxPrice
}

// QuantityAllowed reports whether quantity is below MaxQuantity.
func QuantityAllowed(quantity int) bool {
	return quantity < MaxQuantity
}

// TotalPrice multiplies price by quantity in 64 bits, saturating at
// math.MaxInt64 or math.MinInt64 instead of wrapping.
func TotalPrice(price, quantity int) int64 {
	p, q := int64(price), int64(quantity)
	hi, lo := bits.Mul64(magnitude(p), magnitude(q))
	negative := (p < 0) != (q < 0)
	switch {
	case negative && (hi != 0 || lo > 1<<63):
		return math.MinInt64
	case negative:
		return int64(-lo)
	case hi != 0 || lo > math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(lo)
	}
}

func magnitude(n int64) uint64 {
	if n < 0 {
		return -uint64(n)
	}
	return uint64(n)
}

// TotalPriceBelowMin reports the product when both values are present and it
// is below MinTotalPrice.
func TotalPriceBelowMin(price, quantity *int) (int64, bool) {
	if price == nil || quantity == nil {
		return 0, false
	}
	total := TotalPrice(*price, *quantity)
	return total, total < MinTotalPrice
}

// CheckTotalPrice records the object-level totalPriceMin error when both
// price and quantity are present and their product is below MinTotalPrice.
func CheckTotalPrice(price, quantity *int, errs *binding.BindingResult) {
	if total, below := TotalPriceBelowMin(price, quantity); below {
		errs.Reject("totalPriceMin", []any{MinTotalPrice, total}, "")
	}
}

// ItemValidator is the pluggable validator for ItemForm. It can be called
// directly or registered on a binding.Binder.
type ItemValidator struct{}

func NewItemValidator() *ItemValidator {
	return &ItemValidator{}
}

// Supports accepts *forms.ItemForm only.
func (v *ItemValidator) Supports(target any) bool {
	_, ok := target.(*forms.ItemForm)
	return ok
}

// Validate records field errors with codes required, range and max, then the
// cross-field check. Fields that failed to bind keep only their typeMismatch.
func (v *ItemValidator) Validate(target any, errs *binding.BindingResult) {
	form, ok := target.(*forms.ItemForm)
	if !ok {
		return
	}

	binding.RejectIfEmptyOrWhitespace(errs, "itemName", "required")

	if !errs.HasBindingFailure("price") {
		switch {
		case form.Price == nil:
			errs.RejectValue("price", "required", nil, "")
		case !PriceInRange(*form.Price):
			errs.RejectValue("price", "range", []any{MinPrice, MaxPrice}, "")
		}
	}

	if !errs.HasBindingFailure("quantity") {
		if form.Quantity == nil || !QuantityAllowed(*form.Quantity) {
			errs.RejectValue("quantity", "max", []any{MaxQuantity}, "")
		}
	}

	CheckTotalPrice(form.Price, form.Quantity, errs)
}
