package binding

import (
	"reflect"
	"strings"
)

// Validator is a pluggable validation routine for one kind of form.
// Validate records violations on errs instead of returning them.
type Validator interface {
	Supports(target any) bool
	Validate(target any, errs *BindingResult)
}

// RejectIfEmptyOrWhitespace rejects field with code when its value is nil,
// or a string that is empty or whitespace only.
func RejectIfEmptyOrWhitespace(errs *BindingResult, field, code string, args ...any) {
	v := errs.FieldValue(field)
	if v == nil {
		errs.RejectValue(field, code, args, "")
		return
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		errs.RejectValue(field, code, args, "")
	}
}

// RejectIfEmpty rejects field with code when its value is nil or the zero
// value of its type.
func RejectIfEmpty(errs *BindingResult, field, code string, args ...any) {
	v := errs.FieldValue(field)
	if v == nil || reflect.ValueOf(v).IsZero() {
		errs.RejectValue(field, code, args, "")
	}
}
