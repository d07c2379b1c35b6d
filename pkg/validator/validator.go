package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ghuser/itemvalidation/pkg/binding"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(binding.FormName)

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("range", validateRange); err != nil {
		panic(err)
	}
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// ValidateInto validates target and records each violated tag on errs as a
// field error with a declarative code (NotBlank, NotNull, Range, Max, ...).
// Fields that already failed to bind are skipped so a typeMismatch is not
// followed by a second, misleading error.
func ValidateInto(target any, errs *binding.BindingResult) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate %T: %w", target, err)
	}

	resolver := binding.DefaultCodesResolver{}
	objectName := errs.ObjectName()
	for _, fe := range ve {
		field := fe.Field()
		if errs.HasBindingFailure(field) {
			continue
		}
		code := CodeFor(fe.Tag(), fe.Kind())
		errs.AddError(binding.NewFieldErrorWithCodes(
			objectName,
			field,
			errs.FieldValue(field),
			false,
			resolver.ResolveFieldCodes(code, objectName, field, errs.FieldType(field)),
			argsFor(objectName, fe),
			fmt.Sprintf("failed on '%s' validation", fe.Tag()),
		))
	}
	return nil
}

// Adapter exposes declarative validation through the binding.Validator
// interface so it can be registered on a Binder.
type Adapter struct{}

func (Adapter) Supports(target any) bool {
	v := reflect.ValueOf(target)
	return v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Struct
}

// CodeValidationError is recorded as an object error when target cannot be
// validated at all, so the form is rejected instead of passing unchecked.
const CodeValidationError = "validationError"

func (Adapter) Validate(target any, errs *binding.BindingResult) {
	if err := ValidateInto(target, errs); err != nil {
		errs.Reject(CodeValidationError, nil, err.Error())
	}
}

// CodeFor maps a validator tag to the message code recorded on the error.
func CodeFor(tag string, kind reflect.Kind) string {
	switch tag {
	case "notblank":
		return "NotBlank"
	case "required":
		if kind == reflect.String {
			return "NotEmpty"
		}
		return "NotNull"
	case "range":
		return "Range"
	case "lt", "max", "lte":
		return "Max"
	case "gt", "min", "gte":
		return "Min"
	default:
		if tag == "" {
			return tag
		}
		return strings.ToUpper(tag[:1]) + tag[1:]
	}
}

// argsFor builds the message arguments: the field display name first, then
// the numeric bounds of the rule.
func argsFor(objectName string, fe validator.FieldError) []any {
	args := []any{binding.NewFieldNameArgument(objectName, fe.Field())}
	switch fe.Tag() {
	case "range":
		if lo, hi, err := parseRange(fe.Param()); err == nil {
			args = append(args, lo, hi)
		}
	case "lt", "max", "lte", "gt", "min", "gte":
		if n, err := strconv.ParseInt(fe.Param(), 10, 64); err == nil {
			args = append(args, n)
		}
	}
	return args
}

// validateRange implements `range=lo:hi` (inclusive) for integer fields.
func validateRange(fl validator.FieldLevel) bool {
	lo, hi, err := parseRange(fl.Param())
	if err != nil {
		return false
	}
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := f.Int()
		return n >= lo && n <= hi
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := f.Uint()
		return hi >= 0 && n <= uint64(hi) && (lo <= 0 || n >= uint64(lo))
	default:
		return false
	}
}

func parseRange(param string) (int64, int64, error) {
	loStr, hiStr, ok := strings.Cut(param, ":")
	if !ok {
		return 0, 0, fmt.Errorf("range param %q: want lo:hi", param)
	}
	lo, err := strconv.ParseInt(strings.TrimSpace(loStr), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("range param %q: %w", param, err)
	}
	hi, err := strconv.ParseInt(strings.TrimSpace(hiStr), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("range param %q: %w", param, err)
	}
	return lo, hi, nil
}
