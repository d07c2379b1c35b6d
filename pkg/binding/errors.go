// Package binding collects per-request validation errors for a bound form.
//
// A BindingResult is created for each submitted form, filled by the Binder
// (type conversion failures) and by validators (rule violations), and handed
// to the rendering step which resolves every error to a message.
package binding

import (
	"fmt"
	"strings"
)

// Error is implemented by ObjectError and FieldError.
type Error interface {
	error
	ObjectName() string
	Codes() []string
	Arguments() []any
	DefaultMessage() string
}

// ObjectError is an object-level (global) validation error: a rule that spans
// several fields of the form rather than one input.
type ObjectError struct {
	objectName     string
	codes          []string
	arguments      []any
	defaultMessage string
}

// NewObjectError returns an object error carrying only a literal message.
func NewObjectError(objectName, defaultMessage string) *ObjectError {
	return &ObjectError{objectName: objectName, defaultMessage: defaultMessage}
}

// NewObjectErrorWithCodes returns an object error resolved through message codes.
// codes are tried in order; defaultMessage is used when none resolves.
func NewObjectErrorWithCodes(objectName string, codes []string, args []any, defaultMessage string) *ObjectError {
	return &ObjectError{
		objectName:     objectName,
		codes:          codes,
		arguments:      args,
		defaultMessage: defaultMessage,
	}
}

func (e *ObjectError) ObjectName() string     { return e.objectName }
func (e *ObjectError) Codes() []string        { return e.codes }
func (e *ObjectError) Arguments() []any       { return e.arguments }
func (e *ObjectError) DefaultMessage() string { return e.defaultMessage }

// Code returns the most general code (the last one), or "" when the error
// only carries a literal message.
func (e *ObjectError) Code() string {
	if len(e.codes) == 0 {
		return ""
	}
	return e.codes[len(e.codes)-1]
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("error in object '%s': %s", e.objectName, e.describe())
}

func (e *ObjectError) describe() string {
	return fmt.Sprintf("codes [%s]; arguments [%s]; default message [%s]",
		strings.Join(e.codes, ","), formatArgs(e.arguments), e.defaultMessage)
}

// FieldError is a validation error attributable to one named input.
type FieldError struct {
	ObjectError
	field          string
	rejectedValue  any
	bindingFailure bool
}

// NewFieldError returns a field error carrying only a literal message.
// The rejected value is not kept, so a re-rendered form shows the field empty.
func NewFieldError(objectName, field, defaultMessage string) *FieldError {
	return &FieldError{
		ObjectError: ObjectError{objectName: objectName, defaultMessage: defaultMessage},
		field:       field,
	}
}

// NewFieldErrorWithCodes returns a field error that keeps the rejected value.
// bindingFailure marks errors raised while converting the raw input rather
// than by a validation rule.
func NewFieldErrorWithCodes(
	objectName, field string,
	rejectedValue any,
	bindingFailure bool,
	codes []string,
	args []any,
	defaultMessage string,
) *FieldError {
	return &FieldError{
		ObjectError: ObjectError{
			objectName:     objectName,
			codes:          codes,
			arguments:      args,
			defaultMessage: defaultMessage,
		},
		field:          field,
		rejectedValue:  rejectedValue,
		bindingFailure: bindingFailure,
	}
}

func (e *FieldError) Field() string          { return e.field }
func (e *FieldError) RejectedValue() any     { return e.rejectedValue }
func (e *FieldError) IsBindingFailure() bool { return e.bindingFailure }

func (e *FieldError) Error() string {
	return fmt.Sprintf("field error in object '%s' on field '%s': rejected value [%v]; %s",
		e.objectName, e.field, e.rejectedValue, e.describe())
}

// FieldNameArgument is a message argument that resolves to the display name of
// a field, e.g. codes [item.price, price] with "price" as fallback.
type FieldNameArgument struct {
	codes []string
	field string
}

// NewFieldNameArgument returns the argument used as {0} by declarative rules.
func NewFieldNameArgument(objectName, field string) FieldNameArgument {
	return FieldNameArgument{
		codes: []string{objectName + "." + field, field},
		field: field,
	}
}

func (a FieldNameArgument) Codes() []string        { return a.codes }
func (a FieldNameArgument) Arguments() []any       { return nil }
func (a FieldNameArgument) DefaultMessage() string { return a.field }
func (a FieldNameArgument) String() string         { return a.field }

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ",")
}
