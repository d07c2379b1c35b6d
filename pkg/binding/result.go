package binding

import (
	"fmt"
	"strings"
)

// BindingResult is the error collection for one bound form. It is not safe
// for concurrent use; each request owns its own.
type BindingResult struct {
	objectName string
	target     any
	resolver   MessageCodesResolver
	errs       []Error
}

// NewBindingResult returns an empty result for target, registered under
// objectName (the name used in message codes, e.g. "item").
func NewBindingResult(target any, objectName string) *BindingResult {
	return &BindingResult{
		objectName: objectName,
		target:     target,
		resolver:   DefaultCodesResolver{},
	}
}

// SetCodesResolver replaces the default "code.object.field" resolver.
func (r *BindingResult) SetCodesResolver(resolver MessageCodesResolver) {
	r.resolver = resolver
}

func (r *BindingResult) ObjectName() string { return r.objectName }
func (r *BindingResult) Target() any        { return r.target }

// AddError records an already-built ObjectError or FieldError.
func (r *BindingResult) AddError(err Error) {
	r.errs = append(r.errs, err)
}

// Reject records an object-level error; code is expanded by the codes resolver.
func (r *BindingResult) Reject(code string, args []any, defaultMessage string) {
	r.AddError(NewObjectErrorWithCodes(
		r.objectName,
		r.resolver.ResolveObjectCodes(code, r.objectName),
		args,
		defaultMessage,
	))
}

// RejectValue records a field error for field using its current value as the
// rejected value; code is expanded by the codes resolver. An empty field is
// treated as Reject.
func (r *BindingResult) RejectValue(field, code string, args []any, defaultMessage string) {
	if field == "" {
		r.Reject(code, args, defaultMessage)
		return
	}
	r.AddError(NewFieldErrorWithCodes(
		r.objectName,
		field,
		r.FieldValue(field),
		false,
		r.resolver.ResolveFieldCodes(code, r.objectName, field, r.FieldType(field)),
		args,
		defaultMessage,
	))
}

// FieldValue returns the raw rejected input when the field failed to bind,
// otherwise the current value of the field on the target (nil for unset
// pointers or unknown fields).
func (r *BindingResult) FieldValue(field string) any {
	for _, fe := range r.FieldErrorsFor(field) {
		if fe.IsBindingFailure() {
			return fe.RejectedValue()
		}
	}
	v, _, ok := lookupField(r.target, field)
	if !ok {
		return nil
	}
	return plainValue(v)
}

// FieldType returns the type segment used in message codes for field, or ""
// when the target has no such field.
func (r *BindingResult) FieldType(field string) string {
	_, sf, ok := lookupField(r.target, field)
	if !ok {
		return ""
	}
	return typeName(sf.Type)
}

func (r *BindingResult) HasErrors() bool { return len(r.errs) > 0 }

func (r *BindingResult) ErrorCount() int { return len(r.errs) }

// HasFieldErrors reports whether field carries at least one error.
func (r *BindingResult) HasFieldErrors(field string) bool {
	return len(r.FieldErrorsFor(field)) > 0
}

// HasBindingFailure reports whether field could not be converted from input.
func (r *BindingResult) HasBindingFailure(field string) bool {
	for _, fe := range r.FieldErrorsFor(field) {
		if fe.IsBindingFailure() {
			return true
		}
	}
	return false
}

// AllErrors returns every recorded error in insertion order.
func (r *BindingResult) AllErrors() []Error {
	return append([]Error(nil), r.errs...)
}

// GlobalErrors returns the object-level errors in insertion order.
func (r *BindingResult) GlobalErrors() []*ObjectError {
	var out []*ObjectError
	for _, e := range r.errs {
		if oe, ok := e.(*ObjectError); ok {
			out = append(out, oe)
		}
	}
	return out
}

// FieldErrors returns the field-level errors in insertion order.
func (r *BindingResult) FieldErrors() []*FieldError {
	var out []*FieldError
	for _, e := range r.errs {
		if fe, ok := e.(*FieldError); ok {
			out = append(out, fe)
		}
	}
	return out
}

// FieldErrorsFor returns the errors recorded for one field.
func (r *BindingResult) FieldErrorsFor(field string) []*FieldError {
	var out []*FieldError
	for _, e := range r.errs {
		if fe, ok := e.(*FieldError); ok && fe.Field() == field {
			out = append(out, fe)
		}
	}
	return out
}

// String renders the result for logs, one error per line.
func (r *BindingResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "binding result for '%s': %d errors", r.objectName, len(r.errs))
	for _, e := range r.errs {
		b.WriteString("\n")
		b.WriteString(e.Error())
	}
	return b.String()
}
