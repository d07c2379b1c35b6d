package handlers

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/ghuser/itemvalidation/pkg/binding"
	"github.com/ghuser/itemvalidation/pkg/messages"
	"github.com/ghuser/itemvalidation/services/item/domain/models"
)

// ErrorView is an object-level error resolved for display.
type ErrorView struct {
	Code      string   `json:"code"`
	Codes     []string `json:"codes"`
	Arguments []any    `json:"arguments"`
	Message   string   `json:"message"`
} // @name ErrorView

// FieldErrorView is a field error resolved for display.
type FieldErrorView struct {
	Field          string `json:"field"`
	RejectedValue  any    `json:"rejectedValue"`
	BindingFailure bool   `json:"bindingFailure"`
	ErrorView
} // @name FieldErrorView

// ErrorsView groups the errors of one form.
type ErrorsView struct {
	Global []ErrorView                  `json:"global"`
	Fields map[string][]FieldErrorView `json:"fields"`
} // @name ErrorsView

// FormView is the add/edit form view model. Item echoes what the user
// submitted so the form can be re-filled.
type FormView struct {
	Form   string         `json:"form"`
	View   string         `json:"view"`
	Item   map[string]any `json:"item"`
	Errors *ErrorsView    `json:"errors,omitempty"`
} // @name FormView

// ItemView is the item detail view model.
type ItemView struct {
	Item    *models.Item `json:"item"`
	Status  bool         `json:"status"`
	Flashes []string     `json:"flashes"`
} // @name ItemView

// ItemsView is the item list view model.
type ItemsView struct {
	Items []*models.Item `json:"items"`
} // @name ItemsView

// renderer resolves binding results into view models for the request locale.
type renderer struct {
	messages *messages.Source
}

func (rd *renderer) locale(r *http.Request) language.Tag {
	return rd.messages.Locale(r.Header.Get("Accept-Language"))
}

// formView builds the view model for errs. Errors is nil when errs is clean.
func (rd *renderer) formView(r *http.Request, view string, errs *binding.BindingResult) FormView {
	fv := FormView{
		Form: errs.ObjectName(),
		View: view,
		Item: echo(errs),
	}
	if errs.HasErrors() {
		fv.Errors = rd.errorsView(errs, rd.locale(r))
	}
	return fv
}

func (rd *renderer) errorsView(errs *binding.BindingResult, tag language.Tag) *ErrorsView {
	ev := &ErrorsView{
		Global: []ErrorView{},
		Fields: map[string][]FieldErrorView{},
	}
	for _, oe := range errs.GlobalErrors() {
		ev.Global = append(ev.Global, rd.errorView(oe, tag))
	}
	for _, fe := range errs.FieldErrors() {
		ev.Fields[fe.Field()] = append(ev.Fields[fe.Field()], FieldErrorView{
			Field:          fe.Field(),
			RejectedValue:  fe.RejectedValue(),
			BindingFailure: fe.IsBindingFailure(),
			ErrorView:      rd.errorView(&fe.ObjectError, tag),
		})
	}
	return ev
}

func (rd *renderer) errorView(oe *binding.ObjectError, tag language.Tag) ErrorView {
	codes := oe.Codes()
	if codes == nil {
		codes = []string{}
	}
	args := make([]any, 0, len(oe.Arguments()))
	for _, a := range oe.Arguments() {
		if res, ok := a.(messages.Resolvable); ok {
			args = append(args, rd.messages.Message(res, tag))
			continue
		}
		args = append(args, a)
	}
	return ErrorView{
		Code:      oe.Code(),
		Codes:     codes,
		Arguments: args,
		Message:   rd.messages.Message(oe, tag),
	}
}

// echo returns, per form field, the rejected value of its first field error,
// or the bound value when the field has no error.
func echo(errs *binding.BindingResult) map[string]any {
	out := make(map[string]any)
	for _, name := range binding.FieldNames(errs.Target()) {
		if fes := errs.FieldErrorsFor(name); len(fes) > 0 {
			out[name] = fes[0].RejectedValue()
			continue
		}
		out[name] = errs.FieldValue(name)
	}
	return out
}
