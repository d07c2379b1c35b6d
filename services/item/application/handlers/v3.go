package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemvalidation/pkg/binding"
	pkgvalidator "github.com/ghuser/itemvalidation/pkg/validator"
	"github.com/ghuser/itemvalidation/services/item/domain/forms"
	domainsvcs "github.com/ghuser/itemvalidation/services/item/domain/services"
)

// V3Handler serves /validation/v3/items: field rules come from the validate
// tags on forms.ItemForm, the total price rule is checked here.
type V3Handler struct {
	itemPages
}

func NewV3Handler(d Deps) *V3Handler {
	return &V3Handler{itemPages: newItemPages("v3", d)}
}

// Routes registers the v3 endpoints on r.
func (h *V3Handler) Routes(r chi.Router) {
	h.routes(r, func(r chi.Router) {
		r.Post("/add", h.AddItem)
		r.Post("/{itemId}/edit", h.Edit)
	})
}

// AddItem handles POST /validation/v3/items/add.
//
//	@Summary	Add item (declarative validation)
//	@Tags		v3
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		request	body	forms.ItemForm	true	"Item form"
//	@Success	303
//	@Failure	400	{object}	map[string]string
//	@Failure	422	{object}	FormView
//	@Router		/validation/v3/items/add [post]
func (h *V3Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	form := &forms.ItemForm{}
	errs, ok := h.bindAndValidate(w, r, form)
	if !ok {
		return
	}
	if errs.HasErrors() {
		h.rejectForm(w, r, h.view("addForm"), "declarative", errs)
		return
	}

	saved, err := h.items.Save(r.Context(), form.ToItem())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.redirectSaved(w, r, "declarative", saved)
}

// Edit handles POST /validation/v3/items/{itemId}/edit.
//
//	@Summary	Edit item (declarative validation)
//	@Tags		v3
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		itemId	path	int				true	"Item id"
//	@Param		request	body	forms.ItemForm	true	"Item form"
//	@Success	303
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Failure	422	{object}	FormView
//	@Router		/validation/v3/items/{itemId}/edit [post]
func (h *V3Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	form := &forms.ItemForm{}
	errs, ok := h.bindAndValidate(w, r, form)
	if !ok {
		return
	}
	if errs.HasErrors() {
		h.rejectForm(w, r, h.view("editForm"), "declarative", errs)
		return
	}

	if err := h.items.Update(r.Context(), id, form.ToItem()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.redirectUpdated(w, r, "declarative", id)
}

func (h *V3Handler) bindAndValidate(w http.ResponseWriter, r *http.Request, form *forms.ItemForm) (*binding.BindingResult, bool) {
	b, err := bind(r, form)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	errs := b.Result()
	if err := pkgvalidator.ValidateInto(form, errs); err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	domainsvcs.CheckTotalPrice(form.Price, form.Quantity, errs)
	return errs, true
}
