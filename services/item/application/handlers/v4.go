package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	pkgvalidator "github.com/ghuser/itemvalidation/pkg/validator"
	"github.com/ghuser/itemvalidation/services/item/domain/forms"
	domainsvcs "github.com/ghuser/itemvalidation/services/item/domain/services"
)

// V4Handler serves /validation/v4/items with a dedicated form per operation,
// so add and edit can carry different rules.
type V4Handler struct {
	itemPages
}

func NewV4Handler(d Deps) *V4Handler {
	return &V4Handler{itemPages: newItemPages("v4", d)}
}

// Routes registers the v4 endpoints on r.
func (h *V4Handler) Routes(r chi.Router) {
	h.routes(r, func(r chi.Router) {
		r.Post("/add", h.AddItem)
		r.Post("/{itemId}/edit", h.Edit)
	})
}

// AddItem handles POST /validation/v4/items/add.
//
//	@Summary	Add item (save form)
//	@Tags		v4
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		request	body	forms.ItemSaveForm	true	"Item save form"
//	@Success	303
//	@Failure	400	{object}	map[string]string
//	@Failure	422	{object}	FormView
//	@Router		/validation/v4/items/add [post]
func (h *V4Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	form := &forms.ItemSaveForm{}
	b, err := bind(r, form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	errs := b.Result()
	if err := pkgvalidator.ValidateInto(form, errs); err != nil {
		h.writeError(w, r, err)
		return
	}
	domainsvcs.CheckTotalPrice(form.Price, form.Quantity, errs)

	if errs.HasErrors() {
		h.rejectForm(w, r, h.view("addForm"), "save", errs)
		return
	}

	saved, err := h.items.Save(r.Context(), form.ToItem())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.redirectSaved(w, r, "save", saved)
}

// Edit handles POST /validation/v4/items/{itemId}/edit. The form must carry
// the id of the item being edited.
//
//	@Summary	Edit item (update form)
//	@Tags		v4
//	@Accept		json,x-www-form-urlencoded
//	@Produce	json
//	@Param		itemId	path	int						true	"Item id"
//	@Param		request	body	forms.ItemUpdateForm	true	"Item update form"
//	@Success	303
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Failure	422	{object}	FormView
//	@Router		/validation/v4/items/{itemId}/edit [post]
func (h *V4Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	form := &forms.ItemUpdateForm{}
	b, err := bind(r, form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	errs := b.Result()
	if err := pkgvalidator.ValidateInto(form, errs); err != nil {
		h.writeError(w, r, err)
		return
	}
	domainsvcs.CheckTotalPrice(form.Price, form.Quantity, errs)
	if form.ID != nil && *form.ID != id {
		errs.Reject("idMismatch", []any{*form.ID, id}, "")
	}

	if errs.HasErrors() {
		h.rejectForm(w, r, h.view("editForm"), "update", errs)
		return
	}

	if err := h.items.Update(r.Context(), id, form.ToItem()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.redirectUpdated(w, r, "update", id)
}
