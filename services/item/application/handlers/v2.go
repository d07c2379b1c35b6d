package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemvalidation/pkg/binding"
	itemdomain "github.com/ghuser/itemvalidation/services/item/domain"
	"github.com/ghuser/itemvalidation/services/item/domain/forms"
	domainsvcs "github.com/ghuser/itemvalidation/services/item/domain/services"
)

// V2Handler serves /validation/v2/items: validation written by hand, refined
// step by step across six add variants.
type V2Handler struct {
	itemPages
	validator      *domainsvcs.ItemValidator
	variants       map[string]func(*forms.ItemForm, *binding.Binder)
	defaultVariant string
}

// NewV2Handler returns the v2 controller. defaultVariant (v1..v6) is the one
// POST /add dispatches to.
func NewV2Handler(d Deps, defaultVariant string) *V2Handler {
	h := &V2Handler{
		itemPages:      newItemPages("v2", d),
		validator:      domainsvcs.NewItemValidator(),
		defaultVariant: defaultVariant,
	}
	h.variants = map[string]func(*forms.ItemForm, *binding.Binder){
		"v1": h.validateV1,
		"v2": h.validateV2,
		"v3": h.validateV3,
		"v4": h.validateV4,
		"v5": h.validateV5,
		"v6": h.validateV6,
	}
	return h
}

// Routes registers the v2 endpoints on r.
func (h *V2Handler) Routes(r chi.Router) {
	h.routes(r, func(r chi.Router) {
		r.Post("/add", h.AddItem)
		r.Post("/add/{variant}", h.AddItem)
		r.Post("/{itemId}/edit", h.Edit)
	})
}

// initBinder applies to every binder of this controller.
func (h *V2Handler) initBinder(b *binding.Binder) {
	b.AddValidators(h.validator)
}

// AddItem handles POST /validation/v2/items/add[/{variant}].
//
//	@Summary		Add item (manual validation)
//	@Description	Binds the item form and validates it with the selected hand-written variant (v1..v6).
//	@Tags			v2
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			variant	path	string		false	"Validation variant"	Enums(v1,v2,v3,v4,v5,v6)
//	@Param			request	body	forms.ItemForm	true	"Item form"
//	@Success		303
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		422	{object}	FormView
//	@Router			/validation/v2/items/add/{variant} [post]
func (h *V2Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	if variant == "" {
		variant = h.defaultVariant
	}
	validate, ok := h.variants[variant]
	if !ok {
		h.writeError(w, r, fmt.Errorf("%w: %q", itemdomain.ErrUnknownVariant, variant))
		return
	}

	form := &forms.ItemForm{}
	b, err := bind(r, form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.initBinder(b)

	validate(form, b)

	errs := b.Result()
	if errs.HasErrors() {
		h.rejectForm(w, r, h.view("addForm"), variant, errs)
		return
	}

	saved, err := h.items.Save(r.Context(), form.ToItem())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.redirectSaved(w, r, variant, saved)
}

// Edit handles POST /validation/v2/items/{itemId}/edit. Values are bound
// without validation; input that cannot be converted is rejected with 400.
//
//	@Summary	Edit item (no validation)
//	@Tags		v2
//	@Accept		json,x-www-form-urlencoded
//	@Param		itemId	path	int				true	"Item id"
//	@Param		request	body	forms.ItemForm	true	"Item form"
//	@Success	303
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/validation/v2/items/{itemId}/edit [post]
func (h *V2Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	form := &forms.ItemForm{}
	b, err := bind(r, form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if errs := b.Result(); errs.HasErrors() {
		h.log.InfoContext(r.Context(), "edit binding failed", "errors", errs.String())
		h.writeError(w, r, fmt.Errorf("%w: %s", itemdomain.ErrBindingFailed, describeFailures(errs)))
		return
	}

	if err := h.items.Update(r.Context(), id, form.ToItem()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.redirectUpdated(w, r, "bind-only", id)
}

// validateV1 records literal messages; the rejected value is not kept.
func (h *V2Handler) validateV1(form *forms.ItemForm, b *binding.Binder) {
	errs := b.Result()
	obj := errs.ObjectName()

	if strings.TrimSpace(form.ItemName) == "" {
		errs.AddError(binding.NewFieldError(obj, "itemName", "Item name is required."))
	}
	if form.Price == nil || !domainsvcs.PriceInRange(*form.Price) {
		errs.AddError(binding.NewFieldError(obj, "price", "Price must be between 1,000 and 1,000,000."))
	}
	if form.Quantity == nil || !domainsvcs.QuantityAllowed(*form.Quantity) {
		errs.AddError(binding.NewFieldError(obj, "quantity", "Quantity must be less than 9,999."))
	}
	if total, below := domainsvcs.TotalPriceBelowMin(form.Price, form.Quantity); below {
		errs.AddError(binding.NewObjectError(obj,
			fmt.Sprintf("Price * quantity must be at least 10,000. Current value = %d", total)))
	}
}

// validateV2 keeps the rejected value so the form can be re-filled.
func (h *V2Handler) validateV2(form *forms.ItemForm, b *binding.Binder) {
	errs := b.Result()
	obj := errs.ObjectName()

	if strings.TrimSpace(form.ItemName) == "" {
		errs.AddError(binding.NewFieldErrorWithCodes(obj, "itemName", form.ItemName, false,
			nil, nil, "Item name is required."))
	}
	if form.Price == nil || !domainsvcs.PriceInRange(*form.Price) {
		errs.AddError(binding.NewFieldErrorWithCodes(obj, "price", errs.FieldValue("price"), false,
			nil, nil, "Price must be between 1,000 and 1,000,000."))
	}
	if form.Quantity == nil || !domainsvcs.QuantityAllowed(*form.Quantity) {
		errs.AddError(binding.NewFieldErrorWithCodes(obj, "quantity", errs.FieldValue("quantity"), false,
			nil, nil, "Quantity must be less than 9,999."))
	}
	if total, below := domainsvcs.TotalPriceBelowMin(form.Price, form.Quantity); below {
		errs.AddError(binding.NewObjectError(obj,
			fmt.Sprintf("Price * quantity must be at least 10,000. Current value = %d", total)))
	}
}

// validateV3 resolves messages through explicit codes and arguments.
func (h *V2Handler) validateV3(form *forms.ItemForm, b *binding.Binder) {
	errs := b.Result()
	obj := errs.ObjectName()

	if strings.TrimSpace(form.ItemName) == "" {
		errs.AddError(binding.NewFieldErrorWithCodes(obj, "itemName", form.ItemName, false,
			[]string{"required.item.itemName"}, nil, ""))
	}
	if form.Price == nil || !domainsvcs.PriceInRange(*form.Price) {
		errs.AddError(binding.NewFieldErrorWithCodes(obj, "price", errs.FieldValue("price"), false,
			[]string{"range.item.price"}, []any{domainsvcs.MinPrice, domainsvcs.MaxPrice}, ""))
	}
	if form.Quantity == nil || !domainsvcs.QuantityAllowed(*form.Quantity) {
		errs.AddError(binding.NewFieldErrorWithCodes(obj, "quantity", errs.FieldValue("quantity"), false,
			[]string{"max.item.quantity"}, []any{domainsvcs.MaxQuantity}, ""))
	}
	if total, below := domainsvcs.TotalPriceBelowMin(form.Price, form.Quantity); below {
		errs.AddError(binding.NewObjectErrorWithCodes(obj,
			[]string{"totalPriceMin"}, []any{domainsvcs.MinTotalPrice, total}, ""))
	}
}

// validateV4 uses the Reject/RejectValue shorthand; codes are expanded by the
// codes resolver and fields that failed to bind are left alone.
func (h *V2Handler) validateV4(form *forms.ItemForm, b *binding.Binder) {
	errs := b.Result()

	binding.RejectIfEmptyOrWhitespace(errs, "itemName", "required")

	if !errs.HasBindingFailure("price") {
		if form.Price == nil {
			errs.RejectValue("price", "required", nil, "")
		} else if !domainsvcs.PriceInRange(*form.Price) {
			errs.RejectValue("price", "range", []any{domainsvcs.MinPrice, domainsvcs.MaxPrice}, "")
		}
	}
	if !errs.HasBindingFailure("quantity") {
		if form.Quantity == nil || !domainsvcs.QuantityAllowed(*form.Quantity) {
			errs.RejectValue("quantity", "max", []any{domainsvcs.MaxQuantity}, "")
		}
	}

	domainsvcs.CheckTotalPrice(form.Price, form.Quantity, errs)
}

// validateV5 delegates to the pluggable ItemValidator.
func (h *V2Handler) validateV5(form *forms.ItemForm, b *binding.Binder) {
	if h.validator.Supports(form) {
		h.validator.Validate(form, b.Result())
	}
}

// validateV6 runs the validators registered by initBinder.
func (h *V2Handler) validateV6(_ *forms.ItemForm, b *binding.Binder) {
	b.Validate()
}

func describeFailures(errs *binding.BindingResult) string {
	parts := make([]string, 0, errs.ErrorCount())
	for _, fe := range errs.FieldErrors() {
		parts = append(parts, fmt.Sprintf("%s=%v", fe.Field(), fe.RejectedValue()))
	}
	return "cannot convert " + strings.Join(parts, ", ")
}
