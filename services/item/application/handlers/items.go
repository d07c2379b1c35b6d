package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemvalidation/pkg/binding"
	"github.com/ghuser/itemvalidation/pkg/errhttp"
	"github.com/ghuser/itemvalidation/pkg/httpx"
	"github.com/ghuser/itemvalidation/pkg/logger"
	"github.com/ghuser/itemvalidation/pkg/messages"
	"github.com/ghuser/itemvalidation/pkg/session"
	"github.com/ghuser/itemvalidation/pkg/telemetry"
	appsvcs "github.com/ghuser/itemvalidation/services/item/application/services"
	itemdomain "github.com/ghuser/itemvalidation/services/item/domain"
	"github.com/ghuser/itemvalidation/services/item/domain/forms"
	"github.com/ghuser/itemvalidation/services/item/domain/models"
)

const (
	flashSaved   = "saved"
	flashUpdated = "updated"
)

// Deps are the collaborators shared by every controller generation.
type Deps struct {
	Items    *appsvcs.ItemService
	Messages *messages.Source
	Flashes  *session.Flashes
	Logger   logger.Logger
	Metrics  *telemetry.FormMetrics // optional
}

// itemPages serves the read-only pages every version has in common and the
// success / failure responses of the form posts.
type itemPages struct {
	version string // "v2", "v3", "v4"
	items   *appsvcs.ItemService
	flashes *session.Flashes
	log     logger.Logger
	render  renderer
	metrics *telemetry.FormMetrics
}

func newItemPages(version string, d Deps) itemPages {
	return itemPages{
		version: version,
		items:   d.Items,
		flashes: d.Flashes,
		log:     d.Logger,
		render:  renderer{messages: d.Messages},
		metrics: d.Metrics,
	}
}

func (p *itemPages) basePath() string {
	return "/validation/" + p.version + "/items"
}

func (p *itemPages) view(name string) string {
	return "validation/" + p.version + "/" + name
}

// List handles GET /validation/{version}/items.
func (p *itemPages) List(w http.ResponseWriter, r *http.Request) {
	items, err := p.items.List(r.Context())
	if err != nil {
		p.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemsView{Items: items})
}

// Detail handles GET /validation/{version}/items/{itemId}.
func (p *itemPages) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}
	item, err := p.items.GetByID(r.Context(), id)
	if err != nil {
		p.writeError(w, r, err)
		return
	}
	flashes, err := p.flashes.Pop(w, r)
	if err != nil {
		p.log.WarnContext(r.Context(), "reading flash messages failed", "error", err)
		flashes = []string{}
	}
	httpx.JSON(w, http.StatusOK, ItemView{
		Item:    item,
		Status:  r.URL.Query().Get("status") == "true",
		Flashes: flashes,
	})
}

// AddForm handles GET /validation/{version}/items/add.
func (p *itemPages) AddForm(w http.ResponseWriter, r *http.Request) {
	empty := binding.NewBindingResult(&forms.ItemForm{}, forms.ObjectName)
	httpx.JSON(w, http.StatusOK, p.render.formView(r, p.view("addForm"), empty))
}

// EditForm handles GET /validation/{version}/items/{itemId}/edit.
func (p *itemPages) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}
	item, err := p.items.GetByID(r.Context(), id)
	if err != nil {
		p.writeError(w, r, err)
		return
	}
	filled := binding.NewBindingResult(forms.FromItem(item), forms.ObjectName)
	httpx.JSON(w, http.StatusOK, p.render.formView(r, p.view("editForm"), filled))
}

// redirectSaved answers a successful add with 303 to the new item's page.
func (p *itemPages) redirectSaved(w http.ResponseWriter, r *http.Request, variant string, item *models.Item) {
	p.metrics.Record(r.Context(), p.version, variant, telemetry.OutcomeSaved, 0)
	p.flash(w, r, flashSaved)
	httpx.SeeOther(w, fmt.Sprintf("%s/%d?status=true", p.basePath(), item.ID))
}

// redirectUpdated answers a successful edit with 303 to the item's page.
func (p *itemPages) redirectUpdated(w http.ResponseWriter, r *http.Request, variant string, id int64) {
	p.metrics.Record(r.Context(), p.version, variant, telemetry.OutcomeUpdated, 0)
	p.flash(w, r, flashUpdated)
	httpx.SeeOther(w, fmt.Sprintf("%s/%d", p.basePath(), id))
}

func (p *itemPages) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if err := p.flashes.Add(w, r, msg); err != nil {
		p.log.WarnContext(r.Context(), "storing flash message failed", "error", err)
	}
}

// rejectForm re-renders the form with its errors as 422.
func (p *itemPages) rejectForm(w http.ResponseWriter, r *http.Request, view, variant string, errs *binding.BindingResult) {
	p.log.InfoContext(r.Context(), "form validation failed",
		"view", view, "variant", variant, "errors", errs.String())
	p.metrics.Record(r.Context(), p.version, variant, telemetry.OutcomeRejected, errs.ErrorCount())
	httpx.JSON(w, http.StatusUnprocessableEntity, p.render.formView(r, view, errs))
}

func (p *itemPages) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errhttp.Status(err) >= http.StatusInternalServerError {
		p.log.ErrorContext(r.Context(), "request failed", "error", err)
		telemetry.CaptureError(r.Context(), err)
	} else {
		p.log.DebugContext(r.Context(), "request rejected", "error", err)
	}
	errhttp.WriteError(w, err)
}

// bind reads the request body onto target. Only an unparsable body is an error.
func bind(r *http.Request, target any) (*binding.Binder, error) {
	b := binding.NewBinder(target, forms.ObjectName)
	if err := b.BindRequest(r); err != nil {
		return nil, err
	}
	return b, nil
}

// itemID parses the {itemId} path parameter.
func itemID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "itemId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", itemdomain.ErrInvalidItemID, raw)
	}
	return id, nil
}

// routes mounts the common GET pages; post registers the version's form posts.
func (p *itemPages) routes(r chi.Router, post func(r chi.Router)) {
	r.Get("/", p.List)
	r.Get("/add", p.AddForm)
	r.Get("/{itemId}", p.Detail)
	r.Get("/{itemId}/edit", p.EditForm)
	post(r)
}
