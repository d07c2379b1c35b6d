package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemvalidation/pkg/logger"
	"github.com/ghuser/itemvalidation/pkg/messages"
	"github.com/ghuser/itemvalidation/pkg/session"
	"github.com/ghuser/itemvalidation/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemvalidation/services/item/application/services"
	"github.com/ghuser/itemvalidation/services/item/infrastructure/persistence/memory"
)

func newServer(t *testing.T) (http.Handler, *appsvcs.ItemService) {
	t.Helper()
	msgs, err := messages.NewSource("en")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	items := appsvcs.NewItemService(memory.NewItemRepository(), nil, logger.Discard())
	if err := items.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	store := session.NewCookieStore(session.Keys{
		Auth:       []byte("test-auth-key-must-be-32-bytes!!"),
		Encryption: []byte("test-enc-key-must-be-32-bytes!!!"),
	}, false)
	deps := handlers.Deps{
		Items:    items,
		Messages: msgs,
		Flashes:  session.NewFlashes(store),
		Logger:   logger.Discard(),
	}

	r := chi.NewRouter()
	r.Route("/validation/v2/items", handlers.NewV2Handler(deps, "v6").Routes)
	r.Route("/validation/v3/items", handlers.NewV3Handler(deps).Routes)
	r.Route("/validation/v4/items", handlers.NewV4Handler(deps).Routes)
	return r, items
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeForm(t *testing.T, rr *httptest.ResponseRecorder) handlers.FormView {
	t.Helper()
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body)
	}
	var fv handlers.FormView
	if err := json.NewDecoder(rr.Body).Decode(&fv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fv.Errors == nil {
		t.Fatal("expected errors in form view")
	}
	return fv
}

func fieldMessage(t *testing.T, fv handlers.FormView, field string) string {
	t.Helper()
	fes := fv.Errors.Fields[field]
	if len(fes) == 0 {
		t.Fatalf("no error for %s: %+v", field, fv.Errors)
	}
	return fes[0].Message
}

func itemForm(name, price, quantity string) url.Values {
	return url.Values{"itemName": {name}, "price": {price}, "quantity": {quantity}}
}

func TestV2_AddVariants_FieldMessages(t *testing.T) {
	h, _ := newServer(t)

	for _, variant := range []string{"v1", "v2", "v3", "v4", "v5", "v6"} {
		t.Run(variant, func(t *testing.T) {
			rr := postForm(t, h, "/validation/v2/items/add/"+variant, itemForm("", "999", "10"))
			fv := decodeForm(t, rr)

			if got := fieldMessage(t, fv, "itemName"); got != "Item name is required." {
				t.Errorf("itemName: got %q", got)
			}
			if got := fieldMessage(t, fv, "price"); got != "Price must be between 1,000 and 1,000,000." {
				t.Errorf("price: got %q", got)
			}
			if len(fv.Errors.Fields["quantity"]) != 0 {
				t.Errorf("unexpected quantity error: %+v", fv.Errors.Fields["quantity"])
			}
			if len(fv.Errors.Global) != 1 {
				t.Errorf("expected one global error, got %+v", fv.Errors.Global)
			}
		})
	}
}

func TestV2_AddOnlyNameMissing(t *testing.T) {
	h, _ := newServer(t)

	fv := decodeForm(t, postForm(t, h, "/validation/v2/items/add", itemForm("", "10000", "10")))

	if len(fv.Errors.Fields) != 1 || len(fv.Errors.Global) != 0 {
		t.Fatalf("expected only the itemName error, got %+v", fv.Errors)
	}
	fe := fv.Errors.Fields["itemName"][0]
	wantCodes := []string{"required.item.itemName", "required.itemName", "required.string", "required"}
	if strings.Join(fe.Codes, ",") != strings.Join(wantCodes, ",") {
		t.Errorf("codes: got %v, want %v", fe.Codes, wantCodes)
	}
	if fv.Item["price"] != float64(10000) || fv.Item["quantity"] != float64(10) {
		t.Errorf("expected submitted values echoed, got %+v", fv.Item)
	}
}

func TestV2_AddTotalPriceBelowMinimum(t *testing.T) {
	h, _ := newServer(t)

	fv := decodeForm(t, postForm(t, h, "/validation/v2/items/add", itemForm("book", "1000", "1")))

	if len(fv.Errors.Fields) != 0 {
		t.Fatalf("unexpected field errors: %+v", fv.Errors.Fields)
	}
	if len(fv.Errors.Global) != 1 {
		t.Fatalf("expected one global error, got %+v", fv.Errors.Global)
	}
	g := fv.Errors.Global[0]
	if g.Code != "totalPriceMin" {
		t.Errorf("code: got %q", g.Code)
	}
	want := "Price * quantity must be at least 10,000. Current value = 1,000"
	if g.Message != want {
		t.Errorf("message: got %q, want %q", g.Message, want)
	}
}

func TestV2_AddLiteralMessagesDropRejectedValue(t *testing.T) {
	h, _ := newServer(t)

	fv := decodeForm(t, postForm(t, h, "/validation/v2/items/add/v1", itemForm("book", "999", "10")))
	fe := fv.Errors.Fields["price"][0]
	if fe.RejectedValue != nil || fe.Code != "" {
		t.Errorf("v1 error should carry neither value nor code: %+v", fe)
	}
	if g := fv.Errors.Global[0].Message; g != "Price * quantity must be at least 10,000. Current value = 9990" {
		t.Errorf("global: got %q", g)
	}

	fv = decodeForm(t, postForm(t, h, "/validation/v2/items/add/v2", itemForm("book", "999", "10")))
	if fe := fv.Errors.Fields["price"][0]; fe.RejectedValue != float64(999) {
		t.Errorf("v2 error should keep the rejected value: %+v", fe)
	}
}

func TestV2_AddTypeMismatch(t *testing.T) {
	h, _ := newServer(t)

	fv := decodeForm(t, postForm(t, h, "/validation/v2/items/add", itemForm("book", "abc", "10")))

	fes := fv.Errors.Fields["price"]
	if len(fes) != 1 {
		t.Fatalf("expected only the typeMismatch error, got %+v", fes)
	}
	if !fes[0].BindingFailure || fes[0].Code != "typeMismatch" || fes[0].RejectedValue != "abc" {
		t.Errorf("unexpected error: %+v", fes[0])
	}
	if fes[0].Message != "Please enter a number." {
		t.Errorf("message: got %q", fes[0].Message)
	}
	if fv.Item["price"] != "abc" {
		t.Errorf("expected raw input echoed, got %v", fv.Item["price"])
	}
}

func TestV2_AddSuccessRedirectsWithFlash(t *testing.T) {
	h, _ := newServer(t)

	rr := postForm(t, h, "/validation/v2/items/add", itemForm("book", "10000", "10"))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body)
	}
	loc := rr.Header().Get("Location")
	if loc != "/validation/v2/items/3?status=true" {
		t.Fatalf("unexpected Location %q", loc)
	}

	detail := get(t, h, loc, rr.Result().Cookies()...)
	if detail.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", detail.Code)
	}
	var view struct {
		Item struct {
			ID       int64  `json:"id"`
			ItemName string `json:"itemName"`
		} `json:"item"`
		Status  bool     `json:"status"`
		Flashes []string `json:"flashes"`
	}
	if err := json.NewDecoder(detail.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Item.ID != 3 || view.Item.ItemName != "book" || !view.Status {
		t.Errorf("unexpected detail: %+v", view)
	}
	if len(view.Flashes) != 1 || view.Flashes[0] != "saved" {
		t.Errorf("unexpected flashes: %v", view.Flashes)
	}
}

func TestV2_AddUnknownVariant(t *testing.T) {
	h, _ := newServer(t)
	rr := postForm(t, h, "/validation/v2/items/add/v9", itemForm("book", "10000", "10"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestV2_AddMalformedJSON(t *testing.T) {
	h, _ := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/validation/v2/items/add", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestV2_AddJSONBody(t *testing.T) {
	h, _ := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/validation/v2/items/add",
		strings.NewReader(`{"itemName":"book","price":20000,"quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body)
	}
}

func TestV2_AddKoreanMessages(t *testing.T) {
	h, _ := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/validation/v2/items/add",
		strings.NewReader(itemForm("", "10000", "10").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	fv := decodeForm(t, rr)
	if got := fieldMessage(t, fv, "itemName"); got != "상품 이름은 필수입니다." {
		t.Errorf("got %q", got)
	}
}

func TestV2_EditWithoutValidation(t *testing.T) {
	h, items := newServer(t)

	rr := postForm(t, h, "/validation/v2/items/1/edit", itemForm("", "1", "99999"))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body)
	}
	if loc := rr.Header().Get("Location"); loc != "/validation/v2/items/1" {
		t.Errorf("unexpected Location %q", loc)
	}
	item, err := items.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.ItemName != "" || item.Price != 1 || item.Quantity != 99999 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestV2_EditBindingFailure(t *testing.T) {
	h, _ := newServer(t)
	rr := postForm(t, h, "/validation/v2/items/1/edit", itemForm("book", "abc", "1"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestV2_EditUnstorableQuantity(t *testing.T) {
	h, items := newServer(t)
	rr := postForm(t, h, "/validation/v2/items/1/edit", itemForm("itemA", "10000", "3000000000"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body)
	}
	item, _ := items.GetByID(context.Background(), 1)
	if item.Quantity != 10 {
		t.Errorf("rejected edit was stored: %+v", item)
	}
}

func TestPages(t *testing.T) {
	h, _ := newServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"list", "/validation/v3/items", http.StatusOK},
		{"detail", "/validation/v3/items/1", http.StatusOK},
		{"unknown item", "/validation/v3/items/999", http.StatusNotFound},
		{"bad id", "/validation/v3/items/abc", http.StatusBadRequest},
		{"add form", "/validation/v4/items/add", http.StatusOK},
		{"edit form", "/validation/v4/items/2/edit", http.StatusOK},
		{"edit form unknown item", "/validation/v2/items/999/edit", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := get(t, h, tt.path); rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body)
			}
		})
	}
}

func TestPages_ListAndEditForm(t *testing.T) {
	h, _ := newServer(t)

	var list handlers.ItemsView
	if err := json.NewDecoder(get(t, h, "/validation/v2/items").Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 2 || list.Items[0].ItemName != "itemA" || list.Items[1].ItemName != "itemB" {
		t.Fatalf("unexpected items: %+v", list.Items)
	}

	var fv handlers.FormView
	if err := json.NewDecoder(get(t, h, "/validation/v2/items/2/edit").Body).Decode(&fv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fv.Errors != nil || fv.View != "validation/v2/editForm" {
		t.Errorf("unexpected form view: %+v", fv)
	}
	if fv.Item["itemName"] != "itemB" || fv.Item["price"] != float64(20000) || fv.Item["id"] != float64(2) {
		t.Errorf("unexpected form values: %+v", fv.Item)
	}
}

func TestV3_DeclarativeMessages(t *testing.T) {
	h, _ := newServer(t)

	fv := decodeForm(t, postForm(t, h, "/validation/v3/items/add",
		url.Values{"itemName": {"  "}, "price": {"999"}}))

	tests := []struct {
		field, code, message string
	}{
		{"itemName", "NotBlank", "Item name must not be blank."},
		{"price", "Range", "Price must be between 1,000 and 1,000,000."},
		{"quantity", "NotNull", "Quantity is required."},
	}
	for _, tt := range tests {
		fes := fv.Errors.Fields[tt.field]
		if len(fes) != 1 {
			t.Errorf("%s: expected one error, got %+v", tt.field, fes)
			continue
		}
		if fes[0].Code != tt.code || fes[0].Message != tt.message {
			t.Errorf("%s: got %q / %q", tt.field, fes[0].Code, fes[0].Message)
		}
	}
	if len(fv.Errors.Global) != 0 {
		t.Errorf("total price must not be checked without quantity: %+v", fv.Errors.Global)
	}
}

func TestV3_EditValidatesAndRedirects(t *testing.T) {
	h, items := newServer(t)

	fv := decodeForm(t, postForm(t, h, "/validation/v3/items/1/edit", itemForm("itemA", "10000", "9999")))
	if got := fieldMessage(t, fv, "quantity"); got != "Quantity must be less than 9,999." {
		t.Errorf("quantity: got %q", got)
	}
	if fv.View != "validation/v3/editForm" {
		t.Errorf("view: got %q", fv.View)
	}

	rr := postForm(t, h, "/validation/v3/items/1/edit", itemForm("itemA2", "10000", "20"))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body)
	}
	item, _ := items.GetByID(context.Background(), 1)
	if item.ItemName != "itemA2" || item.Quantity != 20 {
		t.Errorf("unexpected item: %+v", item)
	}

	if rr := postForm(t, h, "/validation/v3/items/999/edit", itemForm("x", "10000", "20")); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestV4_AddUsesSaveForm(t *testing.T) {
	h, _ := newServer(t)

	fv := decodeForm(t, postForm(t, h, "/validation/v4/items/add", itemForm("book", "10000", "10000")))
	if got := fieldMessage(t, fv, "quantity"); got != "Quantity must be less than 9,999." {
		t.Errorf("quantity: got %q", got)
	}
	if _, ok := fv.Item["id"]; ok {
		t.Errorf("save form has no id field: %+v", fv.Item)
	}

	rr := postForm(t, h, "/validation/v4/items/add", itemForm("book", "10000", "10"))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/validation/v4/items/3?status=true" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestV4_EditUpdateForm(t *testing.T) {
	h, items := newServer(t)

	missingID := decodeForm(t, postForm(t, h, "/validation/v4/items/1/edit", itemForm("itemA", "10000", "10")))
	if got := fieldMessage(t, missingID, "id"); got != "Item id is required." {
		t.Errorf("id: got %q", got)
	}

	mismatch := itemForm("itemA", "10000", "10")
	mismatch.Set("id", "2")
	fv := decodeForm(t, postForm(t, h, "/validation/v4/items/1/edit", mismatch))
	if len(fv.Errors.Global) != 1 || fv.Errors.Global[0].Code != "idMismatch" {
		t.Fatalf("expected idMismatch, got %+v", fv.Errors)
	}
	if got := fv.Errors.Global[0].Message; got != "Item id 2 does not match the edited item 1." {
		t.Errorf("message: got %q", got)
	}

	unlimited := itemForm("itemA", "10000", "20000")
	unlimited.Set("id", "1")
	rr := postForm(t, h, "/validation/v4/items/1/edit", unlimited)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body)
	}
	item, _ := items.GetByID(context.Background(), 1)
	if item.Quantity != 20000 {
		t.Errorf("quantity should not be limited on edit, got %d", item.Quantity)
	}
}
