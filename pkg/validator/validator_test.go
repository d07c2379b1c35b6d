package validator_test

import (
	"reflect"
	"testing"

	"github.com/ghuser/itemvalidation/pkg/binding"
	pkgvalidator "github.com/ghuser/itemvalidation/pkg/validator"
)

type sampleForm struct {
	ItemName string `form:"itemName" validate:"notblank"`
	Price    *int   `form:"price" validate:"required,range=1000:1000000"`
	Quantity *int   `form:"quantity" validate:"required,lt=9999"`
}

func intPtr(n int) *int { return &n }

func TestValidate_valid(t *testing.T) {
	s := sampleForm{ItemName: "book", Price: intPtr(1000), Quantity: intPtr(10)}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	if err := pkgvalidator.Validate(&sampleForm{}); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestValidateInto_codesAndArguments(t *testing.T) {
	form := &sampleForm{ItemName: "   ", Price: intPtr(999), Quantity: intPtr(9999)}
	errs := binding.NewBindingResult(form, "item")

	if err := pkgvalidator.ValidateInto(form, errs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		field     string
		wantCode  string
		wantCodes []string
		wantArgs  []any
		rejected  any
	}{
		{
			field:     "itemName",
			wantCode:  "NotBlank",
			wantCodes: []string{"NotBlank.item.itemName", "NotBlank.itemName", "NotBlank.string", "NotBlank"},
			wantArgs:  []any{binding.NewFieldNameArgument("item", "itemName")},
			rejected:  "   ",
		},
		{
			field:     "price",
			wantCode:  "Range",
			wantCodes: []string{"Range.item.price", "Range.price", "Range.int", "Range"},
			wantArgs:  []any{binding.NewFieldNameArgument("item", "price"), int64(1000), int64(1000000)},
			rejected:  999,
		},
		{
			field:     "quantity",
			wantCode:  "Max",
			wantCodes: []string{"Max.item.quantity", "Max.quantity", "Max.int", "Max"},
			wantArgs:  []any{binding.NewFieldNameArgument("item", "quantity"), int64(9999)},
			rejected:  9999,
		},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			fes := errs.FieldErrorsFor(tt.field)
			if len(fes) != 1 {
				t.Fatalf("expected 1 error, got %d: %s", len(fes), errs)
			}
			fe := fes[0]
			if fe.Code() != tt.wantCode {
				t.Errorf("code: got %q, want %q", fe.Code(), tt.wantCode)
			}
			if !reflect.DeepEqual(fe.Codes(), tt.wantCodes) {
				t.Errorf("codes: got %v, want %v", fe.Codes(), tt.wantCodes)
			}
			if !reflect.DeepEqual(fe.Arguments(), tt.wantArgs) {
				t.Errorf("args: got %v, want %v", fe.Arguments(), tt.wantArgs)
			}
			if fe.RejectedValue() != tt.rejected {
				t.Errorf("rejected value: got %v, want %v", fe.RejectedValue(), tt.rejected)
			}
		})
	}
}

func TestValidateInto_nilPointerIsNotNull(t *testing.T) {
	form := &sampleForm{ItemName: "book"}
	errs := binding.NewBindingResult(form, "item")
	_ = pkgvalidator.ValidateInto(form, errs)

	for _, field := range []string{"price", "quantity"} {
		fes := errs.FieldErrorsFor(field)
		if len(fes) != 1 || fes[0].Code() != "NotNull" {
			t.Errorf("%s: expected NotNull, got %s", field, errs)
		}
	}
}

func TestValidateInto_skipsBindingFailures(t *testing.T) {
	form := &sampleForm{ItemName: "book", Quantity: intPtr(10)}
	b := binding.NewBinder(form, "item")
	b.Bind(binding.Values{"price": "abc"})

	errs := b.Result()
	_ = pkgvalidator.ValidateInto(form, errs)

	fes := errs.FieldErrorsFor("price")
	if len(fes) != 1 {
		t.Fatalf("expected only the typeMismatch error, got %s", errs)
	}
	if fes[0].Code() != binding.CodeTypeMismatch {
		t.Errorf("unexpected code %q", fes[0].Code())
	}
}

func TestValidateInto_rangeBoundsInclusive(t *testing.T) {
	tests := []struct {
		price   int
		wantErr bool
	}{
		{999, true},
		{1000, false},
		{1000000, false},
		{1000001, true},
	}
	for _, tt := range tests {
		form := &sampleForm{ItemName: "book", Price: intPtr(tt.price), Quantity: intPtr(10)}
		errs := binding.NewBindingResult(form, "item")
		_ = pkgvalidator.ValidateInto(form, errs)
		if errs.HasFieldErrors("price") != tt.wantErr {
			t.Errorf("price %d: HasFieldErrors = %v, want %v", tt.price, errs.HasFieldErrors("price"), tt.wantErr)
		}
	}
}

func TestAdapter(t *testing.T) {
	var a pkgvalidator.Adapter
	if !a.Supports(&sampleForm{}) {
		t.Error("expected pointer to struct to be supported")
	}
	if a.Supports(sampleForm{}) || a.Supports("x") {
		t.Error("expected non-pointer targets to be unsupported")
	}

	form := &sampleForm{}
	errs := binding.NewBindingResult(form, "item")
	a.Validate(form, errs)
	if errs.ErrorCount() != 3 {
		t.Fatalf("expected 3 errors, got %s", errs)
	}
}

func TestAdapter_UnvalidatableTargetRejectsForm(t *testing.T) {
	var a pkgvalidator.Adapter
	n := 5
	errs := binding.NewBindingResult(&n, "item")
	a.Validate(&n, errs)

	globals := errs.GlobalErrors()
	if len(globals) != 1 {
		t.Fatalf("expected one object error, got %s", errs)
	}
	if globals[0].Code() != pkgvalidator.CodeValidationError {
		t.Errorf("code: got %q", globals[0].Code())
	}
	if globals[0].DefaultMessage() == "" {
		t.Error("expected the validation failure as default message")
	}
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		tag  string
		kind reflect.Kind
		want string
	}{
		{"notblank", reflect.String, "NotBlank"},
		{"required", reflect.String, "NotEmpty"},
		{"required", reflect.Pointer, "NotNull"},
		{"range", reflect.Int, "Range"},
		{"lt", reflect.Int, "Max"},
		{"gte", reflect.Int, "Min"},
		{"email", reflect.String, "Email"},
	}
	for _, tt := range tests {
		if got := pkgvalidator.CodeFor(tt.tag, tt.kind); got != tt.want {
			t.Errorf("CodeFor(%q, %v) = %q, want %q", tt.tag, tt.kind, got, tt.want)
		}
	}
}
