package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// CodeTypeMismatch is the error code recorded when raw input cannot be
// converted to the field's type.
const CodeTypeMismatch = "typeMismatch"

// ErrMalformedBody is returned when the request body cannot be parsed at all.
// Per-field conversion problems are not errors; they land in the BindingResult.
var ErrMalformedBody = errors.New("malformed request body")

// Values is the flat set of raw request values keyed by form field name.
type Values map[string]string

// ReadValues extracts raw values from a JSON object body or an urlencoded /
// multipart form body. JSON null and absent keys are both treated as absent.
func ReadValues(r *http.Request) (Values, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		return readJSONValues(r.Body)
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	vals := make(Values, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			vals[k] = v[0]
		}
	}
	return vals, nil
}

func readJSONValues(body io.Reader) (Values, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Values{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	vals := make(Values, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			vals[k] = t
		case json.Number:
			vals[k] = t.String()
		case bool:
			vals[k] = strconv.FormatBool(t)
		default:
			b, err := json.Marshal(t)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s: %w", ErrMalformedBody, k, err)
			}
			vals[k] = string(b)
		}
	}
	return vals, nil
}

// Binder copies raw request values onto a form struct and runs the
// validators registered on it.
type Binder struct {
	target     any
	result     *BindingResult
	validators []Validator
}

// NewBinder returns a Binder for target, which must be a pointer to a struct.
func NewBinder(target any, objectName string) *Binder {
	return &Binder{
		target: target,
		result: NewBindingResult(target, objectName),
	}
}

// AddValidators registers validators that Validate runs after binding.
func (b *Binder) AddValidators(vs ...Validator) {
	b.validators = append(b.validators, vs...)
}

// Result returns the binding result shared by binding and validation.
func (b *Binder) Result() *BindingResult {
	return b.result
}

// BindRequest reads the request body and binds it. Only an unparsable body
// is returned as an error.
func (b *Binder) BindRequest(r *http.Request) error {
	vals, err := ReadValues(r)
	if err != nil {
		return err
	}
	b.Bind(vals)
	return nil
}

// Bind sets every target field present in values. Numeric fields that fail to
// parse are left untouched and recorded as typeMismatch binding failures.
// Blank input for a pointer field leaves it nil.
func (b *Binder) Bind(values Values) {
	v := reflect.ValueOf(b.target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := FormName(sf)
		raw, ok := values[name]
		if !ok {
			continue
		}
		if err := setField(v.Field(i), raw); err != nil {
			b.rejectConversion(name, raw, sf.Type)
		}
	}
}

// Validate runs each registered validator that supports the target.
func (b *Binder) Validate() {
	for _, val := range b.validators {
		if val.Supports(b.target) {
			val.Validate(b.target, b.result)
		}
	}
}

func (b *Binder) rejectConversion(field, raw string, t reflect.Type) {
	objectName := b.result.ObjectName()
	tn := typeName(t)
	b.result.AddError(NewFieldErrorWithCodes(
		objectName,
		field,
		raw,
		true,
		b.result.resolver.ResolveFieldCodes(CodeTypeMismatch, objectName, field, tn),
		[]any{NewFieldNameArgument(objectName, field)},
		fmt.Sprintf("failed to convert value '%s' to %s for field '%s'", raw, tn, field),
	))
}

func setField(f reflect.Value, raw string) error {
	if f.Kind() == reflect.Pointer {
		if strings.TrimSpace(raw) == "" && f.Type().Elem().Kind() != reflect.String {
			f.Set(reflect.Zero(f.Type()))
			return nil
		}
		elem := reflect.New(f.Type().Elem())
		if err := setScalar(elem.Elem(), raw); err != nil {
			return err
		}
		f.Set(elem)
		return nil
	}
	if strings.TrimSpace(raw) == "" && f.Kind() != reflect.String {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}
	return setScalar(f, raw)
}

func setScalar(f reflect.Value, raw string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetUint(n)
	case reflect.Bool:
		bv, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		f.SetBool(bv)
	default:
		return fmt.Errorf("unsupported field kind %s", f.Kind())
	}
	return nil
}
