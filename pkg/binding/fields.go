package binding

import (
	"reflect"
	"strings"
)

// FormName returns the request field name of a struct field: the form tag,
// else the json tag, else the Go field name.
func FormName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		if name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// lookupField finds the exported field of the struct behind target whose
// FormName is name.
func lookupField(target any, name string) (reflect.Value, reflect.StructField, bool) {
	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, reflect.StructField{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, reflect.StructField{}, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if FormName(sf) == name {
			return v.Field(i), sf, true
		}
	}
	return reflect.Value{}, reflect.StructField{}, false
}

// typeName is the type segment used in message codes ("string", "int", ...).
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind().String()
}

// plainValue unwraps pointers; a nil pointer yields nil.
func plainValue(v reflect.Value) any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

// FieldNames lists the request field names of the struct behind target in
// declaration order.
func FieldNames(target any) []string {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); sf.IsExported() {
			names = append(names, FormName(sf))
		}
	}
	return names
}
