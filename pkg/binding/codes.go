package binding

// MessageCodesResolver expands a short error code into the list of message
// codes tried against the message bundle, most specific first.
type MessageCodesResolver interface {
	ResolveObjectCodes(code, objectName string) []string
	ResolveFieldCodes(code, objectName, field, fieldType string) []string
}

// DefaultCodesResolver builds codes in "code.object.field" order:
//
//	object error: code.object, code
//	field error:  code.object.field, code.field, code.type, code
//
// Prefix, when set, is prepended to every generated code.
type DefaultCodesResolver struct {
	Prefix string
}

func (r DefaultCodesResolver) ResolveObjectCodes(code, objectName string) []string {
	return r.prefixed([]string{
		code + "." + objectName,
		code,
	})
}

func (r DefaultCodesResolver) ResolveFieldCodes(code, objectName, field, fieldType string) []string {
	codes := make([]string, 0, 4)
	codes = append(codes, code+"."+objectName+"."+field, code+"."+field)
	if fieldType != "" {
		codes = append(codes, code+"."+fieldType)
	}
	codes = append(codes, code)
	return r.prefixed(codes)
}

func (r DefaultCodesResolver) prefixed(codes []string) []string {
	if r.Prefix == "" {
		return codes
	}
	for i, c := range codes {
		codes[i] = r.Prefix + c
	}
	return codes
}
