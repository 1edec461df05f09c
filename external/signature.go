package external

import (
	"strings"

	"github.com/udf-lab/externs-go/types"
)

// Signature is one typed overload of a named external function: a return
// type plus an ordered sequence of parameter types. Immutable once parsed.
type Signature struct {
	Return types.Type
	Params []types.Type
}

// String renders the signature in canonical grammar form, e.g. "i64(i64)".
func (s Signature) String() string {
	return s.Return.String() + "(" + types.FormatList(s.Params) + ")"
}

// Equal reports whether two signatures have identical return and parameter
// types.
func (s Signature) Equal(other Signature) bool {
	return s.Return == other.Return && types.EqualList(s.Params, other.Params)
}

// ParseSignature parses a declaration string of the form
//
//	<return-type> [name](<param-type>, ...)
//
// The symbol name between the return type and the parameter list is
// optional; whitespace is insignificant throughout. The second return value
// is the inline name, or "" when the string omits it.
//
// Examples of accepted input:
//
//	"int64 abs(int64)"
//	"i32(i32)"
//	"double __nv_pow(double, double)"
//	"void sincos(f64, f64*, f64*)"
func ParseSignature(spec string) (Signature, string, error) {
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return Signature{}, "", &ParseError{Input: spec, Reason: "missing parameter list"}
	}
	if !strings.HasSuffix(strings.TrimSpace(spec), ")") {
		return Signature{}, "", &ParseError{Input: spec, Reason: "missing closing parenthesis"}
	}

	head := strings.TrimSpace(spec[:open])
	body := strings.TrimSpace(spec[open+1:])
	body = strings.TrimSpace(strings.TrimSuffix(body, ")"))
	if strings.ContainsAny(body, "()") {
		return Signature{}, "", &ParseError{Input: spec, Reason: "nested parentheses in parameter list"}
	}

	retSpelling, name, err := splitHead(spec, head)
	if err != nil {
		return Signature{}, "", err
	}

	ret, err := types.ParseType(retSpelling)
	if err != nil {
		return Signature{}, "", &ParseError{Input: spec, Reason: "return type: " + err.Error()}
	}

	params, err := parseParams(spec, body)
	if err != nil {
		return Signature{}, "", err
	}

	return Signature{Return: ret, Params: params}, name, nil
}

// splitHead separates the return type from the optional symbol name.
// The head is everything before the opening parenthesis. A pointer star may
// be attached to either token ("double* f" and "double *f" both parse).
func splitHead(spec, head string) (retSpelling, name string, err error) {
	if head == "" {
		return "", "", &ParseError{Input: spec, Reason: "missing return type"}
	}

	fields := strings.Fields(head)
	switch len(fields) {
	case 1:
		return fields[0], "", nil
	case 2:
		// "double *abs" attaches the star to the name token.
		if strings.HasPrefix(fields[1], "*") {
			return fields[0] + "*", strings.TrimPrefix(fields[1], "*"), nil
		}
		return fields[0], fields[1], nil
	case 3:
		// "double * abs" with a free-standing star.
		if fields[1] == "*" {
			return fields[0] + "*", fields[2], nil
		}
	}
	return "", "", &ParseError{Input: spec, Reason: "expected '<return-type> [name]' before parameter list"}
}

// parseParams parses the comma-separated parameter list. An empty list
// declares a zero-argument function.
func parseParams(spec, body string) ([]types.Type, error) {
	if body == "" {
		return nil, nil
	}
	parts := strings.Split(body, ",")
	params := make([]types.Type, 0, len(parts))
	for _, part := range parts {
		t, err := types.ParseType(part)
		if err != nil {
			return nil, &ParseError{Input: spec, Reason: "parameter: " + err.Error()}
		}
		if t.IsVoid() {
			return nil, &ParseError{Input: spec, Reason: "void is not a valid parameter type"}
		}
		params = append(params, t)
	}
	return params, nil
}

// validSymbolName reports whether s is a valid link symbol identifier.
func validSymbolName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
