// Package types defines the primitive type system for external function
// declarations. Types are the fixed set of numeric kinds a foreign symbol
// can accept or return, plus pointer variants of those kinds.
package types

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// Kind identifies a primitive numeric kind.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
)

// kindNames holds the canonical short spelling for each kind.
var kindNames = map[Kind]string{
	KindVoid:    "void",
	KindBool:    "bool",
	KindInt8:    "i8",
	KindInt16:   "i16",
	KindInt32:   "i32",
	KindInt64:   "i64",
	KindUint8:   "u8",
	KindUint16:  "u16",
	KindUint32:  "u32",
	KindUint64:  "u64",
	KindFloat32: "f32",
	KindFloat64: "f64",
}

// kindSpellings maps every accepted spelling to its kind.
// Short forms, long forms, and C-style names are synonyms. Remote engines
// and declaration manifests may use any of them interchangeably.
var kindSpellings = map[string]Kind{
	"void": KindVoid,
	"bool": KindBool,
	"b":    KindBool,

	"i8":   KindInt8,
	"int8": KindInt8,
	"char": KindInt8,

	"i16":   KindInt16,
	"int16": KindInt16,
	"short": KindInt16,

	"i32":   KindInt32,
	"int32": KindInt32,
	"int":   KindInt32,

	"i64":   KindInt64,
	"int64": KindInt64,
	"long":  KindInt64,

	"u8":    KindUint8,
	"uint8": KindUint8,
	"uchar": KindUint8,

	"u16":    KindUint16,
	"uint16": KindUint16,
	"ushort": KindUint16,

	"u32":    KindUint32,
	"uint32": KindUint32,
	"uint":   KindUint32,

	"u64":    KindUint64,
	"uint64": KindUint64,
	"ulong":  KindUint64,

	"f32":     KindFloat32,
	"float32": KindFloat32,
	"float":   KindFloat32,

	"f64":     KindFloat64,
	"float64": KindFloat64,
	"double":  KindFloat64,
}

// String returns the canonical short spelling (e.g., "i64").
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Valid reports whether the kind is one of the defined primitive kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Type is a primitive kind with an optional pointer flag.
// Pointer types describe foreign parameters passed by reference
// (e.g., "double*" output parameters of libdevice functions).
type Type struct {
	Kind    Kind
	Pointer bool
}

// ParseType parses a single type spelling such as "int64", "f32", or
// "double*". Spellings are case-insensitive and surrounding whitespace is
// ignored.
func ParseType(s string) (Type, error) {
	t := Type{}
	name := strings.TrimSpace(s)

	// Pointer suffix, with optional space before the star.
	if strings.HasSuffix(name, "*") {
		t.Pointer = true
		name = strings.TrimSpace(strings.TrimSuffix(name, "*"))
	}

	kind, ok := kindSpellings[strings.ToLower(name)]
	if !ok {
		return Type{}, fmt.Errorf("unknown type %q", strings.TrimSpace(s))
	}
	if kind == KindVoid && t.Pointer {
		return Type{}, fmt.Errorf("void pointer is not a valid parameter type")
	}

	t.Kind = kind
	return t, nil
}

// MustParseType is ParseType that panics on malformed input.
// Intended for package-level declarations of well-known types.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the canonical spelling, with a "*" suffix for pointers.
func (t Type) String() string {
	if t.Pointer {
		return t.Kind.String() + "*"
	}
	return t.Kind.String()
}

// IsVoid reports whether the type is the void return type.
func (t Type) IsVoid() bool {
	return t.Kind == KindVoid && !t.Pointer
}

// arrowTypes maps primitive kinds to their Arrow equivalents.
var arrowTypes = map[Kind]arrow.DataType{
	KindBool:    arrow.FixedWidthTypes.Boolean,
	KindInt8:    arrow.PrimitiveTypes.Int8,
	KindInt16:   arrow.PrimitiveTypes.Int16,
	KindInt32:   arrow.PrimitiveTypes.Int32,
	KindInt64:   arrow.PrimitiveTypes.Int64,
	KindUint8:   arrow.PrimitiveTypes.Uint8,
	KindUint16:  arrow.PrimitiveTypes.Uint16,
	KindUint32:  arrow.PrimitiveTypes.Uint32,
	KindUint64:  arrow.PrimitiveTypes.Uint64,
	KindFloat32: arrow.PrimitiveTypes.Float32,
	KindFloat64: arrow.PrimitiveTypes.Float64,
}

// Arrow returns the Arrow data type corresponding to this type.
// Pointer and void types have no Arrow representation: they exist only in
// foreign signatures, never in data exchanged with an engine.
func (t Type) Arrow() (arrow.DataType, error) {
	if t.Pointer {
		return nil, fmt.Errorf("pointer type %s has no Arrow representation", t)
	}
	dt, ok := arrowTypes[t.Kind]
	if !ok {
		return nil, fmt.Errorf("type %s has no Arrow representation", t)
	}
	return dt, nil
}

// ParseList parses a comma-free list of type spellings, as received in
// resolve requests ("argument_types": ["i32", "f64"]).
func ParseList(spellings []string) ([]Type, error) {
	out := make([]Type, 0, len(spellings))
	for i, s := range spellings {
		t, err := ParseType(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// FormatList renders types as a comma-separated list (e.g., "i32, f64").
func FormatList(list []Type) string {
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// EqualList reports whether two type sequences are identical in order.
func EqualList(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
