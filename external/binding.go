// Package external declares typed foreign functions and resolves their
// overloads. A Binding names a symbol that exists only in a remote
// execution environment (e.g., a math library linked into an analytical
// engine); the binding carries the symbol's typed overload set so a
// compiling framework can splice a direct symbol reference into generated
// code. The binding itself never executes anything.
package external

import (
	"sync/atomic"

	"github.com/udf-lab/externs-go/types"
)

// Binding is an immutable declaration of an external function: a symbol
// name plus one or more typed overloads. Safe for concurrent use.
type Binding struct {
	name      string
	overloads []Signature

	// resolved flips once the first Resolve succeeds. Observability only;
	// the overload set never changes.
	resolved atomic.Bool
}

// Ref is a resolved reference to an external symbol, ready to be spliced
// into a compiled call graph in place of the placeholder invocation.
type Ref struct {
	// Symbol is the link-resolvable symbol name.
	Symbol string
	// Return is the resolved overload's return type.
	Return types.Type
	// Params are the resolved overload's parameter types.
	Params []types.Type
}

// Declare builds a binding from one or more signature strings.
//
// The name may be supplied inline in the signature strings
// ("int64 abs(int64)"), via the name argument, or both — but every source
// that names the symbol must agree. When every signature string omits the
// name, the name argument is required.
//
// Multiple signatures declare type overloads of a single symbol:
//
//	Declare("abs", "i32(i32)", "i64(i64)")
//
// Errors: *ParseError for a malformed signature string, *DeclarationError
// for a missing or conflicting name, or for two overloads that share
// parameter types but differ in return type.
func Declare(name string, specs ...string) (*Binding, error) {
	if len(specs) == 0 {
		return nil, &DeclarationError{Name: name, Reason: "at least one signature is required"}
	}

	sigs := make([]Signature, len(specs))
	inlines := make([]string, len(specs))
	for i, spec := range specs {
		sig, inline, err := ParseSignature(spec)
		if err != nil {
			return nil, err
		}
		sigs[i] = sig
		inlines[i] = inline
	}

	resolved, err := resolveName(name, inlines)
	if err != nil {
		return nil, err
	}
	if !validSymbolName(resolved) {
		return nil, &DeclarationError{Name: resolved, Reason: "not a valid symbol identifier"}
	}

	b := &Binding{name: resolved, overloads: make([]Signature, 0, len(sigs))}
	for _, sig := range sigs {
		if err := b.addOverload(sig); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// resolveName validates the symbol name across the explicit argument and
// every inline name, as a set: the outcome never depends on signature
// order. Without an explicit name, every signature must carry the same
// inline name; with one, inline names may be omitted but must agree where
// present.
func resolveName(explicit string, inlines []string) (string, error) {
	resolved := explicit
	for _, inline := range inlines {
		switch {
		case inline == "":
			if explicit == "" {
				return "", &DeclarationError{Reason: "signature omits symbol name and no name was supplied"}
			}
		case resolved == "":
			resolved = inline
		case inline != resolved:
			return "", &DeclarationError{
				Name:   resolved,
				Reason: "conflicting symbol name " + inline,
			}
		}
	}
	return resolved, nil
}

// MustDeclare is Declare that panics on error. Intended for package-level
// declarations of well-known external libraries.
func MustDeclare(name string, specs ...string) *Binding {
	b, err := Declare(name, specs...)
	if err != nil {
		panic(err)
	}
	return b
}

// addOverload appends a signature, rejecting non-resolvable ambiguity.
// An exact duplicate is collapsed silently; the same parameter sequence
// with a different return type is an error because resolution could never
// pick between them.
func (b *Binding) addOverload(sig Signature) error {
	for _, existing := range b.overloads {
		if !types.EqualList(existing.Params, sig.Params) {
			continue
		}
		if existing.Return == sig.Return {
			return nil
		}
		return &DeclarationError{
			Name: b.name,
			Reason: "signatures " + existing.String() + " and " + sig.String() +
				" share parameter types but differ in return type",
		}
	}
	b.overloads = append(b.overloads, sig)
	return nil
}

// Name returns the declared symbol name.
func (b *Binding) Name() string {
	return b.name
}

// Overloads returns a copy of the declared overload set.
func (b *Binding) Overloads() []Signature {
	out := make([]Signature, len(b.overloads))
	copy(out, b.overloads)
	return out
}

// Resolve selects the overload whose parameter types exactly match the
// given argument types, in order. No implicit widening or narrowing is
// performed: numeric promotion is the compiling framework's concern, not
// the binding's.
//
// Returns *OverloadResolutionError when no overload matches.
func (b *Binding) Resolve(args []types.Type) (Ref, error) {
	for _, sig := range b.overloads {
		if types.EqualList(sig.Params, args) {
			b.resolved.Store(true)
			params := make([]types.Type, len(sig.Params))
			copy(params, sig.Params)
			return Ref{Symbol: b.name, Return: sig.Return, Params: params}, nil
		}
	}
	return Ref{}, &OverloadResolutionError{
		Name:      b.name,
		Args:      append([]types.Type(nil), args...),
		Overloads: b.Overloads(),
	}
}

// Resolved reports whether at least one Resolve call has succeeded.
func (b *Binding) Resolved() bool {
	return b.resolved.Load()
}

// Call rejects direct invocation. A binding is a compile-time placeholder:
// the symbol it names exists only where compiled code ultimately executes,
// so calling it in the declaring process always fails with
// *UnsupportedInvocationError, whatever the arguments.
func (b *Binding) Call(args ...any) (any, error) {
	return nil, &UnsupportedInvocationError{Name: b.name}
}
