package external

import (
	"fmt"

	"github.com/udf-lab/externs-go/types"
)

// ParseError reports a signature string that does not conform to the
// declaration grammar. The construction that produced it fails entirely;
// the caller can retry with corrected input.
type ParseError struct {
	// Input is the offending signature string.
	Input string
	// Reason describes what the parser rejected.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid signature %q: %s", e.Input, e.Reason)
}

// DeclarationError reports an overload set that cannot form a valid
// declaration: the name is missing or ambiguous across signatures, or two
// signatures collide on parameter types with differing return types.
type DeclarationError struct {
	// Name is the declaration name, if one was determined before the failure.
	Name string
	// Reason describes the conflict.
	Reason string
}

func (e *DeclarationError) Error() string {
	if e.Name == "" {
		return "invalid declaration: " + e.Reason
	}
	return fmt.Sprintf("invalid declaration %q: %s", e.Name, e.Reason)
}

// OverloadResolutionError reports that no declared signature's parameter
// types exactly match the call-site argument types.
type OverloadResolutionError struct {
	// Name is the declaration name.
	Name string
	// Args are the argument types that failed to match.
	Args []types.Type
	// Overloads are the signatures that were available.
	Overloads []Signature
}

func (e *OverloadResolutionError) Error() string {
	candidates := make([]string, len(e.Overloads))
	for i, sig := range e.Overloads {
		candidates[i] = sig.String()
	}
	return fmt.Sprintf("no overload of %q matches argument types (%s); available: %s",
		e.Name, types.FormatList(e.Args), formatCandidates(candidates))
}

func formatCandidates(candidates []string) string {
	if len(candidates) == 0 {
		return "none"
	}
	out := candidates[0]
	for _, c := range candidates[1:] {
		out += "; " + c
	}
	return out
}

// UnsupportedInvocationError reports a direct call of a binding outside a
// compiled context. This is unconditional: the foreign symbol may only
// exist in the remote execution environment, so there is no interpreted
// fallback.
type UnsupportedInvocationError struct {
	// Name is the binding name.
	Name string
}

func (e *UnsupportedInvocationError) Error() string {
	return fmt.Sprintf("%q is not usable outside compiled code", e.Name)
}
