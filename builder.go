package externs

import (
	"fmt"

	"github.com/udf-lab/externs-go/external"
	"github.com/udf-lab/externs-go/registry"
)

// RegistryBuilder builds static registries using a fluent API.
// Not thread-safe - use only during initialization.
type RegistryBuilder struct {
	namespaces []*namespaceBuilder
	built      bool
	err        error
}

// NewRegistryBuilder creates a new fluent registry builder.
// Returns builder in "empty" state (no namespaces).
//
// Example:
//
//	reg, err := externs.NewRegistryBuilder().
//	    Namespace("main").
//	        Declare("int64 abs(int64)").
//	        External(myBinding).
//	    Build()
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		namespaces: make([]*namespaceBuilder, 0),
	}
}

// Namespace starts defining a new namespace.
// Returns NamespaceBuilder for adding declarations to this namespace.
// Namespace name MUST be non-empty and unique within the registry.
func (rb *RegistryBuilder) Namespace(name string) *NamespaceBuilder {
	nb := &namespaceBuilder{
		name:            name,
		registryBuilder: rb,
	}
	rb.namespaces = append(rb.namespaces, nb)
	return &NamespaceBuilder{builder: nb}
}

// Build finalizes the registry and returns an immutable Registry
// implementation. Can only be called once.
// Returns the first error accumulated during building (e.g., a malformed
// Declare spec) or a validation error (duplicate names).
func (rb *RegistryBuilder) Build() (registry.Registry, error) {
	if rb.built {
		return nil, fmt.Errorf("registry already built")
	}
	if rb.err != nil {
		return nil, rb.err
	}

	// Validate namespace names are unique and non-empty
	seenNames := make(map[string]bool)
	for _, nb := range rb.namespaces {
		if nb.name == "" {
			return nil, fmt.Errorf("namespace name cannot be empty")
		}
		if seenNames[nb.name] {
			return nil, fmt.Errorf("duplicate namespace name: %s", nb.name)
		}
		seenNames[nb.name] = true

		// Validate declaration names within namespace
		funcNames := make(map[string]bool)
		for _, b := range nb.externals {
			if funcNames[b.Name()] {
				return nil, fmt.Errorf("duplicate external %s in namespace %s", b.Name(), nb.name)
			}
			funcNames[b.Name()] = true
		}
	}

	rb.built = true

	reg := registry.NewStaticRegistry()
	for _, nb := range rb.namespaces {
		reg.AddNamespace(nb.name, nb.comment, nb.externals)
	}

	return reg, nil
}

// NamespaceBuilder builds a namespace within a registry.
// Not thread-safe - use only during initialization.
type NamespaceBuilder struct {
	builder *namespaceBuilder
}

// namespaceBuilder is the internal namespace builder implementation.
type namespaceBuilder struct {
	name            string
	comment         string
	externals       []*external.Binding
	registryBuilder *RegistryBuilder
}

// Comment sets optional namespace documentation.
// Returns self for method chaining.
func (nb *NamespaceBuilder) Comment(comment string) *NamespaceBuilder {
	nb.builder.comment = comment
	return nb
}

// External adds a pre-built binding to this namespace.
// Returns self for method chaining.
func (nb *NamespaceBuilder) External(b *external.Binding) *NamespaceBuilder {
	nb.builder.externals = append(nb.builder.externals, b)
	return nb
}

// Externals adds multiple pre-built bindings to this namespace.
// Returns self for method chaining.
func (nb *NamespaceBuilder) Externals(bindings ...*external.Binding) *NamespaceBuilder {
	nb.builder.externals = append(nb.builder.externals, bindings...)
	return nb
}

// Declare parses signature strings and adds the resulting binding.
// The symbol name must be inline in the first signature (or all of them).
// Parse and declaration errors are deferred to Build.
//
// Example:
//
//	builder.Namespace("main").
//	    Declare("int64 abs(int64)").
//	    Declare("double hypot(double, double)")
func (nb *NamespaceBuilder) Declare(specs ...string) *NamespaceBuilder {
	return nb.DeclareNamed("", specs...)
}

// DeclareNamed is Declare with an explicit symbol name, for signature
// strings that omit it.
//
// Example:
//
//	builder.Namespace("main").
//	    DeclareNamed("abs", "i32(i32)", "i64(i64)")
func (nb *NamespaceBuilder) DeclareNamed(name string, specs ...string) *NamespaceBuilder {
	b, err := external.Declare(name, specs...)
	if err != nil {
		if nb.builder.registryBuilder.err == nil {
			nb.builder.registryBuilder.err = fmt.Errorf("namespace %s: %w", nb.builder.name, err)
		}
		return nb
	}
	nb.builder.externals = append(nb.builder.externals, b)
	return nb
}

// Namespace starts a new namespace definition (returns to RegistryBuilder).
// Allows chaining: Namespace("a").Declare(...).Namespace("b").Declare(...)
func (nb *NamespaceBuilder) Namespace(name string) *NamespaceBuilder {
	return nb.builder.registryBuilder.Namespace(name)
}

// Build finalizes the registry (returns to RegistryBuilder).
// Same as calling registryBuilder.Build().
func (nb *NamespaceBuilder) Build() (registry.Registry, error) {
	return nb.builder.registryBuilder.Build()
}
