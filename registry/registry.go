// Package registry organizes external function declarations into named
// namespaces for discovery and remote resolution.
package registry

import (
	"context"

	"github.com/udf-lab/externs-go/external"
)

// Registry is the top-level interface for querying namespaces.
// Implementations MUST be goroutine-safe.
type Registry interface {
	// Namespaces returns all namespaces in the registry.
	Namespaces(ctx context.Context) ([]Namespace, error)

	// Namespace returns the namespace with the given name.
	// Returns (nil, nil) when the namespace does not exist.
	Namespace(ctx context.Context, name string) (Namespace, error)
}

// Namespace groups the external declarations of one foreign library or
// logical module (e.g., "libdevice", "main").
type Namespace interface {
	// Name returns the namespace name. MUST be non-empty.
	Name() string

	// Comment returns optional namespace documentation.
	// Returns empty string if no comment provided.
	Comment() string

	// Externals returns all declarations in the namespace.
	Externals(ctx context.Context) ([]*external.Binding, error)

	// External returns the declaration with the given symbol name.
	// Returns (nil, nil) when no such declaration exists.
	External(ctx context.Context, name string) (*external.Binding, error)
}

// DynamicNamespace is an optional interface for namespaces that accept
// declarations at runtime (the declare_external Flight action).
// Implementations own their locking.
type DynamicNamespace interface {
	Namespace

	// Declare adds a binding to the namespace.
	// Returns an error if a declaration with the same name already exists.
	Declare(ctx context.Context, b *external.Binding) error
}
