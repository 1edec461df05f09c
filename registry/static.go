package registry

import (
	"context"

	"github.com/udf-lab/externs-go/external"
)

// staticRegistry is an immutable registry built from RegistryBuilder.
type staticRegistry struct {
	namespaces map[string]*staticNamespace
}

// NewStaticRegistry creates an empty static registry.
// This is exported for use by the externs package builder.
func NewStaticRegistry() *staticRegistry {
	return &staticRegistry{
		namespaces: make(map[string]*staticNamespace),
	}
}

// AddNamespace adds a namespace to the static registry.
// Used during registry building.
func (r *staticRegistry) AddNamespace(name, comment string, externals []*external.Binding) {
	byName := make(map[string]*external.Binding, len(externals))
	for _, b := range externals {
		byName[b.Name()] = b
	}
	r.namespaces[name] = &staticNamespace{
		name:      name,
		comment:   comment,
		externals: externals,
		byName:    byName,
	}
}

// Namespaces implements Registry.
func (r *staticRegistry) Namespaces(ctx context.Context) ([]Namespace, error) {
	result := make([]Namespace, 0, len(r.namespaces))
	for _, ns := range r.namespaces {
		result = append(result, ns)
	}
	return result, nil
}

// Namespace implements Registry.
func (r *staticRegistry) Namespace(ctx context.Context, name string) (Namespace, error) {
	ns, ok := r.namespaces[name]
	if !ok {
		return nil, nil // Not found, not an error
	}
	return ns, nil
}

// staticNamespace is an immutable namespace implementation.
type staticNamespace struct {
	name      string
	comment   string
	externals []*external.Binding
	byName    map[string]*external.Binding
}

// Name implements Namespace.
func (n *staticNamespace) Name() string {
	return n.name
}

// Comment implements Namespace.
func (n *staticNamespace) Comment() string {
	return n.comment
}

// Externals implements Namespace.
func (n *staticNamespace) Externals(ctx context.Context) ([]*external.Binding, error) {
	result := make([]*external.Binding, len(n.externals))
	copy(result, n.externals)
	return result, nil
}

// External implements Namespace.
func (n *staticNamespace) External(ctx context.Context, name string) (*external.Binding, error) {
	b, ok := n.byName[name]
	if !ok {
		return nil, nil // Not found, not an error
	}
	return b, nil
}
