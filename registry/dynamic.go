package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/udf-lab/externs-go/external"
)

// ErrAlreadyDeclared reports a Declare against a symbol name that already
// exists in the namespace. DynamicNamespace implementations should wrap it
// so callers can distinguish duplicates from backend failures.
var ErrAlreadyDeclared = errors.New("external already declared")

// MutableNamespace is a goroutine-safe namespace that accepts declarations
// at runtime. It implements DynamicNamespace and is the backing store for
// the declare_external Flight action.
type MutableNamespace struct {
	name    string
	comment string

	mu     sync.RWMutex
	byName map[string]*external.Binding
	order  []string
}

// NewMutableNamespace creates an empty mutable namespace.
func NewMutableNamespace(name, comment string) *MutableNamespace {
	return &MutableNamespace{
		name:    name,
		comment: comment,
		byName:  make(map[string]*external.Binding),
	}
}

// Name implements Namespace.
func (n *MutableNamespace) Name() string {
	return n.name
}

// Comment implements Namespace.
func (n *MutableNamespace) Comment() string {
	return n.comment
}

// Externals implements Namespace. Declarations are returned in the order
// they were added.
func (n *MutableNamespace) Externals(ctx context.Context) ([]*external.Binding, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]*external.Binding, 0, len(n.order))
	for _, name := range n.order {
		result = append(result, n.byName[name])
	}
	return result, nil
}

// External implements Namespace.
func (n *MutableNamespace) External(ctx context.Context, name string) (*external.Binding, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	b, ok := n.byName[name]
	if !ok {
		return nil, nil
	}
	return b, nil
}

// Declare implements DynamicNamespace.
func (n *MutableNamespace) Declare(ctx context.Context, b *external.Binding) error {
	if b == nil {
		return fmt.Errorf("binding cannot be nil")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.byName[b.Name()]; exists {
		return fmt.Errorf("%w: %q in namespace %q", ErrAlreadyDeclared, b.Name(), n.name)
	}
	n.byName[b.Name()] = b
	n.order = append(n.order, b.Name())
	return nil
}

// MutableRegistry is a goroutine-safe registry of mutable namespaces.
type MutableRegistry struct {
	mu         sync.RWMutex
	namespaces map[string]Namespace
}

// NewMutableRegistry creates a registry from the given namespaces.
func NewMutableRegistry(namespaces ...Namespace) *MutableRegistry {
	r := &MutableRegistry{namespaces: make(map[string]Namespace, len(namespaces))}
	for _, ns := range namespaces {
		r.namespaces[ns.Name()] = ns
	}
	return r
}

// AddNamespace adds a namespace. Returns an error on duplicate names.
func (r *MutableRegistry) AddNamespace(ns Namespace) error {
	if ns == nil {
		return fmt.Errorf("namespace cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.namespaces[ns.Name()]; exists {
		return fmt.Errorf("namespace %q already exists", ns.Name())
	}
	r.namespaces[ns.Name()] = ns
	return nil
}

// Namespaces implements Registry.
func (r *MutableRegistry) Namespaces(ctx context.Context) ([]Namespace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Namespace, 0, len(r.namespaces))
	for _, ns := range r.namespaces {
		result = append(result, ns)
	}
	return result, nil
}

// Namespace implements Registry.
func (r *MutableRegistry) Namespace(ctx context.Context, name string) (Namespace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ns, ok := r.namespaces[name]
	if !ok {
		return nil, nil
	}
	return ns, nil
}
