// Package manifest loads external function declarations from YAML files.
// A manifest describes namespaces of foreign symbols so deployments can
// ship declaration sets as configuration instead of code.
//
// Example manifest:
//
//	namespaces:
//	  - name: main
//	    comment: Application externals
//	    externals:
//	      - name: abs
//	        signatures:
//	          - i32(i32)
//	          - i64(i64)
//	      - signatures:
//	          - double hypot(double, double)
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udf-lab/externs-go/external"
	"github.com/udf-lab/externs-go/registry"
)

// Manifest is the root of a declaration manifest file.
type Manifest struct {
	Namespaces []NamespaceDef `yaml:"namespaces"`
}

// NamespaceDef describes one namespace and its declarations.
type NamespaceDef struct {
	// Name is the namespace name. REQUIRED.
	Name string `yaml:"name"`

	// Comment is optional namespace documentation.
	Comment string `yaml:"comment"`

	// Externals are the declarations in this namespace.
	Externals []ExternalDef `yaml:"externals"`
}

// ExternalDef describes one external function declaration.
type ExternalDef struct {
	// Name is the symbol name. OPTIONAL when the signatures carry it
	// inline (e.g., "int64 abs(int64)").
	Name string `yaml:"name"`

	// Signatures are the overload signature strings. REQUIRED, non-empty.
	Signatures []string `yaml:"signatures"`
}

// Parse parses manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: invalid YAML: %w", err)
	}
	return &m, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data)
}

// Registry builds an immutable registry from the manifest.
// Declaration errors carry the external package's typed errors
// (*external.ParseError, *external.DeclarationError) for errors.As.
func (m *Manifest) Registry() (registry.Registry, error) {
	seen := make(map[string]bool)
	reg := registry.NewStaticRegistry()

	for _, nsDef := range m.Namespaces {
		if nsDef.Name == "" {
			return nil, fmt.Errorf("manifest: namespace name cannot be empty")
		}
		if seen[nsDef.Name] {
			return nil, fmt.Errorf("manifest: duplicate namespace %q", nsDef.Name)
		}
		seen[nsDef.Name] = true

		bindings := make([]*external.Binding, 0, len(nsDef.Externals))
		names := make(map[string]bool)
		for _, extDef := range nsDef.Externals {
			b, err := external.Declare(extDef.Name, extDef.Signatures...)
			if err != nil {
				return nil, fmt.Errorf("manifest: namespace %q: %w", nsDef.Name, err)
			}
			if names[b.Name()] {
				return nil, fmt.Errorf("manifest: namespace %q: duplicate external %q", nsDef.Name, b.Name())
			}
			names[b.Name()] = true
			bindings = append(bindings, b)
		}

		reg.AddNamespace(nsDef.Name, nsDef.Comment, bindings)
	}

	return reg, nil
}
