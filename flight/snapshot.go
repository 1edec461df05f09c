package flight

import (
	"context"
	"fmt"

	"github.com/udf-lab/externs-go/internal/msgpack"
	"github.com/udf-lab/externs-go/internal/serialize"
	"github.com/udf-lab/externs-go/registry"
)

// Snapshot is a point-in-time copy of every declaration in a registry.
// Returned by the list_namespaces action so an engine can mirror the whole
// catalog in one round trip.
type Snapshot struct {
	Namespaces []NamespaceSnapshot `msgpack:"namespaces"`
}

// NamespaceSnapshot holds one namespace's declarations.
type NamespaceSnapshot struct {
	Name      string             `msgpack:"name"`
	Comment   string             `msgpack:"comment"`
	Externals []ExternalSnapshot `msgpack:"externals"`
}

// ExternalSnapshot holds one declaration in wire form: the symbol name and
// its overloads rendered in canonical signature grammar.
type ExternalSnapshot struct {
	Name       string   `msgpack:"name"`
	Signatures []string `msgpack:"signatures"`
}

// BuildSnapshot walks the registry and collects every declaration.
func BuildSnapshot(ctx context.Context, reg registry.Registry) (*Snapshot, error) {
	namespaces, err := reg.Namespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	snap := &Snapshot{Namespaces: make([]NamespaceSnapshot, 0, len(namespaces))}
	for _, ns := range namespaces {
		externals, err := ns.Externals(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list externals in %q: %w", ns.Name(), err)
		}

		nsSnap := NamespaceSnapshot{
			Name:      ns.Name(),
			Comment:   ns.Comment(),
			Externals: make([]ExternalSnapshot, 0, len(externals)),
		}
		for _, b := range externals {
			overloads := b.Overloads()
			sigs := make([]string, len(overloads))
			for i, sig := range overloads {
				sigs[i] = sig.String()
			}
			nsSnap.Externals = append(nsSnap.Externals, ExternalSnapshot{
				Name:       b.Name(),
				Signatures: sigs,
			})
		}
		snap.Namespaces = append(snap.Namespaces, nsSnap)
	}

	return snap, nil
}

// EncodeSnapshot serializes a snapshot for transport: MessagePack encoding,
// ZStandard compression, then a [length, data] MessagePack array wrapper so
// the receiver can pre-allocate the decompression buffer.
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	uncompressed, err := msgpack.Encode(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	compressed, err := serialize.CompressSnapshot(uncompressed)
	if err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}

	wrapper := []interface{}{
		uint32(len(uncompressed)),
		string(compressed),
	}
	return msgpack.Encode(wrapper)
}

// DecodeSnapshot reverses EncodeSnapshot. Exposed for Go clients and tests.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var wrapper []interface{}
	if err := msgpack.Decode(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot wrapper: %w", err)
	}
	if len(wrapper) != 2 {
		return nil, fmt.Errorf("snapshot wrapper must be [length, data], got %d elements", len(wrapper))
	}

	compressed, ok := wrapper[1].(string)
	if !ok {
		if b, isBytes := wrapper[1].([]byte); isBytes {
			compressed = string(b)
		} else {
			return nil, fmt.Errorf("snapshot wrapper data must be bytes, got %T", wrapper[1])
		}
	}

	uncompressed, err := serialize.DecompressSnapshot([]byte(compressed))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var snap Snapshot
	if err := msgpack.Decode(uncompressed, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
