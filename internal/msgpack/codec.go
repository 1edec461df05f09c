// Package msgpack provides MessagePack encoding/decoding for Flight action
// bodies. Resolve and declare requests arrive as MessagePack maps.
package msgpack

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Decode deserializes MessagePack data into a Go value.
// The v parameter should be a pointer to the target structure.
//
// Example:
//
//	type ResolveRequest struct {
//	    Namespace string   `msgpack:"namespace"`
//	    Function  string   `msgpack:"function"`
//	    Args      []string `msgpack:"argument_types"`
//	}
//
//	var req ResolveRequest
//	err := msgpack.Decode(data, &req)
func Decode(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("empty MessagePack data")
	}

	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	return nil
}

// Encode serializes a Go value into MessagePack format.
// Returns the serialized bytes or error.
func Encode(v interface{}) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	return data, nil
}
