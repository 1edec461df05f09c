// Package serialize compresses registry snapshots for transport.
// The list_namespaces action returns the whole declaration catalog in one
// response; libdevice-sized namespaces compress to a fraction of their
// MessagePack encoding.
package serialize

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compressor handles ZStandard compression for snapshot data.
// Create once and reuse to eliminate allocations.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable ZStandard compressor.
// Uses SpeedDefault (level 3) for balanced compression ratio and speed.
// Caller must call Close() when done to release resources.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return &Compressor{encoder: encoder}, nil
}

// Compress compresses data using ZStandard.
// Safe for concurrent use from multiple goroutines.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, 0, len(data)/2)

	// EncodeAll is goroutine-safe
	return c.encoder.EncodeAll(data, dst), nil
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor handles ZStandard decompression.
// Create once and reuse to eliminate allocations.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable ZStandard decompressor.
// Caller must call Close() when done to release resources.
func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Decompressor{decoder: decoder}, nil
}

// Decompress decompresses ZStandard data.
// Safe for concurrent use from multiple goroutines.
func (d *Decompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	out, err := d.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() error {
	if d.decoder != nil {
		d.decoder.Close()
	}
	return nil
}

// Shared instances for the package-level helpers. EncodeAll/DecodeAll are
// goroutine-safe, so one of each is enough for the whole process.
var (
	defaultCompressor   *Compressor
	defaultDecompressor *Decompressor
)

func init() {
	var err error
	defaultCompressor, err = NewCompressor()
	if err != nil {
		panic(fmt.Sprintf("serialize: init compressor: %v", err))
	}
	defaultDecompressor, err = NewDecompressor()
	if err != nil {
		panic(fmt.Sprintf("serialize: init decompressor: %v", err))
	}
}

// CompressSnapshot compresses an encoded snapshot using the shared
// compressor.
func CompressSnapshot(data []byte) ([]byte, error) {
	return defaultCompressor.Compress(data)
}

// DecompressSnapshot decompresses a snapshot using the shared decompressor.
func DecompressSnapshot(data []byte) ([]byte, error) {
	return defaultDecompressor.Decompress(data)
}
