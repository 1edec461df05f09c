package serialize

import (
	"bytes"
	"sync"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"small", []byte("i64 abs(i64)")},
		{"repetitive", bytes.Repeat([]byte("f64 __nv_pow(f64, f64)\n"), 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := CompressSnapshot(tt.data)
			if err != nil {
				t.Fatalf("CompressSnapshot failed: %v", err)
			}

			decompressed, err := DecompressSnapshot(compressed)
			if err != nil {
				t.Fatalf("DecompressSnapshot failed: %v", err)
			}

			if !bytes.Equal(decompressed, tt.data) {
				t.Errorf("round trip changed data: %d bytes != %d bytes", len(decompressed), len(tt.data))
			}
		})
	}
}

func TestCompressionShrinksRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("f32 __nv_sinf(f32)\n"), 1000)
	compressed, err := CompressSnapshot(data)
	if err != nil {
		t.Fatalf("CompressSnapshot failed: %v", err)
	}
	if len(compressed) >= len(data) {
		t.Errorf("compressed size %d >= original %d", len(compressed), len(data))
	}
}

func TestDecompressInvalidData(t *testing.T) {
	if _, err := DecompressSnapshot([]byte("not zstd data")); err == nil {
		t.Error("DecompressSnapshot of garbage succeeded, want error")
	}
}

func TestCompressorConcurrency(t *testing.T) {
	data := bytes.Repeat([]byte("void __nv_sincos(f64, f64*, f64*)\n"), 100)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			compressed, err := CompressSnapshot(data)
			if err != nil {
				t.Errorf("concurrent CompressSnapshot failed: %v", err)
				return
			}
			decompressed, err := DecompressSnapshot(compressed)
			if err != nil {
				t.Errorf("concurrent DecompressSnapshot failed: %v", err)
				return
			}
			if !bytes.Equal(decompressed, data) {
				t.Error("concurrent round trip changed data")
			}
		}()
	}
	wg.Wait()
}

func TestCompressorLifecycle(t *testing.T) {
	c, err := NewCompressor()
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}
	d, err := NewDecompressor()
	if err != nil {
		t.Fatalf("NewDecompressor failed: %v", err)
	}

	compressed, err := c.Compress([]byte("payload"))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	decompressed, err := d.Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if string(decompressed) != "payload" {
		t.Errorf("round trip = %q", decompressed)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Compressor.Close failed: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Decompressor.Close failed: %v", err)
	}
}
