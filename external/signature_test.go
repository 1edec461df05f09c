package external

import (
	"errors"
	"testing"

	"github.com/udf-lab/externs-go/types"
)

func TestParseSignature(t *testing.T) {
	i32 := types.Type{Kind: types.KindInt32}
	i64 := types.Type{Kind: types.KindInt64}
	f64 := types.Type{Kind: types.KindFloat64}
	f64p := types.Type{Kind: types.KindFloat64, Pointer: true}

	tests := []struct {
		name     string
		input    string
		wantSig  Signature
		wantName string
	}{
		{
			name:     "named with long spellings",
			input:    "int64 abs(int64)",
			wantSig:  Signature{Return: i64, Params: []types.Type{i64}},
			wantName: "abs",
		},
		{
			name:    "anonymous with short spellings",
			input:   "i32(i32)",
			wantSig: Signature{Return: i32, Params: []types.Type{i32}},
		},
		{
			name:     "two parameters",
			input:    "double __nv_pow(double, double)",
			wantSig:  Signature{Return: f64, Params: []types.Type{f64, f64}},
			wantName: "__nv_pow",
		},
		{
			name:     "void return with pointer params",
			input:    "void sincos(f64, f64*, f64*)",
			wantSig:  Signature{Return: types.Type{Kind: types.KindVoid}, Params: []types.Type{f64, f64p, f64p}},
			wantName: "sincos",
		},
		{
			name:     "zero parameters",
			input:    "f64 pi()",
			wantSig:  Signature{Return: f64},
			wantName: "pi",
		},
		{
			name:     "insignificant whitespace",
			input:    "  int64   abs (  int64 ,int64 )  ",
			wantSig:  Signature{Return: i64, Params: []types.Type{i64, i64}},
			wantName: "abs",
		},
		{
			name:     "pointer star attached to name",
			input:    "double *scale(double)",
			wantSig:  Signature{Return: f64p, Params: []types.Type{f64}},
			wantName: "scale",
		},
		{
			name:     "free-standing pointer star",
			input:    "double * scale(double)",
			wantSig:  Signature{Return: f64p, Params: []types.Type{f64}},
			wantName: "scale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, name, err := ParseSignature(tt.input)
			if err != nil {
				t.Fatalf("ParseSignature(%q) failed: %v", tt.input, err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if !sig.Equal(tt.wantSig) {
				t.Errorf("signature = %v, want %v", sig, tt.wantSig)
			}
		})
	}
}

func TestParseSignatureErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no parameter list", "int64 abs"},
		{"missing closing paren", "int64 abs(int64"},
		{"missing return type", "abs(int64)"},
		{"unknown return type", "quux abs(int64)"},
		{"unknown parameter type", "int64 abs(quux)"},
		{"void parameter", "int64 abs(void)"},
		{"nested parens", "int64 abs((int64))"},
		{"trailing comma", "int64 abs(int64,)"},
		{"junk in head", "int64 static abs(int64)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSignature(tt.input)
			if err == nil {
				t.Fatalf("ParseSignature(%q) succeeded, want error", tt.input)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error type = %T, want *ParseError", err)
			}
		})
	}
}

func TestSignatureString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int64 abs(int64)", "i64(i64)"},
		{"double pow(double, double)", "f64(f64, f64)"},
		{"void sincos(f64, f64*, f64*)", "void(f64, f64*, f64*)"},
		{"f64 pi()", "f64()"},
	}

	for _, tt := range tests {
		sig, _, err := ParseSignature(tt.input)
		if err != nil {
			t.Fatalf("ParseSignature(%q) failed: %v", tt.input, err)
		}
		if got := sig.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSignatureStringRoundTrip(t *testing.T) {
	// Canonical form parses back to an equal signature.
	inputs := []string{
		"i64(i64)",
		"f64(f64, f64)",
		"void(f64, f64*, f64*)",
		"f64()",
	}

	for _, input := range inputs {
		sig, _, err := ParseSignature(input)
		if err != nil {
			t.Fatalf("ParseSignature(%q) failed: %v", input, err)
		}
		again, _, err := ParseSignature(sig.String())
		if err != nil {
			t.Fatalf("ParseSignature(%q) failed: %v", sig.String(), err)
		}
		if !sig.Equal(again) {
			t.Errorf("round trip of %q changed signature: %v != %v", input, sig, again)
		}
	}
}

func TestValidSymbolName(t *testing.T) {
	valid := []string{"abs", "__nv_sin", "_f", "a1", "Abs2"}
	invalid := []string{"", "1abs", "ab-s", "ab s", "ab.s", "ab$s"}

	for _, name := range valid {
		if !validSymbolName(name) {
			t.Errorf("validSymbolName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if validSymbolName(name) {
			t.Errorf("validSymbolName(%q) = true, want false", name)
		}
	}
}
