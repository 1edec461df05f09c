package externs

import (
	"context"
	"errors"
	"testing"

	"github.com/udf-lab/externs-go/external"
	"github.com/udf-lab/externs-go/types"
)

func TestRegistryBuilder(t *testing.T) {
	ctx := context.Background()

	reg, err := NewRegistryBuilder().
		Namespace("main").
		Comment("Application externals").
		Declare("int64 abs(int64)").
		Declare("double hypot(double, double)").
		Namespace("gpu").
		DeclareNamed("fma", "f32(f32, f32, f32)", "f64(f64, f64, f64)").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	namespaces, err := reg.Namespaces(ctx)
	if err != nil {
		t.Fatalf("Namespaces failed: %v", err)
	}
	if len(namespaces) != 2 {
		t.Errorf("expected 2 namespaces, got %d", len(namespaces))
	}

	ns, err := reg.Namespace(ctx, "main")
	if err != nil {
		t.Fatalf("Namespace failed: %v", err)
	}
	if ns == nil {
		t.Fatal("namespace main not found")
	}
	if ns.Comment() != "Application externals" {
		t.Errorf("Comment() = %q", ns.Comment())
	}

	b, err := ns.External(ctx, "hypot")
	if err != nil {
		t.Fatalf("External failed: %v", err)
	}
	if b == nil {
		t.Fatal("external hypot not found")
	}

	gpu, _ := reg.Namespace(ctx, "gpu")
	fma, _ := gpu.External(ctx, "fma")
	if fma == nil {
		t.Fatal("external fma not found")
	}
	if len(fma.Overloads()) != 2 {
		t.Errorf("expected 2 fma overloads, got %d", len(fma.Overloads()))
	}
}

func TestRegistryBuilderExternal(t *testing.T) {
	ctx := context.Background()
	abs := external.MustDeclare("", "i64 abs(i64)")
	sin := external.MustDeclare("", "f64 sin(f64)")
	cos := external.MustDeclare("", "f64 cos(f64)")

	reg, err := NewRegistryBuilder().
		Namespace("main").
		External(abs).
		Externals(sin, cos).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ns, _ := reg.Namespace(ctx, "main")
	externals, err := ns.Externals(ctx)
	if err != nil {
		t.Fatalf("Externals failed: %v", err)
	}
	if len(externals) != 3 {
		t.Errorf("expected 3 externals, got %d", len(externals))
	}
}

func TestRegistryBuilderErrors(t *testing.T) {
	t.Run("empty namespace name", func(t *testing.T) {
		_, err := NewRegistryBuilder().
			Namespace("").
			Declare("i64 abs(i64)").
			Build()
		if err == nil {
			t.Error("Build succeeded, want error")
		}
	})

	t.Run("duplicate namespace", func(t *testing.T) {
		_, err := NewRegistryBuilder().
			Namespace("main").
			Declare("i64 abs(i64)").
			Namespace("main").
			Declare("f64 sin(f64)").
			Build()
		if err == nil {
			t.Error("Build succeeded, want error")
		}
	})

	t.Run("duplicate external", func(t *testing.T) {
		_, err := NewRegistryBuilder().
			Namespace("main").
			Declare("i64 abs(i64)").
			Declare("i32 abs(i32)").
			Build()
		if err == nil {
			t.Error("Build succeeded, want error")
		}
	})

	t.Run("bad signature surfaces at Build", func(t *testing.T) {
		_, err := NewRegistryBuilder().
			Namespace("main").
			Declare("not a signature").
			Build()
		if err == nil {
			t.Fatal("Build succeeded, want error")
		}
		var parseErr *external.ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("error type = %T, want wrapped *ParseError", err)
		}
	})

	t.Run("build only once", func(t *testing.T) {
		rb := NewRegistryBuilder()
		rb.Namespace("main").Declare("i64 abs(i64)")
		if _, err := rb.Build(); err != nil {
			t.Fatalf("first Build failed: %v", err)
		}
		if _, err := rb.Build(); err == nil {
			t.Error("second Build succeeded, want error")
		}
	})
}

func TestBuiltRegistryResolves(t *testing.T) {
	ctx := context.Background()

	reg, err := NewRegistryBuilder().
		Namespace("main").
		DeclareNamed("abs", "i32(i32)", "i64(i64)").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ns, _ := reg.Namespace(ctx, "main")
	b, _ := ns.External(ctx, "abs")
	ref, err := b.Resolve([]types.Type{{Kind: types.KindInt64}})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ref.Symbol != "abs" {
		t.Errorf("Symbol = %q, want %q", ref.Symbol, "abs")
	}
}
