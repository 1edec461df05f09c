// Package libdevice declares the NVIDIA libdevice math symbols as external
// function bindings. These symbols (__nv_sin, __nv_pow, ...) are linked
// into GPU-enabled analytical engines; compiled user-defined functions call
// them directly, so the declaring process only ever needs their typed
// signatures, never an implementation.
package libdevice

import (
	"context"

	"github.com/udf-lab/externs-go/external"
	"github.com/udf-lab/externs-go/registry"
)

// NamespaceName is the conventional namespace for libdevice declarations.
const NamespaceName = "libdevice"

// signatures lists the declared subset of libdevice, in canonical grammar
// form. Single-precision variants carry the usual "f" suffix. Functions
// with output parameters (sincos, modf, frexp) declare pointer parameters.
var signatures = []string{
	// Absolute value and sign
	"i32 __nv_abs(i32)",
	"i64 __nv_llabs(i64)",
	"f64 __nv_fabs(f64)",
	"f32 __nv_fabsf(f32)",
	"f64 __nv_copysign(f64, f64)",
	"f32 __nv_copysignf(f32, f32)",

	// Exponentials and logarithms
	"f64 __nv_exp(f64)",
	"f32 __nv_expf(f32)",
	"f64 __nv_exp2(f64)",
	"f32 __nv_exp2f(f32)",
	"f64 __nv_expm1(f64)",
	"f32 __nv_expm1f(f32)",
	"f64 __nv_log(f64)",
	"f32 __nv_logf(f32)",
	"f64 __nv_log2(f64)",
	"f32 __nv_log2f(f32)",
	"f64 __nv_log10(f64)",
	"f32 __nv_log10f(f32)",
	"f64 __nv_log1p(f64)",
	"f32 __nv_log1pf(f32)",

	// Powers and roots
	"f64 __nv_pow(f64, f64)",
	"f32 __nv_powf(f32, f32)",
	"f64 __nv_powi(f64, i32)",
	"f32 __nv_powif(f32, i32)",
	"f64 __nv_sqrt(f64)",
	"f32 __nv_sqrtf(f32)",
	"f64 __nv_rsqrt(f64)",
	"f32 __nv_rsqrtf(f32)",
	"f64 __nv_cbrt(f64)",
	"f32 __nv_cbrtf(f32)",
	"f64 __nv_hypot(f64, f64)",
	"f32 __nv_hypotf(f32, f32)",

	// Trigonometry
	"f64 __nv_sin(f64)",
	"f32 __nv_sinf(f32)",
	"f64 __nv_cos(f64)",
	"f32 __nv_cosf(f32)",
	"f64 __nv_tan(f64)",
	"f32 __nv_tanf(f32)",
	"f64 __nv_asin(f64)",
	"f32 __nv_asinf(f32)",
	"f64 __nv_acos(f64)",
	"f32 __nv_acosf(f32)",
	"f64 __nv_atan(f64)",
	"f32 __nv_atanf(f32)",
	"f64 __nv_atan2(f64, f64)",
	"f32 __nv_atan2f(f32, f32)",
	"void __nv_sincos(f64, f64*, f64*)",
	"void __nv_sincosf(f32, f32*, f32*)",

	// Hyperbolics
	"f64 __nv_sinh(f64)",
	"f32 __nv_sinhf(f32)",
	"f64 __nv_cosh(f64)",
	"f32 __nv_coshf(f32)",
	"f64 __nv_tanh(f64)",
	"f32 __nv_tanhf(f32)",
	"f64 __nv_asinh(f64)",
	"f32 __nv_asinhf(f32)",
	"f64 __nv_acosh(f64)",
	"f32 __nv_acoshf(f32)",
	"f64 __nv_atanh(f64)",
	"f32 __nv_atanhf(f32)",

	// Rounding and decomposition
	"f64 __nv_floor(f64)",
	"f32 __nv_floorf(f32)",
	"f64 __nv_ceil(f64)",
	"f32 __nv_ceilf(f32)",
	"f64 __nv_trunc(f64)",
	"f32 __nv_truncf(f32)",
	"f64 __nv_round(f64)",
	"f32 __nv_roundf(f32)",
	"f64 __nv_rint(f64)",
	"f32 __nv_rintf(f32)",
	"f64 __nv_modf(f64, f64*)",
	"f32 __nv_modff(f32, f32*)",
	"f64 __nv_frexp(f64, i32*)",
	"f32 __nv_frexpf(f32, i32*)",
	"f64 __nv_ldexp(f64, i32)",
	"f32 __nv_ldexpf(f32, i32)",

	// Remainders and fused operations
	"f64 __nv_fmod(f64, f64)",
	"f32 __nv_fmodf(f32, f32)",
	"f64 __nv_remainder(f64, f64)",
	"f32 __nv_remainderf(f32, f32)",
	"f64 __nv_fma(f64, f64, f64)",
	"f32 __nv_fmaf(f32, f32, f32)",

	// Min/max
	"f64 __nv_fmax(f64, f64)",
	"f32 __nv_fmaxf(f32, f32)",
	"f64 __nv_fmin(f64, f64)",
	"f32 __nv_fminf(f32, f32)",
	"i32 __nv_max(i32, i32)",
	"i32 __nv_min(i32, i32)",
	"i64 __nv_llmax(i64, i64)",
	"i64 __nv_llmin(i64, i64)",

	// Error and gamma functions
	"f64 __nv_erf(f64)",
	"f32 __nv_erff(f32)",
	"f64 __nv_erfc(f64)",
	"f32 __nv_erfcf(f32)",
	"f64 __nv_lgamma(f64)",
	"f32 __nv_lgammaf(f32)",
	"f64 __nv_tgamma(f64)",
	"f32 __nv_tgammaf(f32)",

	// Classification
	"i32 __nv_isnand(f64)",
	"i32 __nv_isnanf(f32)",
	"i32 __nv_isinfd(f64)",
	"i32 __nv_isinff(f32)",
	"i32 __nv_finite(f64)",
	"i32 __nv_finitef(f32)",

	// Integer intrinsics
	"i32 __nv_popc(i32)",
	"i32 __nv_popcll(i64)",
	"i32 __nv_clz(i32)",
	"i32 __nv_clzll(i64)",
	"i32 __nv_ffs(i32)",
	"i32 __nv_ffsll(i64)",
	"i32 __nv_brev(i32)",
	"i64 __nv_brevll(i64)",
	"i32 __nv_mulhi(i32, i32)",
	"i64 __nv_mul64hi(i64, i64)",
	"i32 __nv_sad(i32, i32, i32)",
	"u32 __nv_usad(u32, u32, u32)",
}

var bindings = mustDeclareAll()

func mustDeclareAll() []*external.Binding {
	out := make([]*external.Binding, len(signatures))
	for i, spec := range signatures {
		out[i] = external.MustDeclare("", spec)
	}
	return out
}

// Bindings returns the declared libdevice bindings.
// The returned slice is a copy; the bindings themselves are shared and
// immutable.
func Bindings() []*external.Binding {
	out := make([]*external.Binding, len(bindings))
	copy(out, bindings)
	return out
}

// Lookup returns the binding for a libdevice symbol, or nil when the
// symbol is not in the declared subset.
func Lookup(symbol string) *external.Binding {
	for _, b := range bindings {
		if b.Name() == symbol {
			return b
		}
	}
	return nil
}

// Namespace returns a registry namespace containing every declared
// libdevice binding.
func Namespace() registry.Namespace {
	reg := registry.NewStaticRegistry()
	reg.AddNamespace(NamespaceName, "NVIDIA libdevice math functions", Bindings())
	ns, _ := reg.Namespace(context.Background(), NamespaceName)
	return ns
}
