package dsl

import (
	"fmt"
	"math"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// ---- value predicates ----
//
// Cell elements arrive as any. The helpers below classify them the same way
// everywhere: integers of any width collapse to int64, floats to float64,
// and NaN counts as null alongside nil (FITS has no null sentinel for
// floating point columns other than NaN).

// isNull reports whether v represents a missing element.
func isNull(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float32:
		return math.IsNaN(float64(t))
	case float64:
		return math.IsNaN(t)
	}
	return false
}

// asInt normalizes any integer type to int64. Floats and bools do not count
// as integers.
func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), uint64(t) <= math.MaxInt64
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), t <= math.MaxInt64
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func asComplex(v any) (complex128, bool) {
	switch t := v.(type) {
	case complex64:
		return complex128(t), true
	case complex128:
		return t, true
	}
	return 0, false
}

// valueEqual compares an element against an allowed value, bridging numeric
// widths: int16(5) equals int(5), float32(1.5) equals 1.5. Strings and bools
// compare exactly; mismatched categories never compare equal.
func valueEqual(a, b any) bool {
	if ai, ok := asInt(a); ok {
		if bi, ok := asInt(b); ok {
			return ai == bi
		}
		if bf, ok := asFloat(b); ok {
			return float64(ai) == bf
		}
		return false
	}
	if af, ok := asFloat(a); ok {
		if bi, ok := asInt(b); ok {
			return af == float64(bi)
		}
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	if ac, ok := asComplex(a); ok {
		bc, ok := asComplex(b)
		return ok && ac == bc
	}
	switch t := a.(type) {
	case bool:
		bb, ok := b.(bool)
		return ok && t == bb
	case string:
		bs, ok := b.(string)
		return ok && t == bs
	}
	return false
}

func memberOf(v any, set []any) bool {
	for _, want := range set {
		if valueEqual(v, want) {
			return true
		}
	}
	return false
}

// ---- exact representability ----
//
// Widening an integer into a float is only safe while the float mantissa
// still holds every bit: 24 bits for float32, 53 for float64.

const (
	maxExactFloat32 = 1 << 24
	maxExactFloat64 = 1 << 53
)

func intFitsFloat32(n int64) bool {
	return n >= -maxExactFloat32 && n <= maxExactFloat32
}

func intFitsFloat64(n int64) bool {
	return n >= -maxExactFloat64 && n <= maxExactFloat64
}

func floatFitsFloat32(f float64) bool {
	return math.IsInf(f, 0) || float64(float32(f)) == f
}

// elementFits reports whether one non-null element is representable under
// the given kind. The hint names the failure for the diagnostic.
func elementFits(v any, kind fitsschema.Kind, maxLen int) (string, bool) {
	switch kind {
	case fitsschema.KindLogical, fitsschema.KindBit:
		if _, ok := v.(bool); !ok {
			return fmt.Sprintf("expected bool, got %T", v), false
		}
	case fitsschema.KindByte:
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected integer, got %T", v), false
		}
		if n < 0 || n > math.MaxUint8 {
			return fmt.Sprintf("value %d overflows byte", n), false
		}
	case fitsschema.KindInt16:
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected integer, got %T", v), false
		}
		if n < math.MinInt16 || n > math.MaxInt16 {
			return fmt.Sprintf("value %d overflows int16", n), false
		}
	case fitsschema.KindInt32:
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected integer, got %T", v), false
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Sprintf("value %d overflows int32", n), false
		}
	case fitsschema.KindInt64:
		if _, ok := asInt(v); !ok {
			return fmt.Sprintf("expected integer, got %T", v), false
		}
	case fitsschema.KindFloat32:
		switch t := v.(type) {
		case float32:
		case float64:
			if !floatFitsFloat32(t) {
				return fmt.Sprintf("value %v loses precision as float32", t), false
			}
		default:
			n, ok := asInt(v)
			if !ok {
				return fmt.Sprintf("expected number, got %T", v), false
			}
			if !intFitsFloat32(n) {
				return fmt.Sprintf("value %d loses precision as float32", n), false
			}
		}
	case fitsschema.KindFloat64:
		if _, ok := asFloat(v); ok {
			break
		}
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected number, got %T", v), false
		}
		if !intFitsFloat64(n) {
			return fmt.Sprintf("value %d loses precision as float64", n), false
		}
	case fitsschema.KindComplex64:
		if c, ok := asComplex(v); ok {
			if !floatFitsFloat32(real(c)) || !floatFitsFloat32(imag(c)) {
				return fmt.Sprintf("value %v loses precision as complex64", c), false
			}
			break
		}
		if f, ok := asFloat(v); ok {
			if !floatFitsFloat32(f) {
				return fmt.Sprintf("value %v loses precision as complex64", f), false
			}
			break
		}
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected number, got %T", v), false
		}
		if !intFitsFloat32(n) {
			return fmt.Sprintf("value %d loses precision as complex64", n), false
		}
	case fitsschema.KindComplex128:
		if _, ok := asComplex(v); ok {
			break
		}
		if _, ok := asFloat(v); ok {
			break
		}
		n, ok := asInt(v)
		if !ok {
			return fmt.Sprintf("expected number, got %T", v), false
		}
		if !intFitsFloat64(n) {
			return fmt.Sprintf("value %d loses precision as complex128", n), false
		}
	case fitsschema.KindString:
		s, ok := v.(string)
		if !ok {
			return fmt.Sprintf("expected string, got %T", v), false
		}
		if maxLen > 0 && len(s) > maxLen {
			return fmt.Sprintf("string exceeds %d characters", maxLen), false
		}
	}
	return "", true
}
