package fitsschema

import "fmt"

// Kind identifies the per-element representation a column stores or a field
// descriptor expects. It is a closed set: every variant has a defined check in
// the validator.
type Kind int

const (
	// KindUnknown marks an instance column whose storage representation was
	// not declared; the validator falls back to per-element checks.
	KindUnknown Kind = iota
	KindLogical
	KindBit
	KindByte
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindString
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindLogical:    "logical",
	KindBit:        "bit",
	KindByte:       "byte",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindComplex64:  "complex64",
	KindComplex128: "complex128",
	KindString:     "string",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKind resolves a kind name as used in schema documents.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s && k != KindUnknown {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("fitsschema: unknown element kind %q", s)
}

// CastsTo reports whether every value representable as k is exactly
// representable as dst (lossless widening only; float64 does not hold every
// int64, float32 does not hold every int32).
func (k Kind) CastsTo(dst Kind) bool {
	if k == KindUnknown || dst == KindUnknown {
		return false
	}
	if k == dst {
		return true
	}
	switch dst {
	case KindInt16:
		return k == KindByte
	case KindInt32:
		return k == KindByte || k == KindInt16
	case KindInt64:
		return k == KindByte || k == KindInt16 || k == KindInt32
	case KindFloat32:
		return k == KindByte || k == KindInt16
	case KindFloat64:
		return k == KindByte || k == KindInt16 || k == KindInt32 || k == KindFloat32
	case KindComplex64:
		return k == KindByte || k == KindInt16 || k == KindFloat32
	case KindComplex128:
		return k == KindByte || k == KindInt16 || k == KindInt32 ||
			k == KindFloat32 || k == KindFloat64 || k == KindComplex64
	default:
		return false
	}
}
