package dsl

import (
	"fmt"
	"strings"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// ---- shape ----

type shapeKind int

const (
	shapeScalar shapeKind = iota
	shapeFixed
	shapeVariable
)

// Shape describes how many elements a column stores per row.
type Shape struct {
	kind shapeKind
	n    int
}

// Scalar is one element per row. It is the default for every field.
func Scalar() Shape { return Shape{kind: shapeScalar} }

// FixedVector is exactly n elements per row. n must be at least 1; Build
// rejects the schema otherwise.
func FixedVector(n int) Shape { return Shape{kind: shapeFixed, n: n} }

// VariableVector accepts any number of elements per row, including zero.
func VariableVector() Shape { return Shape{kind: shapeVariable} }

func (sh Shape) String() string {
	switch sh.kind {
	case shapeFixed:
		return fmt.Sprintf("vector(%d)", sh.n)
	case shapeVariable:
		return "variable"
	default:
		return "scalar"
	}
}

// ---- unit constraint ----

type unitMode int

const (
	unitDimensionless unitMode = iota
	unitConvertible
	unitOneOf
)

// ---- field spec ----

// FieldSpec describes one table column: its element kind plus optional unit,
// shape, allowed-value and nullability constraints. It is a value; the
// chainable methods return modified copies, so specs can be shared and
// branched freely:
//
//	angle := dsl.Float64().Unit("deg")
//	ra := angle.Allowed(...)   // does not affect angle
type FieldSpec struct {
	kind     fitsschema.Kind
	maxLen   int
	unitMode unitMode
	unit     string
	unitSet  []string
	shape    Shape
	allowed  []any
	nullable bool
}

// Of returns a spec for an explicit element kind. The named constructors
// below cover the usual cases; Of exists for callers that carry a Kind
// value, such as schema files.
func Of(k fitsschema.Kind) FieldSpec { return FieldSpec{kind: k} }

// Logical is a FITS logical column (true/false elements).
func Logical() FieldSpec { return Of(fitsschema.KindLogical) }

// Bit is a FITS bit column. Elements are booleans, one per bit.
func Bit() FieldSpec { return Of(fitsschema.KindBit) }

func Byte() FieldSpec       { return Of(fitsschema.KindByte) }
func Int16() FieldSpec      { return Of(fitsschema.KindInt16) }
func Int32() FieldSpec      { return Of(fitsschema.KindInt32) }
func Int64() FieldSpec      { return Of(fitsschema.KindInt64) }
func Float32() FieldSpec    { return Of(fitsschema.KindFloat32) }
func Float64() FieldSpec    { return Of(fitsschema.KindFloat64) }
func Complex64() FieldSpec  { return Of(fitsschema.KindComplex64) }
func Complex128() FieldSpec { return Of(fitsschema.KindComplex128) }

// String is a character column holding at most maxLen characters per
// element. maxLen <= 0 leaves the length unconstrained.
func String(maxLen int) FieldSpec {
	f := Of(fitsschema.KindString)
	f.maxLen = maxLen
	return f
}

// Unit requires the column's unit to be convertible to u, i.e. to carry the
// same physical dimension. "GeV" satisfies Unit("TeV"); "deg" does not.
func (f FieldSpec) Unit(u string) FieldSpec {
	f.unitMode = unitConvertible
	f.unit = u
	f.unitSet = nil
	return f
}

// UnitOneOf requires the column's unit string to match one of us exactly
// (after trimming surrounding space). Use it when downstream software reads
// units literally and conversion is not an option.
func (f FieldSpec) UnitOneOf(us ...string) FieldSpec {
	f.unitMode = unitOneOf
	f.unitSet = append([]string(nil), us...)
	f.unit = ""
	return f
}

// Dimensionless requires the column to carry no physical dimension. An
// absent unit qualifies, as do pure numbers like "10**-3". This is the
// default for every field.
func (f FieldSpec) Dimensionless() FieldSpec {
	f.unitMode = unitDimensionless
	f.unit = ""
	f.unitSet = nil
	return f
}

// Vector constrains every row to exactly n elements.
func (f FieldSpec) Vector(n int) FieldSpec {
	f.shape = FixedVector(n)
	return f
}

// VarVector allows rows to differ in element count.
func (f FieldSpec) VarVector() FieldSpec {
	f.shape = VariableVector()
	return f
}

// WithShape sets the shape from a Shape value.
func (f FieldSpec) WithShape(sh Shape) FieldSpec {
	f.shape = sh
	return f
}

// Allowed restricts elements to the given values. Numeric values compare
// across widths, so Allowed(1, 2) accepts int16(1). Null elements are not
// checked here; Nullable governs those.
func (f FieldSpec) Allowed(vals ...any) FieldSpec {
	f.allowed = append([]any(nil), vals...)
	return f
}

// Nullable permits null elements (nil, or NaN in floating point columns).
func (f FieldSpec) Nullable() FieldSpec {
	f.nullable = true
	return f
}

// MaxLen bounds string elements to n characters. Only meaningful for string
// fields; Build rejects it elsewhere.
func (f FieldSpec) MaxLen(n int) FieldSpec {
	f.maxLen = n
	return f
}

func (f FieldSpec) validate(name string) error {
	if f.kind == fitsschema.KindUnknown {
		return tableErr(name, "field has no element kind")
	}
	if f.shape.kind == shapeFixed && f.shape.n < 1 {
		return tableErr(name, fmt.Sprintf("fixed vector length must be at least 1, got %d", f.shape.n))
	}
	if f.maxLen > 0 && f.kind != fitsschema.KindString {
		return tableErr(name, fmt.Sprintf("max length applies to string fields, not %s", f.kind))
	}
	if f.unitMode == unitOneOf && len(f.unitSet) == 0 {
		return tableErr(name, "unit set must not be empty")
	}
	return nil
}

// ---- column checks ----
//
// check runs the per-column pipeline: type, unit, shape, allowed values,
// nullability. Every category is checked even when an earlier one failed,
// but each category reports at most once per column so a million bad rows
// do not become a million diagnostics.

func (f FieldSpec) check(name string, col fitsschema.Column, opt fitsschema.Options) fitsschema.Diagnostics {
	var ds fitsschema.Diagnostics
	ds = append(ds, f.checkType(name, col)...)
	ds = append(ds, f.checkUnit(name, col, opt)...)
	ds = append(ds, f.checkShape(name, col)...)
	ds = append(ds, f.checkAllowed(name, col)...)
	ds = append(ds, f.checkNull(name, col)...)
	return ds
}

func (f FieldSpec) checkType(name string, col fitsschema.Column) fitsschema.Diagnostics {
	if col.Kind != fitsschema.KindUnknown {
		if !col.Kind.CastsTo(f.kind) {
			d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongType, col.Kind.String())
			d.Hint = fmt.Sprintf("cannot represent %s as %s without loss", col.Kind, f.kind)
			d.Params = map[string]any{"want": f.kind.String(), "got": col.Kind.String()}
			return fitsschema.Diagnostics{d}
		}
		// A declared kind vouches for the elements; only string lengths
		// still need a scan.
		if f.kind != fitsschema.KindString || f.maxLen <= 0 {
			return nil
		}
	}
	for _, cell := range col.Cells {
		for _, v := range cell {
			if isNull(v) {
				continue
			}
			if hint, ok := elementFits(v, f.kind, f.maxLen); !ok {
				d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongType, v)
				d.Hint = hint
				d.Params = map[string]any{"want": f.kind.String()}
				return fitsschema.Diagnostics{d}
			}
		}
	}
	return nil
}

func (f FieldSpec) checkUnit(name string, col fitsschema.Column, opt fitsschema.Options) fitsschema.Diagnostics {
	u := strings.TrimSpace(col.Unit)
	switch f.unitMode {
	case unitDimensionless:
		if u == "" {
			return nil
		}
		dim, err := opt.Units.Dim(u)
		if err != nil {
			d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongUnit, col.Unit)
			d.Hint = "unrecognized unit"
			return fitsschema.Diagnostics{d}
		}
		if !dim.IsDimensionless() {
			d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongUnit, col.Unit)
			d.Hint = "want a dimensionless column"
			d.Params = map[string]any{"got": u}
			return fitsschema.Diagnostics{d}
		}
	case unitConvertible:
		if u == "" {
			if opt.RequireUnits {
				d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeMissingUnit, nil)
				d.Hint = fmt.Sprintf("want a unit convertible to %q", f.unit)
				d.Params = map[string]any{"want": f.unit}
				return fitsschema.Diagnostics{d}
			}
			// A column without a unit is read as already carrying the
			// declared one.
			return nil
		}
		if !opt.Units.Convertible(u, f.unit) {
			d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongUnit, col.Unit)
			d.Hint = fmt.Sprintf("not convertible to %q", f.unit)
			d.Params = map[string]any{"want": f.unit, "got": u}
			return fitsschema.Diagnostics{d}
		}
	case unitOneOf:
		for _, want := range f.unitSet {
			if u == strings.TrimSpace(want) {
				return nil
			}
		}
		d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongUnit, col.Unit)
		d.Hint = fmt.Sprintf("want one of %q", f.unitSet)
		d.Params = map[string]any{"want": f.unitSet, "got": u}
		return fitsschema.Diagnostics{d}
	}
	return nil
}

func (f FieldSpec) checkShape(name string, col fitsschema.Column) fitsschema.Diagnostics {
	want := 1
	switch f.shape.kind {
	case shapeVariable:
		return nil
	case shapeFixed:
		want = f.shape.n
	}
	for i, cell := range col.Cells {
		if len(cell) != want {
			d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongShape, len(cell))
			d.Hint = fmt.Sprintf("row %d has %d elements, want %d", i, len(cell), want)
			d.Params = map[string]any{"row": i, "want": want, "got": len(cell)}
			return fitsschema.Diagnostics{d}
		}
	}
	return nil
}

func (f FieldSpec) checkAllowed(name string, col fitsschema.Column) fitsschema.Diagnostics {
	if len(f.allowed) == 0 {
		return nil
	}
	for i, cell := range col.Cells {
		for _, v := range cell {
			if isNull(v) {
				continue
			}
			if !memberOf(v, f.allowed) {
				d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeWrongValue, v)
				d.Hint = "value not in allowed set"
				d.Params = map[string]any{"row": i}
				return fitsschema.Diagnostics{d}
			}
		}
	}
	return nil
}

func (f FieldSpec) checkNull(name string, col fitsschema.Column) fitsschema.Diagnostics {
	if f.nullable {
		return nil
	}
	for i, cell := range col.Cells {
		for _, v := range cell {
			if isNull(v) {
				d := fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeUnexpectedNull, v)
				d.Hint = fmt.Sprintf("row %d holds a null element", i)
				d.Params = map[string]any{"row": i}
				return fitsschema.Diagnostics{d}
			}
		}
	}
	return nil
}
