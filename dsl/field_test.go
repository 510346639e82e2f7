package dsl_test

import (
	"math"
	"testing"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
	"github.com/open-gamma-ray-astro/fits-schema/dsl"
)

// checkColumn builds a one-field schema around spec and validates col
// against it.
func checkColumn(t *testing.T, spec dsl.FieldSpec, col fitsschema.Column, opts ...fitsschema.Options) fitsschema.Diagnostics {
	t.Helper()
	s, err := dsl.Table().Field(col.Name, spec).Required().Build()
	if err != nil {
		t.Fatalf("building schema: %v", err)
	}
	return fitsschema.Validate(s, fitsschema.Table{Columns: []fitsschema.Column{col}}, opts...)
}

func wantCodes(t *testing.T, ds fitsschema.Diagnostics, want ...string) {
	t.Helper()
	var got []string
	for _, d := range ds {
		got = append(got, d.Code)
	}
	if len(got) != len(want) {
		t.Fatalf("got codes %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got codes %v, want %v", got, want)
		}
	}
}

func TestTypeCheck_DeclaredKindUsesSafeCasts(t *testing.T) {
	// int16 widens to float32 without loss.
	ds := checkColumn(t, dsl.Float32(),
		fitsschema.ScalarColumn("E", int16(3)).WithKind(fitsschema.KindInt16))
	wantCodes(t, ds)

	// int32 does not fit a float32 mantissa.
	ds = checkColumn(t, dsl.Float32(),
		fitsschema.ScalarColumn("E", int32(3)).WithKind(fitsschema.KindInt32))
	wantCodes(t, ds, fitsschema.CodeWrongType)
	if ds[0].Severity != fitsschema.Error || ds[0].Location != "E" {
		t.Fatalf("unexpected diagnostic: %+v", ds[0])
	}
}

func TestTypeCheck_ScansElementsWithoutDeclaredKind(t *testing.T) {
	ds := checkColumn(t, dsl.Float64(),
		fitsschema.ScalarColumn("E", 1.5, "oops", "again"))
	// One diagnostic per category, not per bad element.
	wantCodes(t, ds, fitsschema.CodeWrongType)

	ds = checkColumn(t, dsl.Int16(),
		fitsschema.ScalarColumn("E", 1, 40000))
	wantCodes(t, ds, fitsschema.CodeWrongType)

	ds = checkColumn(t, dsl.Int64(),
		fitsschema.ScalarColumn("E", 1, int64(1<<40)))
	wantCodes(t, ds)
}

func TestTypeCheck_StringLength(t *testing.T) {
	ds := checkColumn(t, dsl.String(4),
		fitsschema.ScalarColumn("NAME", "hip", "hop"))
	wantCodes(t, ds)

	ds = checkColumn(t, dsl.String(4),
		fitsschema.ScalarColumn("NAME", "crab nebula"))
	wantCodes(t, ds, fitsschema.CodeWrongType)

	// A declared string kind still scans lengths.
	ds = checkColumn(t, dsl.String(4),
		fitsschema.ScalarColumn("NAME", "crab nebula").WithKind(fitsschema.KindString))
	wantCodes(t, ds, fitsschema.CodeWrongType)
}

func TestUnitCheck_ConvertibleAcceptsRescaledUnits(t *testing.T) {
	spec := dsl.Float32().Unit("TeV")

	ds := checkColumn(t, spec,
		fitsschema.ScalarColumn("E", float32(1)).WithUnit("GeV").WithKind(fitsschema.KindFloat32))
	wantCodes(t, ds)

	ds = checkColumn(t, spec,
		fitsschema.ScalarColumn("E", float32(1)).WithUnit("deg").WithKind(fitsschema.KindFloat32))
	wantCodes(t, ds, fitsschema.CodeWrongUnit)

	ds = checkColumn(t, spec,
		fitsschema.ScalarColumn("E", float32(1)).WithUnit("blorp").WithKind(fitsschema.KindFloat32))
	wantCodes(t, ds, fitsschema.CodeWrongUnit)
}

func TestUnitCheck_AbsentUnitAssumesDeclared(t *testing.T) {
	spec := dsl.Float32().Unit("TeV")
	col := fitsschema.ScalarColumn("E", float32(1)).WithKind(fitsschema.KindFloat32)

	wantCodes(t, checkColumn(t, spec, col))

	ds := checkColumn(t, spec, col, fitsschema.Options{RequireUnits: true})
	wantCodes(t, ds, fitsschema.CodeMissingUnit)
}

func TestUnitCheck_OneOfMatchesExactly(t *testing.T) {
	spec := dsl.Float64().UnitOneOf("TeV", "GeV")

	ds := checkColumn(t, spec,
		fitsschema.ScalarColumn("E", 1.0).WithUnit(" TeV ").WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds)

	// Convertible but not listed.
	ds = checkColumn(t, spec,
		fitsschema.ScalarColumn("E", 1.0).WithUnit("keV").WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds, fitsschema.CodeWrongUnit)
}

func TestUnitCheck_DimensionlessDefault(t *testing.T) {
	spec := dsl.Int64()

	ds := checkColumn(t, spec,
		fitsschema.ScalarColumn("N", int64(1)).WithKind(fitsschema.KindInt64))
	wantCodes(t, ds)

	ds = checkColumn(t, spec,
		fitsschema.ScalarColumn("N", int64(1)).WithUnit("10**-3").WithKind(fitsschema.KindInt64))
	wantCodes(t, ds)

	ds = checkColumn(t, spec,
		fitsschema.ScalarColumn("N", int64(1)).WithUnit("deg").WithKind(fitsschema.KindInt64))
	wantCodes(t, ds, fitsschema.CodeWrongUnit)
}

func TestShapeCheck_FixedVectorReportsOnce(t *testing.T) {
	spec := dsl.Float64().Vector(3)

	ds := checkColumn(t, spec, fitsschema.VectorColumn("PSF",
		[]any{1.0, 2.0, 3.0},
		[]any{4.0, 5.0, 6.0},
	).WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds)

	// Every row is short, yet the column reports a single shape diagnostic.
	ds = checkColumn(t, spec, fitsschema.VectorColumn("PSF",
		[]any{1.0, 2.0},
		[]any{3.0, 4.0},
	).WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds, fitsschema.CodeWrongShape)
}

func TestShapeCheck_ScalarAndVariable(t *testing.T) {
	ds := checkColumn(t, dsl.Float64(), fitsschema.VectorColumn("E",
		[]any{1.0, 2.0},
	).WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds, fitsschema.CodeWrongShape)

	ds = checkColumn(t, dsl.Float64().VarVector(), fitsschema.VectorColumn("E",
		[]any{},
		[]any{1.0},
		[]any{1.0, 2.0, 3.0},
	).WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds)
}

func TestAllowedCheck_BridgesNumericWidths(t *testing.T) {
	spec := dsl.Int32().Allowed(1, 2, 3)

	ds := checkColumn(t, spec,
		fitsschema.ScalarColumn("FLAG", int16(1), int32(3)).WithKind(fitsschema.KindInt16))
	wantCodes(t, ds)

	ds = checkColumn(t, spec,
		fitsschema.ScalarColumn("FLAG", int32(1), int32(9)).WithKind(fitsschema.KindInt32))
	wantCodes(t, ds, fitsschema.CodeWrongValue)
}

func TestAllowedCheck_SkipsNulls(t *testing.T) {
	spec := dsl.Float64().Allowed(1.0, 2.0).Nullable()
	ds := checkColumn(t, spec,
		fitsschema.ScalarColumn("V", 1.0, math.NaN(), 2.0).WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds)
}

func TestNullCheck_NaNAndNil(t *testing.T) {
	ds := checkColumn(t, dsl.Float64(),
		fitsschema.ScalarColumn("V", 1.0, math.NaN()).WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds, fitsschema.CodeUnexpectedNull)

	ds = checkColumn(t, dsl.Int64(),
		fitsschema.ScalarColumn("V", int64(1), nil).WithKind(fitsschema.KindInt64))
	wantCodes(t, ds, fitsschema.CodeUnexpectedNull)

	ds = checkColumn(t, dsl.Float64().Nullable(),
		fitsschema.ScalarColumn("V", 1.0, math.NaN(), nil).WithKind(fitsschema.KindFloat64))
	wantCodes(t, ds)
}

func TestFieldChecks_FixedCategoryOrder(t *testing.T) {
	spec := dsl.Int16().Unit("TeV").Vector(2).Allowed(1, 2)
	col := fitsschema.Column{
		Name: "X",
		Unit: "deg",
		Kind: fitsschema.KindInt32,
		Cells: []fitsschema.Cell{
			{9},
			{nil},
		},
	}
	ds := checkColumn(t, spec, col)
	wantCodes(t, ds,
		fitsschema.CodeWrongType,
		fitsschema.CodeWrongUnit,
		fitsschema.CodeWrongShape,
		fitsschema.CodeWrongValue,
		fitsschema.CodeUnexpectedNull,
	)
	for _, d := range ds {
		if d.Location != "X" {
			t.Fatalf("all diagnostics should sit at X, got %+v", d)
		}
	}
}
