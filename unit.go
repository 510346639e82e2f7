package fitsschema

import (
	"fmt"
	"strings"
)

// Dim is a physical dimension: integer exponents over the base measurement
// axes. The zero value is dimensionless. Two units are convertible exactly
// when their Dims are equal.
type Dim struct {
	Length      int8
	Mass        int8
	Time        int8
	Current     int8
	Temperature int8
	Amount      int8
	Intensity   int8
	Angle       int8
	SolidAngle  int8
	// Count, Pixel and Magnitude are carried as independent axes so that
	// counting units never pass a dimensionless check.
	Count     int8
	Pixel     int8
	Magnitude int8
}

// IsDimensionless reports whether d is the pure-number dimension.
func (d Dim) IsDimensionless() bool { return d == Dim{} }

func (d Dim) String() string {
	type axis struct {
		name string
		exp  int8
	}
	axes := []axis{
		{"length", d.Length}, {"mass", d.Mass}, {"time", d.Time},
		{"current", d.Current}, {"temperature", d.Temperature},
		{"amount", d.Amount}, {"intensity", d.Intensity},
		{"angle", d.Angle}, {"solid-angle", d.SolidAngle},
		{"count", d.Count}, {"pixel", d.Pixel}, {"magnitude", d.Magnitude},
	}
	b := &strings.Builder{}
	for _, a := range axes {
		if a.exp == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%s^%+d", a.name, a.exp)
	}
	if b.Len() == 0 {
		return "1"
	}
	return b.String()
}

// UnitAuthority answers the two unit questions validation needs. The built-in
// implementation lives in the units subpackage (units.Standard); hosts with a
// heavier unit engine can provide their own.
type UnitAuthority interface {
	// Convertible reports whether values in unit a can be rescaled to unit b,
	// i.e. both units measure the same physical dimension. Unknown units are
	// never convertible.
	Convertible(a, b string) bool
	// Dim reports the physical dimension of u. Unknown or malformed unit
	// strings return an error.
	Dim(u string) (Dim, error)
}
