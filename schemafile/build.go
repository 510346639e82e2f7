package schemafile

import (
	"fmt"
	"math"
	"strings"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
	"github.com/open-gamma-ray-astro/fits-schema/dsl"
)

func buildTable(d *document) (fitsschema.TableSchema, error) {
	pol, err := parsePolicy(d.Unknown)
	if err != nil {
		return nil, err
	}
	b := dsl.Table()
	switch pol {
	case fitsschema.UnknownError:
		b.UnknownError()
	case fitsschema.UnknownIgnore:
		b.UnknownIgnore()
	}
	for _, c := range d.Columns {
		spec, err := fieldSpec(c)
		if err != nil {
			return nil, err
		}
		step := b.Field(c.Name, spec)
		if c.Required {
			step.Required()
		}
	}
	if d.Header != nil {
		hs, err := buildHeader(d.Header.Base, d.Header.Unknown, d.Header.Cards)
		if err != nil {
			return nil, err
		}
		b.WithHeader(hs)
	}
	return b.Build()
}

func fieldSpec(c columnDoc) (dsl.FieldSpec, error) {
	k, err := fitsschema.ParseKind(c.Kind)
	if err != nil {
		return dsl.FieldSpec{}, fmt.Errorf("schemafile: column %q: %w", c.Name, err)
	}
	spec := dsl.Of(k)
	if c.MaxLen > 0 {
		spec = spec.MaxLen(c.MaxLen)
	}
	if c.Unit != "" && len(c.UnitOneOf) > 0 {
		return dsl.FieldSpec{}, fmt.Errorf("schemafile: column %q: unit and unitOneOf are mutually exclusive", c.Name)
	}
	if c.Unit != "" {
		spec = spec.Unit(c.Unit)
	}
	if len(c.UnitOneOf) > 0 {
		spec = spec.UnitOneOf(c.UnitOneOf...)
	}
	sh, err := parseShape(c.Shape)
	if err != nil {
		return dsl.FieldSpec{}, fmt.Errorf("schemafile: column %q: %w", c.Name, err)
	}
	spec = spec.WithShape(sh)
	if len(c.Allowed) > 0 {
		spec = spec.Allowed(c.Allowed...)
	}
	if c.Nullable {
		spec = spec.Nullable()
	}
	return spec, nil
}

// parseShape accepts "scalar", "variable" or a positive element count. YAML
// hands counts over as ints, JSON as float64s.
func parseShape(v any) (dsl.Shape, error) {
	switch t := v.(type) {
	case nil:
		return dsl.Scalar(), nil
	case string:
		switch strings.ToLower(t) {
		case "scalar":
			return dsl.Scalar(), nil
		case "variable":
			return dsl.VariableVector(), nil
		}
		return dsl.Shape{}, fmt.Errorf("unknown shape %q", t)
	case int:
		return dsl.FixedVector(t), nil
	case int64:
		return dsl.FixedVector(int(t)), nil
	case uint64:
		return dsl.FixedVector(int(t)), nil
	case float64:
		if t != math.Trunc(t) {
			return dsl.Shape{}, fmt.Errorf("shape %v is not an integer", t)
		}
		return dsl.FixedVector(int(t)), nil
	}
	return dsl.Shape{}, fmt.Errorf("unsupported shape value %v (%T)", v, v)
}

func buildHeader(base, unknown string, cards []cardDoc) (fitsschema.HeaderSchema, error) {
	pol, err := parsePolicy(unknown)
	if err != nil {
		return nil, err
	}
	b := dsl.Header()
	switch strings.ToLower(base) {
	case "":
	case "primary":
		b = dsl.PrimaryHeader()
	case "bintable":
		b = dsl.BinaryTableHeader()
	default:
		return nil, fmt.Errorf("schemafile: unknown header base %q", base)
	}
	switch pol {
	case fitsschema.UnknownError:
		b.UnknownError()
	case fitsschema.UnknownIgnore:
		b.UnknownIgnore()
	}
	for _, c := range cards {
		spec, err := cardSpec(c)
		if err != nil {
			return nil, err
		}
		step := b.Card(c.Keyword, spec)
		if c.Required {
			step.Required()
		}
		if c.Position != nil {
			step.Position(*c.Position)
		}
		if c.Default != nil {
			step.Default(c.Default)
		}
	}
	return b.Build()
}

func cardSpec(c cardDoc) (dsl.CardSpec, error) {
	spec := dsl.AnyValue()
	if len(c.Type) > 0 {
		ts := make([]dsl.ValueType, 0, len(c.Type))
		for _, name := range c.Type {
			t, err := parseValueType(name)
			if err != nil {
				return dsl.CardSpec{}, fmt.Errorf("schemafile: card %q: %w", c.Keyword, err)
			}
			ts = append(ts, t)
		}
		spec = dsl.Typed(ts...)
	}
	if len(c.OneOf) > 0 {
		spec = spec.OneOf(c.OneOf...)
	}
	if c.Pattern != "" {
		spec = spec.Match(c.Pattern)
	}
	if len(c.Between) > 0 {
		if len(c.Between) != 2 {
			return dsl.CardSpec{}, fmt.Errorf("schemafile: card %q: between wants [lo, hi], got %d values", c.Keyword, len(c.Between))
		}
		spec = spec.Between(c.Between[0], c.Between[1])
	}
	if c.Empty != nil {
		if *c.Empty {
			spec = spec.Empty()
		} else {
			spec = spec.NonEmpty()
		}
	}
	return spec, nil
}

func parseValueType(name string) (dsl.ValueType, error) {
	switch strings.ToLower(name) {
	case "string":
		return dsl.TypeString, nil
	case "int":
		return dsl.TypeInt, nil
	case "float":
		return dsl.TypeFloat, nil
	case "bool":
		return dsl.TypeBool, nil
	}
	return 0, fmt.Errorf("unknown value type %q", name)
}

func parsePolicy(s string) (fitsschema.UnknownPolicy, error) {
	switch strings.ToLower(s) {
	case "", "warn":
		return fitsschema.UnknownWarn, nil
	case "error":
		return fitsschema.UnknownError, nil
	case "ignore":
		return fitsschema.UnknownIgnore, nil
	}
	return 0, fmt.Errorf("schemafile: unknown policy %q, want error, warn or ignore", s)
}
