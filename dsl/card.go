package dsl

// ValueType names the value categories a header card may carry.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	}
	return "unknown"
}

// CardSpec constrains the value of one header card. Like FieldSpec it is a
// value; chainable methods return modified copies.
//
// The zero CardSpec (or AnyValue()) accepts any present value. Constraints
// narrow it: Typed restricts the value category, OneOf enumerates the legal
// values, Match tests strings against a pattern, Between bounds integers,
// Empty/NonEmpty govern whether the card carries a value at all.
type CardSpec struct {
	types   []ValueType
	allowed []any
	pattern string
	lo, hi  *int64
	empty   *bool
}

// AnyValue accepts any value.
func AnyValue() CardSpec { return CardSpec{} }

// Typed restricts the card to the given value categories. TypeFloat admits
// integer values too, matching how FITS readers promote them.
func Typed(ts ...ValueType) CardSpec {
	return CardSpec{types: append([]ValueType(nil), ts...)}
}

func StringValue() CardSpec { return Typed(TypeString) }
func IntValue() CardSpec    { return Typed(TypeInt) }
func FloatValue() CardSpec  { return Typed(TypeFloat) }
func BoolValue() CardSpec   { return Typed(TypeBool) }

// OneOf enumerates the values the card may carry. Comparison bridges
// numeric widths; strings compare exactly, case included.
func (c CardSpec) OneOf(vals ...any) CardSpec {
	c.allowed = append([]any(nil), vals...)
	return c
}

// Match requires a string value matching the regular expression pattern.
// The pattern is compiled at Build; an invalid pattern is a definition
// error. OneOf and Match are mutually exclusive.
func (c CardSpec) Match(pattern string) CardSpec {
	c.pattern = pattern
	return c
}

// Between bounds an integer value to lo..hi inclusive.
func (c CardSpec) Between(lo, hi int64) CardSpec {
	c.lo, c.hi = &lo, &hi
	return c
}

// Empty requires the card to carry no value at all. Some standard cards are
// pure markers. Empty cannot be combined with value constraints.
func (c CardSpec) Empty() CardSpec {
	t := true
	c.empty = &t
	return c
}

// NonEmpty requires the card to carry a value. Without it a present card
// with an undefined value passes the value checks vacuously.
func (c CardSpec) NonEmpty() CardSpec {
	t := false
	c.empty = &t
	return c
}

func (c CardSpec) validate(keyword string) error {
	if c.pattern != "" && len(c.allowed) > 0 {
		return headerErr(keyword, "OneOf and Match are mutually exclusive")
	}
	if c.empty != nil && *c.empty {
		if len(c.allowed) > 0 || c.pattern != "" || len(c.types) > 0 || c.lo != nil {
			return headerErr(keyword, "an empty card cannot constrain its value")
		}
	}
	if c.lo != nil && *c.lo > *c.hi {
		return headerErr(keyword, "Between bounds are inverted")
	}
	return nil
}

func typeAllowed(v any, types []ValueType) bool {
	for _, t := range types {
		switch t {
		case TypeString:
			if _, ok := v.(string); ok {
				return true
			}
		case TypeBool:
			if _, ok := v.(bool); ok {
				return true
			}
		case TypeInt:
			if _, ok := asInt(v); ok {
				return true
			}
		case TypeFloat:
			if _, ok := asFloat(v); ok {
				return true
			}
			if _, ok := asInt(v); ok {
				return true
			}
		}
	}
	return false
}
