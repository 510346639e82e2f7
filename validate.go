package fitsschema

// TableSchema is an immutable description of a table's expected columns,
// optionally owning a header schema. Schemas are built once (see the dsl
// package) and are safe to share across concurrent validations.
type TableSchema interface {
	// ValidateTable walks every declared field against tab in declaration
	// order and returns the ordered diagnostic sequence. It never stops at
	// the first failure.
	ValidateTable(tab Table, opt Options) Diagnostics
	// Columns lists the declared field names in validation order.
	Columns() []string
	// Header returns the owned header schema, or nil.
	Header() HeaderSchema
}

// HeaderSchema is an immutable description of expected header cards.
type HeaderSchema interface {
	// ValidateHeader walks every declared card against hdr in declaration
	// order and returns the ordered diagnostic sequence.
	ValidateHeader(hdr Header, opt Options) Diagnostics
	// Keywords lists the declared card keywords in validation order.
	Keywords() []string
}

// Validate checks tab against s and returns every violation as data. Wrap the
// result with AssertValid at whatever boundary should fail.
func Validate(s TableSchema, tab Table, opts ...Options) Diagnostics {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	return s.ValidateTable(tab, opt)
}

// ValidateHeader checks hdr against s on its own, without a surrounding table.
func ValidateHeader(s HeaderSchema, hdr Header, opts ...Options) Diagnostics {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	return s.ValidateHeader(hdr, opt)
}
