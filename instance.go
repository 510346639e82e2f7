package fitsschema

import "strings"

// Table is the in-memory shape of one tabular data unit, as materialized by
// an external I/O collaborator. The validator only reads it.
type Table struct {
	Name    string // Optional extension name; informational.
	Header  Header
	Columns []Column
}

// Column returns the named column. Column names are case-sensitive.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Column holds one column's data: one Cell per table row.
type Column struct {
	Name string
	Unit string // "" when no unit is attached.
	Kind Kind   // KindUnknown when the storage representation is not declared.
	// Cells holds the per-row element sequences. Scalar columns carry exactly
	// one element per cell.
	Cells []Cell
}

// Cell is the element sequence of one row. Elements are nil (missing), bool,
// any int/uint width, float32/float64, complex64/complex128 or string.
type Cell []any

// ScalarColumn builds a column with one element per row.
func ScalarColumn(name string, values ...any) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{v}
	}
	return Column{Name: name, Cells: cells}
}

// VectorColumn builds a column from per-row element slices.
func VectorColumn(name string, rows ...[]any) Column {
	cells := make([]Cell, len(rows))
	for i, r := range rows {
		cells[i] = Cell(r)
	}
	return Column{Name: name, Cells: cells}
}

// WithUnit returns a copy of the column with the unit attached.
func (c Column) WithUnit(u string) Column {
	c.Unit = u
	return c
}

// WithKind returns a copy of the column with its storage representation declared.
func (c Column) WithKind(k Kind) Column {
	c.Kind = k
	return c
}

// Header is an ordered sequence of keyword/value cards.
type Header struct {
	Cards []Card
}

// Card is one header keyword/value pair. A nil Value models a card present
// without a value (FITS undefined).
type Card struct {
	Keyword string
	Value   any
}

// NormalizeKeyword uppercases and trims a keyword the way both lookups and
// schema construction do.
func NormalizeKeyword(k string) string {
	return strings.ToUpper(strings.TrimSpace(k))
}

// Index returns the position of the first card matching keyword
// (case-insensitive), or -1 when absent.
func (h Header) Index(keyword string) int {
	want := NormalizeKeyword(keyword)
	for i, c := range h.Cards {
		if NormalizeKeyword(c.Keyword) == want {
			return i
		}
	}
	return -1
}

// Get returns the first card matching keyword (case-insensitive).
func (h Header) Get(keyword string) (Card, bool) {
	if i := h.Index(keyword); i >= 0 {
		return h.Cards[i], true
	}
	return Card{}, false
}
