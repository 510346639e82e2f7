// Package dsl provides the builder API for fitsschema.
//
// Overview
//   - Table schemas: declare columns with Table()/Field()/Required()/Unknown*
//     then Build()/MustBuild().
//   - Field specs: pick an element kind (Int32(), Float64(), String(n), ...)
//     and chain constraints (Unit/UnitOneOf/Vector/Allowed/Nullable).
//   - Header schemas: declare cards with Header()/Card()/Required()/Position()
//     and per-card value constraints (OneOf/Match/Typed/Empty).
//   - Standard headers: PrimaryHeader() and BinaryTableHeader() return
//     builders pre-seeded with the mandatory cards; extend them with your
//     own cards before Build.
//
// Entry points
//   - Table(): create a table builder; chain Field/Required/WithHeader then
//     MustBuild()/Build.
//   - Header(): create a header builder; chain Card/Required/Position then
//     MustBuild()/Build.
//   - PrimaryHeader(), BinaryTableHeader(): pre-seeded header builders.
//
// File layout (roles)
//   - field.go: FieldSpec, kind constructors, constraint chaining and the
//     per-column check pipeline.
//   - table.go: tableBuilder/fieldStep and the table walk (header first,
//     declared columns in order, then undeclared columns).
//   - card.go: CardSpec and card value constraints.
//   - header.go: headerBuilder/cardStep, keyword rules and the card checks.
//   - std.go: headers mandated by the FITS standard.
//   - value.go: element/value predicates shared by fields and cards.
//
// Design guidelines
//   - Builders validate schema definitions eagerly: Build returns a
//     *DefinitionError for authoring mistakes, MustBuild panics. Bad schemas
//     never masquerade as nonconformant data.
//   - Built schemas are immutable; reusing a builder after Build does not
//     affect schemas already built.
//   - Checks never stop at the first problem; each column contributes at
//     most one diagnostic per category, in a fixed category order.
//
// Example (quickstart)
//
//	events := dsl.Table().
//	    Field("ENERGY", dsl.Float32().Unit("TeV")).Required().
//	    Field("RA", dsl.Float64().Unit("deg")).Required().
//	    Field("EVENT_ID", dsl.Int64()).Required().
//	    WithHeader(dsl.BinaryTableHeader().MustBuild()).
//	    MustBuild()
//
//	ds := fitsschema.Validate(events, tab)
//	if err := fitsschema.AssertValid(ds); err != nil {
//	    log.Fatal(err)
//	}
package dsl
