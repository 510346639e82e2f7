package fitsschema

// Package fitsschema provides:
//
// - Declarative schemas for FITS-style tables and headers (element kinds, physical units, shapes, allowed values, header cards)
// - A tolerant validator that reports every violation as structured Diagnostics instead of stopping at the first
// - A stable error model via Diagnostics (severity, location, code, offending value) with AssertValid as the fail-fast boundary
// - A pluggable unit authority (Convertible/Dim) with a built-in FITS unit parser under units/
//
// Design policy:
// - Keep only the public model and entry points in the root package; builders and the validation walk live under dsl/.
// - Place schema documents under schemafile/, report rendering under report/, messages under i18n/.
// - Schemas are immutable after Build and shared freely across goroutines.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s := dsl.Table().
//          Field("energy", dsl.Float64().Unit("TeV")).Required().
//          WithHeader(dsl.BinaryTableHeader().MustBuild()).
//          MustBuild()
//
//  ds := fitsschema.Validate(s, tab)
//  if err := fitsschema.AssertValid(ds); err != nil { ... }
//
