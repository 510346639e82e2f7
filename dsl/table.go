package dsl

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
	"github.com/open-gamma-ray-astro/fits-schema/units"
)

// Locations of diagnostics raised by a table's own header schema.
const headerPrefix = "header."

// Table starts a table schema. Chain Field/Required/WithHeader/Unknown*
// and finish with Build or MustBuild.
func Table() *tableBuilder {
	return &tableBuilder{
		fields:   map[string]FieldSpec{},
		required: map[string]struct{}{},
	}
}

type tableBuilder struct {
	names    []string // declaration order
	fields   map[string]FieldSpec
	required map[string]struct{}
	unknown  fitsschema.UnknownPolicy
	header   fitsschema.HeaderSchema
	errs     []error
}

// Field declares a column. Names are case-sensitive and must be unique
// within the table. The returned step scopes Required/Optional to this
// field and otherwise forwards to the builder, so declarations chain:
//
//	Table().Field("ENERGY", Float32().Unit("TeV")).Required().
//	        Field("DETX", Float64().Unit("deg")).
//	        MustBuild()
func (b *tableBuilder) Field(name string, spec FieldSpec) *fieldStep {
	if _, dup := b.fields[name]; dup {
		b.errs = append(b.errs, tableErr(name, "field declared twice"))
	} else {
		b.names = append(b.names, name)
		b.fields[name] = spec
	}
	return &fieldStep{b: b, name: name}
}

// Require marks previously declared fields as required by name.
func (b *tableBuilder) Require(names ...string) *tableBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownError makes undeclared columns validation errors.
func (b *tableBuilder) UnknownError() *tableBuilder {
	b.unknown = fitsschema.UnknownError
	return b
}

// UnknownWarn reports undeclared columns as warnings. This is the default.
func (b *tableBuilder) UnknownWarn() *tableBuilder {
	b.unknown = fitsschema.UnknownWarn
	return b
}

// UnknownIgnore silently accepts undeclared columns.
func (b *tableBuilder) UnknownIgnore() *tableBuilder {
	b.unknown = fitsschema.UnknownIgnore
	return b
}

// WithHeader attaches a header schema. During table validation the header
// runs first and its diagnostic locations gain a "header." prefix.
func (b *tableBuilder) WithHeader(h fitsschema.HeaderSchema) *tableBuilder {
	b.header = h
	return b
}

// Build validates the declarations and freezes them into a TableSchema.
// Authoring mistakes (duplicate fields, zero-length vectors, requiring an
// undeclared name) come back as a *DefinitionError.
func (b *tableBuilder) Build() (fitsschema.TableSchema, error) {
	errs := append([]error(nil), b.errs...)
	for _, name := range b.names {
		if err := b.fields[name].validate(name); err != nil {
			errs = append(errs, err)
		}
	}
	for name := range b.required {
		if _, ok := b.fields[name]; !ok {
			errs = append(errs, tableErr(name, "required name is not a declared field"))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	s := &tableSchema{
		names:    append([]string(nil), b.names...),
		fields:   make(map[string]FieldSpec, len(b.fields)),
		required: make(map[string]struct{}, len(b.required)),
		unknown:  b.unknown,
		header:   b.header,
	}
	for k, v := range b.fields {
		s.fields[k] = v
	}
	for k := range b.required {
		s.required[k] = struct{}{}
	}
	return s, nil
}

// MustBuild is Build that panics on authoring mistakes.
func (b *tableBuilder) MustBuild() fitsschema.TableSchema {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dsl.Table: %v", err))
	}
	return s
}

// fieldStep scopes Required/Optional to the field just declared and forwards
// everything else to the builder.
type fieldStep struct {
	b    *tableBuilder
	name string
}

// Required marks this field as required and returns the builder.
func (f *fieldStep) Required() *tableBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional clears the required mark. Fields are optional unless marked, so
// this only matters when undoing Require.
func (f *fieldStep) Optional() *tableBuilder {
	delete(f.b.required, f.name)
	return f.b
}

func (f *fieldStep) Field(name string, spec FieldSpec) *fieldStep {
	return f.b.Field(name, spec)
}

func (f *fieldStep) Require(names ...string) *tableBuilder { return f.b.Require(names...) }

func (f *fieldStep) UnknownError() *tableBuilder  { return f.b.UnknownError() }
func (f *fieldStep) UnknownWarn() *tableBuilder   { return f.b.UnknownWarn() }
func (f *fieldStep) UnknownIgnore() *tableBuilder { return f.b.UnknownIgnore() }

func (f *fieldStep) WithHeader(h fitsschema.HeaderSchema) *tableBuilder {
	return f.b.WithHeader(h)
}

func (f *fieldStep) Build() (fitsschema.TableSchema, error) { return f.b.Build() }

func (f *fieldStep) MustBuild() fitsschema.TableSchema { return f.b.MustBuild() }

// ---- built schema ----

type tableSchema struct {
	names    []string
	fields   map[string]FieldSpec
	required map[string]struct{}
	unknown  fitsschema.UnknownPolicy
	header   fitsschema.HeaderSchema
}

var _ fitsschema.TableSchema = (*tableSchema)(nil)

func (s *tableSchema) Columns() []string {
	return append([]string(nil), s.names...)
}

func (s *tableSchema) Header() fitsschema.HeaderSchema { return s.header }

// ValidateTable walks the owned header schema first, then every declared
// field in declaration order, then undeclared columns in instance order.
// The result is the same for every run over the same inputs, including the
// concurrent path.
func (s *tableSchema) ValidateTable(tab fitsschema.Table, opt fitsschema.Options) fitsschema.Diagnostics {
	opt = normalizeOptions(opt)

	var ds fitsschema.Diagnostics
	if s.header != nil {
		for _, d := range s.header.ValidateHeader(tab.Header, opt) {
			d.Location = headerPrefix + d.Location
			ds = append(ds, d)
		}
	}

	cols := make(map[string]fitsschema.Column, len(tab.Columns))
	for _, c := range tab.Columns {
		if _, dup := cols[c.Name]; !dup {
			cols[c.Name] = c
		}
	}

	if opt.Concurrency > 1 {
		ds = append(ds, s.checkFieldsParallel(cols, opt)...)
	} else {
		for _, name := range s.names {
			ds = append(ds, s.checkField(name, cols, opt)...)
		}
	}

	if s.unknown != fitsschema.UnknownIgnore {
		sev := unknownSeverity(s.unknown)
		seen := make(map[string]struct{}, len(tab.Columns))
		for _, c := range tab.Columns {
			if _, ok := s.fields[c.Name]; ok {
				continue
			}
			if _, dup := seen[c.Name]; dup {
				continue
			}
			seen[c.Name] = struct{}{}
			d := fitsschema.DiagnosticAt(sev, c.Name, fitsschema.CodeUnknownField, nil)
			d.Hint = "column is not declared in the schema"
			ds = append(ds, d)
		}
	}
	return ds
}

func (s *tableSchema) checkField(name string, cols map[string]fitsschema.Column, opt fitsschema.Options) fitsschema.Diagnostics {
	col, ok := cols[name]
	if !ok {
		if _, req := s.required[name]; req {
			return fitsschema.Diagnostics{
				fitsschema.DiagnosticAt(fitsschema.Error, name, fitsschema.CodeMissingField, nil),
			}
		}
		return nil
	}
	return s.fields[name].check(name, col, opt)
}

// checkFieldsParallel fans the per-field checks out over a bounded group.
// Each field writes into its own slot, so the concatenated result keeps
// declaration order no matter how the goroutines interleave.
func (s *tableSchema) checkFieldsParallel(cols map[string]fitsschema.Column, opt fitsschema.Options) fitsschema.Diagnostics {
	slots := make([]fitsschema.Diagnostics, len(s.names))
	var g errgroup.Group
	g.SetLimit(opt.Concurrency)
	for i, name := range s.names {
		i, name := i, name
		g.Go(func() error {
			slots[i] = s.checkField(name, cols, opt)
			return nil
		})
	}
	_ = g.Wait() // field checks never return errors, only diagnostics

	var ds fitsschema.Diagnostics
	for _, slot := range slots {
		ds = append(ds, slot...)
	}
	return ds
}

func normalizeOptions(opt fitsschema.Options) fitsschema.Options {
	if opt.Units == nil {
		opt.Units = units.Standard()
	}
	return opt
}

func unknownSeverity(p fitsschema.UnknownPolicy) fitsschema.Severity {
	if p == fitsschema.UnknownError {
		return fitsschema.Error
	}
	return fitsschema.Warn
}
