package fitsschema_test

import (
	"testing"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

func TestHeader_Index_CaseInsensitive(t *testing.T) {
	hdr := fitsschema.Header{Cards: []fitsschema.Card{
		{Keyword: "XTENSION", Value: "BINTABLE"},
		{Keyword: "extname", Value: "EVENTS"},
	}}
	if got := hdr.Index("EXTNAME"); got != 1 {
		t.Fatalf("Index(EXTNAME) = %d, want 1", got)
	}
	if got := hdr.Index("BITPIX"); got != -1 {
		t.Fatalf("Index(BITPIX) = %d, want -1", got)
	}
	card, ok := hdr.Get("xtension")
	if !ok || card.Value != "BINTABLE" {
		t.Fatalf("Get(xtension) = %+v, %v", card, ok)
	}
}

func TestHeader_Index_FirstOccurrenceWins(t *testing.T) {
	hdr := fitsschema.Header{Cards: []fitsschema.Card{
		{Keyword: "EXTNAME", Value: "EVENTS"},
		{Keyword: "EXTNAME", Value: "GTI"},
	}}
	idx := hdr.Index("EXTNAME")
	if idx != 0 {
		t.Fatalf("Index(EXTNAME) = %d, want 0", idx)
	}
	if hdr.Cards[idx].Value != "EVENTS" {
		t.Fatalf("expected the first card to win, got %v", hdr.Cards[idx].Value)
	}
}

func TestNormalizeKeyword(t *testing.T) {
	if got := fitsschema.NormalizeKeyword(" extname "); got != "EXTNAME" {
		t.Fatalf("NormalizeKeyword = %q, want EXTNAME", got)
	}
}

func TestTable_Column_CaseSensitive(t *testing.T) {
	tab := fitsschema.Table{Columns: []fitsschema.Column{
		fitsschema.ScalarColumn("ENERGY", 1.0),
	}}
	if _, ok := tab.Column("ENERGY"); !ok {
		t.Fatalf("expected ENERGY to be found")
	}
	if _, ok := tab.Column("energy"); ok {
		t.Fatalf("column names are case-sensitive, energy should not match")
	}
}

func TestColumnConstructors(t *testing.T) {
	c := fitsschema.ScalarColumn("ENERGY", 1.0, 2.0).WithUnit("TeV").WithKind(fitsschema.KindFloat64)
	if len(c.Cells) != 2 || len(c.Cells[0]) != 1 {
		t.Fatalf("unexpected scalar cells: %+v", c.Cells)
	}
	if c.Unit != "TeV" || c.Kind != fitsschema.KindFloat64 {
		t.Fatalf("unexpected column metadata: %+v", c)
	}

	v := fitsschema.VectorColumn("PSF", []any{1.0, 2.0, 3.0}, []any{4.0, 5.0, 6.0})
	if len(v.Cells) != 2 || len(v.Cells[1]) != 3 {
		t.Fatalf("unexpected vector cells: %+v", v.Cells)
	}
}

func TestDim_StringAndDimensionless(t *testing.T) {
	var d fitsschema.Dim
	if !d.IsDimensionless() {
		t.Fatalf("zero Dim should be dimensionless")
	}
	if got := d.String(); got != "1" {
		t.Fatalf("dimensionless Dim renders as %q, want \"1\"", got)
	}
	d.Length = 1
	d.Time = -2
	if d.IsDimensionless() {
		t.Fatalf("L T^-2 should not be dimensionless")
	}
	s := d.String()
	if s == "" || s == "1" {
		t.Fatalf("expected a rendered dimension, got %q", s)
	}
}
