package dsl_test

import (
	"testing"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
	"github.com/open-gamma-ray-astro/fits-schema/dsl"
)

func cards(kv ...any) fitsschema.Header {
	h := fitsschema.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Cards = append(h.Cards, fitsschema.Card{Keyword: kv[i].(string), Value: kv[i+1]})
	}
	return h
}

func TestHeaderCheck_RequiredAndOptional(t *testing.T) {
	hs := dsl.Header().
		Card("TELESCOP", dsl.StringValue()).Required().
		Card("OBSERVER", dsl.StringValue()).
		MustBuild()

	ds := fitsschema.ValidateHeader(hs, cards("TELESCOP", "CTA"))
	wantCodes(t, ds)

	ds = fitsschema.ValidateHeader(hs, fitsschema.Header{})
	wantCodes(t, ds, fitsschema.CodeMissingHeaderCard)
	if ds[0].Location != "TELESCOP" {
		t.Fatalf("expected the diagnostic at TELESCOP, got %+v", ds[0])
	}
}

func TestHeaderCheck_Position(t *testing.T) {
	hs := dsl.Header().
		Card("XTENSION", dsl.StringValue()).Position(0).Required().
		MustBuild()

	ds := fitsschema.ValidateHeader(hs, cards("XTENSION", "BINTABLE"))
	wantCodes(t, ds)

	ds = fitsschema.ValidateHeader(hs, cards(
		"COMMENT", "preamble",
		"XTENSION", "BINTABLE",
	))
	wantCodes(t, ds, fitsschema.CodeWrongPosition)
}

func TestHeaderCheck_EmptyCards(t *testing.T) {
	hs := dsl.Header().
		Card("END", dsl.AnyValue().Empty()).
		Card("EXTNAME", dsl.AnyValue().NonEmpty()).
		MustBuild()

	ds := fitsschema.ValidateHeader(hs, cards("END", nil, "EXTNAME", "EVENTS"))
	wantCodes(t, ds)

	ds = fitsschema.ValidateHeader(hs, cards("END", 1, "EXTNAME", nil))
	wantCodes(t, ds, fitsschema.CodeInvalidHeaderValue, fitsschema.CodeInvalidHeaderValue)
}

func TestHeaderCheck_ValueTypes(t *testing.T) {
	hs := dsl.Header().
		Card("NAXIS1", dsl.IntValue()).
		Card("EXPOSURE", dsl.FloatValue()).
		Card("EXTEND", dsl.BoolValue()).
		Card("OBS_ID", dsl.Typed(dsl.TypeString, dsl.TypeInt)).
		MustBuild()

	ds := fitsschema.ValidateHeader(hs, cards(
		"NAXIS1", 640,
		"EXPOSURE", 1800, // ints promote to float
		"EXTEND", true,
		"OBS_ID", "run-042",
	))
	wantCodes(t, ds)

	ds = fitsschema.ValidateHeader(hs, cards(
		"NAXIS1", "640",
		"EXPOSURE", "long",
		"EXTEND", 1,
		"OBS_ID", 42,
	))
	wantCodes(t, ds,
		fitsschema.CodeInvalidHeaderValue,
		fitsschema.CodeInvalidHeaderValue,
		fitsschema.CodeInvalidHeaderValue,
	)
}

func TestHeaderCheck_OneOfIsCaseSensitive(t *testing.T) {
	hs := dsl.Header().
		Card("EXTNAME", dsl.StringValue().OneOf("EVENTS")).Required().
		MustBuild()

	wantCodes(t, fitsschema.ValidateHeader(hs, cards("EXTNAME", "EVENTS")))

	ds := fitsschema.ValidateHeader(hs, cards("EXTNAME", "events"))
	wantCodes(t, ds, fitsschema.CodeInvalidHeaderValue)
}

func TestHeaderCheck_PatternMatch(t *testing.T) {
	hs := dsl.Header().
		Card("DATE-OBS", dsl.StringValue().Match(`^\d{4}-\d{2}-\d{2}`)).
		MustBuild()

	wantCodes(t, fitsschema.ValidateHeader(hs, cards("DATE-OBS", "2026-08-25T00:00:00")))

	ds := fitsschema.ValidateHeader(hs, cards("DATE-OBS", "25/08/2026"))
	wantCodes(t, ds, fitsschema.CodeInvalidHeaderValue)
}

func TestHeaderCheck_Between(t *testing.T) {
	hs := dsl.Header().
		Card("NAXIS", dsl.IntValue().Between(0, 999)).
		MustBuild()

	wantCodes(t, fitsschema.ValidateHeader(hs, cards("NAXIS", 2)))

	ds := fitsschema.ValidateHeader(hs, cards("NAXIS", 1200))
	wantCodes(t, ds, fitsschema.CodeInvalidHeaderValue)
}

func TestHeaderCheck_UndefinedValueSkipsValueChecks(t *testing.T) {
	hs := dsl.Header().
		Card("EXTNAME", dsl.StringValue().OneOf("EVENTS")).
		MustBuild()
	// Present but value-less, and not constrained by Empty/NonEmpty.
	wantCodes(t, fitsschema.ValidateHeader(hs, cards("EXTNAME", nil)))
}

func TestHeaderCheck_UnknownCards(t *testing.T) {
	hs := dsl.Header().
		Card("EXTNAME", dsl.StringValue()).
		MustBuild()

	ds := fitsschema.ValidateHeader(hs, cards(
		"EXTNAME", "EVENTS",
		"COMMENT", "generated by the pipeline",
		"HISTORY", "calibrated",
		"", "blank continuation",
		"CREATOR", "ctapipe",
		"CREATOR", "ctapipe again",
	))
	wantCodes(t, ds, fitsschema.CodeUnknownField)
	if ds[0].Severity != fitsschema.Warn || ds[0].Location != "CREATOR" {
		t.Fatalf("expected one warning at CREATOR, got %+v", ds[0])
	}

	strict := dsl.Header().
		Card("EXTNAME", dsl.StringValue()).
		UnknownError().
		MustBuild()
	ds = fitsschema.ValidateHeader(strict, cards("EXTNAME", "EVENTS", "CREATOR", "x"))
	wantCodes(t, ds, fitsschema.CodeUnknownField)
	if ds[0].Severity != fitsschema.Error {
		t.Fatalf("UnknownError should escalate, got %+v", ds[0])
	}

	loose := dsl.Header().
		Card("EXTNAME", dsl.StringValue()).
		UnknownIgnore().
		MustBuild()
	wantCodes(t, fitsschema.ValidateHeader(loose, cards("EXTNAME", "EVENTS", "CREATOR", "x")))
}

func TestHeaderCheck_DuplicateKeywordFirstCardWins(t *testing.T) {
	hs := dsl.Header().
		Card("EXTNAME", dsl.StringValue().OneOf("EVENTS")).
		MustBuild()
	ds := fitsschema.ValidateHeader(hs, cards(
		"EXTNAME", "EVENTS",
		"EXTNAME", "GTI",
	))
	wantCodes(t, ds)
}

func TestHeaderBuilder_RedeclareReplacesInPlace(t *testing.T) {
	b := dsl.Header()
	b.Card("EXTNAME", dsl.StringValue())
	b.Card("TELESCOP", dsl.StringValue())
	b.Card("EXTNAME", dsl.StringValue().OneOf("EVENTS")).Required()
	hs := b.MustBuild()

	if kws := hs.Keywords(); len(kws) != 2 || kws[0] != "EXTNAME" || kws[1] != "TELESCOP" {
		t.Fatalf("redeclaring must keep the original slot: %v", kws)
	}

	ds := fitsschema.ValidateHeader(hs, fitsschema.Header{})
	wantCodes(t, ds, fitsschema.CodeMissingHeaderCard)

	ds = fitsschema.ValidateHeader(hs, cards("EXTNAME", "GTI"))
	wantCodes(t, ds, fitsschema.CodeInvalidHeaderValue)
}
