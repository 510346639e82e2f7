package fitsschema_test

import (
	"fmt"
	"strings"
	"testing"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

func TestDiagnostics_ErrorSummary(t *testing.T) {
	ds := fitsschema.Diagnostics{
		{Severity: fitsschema.Error, Location: "ENERGY", Code: fitsschema.CodeMissingField, Message: "required column missing"},
		{Severity: fitsschema.Error, Location: "RA", Code: fitsschema.CodeWrongUnit, Message: "incompatible unit"},
		{Severity: fitsschema.Error, Location: "DEC", Code: fitsschema.CodeWrongType, Message: "wrong element type"},
		{Severity: fitsschema.Error, Location: "TIME", Code: fitsschema.CodeWrongShape, Message: "wrong shape"},
	}
	s := ds.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if !strings.Contains(s, "ENERGY") {
		t.Fatalf("summary should name the first location, got %q", s)
	}
	if !strings.Contains(s, "(total 4)") {
		t.Fatalf("summary should count all diagnostics, got %q", s)
	}
	if strings.Contains(s, "TIME") {
		t.Fatalf("summary should truncate after three diagnostics, got %q", s)
	}
}

func TestDiagnostics_SeverityFilters(t *testing.T) {
	ds := fitsschema.Diagnostics{
		{Severity: fitsschema.Warn, Location: "EXTRA", Code: fitsschema.CodeUnknownField},
		{Severity: fitsschema.Error, Location: "ENERGY", Code: fitsschema.CodeMissingField},
	}
	if !ds.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
	if got := len(ds.Errors()); got != 1 {
		t.Fatalf("Errors() returned %d diagnostics, want 1", got)
	}
	if got := len(ds.Warnings()); got != 1 {
		t.Fatalf("Warnings() returned %d diagnostics, want 1", got)
	}
}

func TestAssertValid_WarningsAreNotErrors(t *testing.T) {
	warnOnly := fitsschema.Diagnostics{
		{Severity: fitsschema.Warn, Location: "EXTRA", Code: fitsschema.CodeUnknownField},
	}
	if err := fitsschema.AssertValid(warnOnly); err != nil {
		t.Fatalf("expected nil for warnings only, got %v", err)
	}
	withError := append(warnOnly, fitsschema.Diagnostic{
		Severity: fitsschema.Error, Location: "ENERGY", Code: fitsschema.CodeMissingField,
	})
	if err := fitsschema.AssertValid(withError); err == nil {
		t.Fatalf("expected error when an error-severity diagnostic is present")
	}
}

func TestAsDiagnostics_UnwrapsThroughFmtErrorf(t *testing.T) {
	ds := fitsschema.Diagnostics{
		{Severity: fitsschema.Error, Location: "ENERGY", Code: fitsschema.CodeMissingField},
	}
	wrapped := fmt.Errorf("validating EVENTS: %w", ds)
	got, ok := fitsschema.AsDiagnostics(wrapped)
	if !ok {
		t.Fatalf("expected AsDiagnostics to recover the diagnostics")
	}
	if len(got) != 1 || got[0].Code != fitsschema.CodeMissingField {
		t.Fatalf("recovered diagnostics do not match: %+v", got)
	}
}

func TestAppendDiagnostics_GrowsInOrder(t *testing.T) {
	var ds fitsschema.Diagnostics
	ds = fitsschema.AppendDiagnostics(ds,
		fitsschema.Diagnostic{Severity: fitsschema.Error, Location: "A", Code: fitsschema.CodeMissingField},
		fitsschema.Diagnostic{Severity: fitsschema.Error, Location: "B", Code: fitsschema.CodeWrongType},
	)
	if len(ds) != 2 || ds[0].Location != "A" || ds[1].Location != "B" {
		t.Fatalf("unexpected append result: %+v", ds)
	}
}

func TestSeverity_String(t *testing.T) {
	cases := map[fitsschema.Severity]string{
		fitsschema.Ignore: "ignore",
		fitsschema.Warn:   "warn",
		fitsschema.Error:  "error",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Fatalf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestDiagnosticAt_FillsMessageFromCatalog(t *testing.T) {
	d := fitsschema.DiagnosticAt(fitsschema.Error, "ENERGY", fitsschema.CodeMissingField, nil)
	if d.Message == "" || d.Message == fitsschema.CodeMissingField {
		t.Fatalf("expected a catalog message, got %q", d.Message)
	}
	if d.Location != "ENERGY" || d.Severity != fitsschema.Error {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}
