package fitsschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/open-gamma-ray-astro/fits-schema/i18n"
)

// Diagnostic codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingField       = "missing_field"
	CodeWrongType          = "wrong_type"
	CodeWrongUnit          = "wrong_unit"
	CodeMissingUnit        = "missing_unit"
	CodeWrongShape         = "wrong_shape"
	CodeWrongValue         = "wrong_value"
	CodeUnexpectedNull     = "unexpected_null"
	CodeMissingHeaderCard  = "missing_header_card"
	CodeInvalidHeaderValue = "invalid_header_value"
	CodeWrongPosition      = "wrong_position"
	CodeUnknownField       = "unknown_field"
)

// Diagnostic represents a single validation finding.
type Diagnostic struct {
	Severity Severity // Warn or Error.
	Location string   // Column name or header keyword; cards reached through a table schema are prefixed "header.".
	Code     string   // One of the codes listed above.
	Message  string
	Value    any    // Optional: the offending value.
	Hint     string // Optional: expected values, remediation, etc.
	// Params carries structured parameters (e.g., {"want":3, "got":2}) for
	// i18n and observability.
	Params map[string]any
}

// Diagnostics is the ordered result of one validation run. It implements
// error so an Error-carrying sequence can travel as a failure; AssertValid is
// the boundary that decides when it does.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ds)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		d := ds[i]
		// e.g. wrong_unit at energy
		fmt.Fprintf(b, "%s at %s", d.Code, d.Location)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasErrors reports whether any diagnostic carries Error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns the Error-severity subset, order preserved.
func (ds Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns the Warn-severity subset, order preserved.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == Warn {
			out = append(out, d)
		}
	}
	return out
}

// AppendDiagnostics appends diagnostics to the destination, initializing the
// slice when needed.
func AppendDiagnostics(dst Diagnostics, more ...Diagnostic) Diagnostics {
	if dst == nil {
		dst = Diagnostics{}
	}
	dst = append(dst, more...)
	return dst
}

// AsDiagnostics extracts Diagnostics from an error using errors.As internally.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}

// AssertValid converts a diagnostic sequence into a failure when it contains
// at least one Error-severity entry. The returned error is the complete
// ordered sequence, warnings included, so callers can print a full report.
// Warnings alone never fail.
func AssertValid(ds Diagnostics) error {
	if ds.HasErrors() {
		return ds
	}
	return nil
}

// DiagnosticAt creates a Diagnostic at the given location with the catalog
// message for code. This is a convenience helper to improve readability at
// emit sites with many parameters.
func DiagnosticAt(sev Severity, loc, code string, value any) Diagnostic {
	return Diagnostic{Severity: sev, Location: loc, Code: code, Message: i18n.T(code, nil), Value: value}
}
