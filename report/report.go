// Package report renders validation diagnostics for humans and machines.
// The library's error value summarizes long diagnostic lists; this package
// prints all of them.
package report

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// Text renders every diagnostic, one per line, followed by a count summary.
// An empty list renders as "ok".
func Text(ds fitsschema.Diagnostics) string {
	var b strings.Builder
	_ = Write(&b, ds)
	return b.String()
}

// Write is Text against a writer.
func Write(w io.Writer, ds fitsschema.Diagnostics) error {
	if len(ds) == 0 {
		_, err := io.WriteString(w, "ok\n")
		return err
	}
	errs, warns := 0, 0
	for _, d := range ds {
		switch d.Severity {
		case fitsschema.Error:
			errs++
		case fitsschema.Warn:
			warns++
		}
		line := fmt.Sprintf("%-5s %s [%s]: %s", d.Severity, d.Location, d.Code, d.Message)
		if d.Hint != "" {
			line += "; " + d.Hint
		}
		if d.Value != nil {
			line += fmt.Sprintf(" (value %v)", d.Value)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
	return err
}

type entry struct {
	Severity fitsschema.Severity `json:"severity"`
	Location string              `json:"location"`
	Code     string              `json:"code"`
	Message  string              `json:"message"`
	Value    any                 `json:"value,omitempty"`
	Hint     string              `json:"hint,omitempty"`
	Params   map[string]any      `json:"params,omitempty"`
}

// JSON renders the diagnostics as a JSON array. Severities encode as their
// text names.
func JSON(ds fitsschema.Diagnostics) ([]byte, error) {
	out := make([]entry, 0, len(ds))
	for _, d := range ds {
		out = append(out, entry{
			Severity: d.Severity,
			Location: d.Location,
			Code:     d.Code,
			Message:  d.Message,
			Value:    d.Value,
			Hint:     d.Hint,
			Params:   d.Params,
		})
	}
	return json.Marshal(out)
}
