package fitsschema

// UnknownPolicy controls how instance columns or header cards that no
// descriptor covers are reported.
type UnknownPolicy int

const (
	UnknownWarn   UnknownPolicy = iota // Report undeclared names as warnings.
	UnknownError                       // Report undeclared names as errors.
	UnknownIgnore                      // Skip undeclared names silently.
)

// Severity expresses the severity level for diagnostics.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}

// MarshalText renders the severity as its lowercase name.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Options bundles validation options. The zero value is ready to use.
type Options struct {
	// Units answers unit convertibility and dimension questions. nil selects
	// the built-in authority (units.Standard).
	Units UnitAuthority
	// RequireUnits escalates an absent instance unit on a unit-constrained
	// field to a missing_unit diagnostic instead of assuming the declared unit.
	RequireUnits bool
	// Concurrency > 1 validates columns concurrently with that many workers.
	// Diagnostic order is identical to the serial walk.
	Concurrency int
}
