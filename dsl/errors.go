package dsl

import "fmt"

// DefinitionError reports a schema that is itself authored incorrectly, as
// opposed to data that fails validation. Build returns it; MustBuild panics
// with it. Authoring mistakes surface when the schema is constructed, never
// as diagnostics against an instance.
type DefinitionError struct {
	Container string // "table" or "header"
	Name      string // offending field name or card keyword, empty for container-level problems
	Reason    string
}

func (e *DefinitionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("fitsschema: invalid %s definition %q: %s", e.Container, e.Name, e.Reason)
	}
	return fmt.Sprintf("fitsschema: invalid %s definition: %s", e.Container, e.Reason)
}

func tableErr(name, reason string) *DefinitionError {
	return &DefinitionError{Container: "table", Name: name, Reason: reason}
}

func headerErr(name, reason string) *DefinitionError {
	return &DefinitionError{Container: "header", Name: name, Reason: reason}
}
