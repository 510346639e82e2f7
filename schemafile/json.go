package schemafile

import (
	"fmt"

	json "github.com/goccy/go-json"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// ImportJSON compiles a single TableSchema document from JSON.
func ImportJSON(data []byte) (fitsschema.TableSchema, error) {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if d.Kind != KindTableSchema {
		return nil, fmt.Errorf("schemafile: document kind %q, want %q", d.Kind, KindTableSchema)
	}
	return buildTable(&d)
}

// ImportHeaderJSON compiles a single HeaderSchema document from JSON.
func ImportHeaderJSON(data []byte) (fitsschema.HeaderSchema, error) {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if d.Kind != KindHeaderSchema {
		return nil, fmt.Errorf("schemafile: document kind %q, want %q", d.Kind, KindHeaderSchema)
	}
	return buildHeader(d.Base, d.Unknown, d.Cards)
}
