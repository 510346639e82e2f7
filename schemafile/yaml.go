package schemafile

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// ImportYAML scans a YAML stream and compiles the first TableSchema
// document. Other documents in the stream are skipped.
func ImportYAML(data []byte) (fitsschema.TableSchema, error) {
	d, err := scanYAML(data, func(d *document) bool {
		return d.Kind == KindTableSchema
	})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("schemafile: no TableSchema document in stream")
	}
	return buildTable(d)
}

// ImportYAMLNamed scans a YAML stream and compiles the TableSchema document
// with the given name. Streams bundling the schemas of several HDUs rely on
// this to pick one out.
func ImportYAMLNamed(data []byte, name string) (fitsschema.TableSchema, error) {
	d, err := scanYAML(data, func(d *document) bool {
		return d.Kind == KindTableSchema && d.Name == name
	})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("schemafile: TableSchema " + name + " not found in stream")
	}
	return buildTable(d)
}

// ImportHeaderYAML scans a YAML stream and compiles the first HeaderSchema
// document.
func ImportHeaderYAML(data []byte) (fitsschema.HeaderSchema, error) {
	d, err := scanYAML(data, func(d *document) bool {
		return d.Kind == KindHeaderSchema
	})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("schemafile: no HeaderSchema document in stream")
	}
	return buildHeader(d.Base, d.Unknown, d.Cards)
}

// ImportHeaderYAMLNamed scans a YAML stream and compiles the HeaderSchema
// document with the given name.
func ImportHeaderYAMLNamed(data []byte, name string) (fitsschema.HeaderSchema, error) {
	d, err := scanYAML(data, func(d *document) bool {
		return d.Kind == KindHeaderSchema && d.Name == name
	})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("schemafile: HeaderSchema " + name + " not found in stream")
	}
	return buildHeader(d.Base, d.Unknown, d.Cards)
}

func scanYAML(data []byte, want func(*document) bool) (*document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var d document
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if want(&d) {
			return &d, nil
		}
	}
	return nil, nil
}
