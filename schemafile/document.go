// Package schemafile loads table and header schemas from declarative YAML
// or JSON documents, so validation rules can live next to the data products
// they describe instead of in Go code.
//
// A document names its kind, TableSchema or HeaderSchema, and is compiled
// through the dsl builders, so it obeys exactly the same authoring rules:
//
//	kind: TableSchema
//	name: events
//	unknown: error
//	header:
//	  base: bintable
//	  cards:
//	    - keyword: EXTNAME
//	      oneOf: [EVENTS]
//	      required: true
//	columns:
//	  - name: ENERGY
//	    kind: float32
//	    unit: TeV
//	    required: true
//	  - name: PSF
//	    kind: float64
//	    shape: 3
//	    nullable: true
//
// Multi-document YAML streams are scanned in order; see ImportYAML and
// ImportYAMLNamed.
package schemafile

// Document kinds recognized by the importers.
const (
	KindTableSchema  = "TableSchema"
	KindHeaderSchema = "HeaderSchema"
)

type document struct {
	Kind    string      `yaml:"kind" json:"kind"`
	Name    string      `yaml:"name" json:"name,omitempty"`
	Unknown string      `yaml:"unknown" json:"unknown,omitempty"`
	Columns []columnDoc `yaml:"columns" json:"columns,omitempty"`
	Header  *headerDoc  `yaml:"header" json:"header,omitempty"`
	// Header document fields; ignored for table documents.
	Base  string    `yaml:"base" json:"base,omitempty"`
	Cards []cardDoc `yaml:"cards" json:"cards,omitempty"`
}

type columnDoc struct {
	Name      string   `yaml:"name" json:"name"`
	Kind      string   `yaml:"kind" json:"kind"`
	Unit      string   `yaml:"unit" json:"unit,omitempty"`
	UnitOneOf []string `yaml:"unitOneOf" json:"unitOneOf,omitempty"`
	Shape     any      `yaml:"shape" json:"shape,omitempty"`
	MaxLen    int      `yaml:"maxLen" json:"maxLen,omitempty"`
	Required  bool     `yaml:"required" json:"required,omitempty"`
	Nullable  bool     `yaml:"nullable" json:"nullable,omitempty"`
	Allowed   []any    `yaml:"allowed" json:"allowed,omitempty"`
}

type headerDoc struct {
	Base    string    `yaml:"base" json:"base,omitempty"`
	Unknown string    `yaml:"unknown" json:"unknown,omitempty"`
	Cards   []cardDoc `yaml:"cards" json:"cards,omitempty"`
}

type cardDoc struct {
	Keyword  string   `yaml:"keyword" json:"keyword"`
	Type     []string `yaml:"type" json:"type,omitempty"`
	OneOf    []any    `yaml:"oneOf" json:"oneOf,omitempty"`
	Pattern  string   `yaml:"pattern" json:"pattern,omitempty"`
	Between  []int64  `yaml:"between" json:"between,omitempty"`
	Empty    *bool    `yaml:"empty" json:"empty,omitempty"`
	Required bool     `yaml:"required" json:"required,omitempty"`
	Position *int     `yaml:"position" json:"position,omitempty"`
	Default  any      `yaml:"default" json:"default,omitempty"`
}
