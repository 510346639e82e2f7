package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// instanceDoc is the YAML shape check reads a table instance from:
//
//	name: EVENTS
//	header:
//	  - {keyword: XTENSION, value: BINTABLE}
//	  - {keyword: EXTNAME, value: EVENTS}
//	columns:
//	  - name: ENERGY
//	    kind: float32
//	    unit: TeV
//	    cells: [[129.0], [2310.5]]
//
// Each cell is one row's element sequence; scalar columns carry exactly one
// element per cell.
type instanceDoc struct {
	Name    string           `yaml:"name"`
	Header  []instanceCard   `yaml:"header"`
	Columns []instanceColumn `yaml:"columns"`
}

type instanceCard struct {
	Keyword string `yaml:"keyword"`
	Value   any    `yaml:"value"`
}

type instanceColumn struct {
	Name  string  `yaml:"name"`
	Kind  string  `yaml:"kind"`
	Unit  string  `yaml:"unit"`
	Cells [][]any `yaml:"cells"`
}

func loadTable(path string) (fitsschema.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fitsschema.Table{}, err
	}
	var doc instanceDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fitsschema.Table{}, err
	}
	tab := fitsschema.Table{Name: doc.Name}
	for _, c := range doc.Header {
		tab.Header.Cards = append(tab.Header.Cards, fitsschema.Card{Keyword: c.Keyword, Value: c.Value})
	}
	for _, c := range doc.Columns {
		col := fitsschema.Column{Name: c.Name, Unit: c.Unit}
		if c.Kind != "" {
			k, err := fitsschema.ParseKind(c.Kind)
			if err != nil {
				return fitsschema.Table{}, fmt.Errorf("column %q: %w", c.Name, err)
			}
			col.Kind = k
		}
		for _, row := range c.Cells {
			col.Cells = append(col.Cells, fitsschema.Cell(row))
		}
		tab.Columns = append(tab.Columns, col)
	}
	return tab, nil
}
