package report

import (
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jscan"
	"github.com/reoring/jscan/i18n"
)

// Cell is one template leaf of one record.
type Cell struct {
	Value        any    `json:"value,omitempty" yaml:"value,omitempty"`
	HasValue     bool   `json:"hasValue" yaml:"hasValue"`
	ExpectedType string `json:"expectedType" yaml:"expectedType"`
	ActualType   string `json:"actualType" yaml:"actualType"`
	Valid        bool   `json:"valid" yaml:"valid"`
}

type cellDoc[V any] struct {
	Value        V      `json:"value,omitempty" yaml:"value,omitempty"`
	HasValue     bool   `json:"hasValue" yaml:"hasValue"`
	ExpectedType string `json:"expectedType" yaml:"expectedType"`
	ActualType   string `json:"actualType" yaml:"actualType"`
	Valid        bool   `json:"valid" yaml:"valid"`
}

// MarshalJSON keeps object member order and number literals of the value.
func (c Cell) MarshalJSON() ([]byte, error) {
	doc := cellDoc[json.RawMessage]{HasValue: c.HasValue, ExpectedType: c.ExpectedType, ActualType: c.ActualType, Valid: c.Valid}
	if c.HasValue {
		b, err := jscan.MarshalData(c.Value)
		if err != nil {
			return nil, err
		}
		doc.Value = b
	}
	return json.Marshal(doc)
}

// MarshalYAML implements yaml.Marshaler.
func (c Cell) MarshalYAML() (interface{}, error) {
	doc := cellDoc[*yaml.Node]{HasValue: c.HasValue, ExpectedType: c.ExpectedType, ActualType: c.ActualType, Valid: c.Valid}
	if c.HasValue {
		doc.Value = jscan.DataYAMLNode(c.Value)
	}
	return doc, nil
}

// Row is one record of the data.
type Row struct {
	Label string `json:"label" yaml:"label"`
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Grid lays records out against the template's leaf fields.
type Grid struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	// Records is true when the data root is an array of records.
	Records bool `json:"records" yaml:"records"`
}

// BuildGrid builds a Grid with one column per template leaf. An array root
// yields one row per element labelled by its 1-based position; any other root
// is a single row. Absent and null values have actual type "missing" and are
// never valid.
func BuildGrid(t jscan.Template, data any) Grid {
	leaves := t.Leaves()
	g := Grid{Columns: make([]string, len(leaves))}
	for i, l := range leaves {
		g.Columns[i] = l.String()
	}

	records, ok := jscan.AsArray(data)
	if ok {
		g.Records = true
	} else {
		records = []any{data}
	}
	for i, rec := range records {
		r := Row{Label: i18n.T(i18n.SingleObject, nil), Cells: make([]Cell, len(leaves))}
		if g.Records {
			r.Label = strconv.Itoa(i + 1)
		}
		for j, l := range leaves {
			r.Cells[j] = cell(t, rec, l)
		}
		g.Rows = append(g.Rows, r)
	}
	return g
}

func cell(t jscan.Template, rec any, p jscan.FieldPath) Cell {
	c := Cell{ExpectedType: t.ExpectedType(p), ActualType: i18n.T(i18n.TypeMissing, nil)}
	v, ok := jscan.LookupValue(rec, p)
	if !ok || v == nil {
		return c
	}
	c.Value = v
	c.HasValue = true
	c.ActualType = jscan.TypeOf(v)
	c.Valid = c.ActualType == c.ExpectedType
	return c
}
