package export

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/glassgen/screen"
)

// KelvinToCelsius is the offset that converts kelvin to degrees Celsius.
const KelvinToCelsius = -273.15

// Column describes one exported property.
type Column struct {
	Name   string  `json:"name" mapstructure:"name"`
	Offset float64 `json:"offset,omitempty" mapstructure:"offset"`
}

// Table is the export form of a screening result.
type Table struct {
	Oxides     []string
	Properties []string
	// Rows hold the oxide fractions followed by the property values.
	Rows [][]float64
}

// Header returns all column names in order.
func (t *Table) Header() []string {
	return append(slices.Clone(t.Oxides), t.Properties...)
}

// FromResult builds a table from res. columns fixes the exported properties
// and their order; nil exports every property of res without offsets.
func FromResult(res *screen.Result, columns []Column) (*Table, error) {
	if columns == nil {
		for _, p := range res.Properties {
			columns = append(columns, Column{Name: p})
		}
	}

	src := make([]int, len(columns))
	names := make([]string, len(columns))
	for i, c := range columns {
		j := slices.Index(res.Properties, c.Name)
		if j < 0 {
			return nil, fmt.Errorf("export: property %q not in result", c.Name)
		}
		src[i] = j
		names[i] = c.Name
	}

	t := &Table{Oxides: slices.Clone(res.Oxides), Properties: names, Rows: make([][]float64, len(res.Records))}
	for r, rec := range res.Records {
		row := make([]float64, 0, len(rec.Composition)+len(columns))
		row = append(row, rec.Composition...)
		for i, c := range columns {
			row = append(row, rec.Values[src[i]]+c.Offset)
		}
		t.Rows[r] = row
	}
	return t, nil
}

// Writer persists a table.
type Writer interface {
	Write(ctx context.Context, t *Table) error
}
