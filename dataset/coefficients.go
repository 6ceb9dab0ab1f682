package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/oxide"
)

// Coefficients is a per-oxide coefficient table such as bond dissociation
// energies. The first CSV column holds the oxide identifier.
type Coefficients struct {
	Name   string
	Column string
	order  []string
	values map[string]float64
}

// LoadCoefficients reads column from the table stored under name. Store
// errors are returned unmodified.
func LoadCoefficients(ctx context.Context, store blobstore.BlobStore, name, column string) (*Coefficients, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("coefficients %s: %w", name, err)
	}
	return ParseCoefficients(bytes.NewReader(raw), name, column)
}

// ParseCoefficients reads column from a CSV coefficient table.
func ParseCoefficients(r io.Reader, name, column string) (*Coefficients, error) {
	cr := newReader(r, 0)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("coefficients %s: header: %w", name, err)
	}
	header = slices.Clone(header)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	col := slices.Index(header, column)
	if col <= 0 {
		return nil, fmt.Errorf("coefficients %s: column %q not found", name, column)
	}

	c := &Coefficients{Name: name, Column: column, values: make(map[string]float64)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("coefficients %s: %w", name, err)
		}
		id := strings.TrimSpace(rec[0])
		if _, dup := c.values[id]; dup {
			return nil, fmt.Errorf("coefficients %s: line %d: duplicate oxide %q", name, line, id)
		}
		v, err := parseFloat(rec[col])
		if err != nil {
			return nil, fmt.Errorf("coefficients %s: line %d: %w", name, line, err)
		}
		c.values[id] = v
		c.order = append(c.order, id)
	}
	return c, nil
}

// Oxides returns the oxides listed in the table, in file order.
func (c *Coefficients) Oxides() []string { return slices.Clone(c.order) }

// Value returns the coefficient of one oxide.
func (c *Coefficients) Value(id string) (float64, bool) {
	v, ok := c.values[id]
	return v, ok
}

// Aligned returns the coefficients of s in order. A missing oxide is an error.
func (c *Coefficients) Aligned(s oxide.Set) ([]float64, error) {
	out := make([]float64, s.Len())
	for i := range s.Len() {
		v, ok := c.values[s.At(i)]
		if !ok {
			return nil, fmt.Errorf("coefficients %s: %w: %q", c.Name, oxide.ErrUnknownOxide, s.At(i))
		}
		out[i] = v
	}
	return out, nil
}
