package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/bounds"
	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/normalize"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/property"
)

// Options controls how a dataset table is read.
type Options struct {
	// Label is the label column. Empty means the last column.
	Label string
	// Ignore lists columns that are neither oxides nor the label.
	Ignore []string
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// Dataset is one property table: a composition per row and its label.
type Dataset struct {
	Name   string
	Oxides oxide.Set
	Label  string
	X      *composition.Matrix
	Y      []float64
}

// Load reads the table stored under name. Store errors are returned
// unmodified.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts Options) (*Dataset, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}
	return Parse(bytes.NewReader(raw), name, opts)
}

// Parse reads a dataset from CSV.
func Parse(r io.Reader, name string, opts Options) (*Dataset, error) {
	cr := newReader(r, opts.Comma)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset %s: header: %w", name, err)
	}
	header = slices.Clone(header)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	labelCol := len(header) - 1
	if opts.Label != "" {
		labelCol = slices.Index(header, opts.Label)
		if labelCol < 0 {
			return nil, fmt.Errorf("dataset %s: label column %q not found", name, opts.Label)
		}
	}

	var (
		names []string
		cols  []int
	)
	for i, h := range header {
		if i == labelCol || slices.Contains(opts.Ignore, h) {
			continue
		}
		names = append(names, h)
		cols = append(cols, i)
	}
	oxides, err := oxide.NewSet(names...)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}

	var (
		xs []float64
		ys []float64
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}
		for _, c := range cols {
			v, err := parseFloat(rec[c])
			if err != nil {
				return nil, fmt.Errorf("dataset %s: line %d column %s: %w", name, line, header[c], err)
			}
			xs = append(xs, v)
		}
		y, err := parseFloat(rec[labelCol])
		if err != nil {
			return nil, fmt.Errorf("dataset %s: line %d label: %w", name, line, err)
		}
		ys = append(ys, y)
	}

	return &Dataset{
		Name:   name,
		Oxides: oxides,
		Label:  header[labelCol],
		X:      &composition.Matrix{Rows: len(ys), Cols: oxides.Len(), Data: xs},
		Y:      ys,
	}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Y) }

// Upper returns the largest observed fraction of every oxide.
func (d *Dataset) Upper() []float64 {
	upper := make([]float64, d.X.Cols)
	for i := range d.X.Rows {
		for j, v := range d.X.Row(i) {
			upper[j] = max(upper[j], v)
		}
	}
	return upper
}

// Bounds returns the dataset's upper bounds in the form the intersector takes.
func (d *Dataset) Bounds() bounds.Dataset {
	return bounds.Dataset{Name: d.Name, Oxides: d.Oxides, Upper: d.Upper()}
}

// MolarMass returns the molar mass of every sample.
func (d *Dataset) MolarMass(table oxide.MolarMassTable) ([]float64, error) {
	b, err := d.Batch(table)
	if err != nil {
		return nil, err
	}
	return b.MolarMass, nil
}

// Batch returns the samples as a composition batch.
func (d *Dataset) Batch(table oxide.MolarMassTable) (*composition.Batch, error) {
	mm, err := table.Vector(d.Oxides)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
	}
	return composition.NewBatch(d.Oxides, d.X, mm)
}

// TrainingLabels applies the forward transform to a copy of Y.
func (d *Dataset) TrainingLabels(t property.Transform, table oxide.MolarMassTable) ([]float64, error) {
	b, err := d.Batch(table)
	if err != nil {
		return nil, err
	}
	labels := slices.Clone(d.Y)
	if err := t.Forward(labels, b); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
	}
	return labels, nil
}

// FitNormalizer fits a normalizer of the given kind to Y.
func (d *Dataset) FitNormalizer(kind normalize.Kind) (normalize.Normalizer, error) {
	n, err := normalize.Fit(kind, d.Y)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
	}
	return n, nil
}

func newReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
