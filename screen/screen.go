package screen

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/internal/conv"
)

// Record is one passing composition with its property values.
type Record struct {
	Row         int
	Composition []float64
	Values      []float64
}

// WindowStat is the number of rows an enabled window admits on its own.
type WindowStat struct {
	Window Window
	Passed int
}

// Result is the outcome of a screening pass.
type Result struct {
	Oxides     []string
	Properties []string
	Records    []Record
	Windows    []WindowStat
	// Total is the number of screened rows.
	Total int
}

// Len returns the number of passing rows.
func (r *Result) Len() int { return len(r.Records) }

// Rows returns the batch row indices of the passing records, ascending.
func (r *Result) Rows() []int {
	out := make([]int, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Row
	}
	return out
}

// Screener applies a fixed set of windows.
type Screener struct {
	windows []Window
	columns []string
}

// Option configures a Screener.
type Option func(*Screener)

// WithColumns fixes the property order of result records. By default the
// properties are sorted by name.
func WithColumns(names ...string) Option {
	return func(s *Screener) { s.columns = slices.Clone(names) }
}

// New validates windows and builds a Screener.
func New(windows []Window, opts ...Option) (*Screener, error) {
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}
	s := &Screener{windows: slices.Clone(windows)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Windows returns a copy of the configured windows.
func (s *Screener) Windows() []Window { return slices.Clone(s.windows) }

// Screen returns the rows of b for which every enabled window holds.
// props maps property names to one value per row.
func (s *Screener) Screen(b *composition.Batch, props map[string][]float64) (*Result, error) {
	n := b.Len()
	if _, err := conv.IntToUint32(n); err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}

	columns := s.columns
	if columns == nil {
		columns = make([]string, 0, len(props))
		for name := range props {
			columns = append(columns, name)
		}
		slices.Sort(columns)
	}
	for _, name := range columns {
		v, ok := props[name]
		if !ok {
			return nil, fmt.Errorf("screen: no values for property %q", name)
		}
		if len(v) != n {
			return nil, &composition.DimensionMismatchError{Expected: n, Actual: len(v), Context: "screen property " + name}
		}
	}

	res := &Result{
		Oxides:     b.Oxides.Names(),
		Properties: slices.Clone(columns),
		Total:      n,
	}

	var mask *roaring.Bitmap
	for _, w := range s.windows {
		if !w.Enabled {
			continue
		}
		v, ok := props[w.Property]
		if !ok {
			return nil, fmt.Errorf("screen: window on unknown property %q", w.Property)
		}
		if len(v) != n {
			return nil, &composition.DimensionMismatchError{Expected: n, Actual: len(v), Context: "screen property " + w.Property}
		}

		bm := windowBitmap(w, v)
		res.Windows = append(res.Windows, WindowStat{Window: w, Passed: int(bm.GetCardinality())})
		if mask == nil {
			mask = bm
		} else {
			mask.And(bm)
		}
	}
	if mask == nil {
		end, err := conv.IntToUint64(n)
		if err != nil {
			return nil, err
		}
		mask = roaring.New()
		mask.AddRange(0, end)
	}

	res.Records = make([]Record, 0, mask.GetCardinality())
	it := mask.Iterator()
	for it.HasNext() {
		row, err := conv.Uint32ToInt(it.Next())
		if err != nil {
			return nil, err
		}
		values := make([]float64, len(columns))
		for j, name := range columns {
			values[j] = props[name][row]
		}
		res.Records = append(res.Records, Record{
			Row:         row,
			Composition: slices.Clone(b.X.Row(row)),
			Values:      values,
		})
	}
	return res, nil
}

func windowBitmap(w Window, v []float64) *roaring.Bitmap {
	bm := roaring.New()
	for i, x := range v {
		if w.Contains(x) {
			bm.Add(uint32(i)) //nolint:gosec // n was checked against MaxUint32
		}
	}
	return bm
}
