// Package bounds reconciles per-dataset oxide upper bounds into one global
// feasibility envelope.
//
// Each dataset contributes an upper bound per oxide it covers. Datasets that
// omit an oxide place no constraint on it, so the missing entry is padded with
// 1 before taking the element-wise minimum.
package bounds

import (
	"fmt"
	"math"

	"github.com/hupe1980/glassgen/oxide"
)

// Unconstrained is the bound used for oxides a dataset does not cover.
const Unconstrained = 1.0

// Dataset is the per-oxide upper bound vector of one property dataset.
type Dataset struct {
	Name   string
	Oxides oxide.Set
	Upper  []float64
}

// Validate checks the length and range of the bound vector.
func (d Dataset) Validate() error {
	if len(d.Upper) != d.Oxides.Len() {
		return fmt.Errorf("dataset %q: %d bounds for %d oxides", d.Name, len(d.Upper), d.Oxides.Len())
	}
	for i, u := range d.Upper {
		if math.IsNaN(u) || u < 0 || u > 1 {
			return fmt.Errorf("dataset %q: bound %g for %s outside [0,1]", d.Name, u, d.Oxides.At(i))
		}
	}
	return nil
}

// Align expands the bounds of d to the global set, padding absent oxides with
// Unconstrained.
func Align(global oxide.Set, d Dataset) ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	pos, err := global.Align(d.Oxides)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", d.Name, err)
	}
	out := make([]float64, global.Len())
	for i := range out {
		out[i] = Unconstrained
	}
	for k, j := range pos {
		out[j] = d.Upper[k]
	}
	return out, nil
}

// Intersect returns the element-wise minimum of every dataset's bounds after
// alignment to global. Every dataset is aligned before any minimum is taken,
// so a misaligned dataset never contributes to a partial result.
//
// With no datasets the result is unconstrained everywhere.
func Intersect(global oxide.Set, datasets ...Dataset) ([]float64, error) {
	if global.Len() == 0 {
		return nil, oxide.ErrEmptySet
	}

	aligned := make([][]float64, len(datasets))
	for i, d := range datasets {
		a, err := Align(global, d)
		if err != nil {
			return nil, err
		}
		aligned[i] = a
	}

	out := make([]float64, global.Len())
	for j := range out {
		out[j] = Unconstrained
		for _, a := range aligned {
			out[j] = math.Min(out[j], a[j])
		}
	}
	return out, nil
}

// Feasible reports whether the simplex intersects the box [0, upper]:
// a composition summing to one exists only if the bounds sum to at least one.
func Feasible(upper []float64) bool {
	var s float64
	for _, u := range upper {
		s += u
	}
	return s >= 1
}
