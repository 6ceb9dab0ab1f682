package composition

import (
	"math"

	"github.com/hupe1980/glassgen/oxide"
)

// DefaultTolerance is the row-sum tolerance used by CheckSimplex callers.
const DefaultTolerance = 1e-9

// Batch is a set of compositions over an oxide set together with the molar
// mass of every row. A Batch is not modified after it has been produced.
type Batch struct {
	Oxides    oxide.Set
	X         *Matrix
	MolarMass []float64
}

// NewBatch builds a Batch and computes per-row molar masses from the
// oxide molar masses (aligned with oxides).
func NewBatch(oxides oxide.Set, x *Matrix, oxideMolarMass []float64) (*Batch, error) {
	if x.Cols != oxides.Len() {
		return nil, &DimensionMismatchError{Expected: oxides.Len(), Actual: x.Cols, Context: "batch"}
	}
	mm, err := x.WeightedSum(oxideMolarMass)
	if err != nil {
		return nil, err
	}
	return &Batch{Oxides: oxides, X: x, MolarMass: mm}, nil
}

// Len returns the number of compositions.
func (b *Batch) Len() int { return b.X.Rows }

// CheckSimplex verifies that every row of m sums to 1 within tol and that
// every entry lies in [0, upper[j]].
func CheckSimplex(m *Matrix, upper []float64, tol float64) error {
	if len(upper) != m.Cols {
		return &DimensionMismatchError{Expected: m.Cols, Actual: len(upper), Context: "bounds"}
	}
	for i := range m.Rows {
		var sum float64
		for j, x := range m.Row(i) {
			if x < 0 || x > upper[j]+tol {
				return &SimplexError{Row: i, Column: j, Value: x, Limit: upper[j]}
			}
			sum += x
		}
		if math.Abs(sum-1) > tol {
			return &SimplexError{Row: i, Column: -1, Value: sum}
		}
	}
	return nil
}
