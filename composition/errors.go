package composition

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is the sentinel matched by DimensionMismatchError.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionMismatchError indicates a batch/model or batch/vector width mismatch.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	// Context names the consumer that rejected the width (model, table, ...).
	Context string
}

func (e *DimensionMismatchError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: dimension mismatch: expected %d, got %d", e.Context, e.Expected, e.Actual)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// SimplexError reports a row that is off the simplex or outside its bounds.
type SimplexError struct {
	Row    int
	Column int // -1 when the row sum is off
	Value  float64
	Limit  float64
}

func (e *SimplexError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("row %d: sum %g is not 1 within tolerance", e.Row, e.Value)
	}
	return fmt.Sprintf("row %d column %d: value %g outside [0, %g]", e.Row, e.Column, e.Value, e.Limit)
}
