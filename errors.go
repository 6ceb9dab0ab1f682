package glassgen

import (
	"errors"
	"fmt"

	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/sampler"
)

var (
	// ErrNoEvaluators is returned when a pipeline has no property to predict.
	ErrNoEvaluators = errors.New("no property evaluators configured")

	// ErrUnknownProperty is returned when a window names a property without evaluator.
	ErrUnknownProperty = errors.New("unknown property")
)

// ErrInfeasible indicates that no composition satisfies the intersected bounds.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrInfeasible struct {
	Row      int
	Attempts int
	BoundSum float64
	cause    error
}

func (e *ErrInfeasible) Error() string {
	return fmt.Sprintf("infeasible bounds: %v", e.cause)
}

func (e *ErrInfeasible) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a batch/model or batch/vector width mismatch.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d: %v", e.Expected, e.Actual, e.cause)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrMisaligned indicates that a dataset lists its oxides in an order that
// cannot be mapped onto the global oxide set.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrMisaligned struct {
	Oxide string
	cause error
}

func (e *ErrMisaligned) Error() string {
	return fmt.Sprintf("misaligned oxide %q: %v", e.Oxide, e.cause)
}

func (e *ErrMisaligned) Unwrap() error { return e.cause }

// translateError maps errors of the stage packages to the root error types.
// Anything else, store and artifact errors included, is returned unmodified.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var inf *sampler.InfeasibleError
	if errors.As(err, &inf) {
		return &ErrInfeasible{Row: inf.Row, Attempts: inf.Attempts, BoundSum: inf.BoundSum, cause: err}
	}
	var dm *composition.DimensionMismatchError
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var mis *oxide.MisalignedError
	if errors.As(err, &mis) {
		return &ErrMisaligned{Oxide: mis.Oxide, cause: err}
	}

	return err
}
