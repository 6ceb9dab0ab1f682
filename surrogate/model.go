package surrogate

import (
	"context"
	"fmt"

	"github.com/hupe1980/glassgen/composition"
)

// Model is a deterministic batch regressor.
type Model interface {
	// InputWidth returns the number of oxide columns the model was trained on.
	InputWidth() int
	// Predict returns one normalized prediction per row of x.
	Predict(ctx context.Context, x *composition.Matrix) ([]float64, error)
}

// CheckWidth returns a DimensionMismatchError if x does not match m.
func CheckWidth(m Model, x *composition.Matrix) error {
	if x.Cols != m.InputWidth() {
		return &composition.DimensionMismatchError{Expected: m.InputWidth(), Actual: x.Cols, Context: "surrogate model"}
	}
	return nil
}

// Func adapts a per-row function to the Model interface.
// It is meant for analytical models and tests.
type Func struct {
	Width int
	F     func(row []float64) float64
}

// InputWidth implements Model.
func (f Func) InputWidth() int { return f.Width }

// Predict implements Model.
func (f Func) Predict(ctx context.Context, x *composition.Matrix) ([]float64, error) {
	if f.F == nil {
		return nil, fmt.Errorf("surrogate: Func without F")
	}
	if err := CheckWidth(f, x); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]float64, x.Rows)
	for i := range x.Rows {
		out[i] = f.F(x.Row(i))
	}
	return out, nil
}
