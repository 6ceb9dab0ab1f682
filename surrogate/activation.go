package surrogate

import (
	"fmt"
	"math"
)

// Activation names an element-wise activation function.
type Activation string

const (
	GELU    Activation = "gelu"
	ReLU    Activation = "relu"
	Tanh    Activation = "tanh"
	Sigmoid Activation = "sigmoid"
	Linear  Activation = "linear"
)

// Validate reports whether a is supported.
func (a Activation) Validate() error {
	switch a {
	case GELU, ReLU, Tanh, Sigmoid, Linear:
		return nil
	default:
		return fmt.Errorf("surrogate: unsupported activation %q", a)
	}
}

// applyInPlace applies a to every element of v.
func (a Activation) applyInPlace(v []float64) {
	switch a {
	case GELU:
		// exact form, matching Keras' default (approximate=False)
		for i, x := range v {
			v[i] = 0.5 * x * (1 + math.Erf(x/math.Sqrt2))
		}
	case ReLU:
		for i, x := range v {
			if x < 0 {
				v[i] = 0
			}
		}
	case Tanh:
		for i, x := range v {
			v[i] = math.Tanh(x)
		}
	case Sigmoid:
		for i, x := range v {
			v[i] = 1 / (1 + math.Exp(-x))
		}
	}
}
