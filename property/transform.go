package property

import (
	"fmt"
	"strings"

	"github.com/hupe1980/glassgen/composition"
)

// Transform converts between physical property values and the labels a model
// was trained on. Forward and Inverse are exact inverses of each other and
// operate in place.
type Transform interface {
	Name() string
	// Forward maps physical values to training labels.
	Forward(v []float64, b *composition.Batch) error
	// Inverse maps training labels back to physical values.
	Inverse(v []float64, b *composition.Batch) error
}

// Identity trains directly on the physical values.
type Identity struct{}

func (Identity) Name() string                                    { return TransformIdentity }
func (Identity) Forward(v []float64, b *composition.Batch) error { return checkLen(v, b) }
func (Identity) Inverse(v []float64, b *composition.Batch) error { return checkLen(v, b) }

// CoefficientRatio trains on value / (Factor * sum_i c_i x_i), where c is a
// per-oxide coefficient vector aligned with the batch oxides. Young's modulus
// over twice the bond dissociation energy is the typical use.
type CoefficientRatio struct {
	Coefficients []float64
	Factor       float64
}

func (CoefficientRatio) Name() string { return TransformCoefficientRatio }

// Forward implements Transform.
func (t CoefficientRatio) Forward(v []float64, b *composition.Batch) error {
	den, err := t.denominators(v, b)
	if err != nil {
		return err
	}
	for i := range v {
		v[i] /= den[i]
	}
	return nil
}

// Inverse implements Transform.
func (t CoefficientRatio) Inverse(v []float64, b *composition.Batch) error {
	den, err := t.denominators(v, b)
	if err != nil {
		return err
	}
	for i := range v {
		v[i] *= den[i]
	}
	return nil
}

func (t CoefficientRatio) denominators(v []float64, b *composition.Batch) ([]float64, error) {
	if err := checkLen(v, b); err != nil {
		return nil, err
	}
	if t.Factor == 0 {
		return nil, fmt.Errorf("%s: factor must be non-zero", TransformCoefficientRatio)
	}
	s, err := b.X.WeightedSum(t.Coefficients)
	if err != nil {
		return nil, err
	}
	for i := range s {
		s[i] *= t.Factor
		if s[i] == 0 {
			return nil, fmt.Errorf("%s: row %d has a zero weighted coefficient sum", TransformCoefficientRatio, i)
		}
	}
	return s, nil
}

// MolarVolume trains on M(x)/value, the molar volume when value is a density.
// The inverse recovers the density as M(x)/label.
type MolarVolume struct{}

func (MolarVolume) Name() string { return TransformMolarVolume }

// Forward implements Transform.
func (MolarVolume) Forward(v []float64, b *composition.Batch) error { return reciprocalScale(v, b) }

// Inverse implements Transform.
func (MolarVolume) Inverse(v []float64, b *composition.Batch) error { return reciprocalScale(v, b) }

// reciprocalScale maps v[i] to M[i]/v[i], which is its own inverse.
func reciprocalScale(v []float64, b *composition.Batch) error {
	if err := checkLen(v, b); err != nil {
		return err
	}
	if len(b.MolarMass) != len(v) {
		return &composition.DimensionMismatchError{Expected: len(v), Actual: len(b.MolarMass), Context: TransformMolarVolume}
	}
	for i := range v {
		if v[i] == 0 {
			return fmt.Errorf("%s: row %d: zero value", TransformMolarVolume, i)
		}
		v[i] = b.MolarMass[i] / v[i]
	}
	return nil
}

func checkLen(v []float64, b *composition.Batch) error {
	if len(v) != b.Len() {
		return &composition.DimensionMismatchError{Expected: b.Len(), Actual: len(v), Context: "property values"}
	}
	return nil
}

// Transform kinds accepted by TransformSpec.
const (
	TransformIdentity         = "identity"
	TransformCoefficientRatio = "coefficient_ratio"
	TransformMolarVolume      = "molar_volume"
)

// TransformSpec is the declarative form of a Transform.
//
// Coefficients names the coefficient table used by coefficient_ratio and
// Column the table column holding the coefficients.
type TransformSpec struct {
	Kind         string  `json:"kind,omitempty" mapstructure:"kind"`
	Factor       float64 `json:"factor,omitempty" mapstructure:"factor"`
	Coefficients string  `json:"coefficients,omitempty" mapstructure:"coefficients"`
}

func (ts TransformSpec) kind() string {
	k := strings.ToLower(strings.TrimSpace(ts.Kind))
	if k == "" {
		return TransformIdentity
	}
	return k
}

func (ts TransformSpec) validate() error {
	switch ts.kind() {
	case TransformIdentity, TransformMolarVolume:
		return nil
	case TransformCoefficientRatio:
		if ts.Coefficients == "" {
			return fmt.Errorf("%s transform needs a coefficient table", TransformCoefficientRatio)
		}
		return nil
	default:
		return fmt.Errorf("unknown transform %q", ts.Kind)
	}
}
