// Package normalize implements label normalizations and their exact inverses.
//
// Surrogate models are trained on normalized labels; predictions are mapped
// back to physical units with Denormalize. For every Normalizer,
// Denormalize(Normalize(x)) == x up to floating point rounding.
package normalize

import (
	"errors"
	"fmt"
	"math"
)

// Kind identifies a normalization scheme.
type Kind string

const (
	// KindIdentity leaves labels unchanged.
	KindIdentity Kind = "identity"
	// KindMinMax maps [min,max] onto [0,1].
	KindMinMax Kind = "minmax"
	// KindStandard maps labels to zero mean and unit variance.
	KindStandard Kind = "standard"
)

var (
	// ErrDegenerate is returned when labels have no spread to normalize by.
	ErrDegenerate = errors.New("degenerate normalization: zero spread")

	// ErrUnknownKind is returned for unsupported normalization kinds.
	ErrUnknownKind = errors.New("unknown normalization kind")
)

// Normalizer is an invertible affine label transform.
type Normalizer interface {
	Normalize(x float64) float64
	Denormalize(y float64) float64
	Kind() Kind
	Params() Params
}

// Params is the serialized form of a Normalizer.
//
// For KindMinMax, A and B are min and max; for KindStandard they are mean and
// standard deviation. KindIdentity ignores both.
type Params struct {
	Kind Kind    `json:"kind" mapstructure:"kind"`
	A    float64 `json:"a" mapstructure:"a"`
	B    float64 `json:"b" mapstructure:"b"`
}

// FromParams reconstructs a Normalizer.
func FromParams(p Params) (Normalizer, error) {
	switch p.Kind {
	case KindIdentity, "":
		return Identity{}, nil
	case KindMinMax:
		return NewMinMax(p.A, p.B)
	case KindStandard:
		return NewStandard(p.A, p.B)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}

// Fit derives a Normalizer of the given kind from training labels.
func Fit(kind Kind, labels []float64) (Normalizer, error) {
	switch kind {
	case KindIdentity, "":
		return Identity{}, nil
	case KindMinMax:
		return FitMinMax(labels)
	case KindStandard:
		return FitStandard(labels)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// NormalizeInPlace applies n.Normalize to every element of v.
func NormalizeInPlace(n Normalizer, v []float64) {
	for i, x := range v {
		v[i] = n.Normalize(x)
	}
}

// DenormalizeInPlace applies n.Denormalize to every element of v.
func DenormalizeInPlace(n Normalizer, v []float64) {
	for i, y := range v {
		v[i] = n.Denormalize(y)
	}
}

// Identity is the no-op normalization.
type Identity struct{}

func (Identity) Normalize(x float64) float64   { return x }
func (Identity) Denormalize(y float64) float64 { return y }
func (Identity) Kind() Kind                    { return KindIdentity }
func (Identity) Params() Params                { return Params{Kind: KindIdentity} }

// MinMax maps [Min,Max] linearly onto [0,1].
type MinMax struct {
	Min, Max float64
	span     float64
}

// NewMinMax validates and builds a MinMax normalizer.
func NewMinMax(minVal, maxVal float64) (*MinMax, error) {
	if !finite(minVal) || !finite(maxVal) {
		return nil, fmt.Errorf("minmax: non-finite range [%g, %g]", minVal, maxVal)
	}
	if maxVal <= minVal {
		return nil, fmt.Errorf("%w: minmax range [%g, %g]", ErrDegenerate, minVal, maxVal)
	}
	return &MinMax{Min: minVal, Max: maxVal, span: maxVal - minVal}, nil
}

// FitMinMax uses the observed range of labels.
func FitMinMax(labels []float64) (*MinMax, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrDegenerate)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range labels {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return NewMinMax(lo, hi)
}

func (m *MinMax) Normalize(x float64) float64   { return (x - m.Min) / m.span }
func (m *MinMax) Denormalize(y float64) float64 { return y*m.span + m.Min }
func (m *MinMax) Kind() Kind                    { return KindMinMax }
func (m *MinMax) Params() Params                { return Params{Kind: KindMinMax, A: m.Min, B: m.Max} }

// Standard maps labels to zero mean and unit standard deviation.
type Standard struct {
	Mean, Std float64
}

// NewStandard validates and builds a Standard normalizer.
func NewStandard(mean, std float64) (*Standard, error) {
	if !finite(mean) || !finite(std) {
		return nil, fmt.Errorf("standard: non-finite parameters mean=%g std=%g", mean, std)
	}
	if std <= 0 {
		return nil, fmt.Errorf("%w: standard deviation %g", ErrDegenerate, std)
	}
	return &Standard{Mean: mean, Std: std}, nil
}

// FitStandard uses the mean and population standard deviation of labels.
func FitStandard(labels []float64) (*Standard, error) {
	n := len(labels)
	if n == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrDegenerate)
	}
	var mean float64
	for _, v := range labels {
		mean += v
	}
	mean /= float64(n)

	var ss float64
	for _, v := range labels {
		d := v - mean
		ss += d * d
	}
	return NewStandard(mean, math.Sqrt(ss/float64(n)))
}

func (s *Standard) Normalize(x float64) float64   { return (x - s.Mean) / s.Std }
func (s *Standard) Denormalize(y float64) float64 { return y*s.Std + s.Mean }
func (s *Standard) Kind() Kind                    { return KindStandard }
func (s *Standard) Params() Params                { return Params{Kind: KindStandard, A: s.Mean, B: s.Std} }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
