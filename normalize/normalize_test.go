package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, n Normalizer, values []float64) {
	t.Helper()
	for _, x := range values {
		got := n.Denormalize(n.Normalize(x))
		tol := 1e-9 * math.Max(1, math.Abs(x))
		assert.InDelta(t, x, got, tol, "%s round trip of %g", n.Kind(), x)
	}
}

func TestRoundTrip(t *testing.T) {
	// Representative physical ranges: density (kg/m3), modulus (GPa), temperatures (K).
	values := []float64{0, 1, -1, 2.4e3, 2.9e3, 1e2, 773.15, 1573.15, 1e-12, 1e9, -1e9}

	mm, err := NewMinMax(500, 3000)
	require.NoError(t, err)
	roundTrip(t, mm, values)
	roundTrip(t, mm, []float64{mm.Min, mm.Max})
	assert.Equal(t, 0.0, mm.Normalize(500))
	assert.Equal(t, 1.0, mm.Normalize(3000))

	st, err := NewStandard(1200, 150)
	require.NoError(t, err)
	roundTrip(t, st, values)

	roundTrip(t, Identity{}, values)
}

func TestFit(t *testing.T) {
	labels := []float64{700, 800, 900, 1000}

	mm, err := FitMinMax(labels)
	require.NoError(t, err)
	assert.Equal(t, 700.0, mm.Min)
	assert.Equal(t, 1000.0, mm.Max)

	st, err := FitStandard(labels)
	require.NoError(t, err)
	assert.InDelta(t, 850, st.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(12500), st.Std, 1e-9)

	normalized := append([]float64(nil), labels...)
	NormalizeInPlace(st, normalized)
	var sum float64
	for _, v := range normalized {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-12)

	DenormalizeInPlace(st, normalized)
	assert.InDeltaSlice(t, labels, normalized, 1e-9)
}

func TestFit_Degenerate(t *testing.T) {
	_, err := FitMinMax([]float64{3, 3, 3})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = FitStandard([]float64{3, 3})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = FitMinMax(nil)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = NewMinMax(math.NaN(), 1)
	assert.Error(t, err)

	_, err = Fit("log", []float64{1, 2})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParams(t *testing.T) {
	tests := []Params{
		{Kind: KindIdentity},
		{Kind: KindMinMax, A: 2.2e3, B: 6.5e3},
		{Kind: KindStandard, A: 850, B: 120},
	}
	for _, p := range tests {
		t.Run(string(p.Kind), func(t *testing.T) {
			n, err := FromParams(p)
			require.NoError(t, err)
			assert.Equal(t, p, n.Params())
		})
	}

	n, err := FromParams(Params{})
	require.NoError(t, err)
	assert.Equal(t, KindIdentity, n.Kind())

	_, err = FromParams(Params{Kind: "bogus"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = FromParams(Params{Kind: KindMinMax, A: 1, B: 1})
	assert.ErrorIs(t, err, ErrDegenerate)
}
