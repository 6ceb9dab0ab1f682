package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/surrogate"
)

func TestRNGReset(t *testing.T) {
	rng := NewRNG(42)
	assert.Equal(t, int64(42), rng.Seed())

	v1 := rng.Uniform(10, -1, 1)
	rng.Reset()
	v2 := rng.Uniform(10, -1, 1)
	assert.Equal(t, v1, v2)

	for _, v := range v1 {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSimplexRows(t *testing.T) {
	rng := NewRNG(1)
	rows := rng.SimplexRows(1000, 4)
	require.Len(t, rows, 1000)

	for _, row := range rows {
		require.Len(t, row, 4)
		var sum float64
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestBatch(t *testing.T) {
	b, err := Batch(oxide.MustSet("SiO2", "Na2O"), [][]float64{{1, 0}, {0.5, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.InDelta(t, 60.0843, b.MolarMass[0], 1e-9)
}

func TestLinearNetwork(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	arch, err := PutLinearNetwork(ctx, store, "m.json", compress.LZ4, []float64{2, -1}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, arch.Inputs)

	net, err := surrogate.Load(ctx, store, "m.json")
	require.NoError(t, err)
	b, err := Batch(oxide.MustSet("SiO2", "Na2O"), [][]float64{{1, 0}, {0.25, 0.75}})
	require.NoError(t, err)
	y, err := net.Predict(ctx, b.X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.5, 0.25}, y, 1e-12)
}

func TestBruteForceScreen(t *testing.T) {
	props := map[string][]float64{
		"A": {1, 5, 11, 10},
		"B": {5, 20, 7, 15},
	}
	got := BruteForceScreen(props, []Range{{"A", 0, 10}, {"B", 5, 15}}, 4)
	assert.Equal(t, []int{0, 3}, got)

	assert.Equal(t, []int{0, 1, 2, 3}, BruteForceScreen(props, nil, 4))
}
