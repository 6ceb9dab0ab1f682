package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks_Coverage(t *testing.T) {
	const n = 10
	seen := make([]int32, n)

	err := Chunks(context.Background(), n, 3, 2, func(_ context.Context, chunk, lo, hi int) error {
		assert.Equal(t, chunk*3, lo)
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
		return nil
	})
	require.NoError(t, err)
	for i, v := range seen {
		assert.Equal(t, int32(1), v, "row %d", i)
	}
	assert.Equal(t, 4, NumChunks(n, 3))
}

func TestChunks_Error(t *testing.T) {
	boom := errors.New("boom")
	err := Chunks(context.Background(), 100, 10, 1, func(_ context.Context, chunk, _, _ int) error {
		if chunk == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestChunks_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := Chunks(ctx, 100, 10, 4, func(context.Context, int, int, int) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestChunks_Empty(t *testing.T) {
	err := Chunks(context.Background(), 0, 10, 1, func(context.Context, int, int, int) error {
		t.Fatal("unexpected call")
		return nil
	})
	assert.NoError(t, err)
}
