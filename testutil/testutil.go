package testutil

import (
	"context"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/surrogate"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Uniform returns n values drawn uniformly from [lo, hi).
func (r *RNG) Uniform(n int, lo, hi float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + r.rand.Float64()*(hi-lo)
	}
	return out
}

// SimplexRows returns num points drawn uniformly from the d-dimensional
// simplex. Every row is non-negative and sums to one.
func (r *RNG) SimplexRows(num, d int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]float64, num)
	cuts := make([]float64, d-1)
	for i := range rows {
		for k := range cuts {
			cuts[k] = r.rand.Float64()
		}
		slices.Sort(cuts)

		row := make([]float64, d)
		prev := 0.0
		for k, c := range cuts {
			row[k] = c - prev
			prev = c
		}
		row[d-1] = 1 - prev
		rows[i] = row
	}
	return rows
}

// Batch builds a batch over oxides using the built-in molar masses.
func Batch(oxides oxide.Set, rows [][]float64) (*composition.Batch, error) {
	x, err := composition.FromRows(rows)
	if err != nil {
		return nil, err
	}
	mm, err := oxide.DefaultMolarMasses.Vector(oxides)
	if err != nil {
		return nil, err
	}
	return composition.NewBatch(oxides, x, mm)
}

// LinearNetwork returns a single-layer network computing w·x + bias.
func LinearNetwork(w []float64, bias float64, opts ...surrogate.Option) (*surrogate.Network, error) {
	arch := surrogate.Architecture{Inputs: len(w), Output: surrogate.Linear}
	return surrogate.NewNetwork(arch, []surrogate.Layer{{
		In:      len(w),
		Out:     1,
		Weights: slices.Clone(w),
		Bias:    []float64{bias},
	}}, opts...)
}

// PutLinearNetwork stores a LinearNetwork artifact under name and returns
// its architecture.
func PutLinearNetwork(ctx context.Context, store blobstore.BlobStore, name string, ct compress.Type, w []float64, bias float64) (surrogate.Architecture, error) {
	net, err := LinearNetwork(w, bias)
	if err != nil {
		return surrogate.Architecture{}, err
	}
	data, err := surrogate.Encode(net, ct)
	if err != nil {
		return surrogate.Architecture{}, err
	}
	return net.Architecture(), store.Put(ctx, name, data)
}

// Range is an inclusive acceptance interval on one property.
type Range struct {
	Property string
	Min, Max float64
}

// BruteForceScreen returns, in ascending order, the rows in [0,n) whose
// values fall inside every range.
func BruteForceScreen(props map[string][]float64, ranges []Range, n int) []int {
	var out []int
	for i := range n {
		ok := true
		for _, rg := range ranges {
			v := props[rg.Property][i]
			if !(v >= rg.Min && v <= rg.Max) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, i)
		}
	}
	return out
}
