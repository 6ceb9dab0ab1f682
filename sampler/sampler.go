package sampler

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"slices"

	"github.com/hupe1980/glassgen/bounds"
	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/internal/parallel"
	"github.com/hupe1980/glassgen/oxide"
)

// Config controls sampling.
type Config struct {
	// Count is the number of compositions to produce.
	Count int
	// Seed selects the random stream. Zero is replaced by a fixed default.
	Seed int64
	// MaxAttempts bounds the draws spent on a single row.
	MaxAttempts int
	// ChunkSize is the number of rows per random stream. Changing it changes the output.
	ChunkSize int
	// Workers bounds the number of chunks generated concurrently. Output does not depend on it.
	Workers int
}

// DefaultConfig returns the settings used by the screening pipeline.
func DefaultConfig() Config {
	return Config{
		Count:       100_000,
		Seed:        defaultSeed,
		MaxAttempts: 1_000_000,
		ChunkSize:   parallel.DefaultChunkSize,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("sampler: count must be non-negative, got %d", c.Count)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("sampler: max attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("sampler: chunk size must be non-negative, got %d", c.ChunkSize)
	}
	return nil
}

// Sampler generates bounded random compositions.
type Sampler struct {
	cfg Config
}

// New creates a Sampler. Zero ChunkSize and Workers take their defaults.
func New(cfg Config) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = parallel.DefaultChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Sampler{cfg: cfg}, nil
}

// Config returns the effective configuration.
func (s *Sampler) Config() Config { return s.cfg }

// Sample draws Count compositions over oxides, each within upper. molarMass
// holds the oxide molar masses aligned with oxides and is used to compute the
// molar mass of every row.
func (s *Sampler) Sample(ctx context.Context, oxides oxide.Set, upper, molarMass []float64) (*composition.Batch, error) {
	d := oxides.Len()
	if d == 0 {
		return nil, oxide.ErrEmptySet
	}
	if len(upper) != d {
		return nil, &composition.DimensionMismatchError{Expected: d, Actual: len(upper), Context: "sampler bounds"}
	}
	if len(molarMass) != d {
		return nil, &composition.DimensionMismatchError{Expected: d, Actual: len(molarMass), Context: "sampler molar masses"}
	}
	for j, u := range upper {
		if u < 0 || u > 1 {
			return nil, fmt.Errorf("sampler: bound %g for %s outside [0,1]", u, oxides.At(j))
		}
	}
	if !bounds.Feasible(upper) {
		var sum float64
		for _, u := range upper {
			sum += u
		}
		return nil, &InfeasibleError{Row: -1, BoundSum: sum}
	}

	// Oxides bounded at zero are pinned to zero; only the rest are drawn.
	active := make([]int, 0, d)
	for j, u := range upper {
		if u > 0 {
			active = append(active, j)
		}
	}

	x := composition.NewMatrix(s.cfg.Count, d)

	err := parallel.Chunks(ctx, s.cfg.Count, s.cfg.ChunkSize, s.cfg.Workers, func(_ context.Context, chunk, lo, hi int) error {
		rng := newChunkRNG(s.cfg.Seed, chunk)
		cuts := make([]float64, len(active)-1)
		point := make([]float64, len(active))
		for i := lo; i < hi; i++ {
			if err := s.drawRow(rng, cuts, point, active, upper, x.Row(i), i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return composition.NewBatch(oxides, x, molarMass)
}

// drawRow fills row with an accepted candidate. Candidates are drawn on the
// simplex spanned by the active columns; all other columns stay zero.
func (s *Sampler) drawRow(rng *rand.Rand, cuts, point []float64, active []int, upper, row []float64, index int) error {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		simplexPoint(rng, cuts, point)
		if within(point, active, upper) {
			clear(row)
			for k, j := range active {
				row[j] = point[k]
			}
			return nil
		}
	}
	return &InfeasibleError{Row: index, Attempts: s.cfg.MaxAttempts}
}

// simplexPoint writes a uniform point of the simplex into dst using the gaps
// between len(dst)-1 sorted uniforms on [0,1].
func simplexPoint(rng *rand.Rand, cuts, dst []float64) {
	for k := range cuts {
		cuts[k] = rng.Float64()
	}
	slices.Sort(cuts)

	prev := 0.0
	for k, c := range cuts {
		dst[k] = c - prev
		prev = c
	}
	dst[len(dst)-1] = 1 - prev
}

func within(point []float64, active []int, upper []float64) bool {
	for k, v := range point {
		if v > upper[active[k]] {
			return false
		}
	}
	return true
}
