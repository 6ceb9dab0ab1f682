package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/glassgen"
	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/property"
	"github.com/hupe1980/glassgen/sampler"
	"github.com/hupe1980/glassgen/screen"
	"github.com/hupe1980/glassgen/surrogate"
	"github.com/hupe1980/glassgen/testutil"
)

var oxides = oxide.MustSet("SiO2", "B2O3", "Al2O3", "Na2O", "K2O", "CaO", "MgO", "ZnO")

// mlp builds an 8x20x20x20x1 GELU network with random weights.
func mlp(b *testing.B, opts ...surrogate.Option) *surrogate.Network {
	b.Helper()
	rng := testutil.NewRNG(1)
	arch := surrogate.Architecture{Inputs: oxides.Len(), Hidden: []int{20, 20, 20}}
	widths := append(append([]int{oxides.Len()}, arch.Hidden...), 1)

	layers := make([]surrogate.Layer, len(widths)-1)
	for i := range layers {
		in, out := widths[i], widths[i+1]
		layers[i] = surrogate.Layer{
			In:      in,
			Out:     out,
			Weights: rng.Uniform(in*out, -0.5, 0.5),
			Bias:    rng.Uniform(out, -0.1, 0.1),
		}
	}
	net, err := surrogate.NewNetwork(arch, layers, opts...)
	if err != nil {
		b.Fatal(err)
	}
	return net
}

func batch(b *testing.B, n int) *composition.Batch {
	b.Helper()
	bt, err := testutil.Batch(oxides, testutil.NewRNG(2).SimplexRows(n, oxides.Len()))
	if err != nil {
		b.Fatal(err)
	}
	return bt
}

func BenchmarkSample(b *testing.B) {
	upper := []float64{0.8, 0.3, 0.2, 0.25, 0.1, 0.3, 0.2, 0.1}
	mm, err := oxide.DefaultMolarMasses.Vector(oxides)
	if err != nil {
		b.Fatal(err)
	}

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			s, err := sampler.New(sampler.Config{Count: 10_000, Seed: 1, MaxAttempts: 1_000_000, Workers: workers})
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Sample(context.Background(), oxides, upper, mm); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPredict(b *testing.B) {
	x := batch(b, 100_000).X

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			net := mlp(b, surrogate.WithWorkers(workers))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := net.Predict(context.Background(), x); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkScreen(b *testing.B) {
	const n = 100_000
	bt := batch(b, n)
	rng := testutil.NewRNG(3)
	props := map[string][]float64{
		"rho": rng.Uniform(n, 2000, 3000),
		"Tg":  rng.Uniform(n, 600, 1000),
		"E":   rng.Uniform(n, 50, 100),
	}
	s, err := screen.New([]screen.Window{
		{Property: "rho", Min: 2400, Max: 2600, Enabled: true},
		{Property: "Tg", Min: 700, Max: 900, Enabled: true},
		{Property: "E", Min: 60, Max: 90, Enabled: true},
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Screen(bt, props); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPipeline(b *testing.B) {
	eval, err := property.NewEvaluator("y", mlp(b), nil)
	if err != nil {
		b.Fatal(err)
	}
	p, err := glassgen.New(glassgen.Config{
		Oxides:     oxides,
		Sampler:    sampler.Config{Count: 20_000, Seed: 1, MaxAttempts: 1_000_000},
		Evaluators: property.Evaluators{eval},
		Windows:    []screen.Window{{Property: "y", Min: -1, Max: 1, Enabled: true}},
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
