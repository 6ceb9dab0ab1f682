// Package testutil provides testing utilities for glassgen.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random compositions, building small
// surrogate networks with known outputs, and computing the expected result
// of a screening run by brute force.
//
// # Random Compositions
//
//	rng := testutil.NewRNG(seed)
//	rows := rng.SimplexRows(100, 3)   // uniform on the simplex
//	vals := rng.Uniform(100, 0, 20)   // uniform [0, 20)
//
// # Surrogate Fixtures
//
//	net, _ := testutil.LinearNetwork([]float64{1, 0, 0}, 0)
//	_, _ = testutil.PutLinearNetwork(ctx, store, "models/A.json", compress.ZSTD, w, 0)
//
// # Ground Truth
//
//	rows := testutil.BruteForceScreen(props, ranges, n)
package testutil
