// Package sampler draws random compositions on the probability simplex
// subject to per-oxide upper bounds.
//
// Candidates are uniform on the simplex: D-1 sorted uniforms cut [0,1] into D
// non-negative parts. A candidate violating any upper bound is discarded and
// redrawn. Rows are produced in fixed-size chunks, each with its own random
// stream derived from the configured seed, so a given (Seed, ChunkSize) pair
// always yields the same batch regardless of the number of workers.
package sampler
