// Package composition holds composition batches: row-major matrices whose rows
// are oxide fractions over an oxide.Set.
//
// Rows live in a single backing slice so that whole-batch operations
// (column drops, weighted sums, model inference) walk memory linearly.
package composition
