// Package surrogate provides pretrained regression models that map a batch of
// compositions to a normalized property value per row.
//
// The built-in Network is a dense feed-forward network. Inference always runs
// on a whole batch: rows are split into chunks evaluated in parallel, so a
// single Predict call amortizes setup over the entire population.
//
// A model has a fixed input width. Predict rejects a batch of any other width
// with a *composition.DimensionMismatchError before doing any arithmetic;
// callers that need a narrower view of a batch must project it explicitly.
//
// Networks are persisted as JSON artifacts (see Encode and Load), optionally
// compressed with zstd or lz4.
package surrogate
