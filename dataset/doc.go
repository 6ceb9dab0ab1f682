// Package dataset loads the tabular resources the pipeline is configured
// from: property datasets (oxide fractions plus one label column) and
// oxide-keyed coefficient tables.
//
// Both are CSV with a header row. Payloads may be zstd or lz4 compressed;
// the frame is detected from the content.
package dataset
