package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/internal/compress"
)

// CSVWriter writes a table as CSV into a blob store.
type CSVWriter struct {
	store       blobstore.BlobStore
	name        string
	compression compress.Type
	precision   int
}

// CSVOption configures a CSVWriter.
type CSVOption func(*CSVWriter)

// WithCompression compresses the CSV payload. The blob name is not changed.
func WithCompression(c compress.Type) CSVOption {
	return func(w *CSVWriter) { w.compression = c }
}

// WithPrecision sets the number of significant digits. The default (-1) is
// the shortest representation that round-trips.
func WithPrecision(digits int) CSVOption {
	return func(w *CSVWriter) { w.precision = digits }
}

// NewCSVWriter returns a writer that stores the table under name.
func NewCSVWriter(store blobstore.BlobStore, name string, opts ...CSVOption) *CSVWriter {
	w := &CSVWriter{store: store, name: name, precision: -1}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the target blob name.
func (w *CSVWriter) Name() string { return w.name }

// Write implements Writer.
func (w *CSVWriter) Write(ctx context.Context, t *Table) error {
	data, err := w.Encode(t)
	if err != nil {
		return err
	}
	return w.store.Put(ctx, w.name, data)
}

// Encode renders t without storing it.
func (w *CSVWriter) Encode(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(t.Header()); err != nil {
		return nil, err
	}

	width := len(t.Oxides) + len(t.Properties)
	rec := make([]string, width)
	for i, row := range t.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("export: row %d has %d values, want %d", i, len(row), width)
		}
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', w.precision, 64)
		}
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return compress.Compress(buf.Bytes(), w.compression)
}
