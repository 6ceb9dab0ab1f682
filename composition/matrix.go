package composition

import (
	"fmt"
	"slices"
)

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// FromRows copies a slice of equally sized rows into a Matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, &DimensionMismatchError{Expected: cols, Actual: len(r), Context: fmt.Sprintf("row %d", i)}
		}
		copy(m.Data[i*cols:], r)
	}
	return m, nil
}

// Row returns a view of row i. The view aliases the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{Rows: m.Rows, Cols: m.Cols, Data: slices.Clone(m.Data)}
}

// SelectColumns returns a new matrix made of the given columns, in order.
func (m *Matrix) SelectColumns(cols []int) (*Matrix, error) {
	for _, c := range cols {
		if c < 0 || c >= m.Cols {
			return nil, fmt.Errorf("column %d out of range [0,%d)", c, m.Cols)
		}
	}
	out := NewMatrix(m.Rows, len(cols))
	for i := range m.Rows {
		src := m.Row(i)
		dst := out.Row(i)
		for k, c := range cols {
			dst[k] = src[c]
		}
	}
	return out, nil
}

// DropColumn returns a new matrix without column j.
func (m *Matrix) DropColumn(j int) (*Matrix, error) {
	if j < 0 || j >= m.Cols {
		return nil, fmt.Errorf("column %d out of range [0,%d)", j, m.Cols)
	}
	out := NewMatrix(m.Rows, m.Cols-1)
	for i := range m.Rows {
		src := m.Row(i)
		dst := out.Row(i)
		copy(dst, src[:j])
		copy(dst[j:], src[j+1:])
	}
	return out, nil
}

// WeightedSum returns, for every row, the dot product with w.
func (m *Matrix) WeightedSum(w []float64) ([]float64, error) {
	if len(w) != m.Cols {
		return nil, &DimensionMismatchError{Expected: m.Cols, Actual: len(w), Context: "weighted sum"}
	}
	out := make([]float64, m.Rows)
	for i := range m.Rows {
		var s float64
		for j, x := range m.Row(i) {
			s += x * w[j]
		}
		out[i] = s
	}
	return out, nil
}
