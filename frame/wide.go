package frame

import (
	"fmt"
	"math"
)

// Wide is a sample-indexed table whose column labels are plain strings,
// typically compound labels such as "Feature_1_2457350.0000000000".
// Values are stored row-major: Values[row][col].
type Wide struct {
	IndexName   string
	ColumnsName string
	Index       []string
	Columns     []string
	Values      [][]float64
}

// NewWide validates the shape and returns a Wide table holding the given
// slices.
func NewWide(index, columns []string, values [][]float64) (*Wide, error) {
	w := &Wide{Index: index, Columns: columns, Values: values}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks that there is one value row per index entry and one
// value per column in each row.
func (w *Wide) Validate() error {
	if len(w.Values) != len(w.Index) {
		return fmt.Errorf("%w: %d value rows for %d index entries", ErrShape, len(w.Values), len(w.Index))
	}
	for i, row := range w.Values {
		if len(row) != len(w.Columns) {
			return fmt.Errorf("%w: row %q has %d values for %d columns", ErrShape, w.Index[i], len(row), len(w.Columns))
		}
	}
	return nil
}

// Concat appends the columns of other. Both tables must share the same
// row index in the same order.
func (w *Wide) Concat(other *Wide) (*Wide, error) {
	if len(w.Index) != len(other.Index) {
		return nil, fmt.Errorf("%w: cannot concat %d rows with %d rows", ErrShape, len(w.Index), len(other.Index))
	}
	for i := range w.Index {
		if w.Index[i] != other.Index[i] {
			return nil, fmt.Errorf("%w: row %d is %q on the left and %q on the right", ErrShape, i, w.Index[i], other.Index[i])
		}
	}

	out := w.Copy()
	out.Columns = append(out.Columns, other.Columns...)
	for i := range out.Values {
		out.Values[i] = append(out.Values[i], other.Values[i]...)
	}
	return out, nil
}

// Copy returns a deep copy.
func (w *Wide) Copy() *Wide {
	index := make([]string, len(w.Index))
	copy(index, w.Index)
	columns := make([]string, len(w.Columns))
	copy(columns, w.Columns)
	values := make([][]float64, len(w.Values))
	for i, row := range w.Values {
		values[i] = make([]float64, len(row))
		copy(values[i], row)
	}
	return &Wide{
		IndexName:   w.IndexName,
		ColumnsName: w.ColumnsName,
		Index:       index,
		Columns:     columns,
		Values:      values,
	}
}

// Equal reports whether both tables carry the same names, labels and
// values. NaN equals NaN.
func (w *Wide) Equal(other *Wide) bool {
	if w == nil || other == nil {
		return w == other
	}
	if w.IndexName != other.IndexName || w.ColumnsName != other.ColumnsName {
		return false
	}
	if len(w.Index) != len(other.Index) || len(w.Columns) != len(other.Columns) || len(w.Values) != len(other.Values) {
		return false
	}
	for i := range w.Index {
		if w.Index[i] != other.Index[i] {
			return false
		}
	}
	for i := range w.Columns {
		if w.Columns[i] != other.Columns[i] {
			return false
		}
	}
	for i := range w.Values {
		if len(w.Values[i]) != len(other.Values[i]) {
			return false
		}
		for j := range w.Values[i] {
			a, b := w.Values[i][j], other.Values[i][j]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		}
	}
	return true
}
