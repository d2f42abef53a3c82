package frame

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sartorproj/roiseries/timeseries"
)

var (
	// ErrShape is returned when data does not fit a table's index or levels.
	ErrShape = errors.New("frame: shape mismatch")
	// ErrNoColumn is returned when a key names no column.
	ErrNoColumn = errors.New("frame: no such column")
)

// Table is a time-indexed table whose columns are addressed by composite
// keys. Column order is insertion order until SortColumns is called.
// Every column has exactly one value per index entry; missing values are NaN.
type Table struct {
	IndexName string
	Levels    []string

	index []time.Time
	keys  []Key
	cols  map[string][]float64
}

// NewTable creates an empty table over index with the given column level
// names. The index is copied.
func NewTable(index []time.Time, levels ...string) *Table {
	idx := make([]time.Time, len(index))
	copy(idx, index)
	lv := make([]string, len(levels))
	copy(lv, levels)
	return &Table{
		Levels: lv,
		index:  idx,
		cols:   make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.index)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.keys)
}

// Index returns a copy of the row index.
func (t *Table) Index() []time.Time {
	idx := make([]time.Time, len(t.index))
	copy(idx, t.index)
	return idx
}

// Keys returns a copy of the column keys in column order.
func (t *Table) Keys() []Key {
	keys := make([]Key, len(t.keys))
	for i, k := range t.keys {
		keys[i] = NewKey(k...)
	}
	return keys
}

// Set stores a copy of values under key, replacing an existing column with
// the same key in place.
func (t *Table) Set(key Key, values []float64) error {
	if len(key) != len(t.Levels) {
		return fmt.Errorf("%w: key %s has %d parts, table has %d levels", ErrShape, key, len(key), len(t.Levels))
	}
	if len(values) != len(t.index) {
		return fmt.Errorf("%w: column %s has %d values, index has %d", ErrShape, key, len(values), len(t.index))
	}
	col := make([]float64, len(values))
	copy(col, values)

	if t.cols == nil {
		t.cols = make(map[string][]float64)
	}
	id := key.id()
	if _, ok := t.cols[id]; !ok {
		t.keys = append(t.keys, NewKey(key...))
	}
	t.cols[id] = col
	return nil
}

// Column returns a copy of the column stored under key.
func (t *Table) Column(key Key) ([]float64, bool) {
	col, ok := t.cols[key.id()]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, true
}

// Series returns a copy of the column under key as a Series over the table
// index.
func (t *Table) Series(key Key) (*timeseries.Series, error) {
	col, ok := t.Column(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoColumn, key)
	}
	s, err := timeseries.NewWithTimestamps(t.Index(), col)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", key, err)
	}
	s.Name = key.String()
	return s, nil
}

// Has reports whether a column exists under key.
func (t *Table) Has(key Key) bool {
	_, ok := t.cols[key.id()]
	return ok
}

// Drop removes the column under key and reports whether it existed.
func (t *Table) Drop(key Key) bool {
	id := key.id()
	if _, ok := t.cols[id]; !ok {
		return false
	}
	delete(t.cols, id)
	for i, k := range t.keys {
		if k.id() == id {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	return true
}

// Select returns the keys matched by sel, in column order.
func (t *Table) Select(sel Selector) []Key {
	var out []Key
	for _, k := range t.keys {
		if sel.Matches(k) {
			out = append(out, NewKey(k...))
		}
	}
	return out
}

// SortColumns orders the columns by key.
func (t *Table) SortColumns() {
	sort.SliceStable(t.keys, func(i, j int) bool {
		return t.keys[i].Compare(t.keys[j]) < 0
	})
}

// SortIndex orders the rows by time, permuting every column alike.
func (t *Table) SortIndex() {
	order := make([]int, len(t.index))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.index[order[a]].Before(t.index[order[b]])
	})

	idx := make([]time.Time, len(order))
	for i, o := range order {
		idx[i] = t.index[o]
	}
	t.index = idx

	for id, col := range t.cols {
		sorted := make([]float64, len(order))
		for i, o := range order {
			sorted[i] = col[o]
		}
		t.cols[id] = sorted
	}
}

// Sorted returns a copy sorted on both axes.
func (t *Table) Sorted() *Table {
	c := t.Copy()
	c.SortIndex()
	c.SortColumns()
	return c
}

// Copy returns a deep copy.
func (t *Table) Copy() *Table {
	c := NewTable(t.index, t.Levels...)
	c.IndexName = t.IndexName
	c.keys = make([]Key, len(t.keys))
	for i, k := range t.keys {
		col := make([]float64, len(t.cols[k.id()]))
		copy(col, t.cols[k.id()])
		c.keys[i] = NewKey(k...)
		c.cols[k.id()] = col
	}
	return c
}

// Equal reports whether both tables have the same index, level names,
// column order and values. NaN equals NaN.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.IndexName != other.IndexName || len(t.Levels) != len(other.Levels) {
		return false
	}
	for i := range t.Levels {
		if t.Levels[i] != other.Levels[i] {
			return false
		}
	}
	if len(t.index) != len(other.index) || len(t.keys) != len(other.keys) {
		return false
	}
	for i := range t.index {
		if !t.index[i].Equal(other.index[i]) {
			return false
		}
	}
	for i, k := range t.keys {
		if !k.Equal(other.keys[i]) {
			return false
		}
		if !timeseries.EqualValues(t.cols[k.id()], other.cols[k.id()]) {
			return false
		}
	}
	return true
}
