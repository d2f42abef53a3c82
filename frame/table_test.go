package frame

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(base time.Time, offsets ...int) []time.Time {
	out := make([]time.Time, len(offsets))
	for i, o := range offsets {
		out[i] = base.AddDate(0, 0, o)
	}
	return out
}

var base = time.Date(2015, 11, 23, 0, 0, 0, 0, time.UTC)

func TestTableSetAndColumn(t *testing.T) {
	tbl := NewTable(days(base, 0, 12, 24), "ID", "feature")

	values := []float64{1, 2, 3}
	require.NoError(t, tbl.Set(NewKey("ID_1", "Feature_1"), values))

	values[0] = 100
	col, ok := tbl.Column(NewKey("ID_1", "Feature_1"))
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, col, "Set must copy its input")

	col[1] = 200
	again, _ := tbl.Column(NewKey("ID_1", "Feature_1"))
	assert.Equal(t, []float64{1, 2, 3}, again, "Column must return a copy")

	_, ok = tbl.Column(NewKey("ID_1", "Feature_2"))
	assert.False(t, ok)
}

func TestTableSetShapeErrors(t *testing.T) {
	tbl := NewTable(days(base, 0, 12), "ID", "feature")

	err := tbl.Set(NewKey("ID_1"), []float64{1, 2})
	assert.True(t, errors.Is(err, ErrShape), "wrong level count: %v", err)

	err = tbl.Set(NewKey("ID_1", "Feature_1"), []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrShape), "wrong length: %v", err)

	assert.Equal(t, 0, tbl.NumColumns())
}

func TestTableSetReplacesInPlace(t *testing.T) {
	tbl := NewTable(days(base, 0), "k")
	require.NoError(t, tbl.Set(NewKey("a"), []float64{1}))
	require.NoError(t, tbl.Set(NewKey("b"), []float64{2}))
	require.NoError(t, tbl.Set(NewKey("a"), []float64{3}))

	assert.Equal(t, []Key{{"a"}, {"b"}}, tbl.Keys())
	col, _ := tbl.Column(NewKey("a"))
	assert.Equal(t, []float64{3}, col)
}

func TestTableDrop(t *testing.T) {
	tbl := NewTable(days(base, 0), "k")
	require.NoError(t, tbl.Set(NewKey("a"), []float64{1}))
	require.NoError(t, tbl.Set(NewKey("b"), []float64{2}))

	assert.True(t, tbl.Drop(NewKey("a")))
	assert.False(t, tbl.Drop(NewKey("a")))
	assert.False(t, tbl.Has(NewKey("a")))
	assert.Equal(t, []Key{{"b"}}, tbl.Keys())
}

func TestTableSort(t *testing.T) {
	tbl := NewTable(days(base, 24, 0, 12), "ID", "feature")
	require.NoError(t, tbl.Set(NewKey("ID_7", "Feature_1"), []float64{73, 71, 72}))
	require.NoError(t, tbl.Set(NewKey("ID_1", "Feature_2"), []float64{319, 317, 318}))
	require.NoError(t, tbl.Set(NewKey("ID_1", "Feature_1"), []float64{313, 311, 312}))

	sorted := tbl.Sorted()

	assert.Equal(t, days(base, 0, 12, 24), sorted.Index())
	assert.Equal(t, []Key{{"ID_1", "Feature_1"}, {"ID_1", "Feature_2"}, {"ID_7", "Feature_1"}}, sorted.Keys())
	col, _ := sorted.Column(NewKey("ID_7", "Feature_1"))
	assert.Equal(t, []float64{71, 72, 73}, col)

	// Sorted works on a copy.
	assert.Equal(t, days(base, 24, 0, 12), tbl.Index())
	assert.Equal(t, NewKey("ID_7", "Feature_1"), tbl.Keys()[0])
}

func TestTableSelect(t *testing.T) {
	tbl := NewTable(days(base, 0), "ID", "feature")
	for _, k := range []Key{{"ID_1", "Feature_1"}, {"ID_1", "Feature_2"}, {"ID_5", "Feature_1"}, {"ID_5", "Feature_2"}} {
		require.NoError(t, tbl.Set(k, []float64{0}))
	}

	got := tbl.Select(Selector{Exactly("ID_5"), UpTo("Feature_1")})
	assert.Equal(t, []Key{{"ID_5", "Feature_1"}}, got)

	got = tbl.Select(Selector{From("ID_2")})
	assert.Equal(t, []Key{{"ID_5", "Feature_1"}, {"ID_5", "Feature_2"}}, got)

	assert.Empty(t, tbl.Select(Selector{Exactly("ID_9")}))
}

func TestTableSeries(t *testing.T) {
	tbl := NewTable(days(base, 0, 12), "ID", "feature")
	require.NoError(t, tbl.Set(NewKey("ID_1", "Feature_1"), []float64{1, math.NaN()}))

	s, err := tbl.Series(NewKey("ID_1", "Feature_1"))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.CountMissing())
	assert.Equal(t, "(ID_1, Feature_1)", s.Name)
	assert.True(t, s.Timestamps[1].Equal(base.AddDate(0, 0, 12)))

	s.Values[0] = 100
	col, _ := tbl.Column(NewKey("ID_1", "Feature_1"))
	assert.Equal(t, 1.0, col[0], "series shares storage with the table")

	_, err = tbl.Series(NewKey("ID_9", "Feature_1"))
	assert.True(t, errors.Is(err, ErrNoColumn))
}

func TestTableCopyAndEqual(t *testing.T) {
	tbl := NewTable(days(base, 0, 12), "ID", "feature")
	tbl.IndexName = "time"
	require.NoError(t, tbl.Set(NewKey("ID_1", "Feature_1"), []float64{1, math.NaN()}))

	c := tbl.Copy()
	assert.True(t, tbl.Equal(c))

	require.NoError(t, c.Set(NewKey("ID_1", "Feature_1"), []float64{1, 2}))
	assert.False(t, tbl.Equal(c))
	col, _ := tbl.Column(NewKey("ID_1", "Feature_1"))
	assert.True(t, math.IsNaN(col[1]), "copy shares storage with the original")

	c = tbl.Copy()
	c.IndexName = "date"
	assert.False(t, tbl.Equal(c))

	c = tbl.Copy()
	require.NoError(t, c.Set(NewKey("ID_1", "Feature_2"), []float64{1, 2}))
	assert.False(t, tbl.Equal(c))
}

func TestKeyCompare(t *testing.T) {
	tests := []struct {
		a, b Key
		want int
	}{
		{Key{"ID_1", "Feature_1"}, Key{"ID_1", "Feature_1"}, 0},
		{Key{"ID_1", "Feature_1"}, Key{"ID_1", "Feature_2"}, -1},
		{Key{"ID_5"}, Key{"ID_1", "Feature_1"}, 1},
		{Key{"ID_5", "Feature_1"}, Key{"ID_5", "Feature_1", ""}, -1},
		{Key{"ID_5", "Feature_1", ""}, Key{"ID_5", "Feature_1", "m1"}, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestKeyHelpers(t *testing.T) {
	k := NewKey("ID_1", "Feature_1")
	ext := k.With("m1")

	assert.Equal(t, Key{"ID_1", "Feature_1", "m1"}, ext)
	assert.Equal(t, Key{"ID_1", "Feature_1"}, k, "With must not modify the receiver")
	assert.Equal(t, k, ext.Prefix(2))
	assert.True(t, ext.Prefix(5).Equal(ext))
}

func TestRangeContains(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		label string
		want  bool
	}{
		{"open", Range{}, "anything", true},
		{"exact hit", Exactly("ID_5"), "ID_5", true},
		{"exact miss", Exactly("ID_5"), "ID_7", false},
		{"up to inclusive", UpTo("Feature_1"), "Feature_1", true},
		{"up to beyond", UpTo("Feature_1"), "Feature_2", false},
		{"from", From("b"), "a", false},
		{"between", Between("b", "d"), "c", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.label))
		})
	}

	assert.False(t, Selector{Range{}, Range{}, Range{}}.Matches(Key{"a", "b"}))
}
