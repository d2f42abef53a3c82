package features

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/roiseries/frame"
)

var serials = []string{
	"2457350.0000000000", "2457362.0000000000", "2457374.0000000000",
	"2457386.0000000000", "2457398.0000000000", "2457410.0000000000",
}

// fixtureTimes are the calendar days carried by serials.
var fixtureTimes = []time.Time{
	time.Date(2015, 11, 23, 0, 0, 0, 0, time.UTC),
	time.Date(2015, 12, 5, 0, 0, 0, 0, time.UTC),
	time.Date(2015, 12, 17, 0, 0, 0, 0, time.UTC),
	time.Date(2015, 12, 29, 0, 0, 0, 0, time.UTC),
	time.Date(2016, 1, 10, 0, 0, 0, 0, time.UTC),
	time.Date(2016, 1, 22, 0, 0, 0, 0, time.UTC),
}

func featureWide(t *testing.T, feature string, rows [][]float64) *frame.Wide {
	t.Helper()
	cols := make([]string, len(serials))
	for i, s := range serials {
		cols[i] = fmt.Sprintf("%s_%s", feature, s)
	}
	w, err := frame.NewWide([]string{"ID_1", "ID_7", "ID_5"}, cols, rows)
	require.NoError(t, err)
	return w
}

// wideFixture has three samples, two features and six timestamps.
func wideFixture(t *testing.T) *frame.Wide {
	t.Helper()
	df1 := featureWide(t, "Feature_1", [][]float64{
		{311, 312, 313, 314, 315, 316},
		{71, 72, 73, 74, 75, 76},
		{351, 352, 353, 354, 355, 356},
	})
	df2 := featureWide(t, "Feature_2", [][]float64{
		{317, 318, 319, 320, 321, 322},
		{77, 78, 79, 80, 81, 82},
		{357, 358, 359, 360, 361, 362},
	})
	w, err := df1.Concat(df2)
	require.NoError(t, err)
	w.IndexName = "ID"
	w.ColumnsName = "Feature_Time"
	return w
}

const trfFixtureCSV = `ID,ID_1,ID_1,ID_1,ID_1,ID_1,ID_1,ID_7,ID_7,ID_7,ID_7,ID_7,ID_7,ID_5,ID_5,ID_5,ID_5,ID_5,ID_5
feature,Feature_1,Feature_1,Feature_1,Feature_2,Feature_2,Feature_2,Feature_1,Feature_1,Feature_1,Feature_2,Feature_2,Feature_2,Feature_1,Feature_1,Feature_1,Feature_2,Feature_2,Feature_2
trf_label,m1,m2,p1,m1,m2,p1,m1,m2,p1,m1,m2,p1,m1,m2,p1,m1,m2,p1
2015-11-23,311,NA,312,317,NA,318,71,NA,72,77,NA,78,351,NA,352,357,NA,358
2015-12-05,312,311,313,318,317,319,72,71,73,78,77,79,352,351,353,358,357,359
2015-12-17,313,312,314,319,318,320,73,72,74,79,78,80,353,352,354,359,358,360
2015-12-29,314,313,315,320,319,321,74,73,75,80,79,81,354,353,355,360,359,361
2016-01-10,315,314,316,321,320,322,75,74,76,81,80,82,355,354,356,361,360,362
2016-01-22,316,315,NA,322,321,NA,76,75,NA,82,81,NA,356,355,NA,362,361,NA
`

// trfFixture is the expected record frame for shifts {m2: -1, m1: 0, p1: +1},
// sorted on both axes.
func trfFixture(t *testing.T) *frame.Table {
	t.Helper()
	opts := frame.DefaultCSVOptions()
	opts.Levels = 3
	tbl, err := frame.ReadTableCSV(strings.NewReader(trfFixtureCSV), opts)
	require.NoError(t, err)
	return tbl.Sorted()
}

func fixtureShifts() []Shift {
	return ShiftsFromMap(map[string]int{"m2": -1, "m1": 0, "p1": 1})
}

// requireTablesEqual reports a per-column diff when two tables differ.
func requireTablesEqual(t *testing.T, want, got *frame.Table) {
	t.Helper()
	if want.Equal(got) {
		return
	}
	if diff := cmp.Diff(want.Levels, got.Levels); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
	if want.IndexName != got.IndexName {
		t.Fatalf("index name: want %q, got %q", want.IndexName, got.IndexName)
	}
	if diff := cmp.Diff(want.Index(), got.Index()); diff != "" {
		t.Fatalf("index mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Keys(), got.Keys()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	for _, k := range want.Keys() {
		w, _ := want.Column(k)
		g, _ := got.Column(k)
		if diff := cmp.Diff(w, g, cmpopts.EquateNaNs()); diff != "" {
			t.Errorf("column %s mismatch (-want +got):\n%s", k, diff)
		}
	}
	t.FailNow()
}
