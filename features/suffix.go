package features

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sartorproj/roiseries/frame"
)

// Column level and index names produced by TimeIndexFromColSuffix.
const (
	LevelID      = "ID"
	LevelFeature = "feature"
	IndexTime    = "time"
)

// ErrColumnSuffix is returned when a column label does not end in
// "_<serial date>".
var ErrColumnSuffix = errors.New("column label has no serial date suffix")

var suffixPattern = regexp.MustCompile(`^(.+)_([0-9]+(?:\.[0-9]+)?)$`)

// Julian day number 2451545 is the civil day 2000-01-01.
var (
	j2000Day  = decimal.NewFromInt(2451545)
	j2000Date = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	nsPerDay  = decimal.NewFromInt(int64(24 * time.Hour))
)

// SerialToTime converts a Julian day serial such as "2457350.0000000000" to
// a UTC time. The integer part selects the civil day that carries that Julian
// day number, the fraction the elapsed part of that day.
func SerialToTime(serial string) (time.Time, error) {
	d, err := decimal.NewFromString(serial)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrColumnSuffix, serial, err)
	}
	offset := d.Sub(j2000Day)
	whole := offset.Floor()
	frac := offset.Sub(whole).Mul(nsPerDay).Round(0)

	if !whole.Abs().LessThan(decimal.NewFromInt(math.MaxInt32)) {
		return time.Time{}, fmt.Errorf("%w: %q out of range", ErrColumnSuffix, serial)
	}
	return j2000Date.AddDate(0, 0, int(whole.IntPart())).Add(time.Duration(frac.IntPart())), nil
}

// TimeToSerial is the inverse of SerialToTime, formatted with ten decimals.
func TimeToSerial(t time.Time) string {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	whole := int64(math.Round(midnight.Sub(j2000Date).Hours() / 24))
	frac := decimal.NewFromInt(int64(t.Sub(midnight))).Div(nsPerDay)
	return j2000Day.Add(decimal.NewFromInt(whole)).Add(frac).StringFixed(10)
}

// SplitColumnLabel splits "<feature>_<serial>" into the feature name and
// the parsed time.
func SplitColumnLabel(label string) (string, time.Time, error) {
	m := suffixPattern.FindStringSubmatch(label)
	if m == nil {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrColumnSuffix, label)
	}
	ts, err := SerialToTime(m[2])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("column %q: %w", label, err)
	}
	return m[1], ts, nil
}

// TimeIndexFromColSuffix pivots a wide table whose column labels end in a
// serial date into a time-indexed Table with column levels (ID, feature).
// Each (sample, feature) pair becomes one column; timestamps a pair lacks
// are NaN. The result is sorted on both axes and w is left untouched.
func TimeIndexFromColSuffix(w *frame.Wide) (*frame.Table, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if len(w.Columns) == 0 {
		return nil, fmt.Errorf("%w: wide table has no columns", frame.ErrShape)
	}

	type cell struct {
		feature string
		at      time.Time
	}
	parsed := make([]cell, len(w.Columns))
	seen := make(map[cell]bool, len(w.Columns))
	stamps := make(map[time.Time]struct{})
	for i, label := range w.Columns {
		name, ts, err := SplitColumnLabel(label)
		if err != nil {
			return nil, err
		}
		p := cell{feature: name, at: ts}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate column for feature %q at %s", frame.ErrShape, name, ts.Format(time.RFC3339))
		}
		seen[p] = true
		parsed[i] = p
		stamps[ts] = struct{}{}
	}

	index := make([]time.Time, 0, len(stamps))
	for ts := range stamps {
		index = append(index, ts)
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })
	position := make(map[time.Time]int, len(index))
	for i, ts := range index {
		position[ts] = i
	}

	out := frame.NewTable(index, LevelID, LevelFeature)
	out.IndexName = IndexTime

	for r, id := range w.Index {
		if out.Has(frame.NewKey(id, parsed[0].feature)) {
			return nil, fmt.Errorf("%w: duplicate sample %q", frame.ErrShape, id)
		}
		cols := make(map[string][]float64)
		var order []string
		for c, p := range parsed {
			col, ok := cols[p.feature]
			if !ok {
				col = make([]float64, len(index))
				for i := range col {
					col[i] = math.NaN()
				}
				cols[p.feature] = col
				order = append(order, p.feature)
			}
			col[position[p.at]] = w.Values[r][c]
		}
		for _, name := range order {
			if err := out.Set(frame.NewKey(id, name), cols[name]); err != nil {
				return nil, err
			}
		}
	}

	out.SortColumns()
	return out, nil
}
