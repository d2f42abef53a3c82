// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"time"
)

// ErrLength is returned when timestamps and values disagree in length.
var ErrLength = errors.New("timestamps and values must have the same length")

// Series represents a time series with timestamps and values.
// Missing observations are stored as NaN.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, ErrLength
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Shift moves values k positions along the index while keeping the
// timestamps in place: the value at position i becomes the original value
// at position i-k. Positive k looks back, negative k looks ahead. Positions
// without a source value are NaN.
func (s *Series) Shift(k int) *Series {
	n := len(s.Values)
	result := make([]float64, n)
	for i := range result {
		j := i - k
		if j < 0 || j >= n {
			result[i] = math.NaN()
			continue
		}
		result[i] = s.Values[j]
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name,
	}
}

// Steps returns the differences between consecutive timestamps.
func (s *Series) Steps() []time.Duration {
	if len(s.Timestamps) < 2 {
		return []time.Duration{}
	}
	steps := make([]time.Duration, len(s.Timestamps)-1)
	for i := 1; i < len(s.Timestamps); i++ {
		steps[i-1] = s.Timestamps[i].Sub(s.Timestamps[i-1])
	}
	return steps
}

// CountMissing returns the number of NaN values.
func (s *Series) CountMissing() int {
	n := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// EqualValues compares two float slices element-wise, treating NaN as
// equal to NaN.
func EqualValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
