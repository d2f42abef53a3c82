package features

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sartorproj/roiseries/timeseries"
)

// ErrIrregularFrequency is returned when timestamps are not evenly spaced
// in strictly increasing order.
var ErrIrregularFrequency = errors.New("timestamps have no regular frequency")

// Unit is the base unit of a Frequency.
type Unit int

// Units from finest to coarsest.
const (
	Nanosecond Unit = iota
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
)

var unitInfo = map[Unit]struct {
	size  time.Duration
	alias string
	name  string
}{
	Nanosecond:  {time.Nanosecond, "N", "nanosecond"},
	Microsecond: {time.Microsecond, "U", "microsecond"},
	Millisecond: {time.Millisecond, "L", "millisecond"},
	Second:      {time.Second, "S", "second"},
	Minute:      {time.Minute, "T", "minute"},
	Hour:        {time.Hour, "H", "hour"},
	Day:         {24 * time.Hour, "D", "day"},
}

// Frequency is a regular step expressed as N whole units.
type Frequency struct {
	N    int64
	Unit Unit
}

// FrequencyOf expresses step in the coarsest unit that divides it exactly.
// A zero or negative step has no frequency.
func FrequencyOf(step time.Duration) (Frequency, error) {
	if step <= 0 {
		return Frequency{}, fmt.Errorf("%w: step %v is not positive", ErrIrregularFrequency, step)
	}
	for u := Day; u > Nanosecond; u-- {
		size := unitInfo[u].size
		if step%size == 0 {
			return Frequency{N: int64(step / size), Unit: u}, nil
		}
	}
	return Frequency{N: int64(step), Unit: Nanosecond}, nil
}

// Duration returns the step length.
func (f Frequency) Duration() time.Duration {
	return time.Duration(f.N) * unitInfo[f.Unit].size
}

// String returns the offset alias, e.g. "12D", "6H" or "D" for a single day.
func (f Frequency) String() string {
	alias := unitInfo[f.Unit].alias
	if f.N == 1 {
		return alias
	}
	return strconv.FormatInt(f.N, 10) + alias
}

// Description returns a human readable label such as "every 12 days".
func (f Frequency) Description() string {
	name := unitInfo[f.Unit].name
	if f.N == 1 {
		return "every " + name
	}
	return fmt.Sprintf("every %d %ss", f.N, name)
}

// InferFrequency returns the common step between consecutive timestamps.
func InferFrequency(times []time.Time) (Frequency, error) {
	if len(times) < 2 {
		return Frequency{}, fmt.Errorf("%w: need at least two timestamps, got %d", ErrIrregularFrequency, len(times))
	}
	steps := (&timeseries.Series{Timestamps: times}).Steps()
	step := steps[0]
	for i, st := range steps {
		if st <= 0 {
			return Frequency{}, fmt.Errorf("%w: timestamp %d is not after its predecessor", ErrIrregularFrequency, i+1)
		}
		if st != step {
			return Frequency{}, fmt.Errorf("%w: step %d is %v, expected %v", ErrIrregularFrequency, i+1, st, step)
		}
	}
	return FrequencyOf(step)
}

// RelTimeFromAbsDate converts regularly spaced timestamps into offsets from
// the first timestamp, measured in steps, together with the inferred
// frequency. The first timestamp maps to 0.
func RelTimeFromAbsDate(times []time.Time) ([]float64, Frequency, error) {
	freq, err := InferFrequency(times)
	if err != nil {
		return nil, Frequency{}, err
	}

	step := float64(freq.Duration())
	reltime := make([]float64, len(times))
	for i, ts := range times {
		reltime[i] = float64(ts.Sub(times[0])) / step
	}
	return reltime, freq, nil
}
