package features

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/roiseries/frame"
)

// Column names produced by DOYCircular.
const (
	LevelDOY  = "doy"
	IndexDate = "date"
	DOYSin    = "doy_sin"
	DOYCos    = "doy_cos"
)

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

// DOYAngles returns the day of year of each date as an angle in radians,
// scaled by the length of the date's calendar year so that the last day of
// every year maps to 2π.
func DOYAngles(dates []time.Time) []float64 {
	angles := make([]float64, len(dates))
	for i, d := range dates {
		angles[i] = float64(d.YearDay()) / float64(DaysInYear(d.Year()))
	}
	floats.Scale(2*math.Pi, angles)
	return angles
}

// DOYCircular encodes the day of year of each date as a point on the unit
// circle. The result is indexed by dates in the given order and has the
// columns doy_sin and doy_cos.
func DOYCircular(dates []time.Time) (*frame.Table, error) {
	angles := DOYAngles(dates)
	sin := make([]float64, len(angles))
	cos := make([]float64, len(angles))
	for i, a := range angles {
		sin[i], cos[i] = math.Sincos(a)
	}

	out := frame.NewTable(dates, LevelDOY)
	out.IndexName = IndexDate
	if err := out.Set(frame.NewKey(DOYSin), sin); err != nil {
		return nil, err
	}
	if err := out.Set(frame.NewKey(DOYCos), cos); err != nil {
		return nil, err
	}
	return out, nil
}
