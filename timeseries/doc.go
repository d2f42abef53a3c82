// Package timeseries provides time series data structures and utilities.
//
// A Series is a single column of float64 observations aligned to a slice of
// timestamps. Missing observations are NaN.
//
//	series, err := timeseries.NewWithTimestamps(times, values)
//
// # Shifting
//
// Shift keeps the timestamps in place and moves the values:
//
//	prev := series.Shift(1)  // value at i is the original value at i-1
//	next := series.Shift(-1) // value at i is the original value at i+1
//
// Positions without a source value become NaN.
package timeseries
