// Package features implements feature transformers for region-of-interest
// time series exported as wide tables.
//
// # Time index from column suffixes
//
// Wide exports label each column "<feature>_<serial date>", where the serial
// is a Julian day number such as 2457350.0000000000:
//
//	tbl, err := features.TimeIndexFromColSuffix(wide)
//
// The result is a frame.Table indexed by time with column levels
// (ID, feature).
//
// # Relative time
//
//	reltime, freq, err := features.RelTimeFromAbsDate(tbl.Index())
//	// reltime: [0 1 2 ...], freq.String(): "12D"
//
// # Target anchor frame to training record frame
//
//	trf, err := features.NewTAFToTRF(
//	    features.ShiftsFromMap(map[string]int{"m2": -1, "m1": 0, "p1": 1}),
//	    features.WithExclude(frame.Selector{frame.Exactly("ID_5"), frame.UpTo("Feature_1")}),
//	)
//	records, err := pipeline.MakePipeline(trf).FitTransform(tbl)
//
// Offset -1 takes the previous reading, 0 the anchor and +1 the next one.
// Readings past either end of the series are NaN.
//
// # Circular day of year
//
//	enc, err := features.DOYCircular(dates) // columns doy_sin, doy_cos
package features
