// Package roiseries provides feature transformers for region-of-interest
// time series, such as per-field remote sensing statistics exported as
// wide tables.
//
// # Features
//
//   - Time index extraction from "<feature>_<serial date>" column labels
//   - Relative time and frequency inference for regular time indexes
//   - Target anchor frame (TAF) to training record frame (TRF) reshaping
//     with named record offsets and column exclusion
//   - Circular day-of-year encoding
//   - A fit/transform pipeline to chain transformers
//
// # Quick Start
//
// Reshape a wide export into records:
//
//	wide, _ := frame.ReadWideCSV(f, nil)
//	tbl, _ := features.TimeIndexFromColSuffix(wide)
//	trf, _ := features.NewTAFToTRF(features.ShiftsFromMap(map[string]int{"m1": -1, "p0": 0}))
//	records, _ := pipeline.MakePipeline(trf).FitTransform(tbl)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Time-indexed series and shifting
//   - frame: Multi-level column tables, label selectors and CSV codec
//   - features: The feature transformers
//   - pipeline: Transformer interfaces and chaining
//   - config: YAML job files for the roiseries command
//
// The roiseries command in cmd/roiseries runs the transformers on CSV files.
package roiseries
