// Package frame provides the tabular data model shared by the feature
// transformers.
//
// Two shapes are supported:
//
//   - Wide: rows keyed by sample identifier, columns keyed by a plain
//     string label such as "Feature_1_2457350.0000000000".
//   - Table: rows keyed by time, columns keyed by a composite Key with one
//     part per column level, e.g. (ID, feature) or (ID, feature, trf_label).
//
// A Table is an ordered mapping from Key to column data. Missing values are
// NaN, so every column is float64.
//
// # Building a Table
//
//	t := frame.NewTable(times, "ID", "feature")
//	t.IndexName = "time"
//	err := t.Set(frame.NewKey("ID_1", "Feature_1"), values)
//
// # Selecting columns
//
// Selectors hold one inclusive label Range per leading column level:
//
//	sel := frame.Selector{frame.Exactly("ID_5"), frame.UpTo("Feature_1")}
//	keys := t.Select(sel)
//
// # CSV
//
// Both shapes can be read from and written to CSV. A Table is written with
// one header row per column level:
//
//	ID,ID_1,ID_1
//	feature,Feature_1,Feature_1
//	trf_label,m1,m2
//	2015-11-23,311,NA
//
//	opts := frame.DefaultCSVOptions()
//	opts.Levels = 3
//	t, err := frame.ReadTableCSV(r, opts)
package frame
