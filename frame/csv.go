package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when a CSV input holds no header or no rows.
var ErrNoData = errors.New("frame: no data found in CSV")

// CSVOptions holds options for reading and writing tables as CSV.
type CSVOptions struct {
	Levels     int    // Number of column header rows for a Table (default: 1)
	IndexName  string // Row index name for a Table (default: "time")
	DateFormat string // Date layout of the row index (default: "2006-01-02")
	Delimiter  rune   // Field delimiter (default: ',')
	NA         string // Marker written for missing values (default: "NA")
}

// DefaultCSVOptions returns default options for CSV tables.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Levels:     1,
		IndexName:  "time",
		DateFormat: "2006-01-02",
		Delimiter:  ',',
		NA:         "NA",
	}
}

func (o *CSVOptions) withDefaults() *CSVOptions {
	d := DefaultCSVOptions()
	if o == nil {
		return d
	}
	out := *o
	if out.Levels <= 0 {
		out.Levels = d.Levels
	}
	if out.DateFormat == "" {
		out.DateFormat = d.DateFormat
	}
	if out.Delimiter == 0 {
		out.Delimiter = d.Delimiter
	}
	if out.NA == "" {
		out.NA = d.NA
	}
	return &out
}

// ReadWideCSV reads a Wide table. The first header cell names the row
// index, the remaining header cells are the column labels; every data row
// starts with its sample identifier.
func ReadWideCSV(r io.Reader, opts *CSVOptions) (*Wide, error) {
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has no value columns", ErrShape)
	}

	w := &Wide{
		IndexName: cleanCell(header[0]),
		Columns:   make([]string, len(header)-1),
	}
	for i, h := range header[1:] {
		w.Columns[i] = cleanCell(h)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		row, err := parseValues(record[1:], line)
		if err != nil {
			return nil, err
		}
		w.Index = append(w.Index, cleanCell(record[0]))
		w.Values = append(w.Values, row)
	}

	if len(w.Index) == 0 {
		return nil, ErrNoData
	}
	return w, nil
}

// WriteWideCSV writes w in the layout read by ReadWideCSV.
func WriteWideCSV(out io.Writer, w *Wide, opts *CSVOptions) error {
	opts = opts.withDefaults()

	writer := csv.NewWriter(out)
	writer.Comma = opts.Delimiter

	if err := writer.Write(append([]string{w.IndexName}, w.Columns...)); err != nil {
		return err
	}
	for i, row := range w.Values {
		record := make([]string, 0, len(row)+1)
		record = append(record, w.Index[i])
		for _, v := range row {
			record = append(record, formatValue(v, opts.NA))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadTableCSV reads a Table with opts.Levels header rows. The first cell of
// each header row names that column level; the remaining cells hold that
// level's part of each column key. Data rows start with the row date.
func ReadTableCSV(r io.Reader, opts *CSVOptions) (*Table, error) {
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	headers := make([][]string, 0, opts.Levels)
	for i := 0; i < opts.Levels; i++ {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, ErrNoData
		}
		if err != nil {
			return nil, err
		}
		if len(header) < 2 {
			return nil, fmt.Errorf("%w: header row %d has no value columns", ErrShape, i+1)
		}
		headers = append(headers, header)
	}

	levels := make([]string, opts.Levels)
	for i, h := range headers {
		levels[i] = cleanCell(h[0])
	}
	ncols := len(headers[0]) - 1

	var index []time.Time
	var rows [][]float64
	line := opts.Levels
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		ts, err := parseDate(cleanCell(record[0]), opts.DateFormat)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseValues(record[1:], line)
		if err != nil {
			return nil, err
		}
		index = append(index, ts)
		rows = append(rows, row)
	}
	if len(index) == 0 {
		return nil, ErrNoData
	}

	t := NewTable(index, levels...)
	t.IndexName = opts.IndexName
	for c := 0; c < ncols; c++ {
		key := make(Key, opts.Levels)
		for l, h := range headers {
			key[l] = cleanCell(h[c+1])
		}
		if t.Has(key) {
			return nil, fmt.Errorf("%w: duplicate column %s", ErrShape, key)
		}
		col := make([]float64, len(rows))
		for i, row := range rows {
			col[i] = row[c]
		}
		if err := t.Set(key, col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteTableCSV writes t in the layout read by ReadTableCSV.
func WriteTableCSV(out io.Writer, t *Table, opts *CSVOptions) error {
	opts = opts.withDefaults()

	writer := csv.NewWriter(out)
	writer.Comma = opts.Delimiter

	keys := t.Keys()
	for l, name := range t.Levels {
		record := make([]string, 0, len(keys)+1)
		record = append(record, name)
		for _, k := range keys {
			record = append(record, k[l])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	cols := make([][]float64, len(keys))
	for i, k := range keys {
		cols[i], _ = t.Column(k)
	}
	for i, ts := range t.Index() {
		record := make([]string, 0, len(keys)+1)
		record = append(record, ts.Format(opts.DateFormat))
		for _, col := range cols {
			record = append(record, formatValue(col[i], opts.NA))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func cleanCell(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func parseValues(cells []string, line int) ([]float64, error) {
	row := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := parseValue(cleanCell(cell))
		if err != nil {
			return nil, fmt.Errorf("line %d, column %d: %w", line, i+2, err)
		}
		row[i] = v
	}
	return row, nil
}

func parseValue(s string) (float64, error) {
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatValue(v float64, na string) string {
	if math.IsNaN(v) {
		return na
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseDate(s, layout string) (time.Time, error) {
	// Try multiple date formats
	formats := []string{
		layout,
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
	}
	var err error
	for _, f := range formats {
		var ts time.Time
		ts, err = time.Parse(f, s)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q: %w", s, err)
}
