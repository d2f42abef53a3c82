package features

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sartorproj/roiseries/frame"
	"github.com/sartorproj/roiseries/pipeline"
)

// LevelTRF names the shift label level added by TAFToTRF.
const LevelTRF = "trf_label"

var (
	// ErrShiftLabel is returned for missing, empty or duplicate shift labels.
	ErrShiftLabel = errors.New("invalid shift label")
	// ErrEmptyExclusion is returned when the exclusion selector matches no
	// column of the table being fitted or transformed.
	ErrEmptyExclusion = errors.New("exclusion selector matches no columns")
)

var _ pipeline.FitTransformer = (*TAFToTRF)(nil)

// Shift names one record offset relative to the anchor. Offset -1 takes
// the previous reading, 0 the anchor itself and +1 the next reading.
type Shift struct {
	Label  string
	Offset int
}

// ShiftsFromMap converts a label to offset mapping into shifts ordered by
// label.
func ShiftsFromMap(m map[string]int) []Shift {
	shifts := make([]Shift, 0, len(m))
	for label, offset := range m {
		shifts = append(shifts, Shift{Label: label, Offset: offset})
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Label < shifts[j].Label })
	return shifts
}

// TAFOption configures a TAFToTRF.
type TAFOption func(*TAFToTRF)

// WithExclude passes the columns matched by sel through unshifted, labelled
// with an empty shift label.
func WithExclude(sel frame.Selector) TAFOption {
	return func(t *TAFToTRF) {
		t.exclude = append(frame.Selector(nil), sel...)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) TAFOption {
	return func(t *TAFToTRF) {
		if l != nil {
			t.logger = l
		}
	}
}

// TAFToTRF expands target anchor frame observations into training record
// frame columns. For every (ID, feature) column of a time-indexed table it
// emits one column per shift, keyed (ID, feature, label). The value at row i
// is the input value at row i+Offset, or NaN past either end.
//
// A TAFToTRF is immutable after construction and safe for concurrent use.
type TAFToTRF struct {
	shifts  []Shift
	exclude frame.Selector
	logger  *zap.Logger
}

// NewTAFToTRF validates shifts and returns a reshaper. The empty label is
// reserved for excluded columns.
func NewTAFToTRF(shifts []Shift, opts ...TAFOption) (*TAFToTRF, error) {
	if len(shifts) == 0 {
		return nil, fmt.Errorf("%w: no shifts configured", ErrShiftLabel)
	}
	seen := make(map[string]bool, len(shifts))
	for _, s := range shifts {
		if s.Label == "" {
			return nil, fmt.Errorf("%w: the empty label is reserved for excluded columns", ErrShiftLabel)
		}
		if seen[s.Label] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrShiftLabel, s.Label)
		}
		seen[s.Label] = true
	}

	t := &TAFToTRF{
		shifts: append([]Shift(nil), shifts...),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Shifts returns a copy of the configured shifts.
func (t *TAFToTRF) Shifts() []Shift {
	return append([]Shift(nil), t.shifts...)
}

// Fit only validates in: it must have two column levels, and a configured
// exclusion selector must match at least one column.
func (t *TAFToTRF) Fit(in *frame.Table) error {
	_, err := t.excluded(in)
	return err
}

// Transform returns the record frame of in, sorted by key and by time.
// in is not modified.
func (t *TAFToTRF) Transform(in *frame.Table) (*frame.Table, error) {
	excluded, err := t.excluded(in)
	if err != nil {
		return nil, err
	}

	src := in.Copy()
	src.SortIndex()

	levels := append(append([]string(nil), src.Levels...), LevelTRF)
	out := frame.NewTable(src.Index(), levels...)
	out.IndexName = src.IndexName

	for _, key := range src.Keys() {
		series, err := src.Series(key)
		if err != nil {
			return nil, err
		}
		if excluded[key.String()] {
			if err := out.Set(key.With(""), series.Values); err != nil {
				return nil, err
			}
			continue
		}
		for _, s := range t.shifts {
			if err := out.Set(key.With(s.Label), series.Shift(-s.Offset).Values); err != nil {
				return nil, err
			}
		}
	}
	out.SortColumns()

	t.logger.Debug("taf to trf",
		zap.Int("input_columns", in.NumColumns()),
		zap.Int("excluded_columns", len(excluded)),
		zap.Int("output_columns", out.NumColumns()),
	)
	return out, nil
}

// FitTransform is Fit followed by Transform.
func (t *TAFToTRF) FitTransform(in *frame.Table) (*frame.Table, error) {
	if err := t.Fit(in); err != nil {
		return nil, err
	}
	return t.Transform(in)
}

func (t *TAFToTRF) excluded(in *frame.Table) (map[string]bool, error) {
	if len(in.Levels) != 2 {
		return nil, fmt.Errorf("%w: expected column levels (%s, %s), got %v", frame.ErrShape, LevelID, LevelFeature, in.Levels)
	}
	if len(t.exclude) == 0 {
		return map[string]bool{}, nil
	}
	keys := in.Select(t.exclude)
	if len(keys) == 0 {
		return nil, ErrEmptyExclusion
	}
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k.String()] = true
	}
	return out, nil
}
