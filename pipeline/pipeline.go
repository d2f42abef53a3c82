// Package pipeline chains table transformers behind a fit/transform
// protocol.
package pipeline

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/sartorproj/roiseries/frame"
)

// ErrInvalidStep is returned for nil transformers or duplicate step names.
var ErrInvalidStep = errors.New("pipeline: invalid step")

// Transformer learns from a table in Fit and reshapes tables in Transform.
// Transform must not modify its input.
type Transformer interface {
	Fit(t *frame.Table) error
	Transform(t *frame.Table) (*frame.Table, error)
}

// FitTransformer is implemented by transformers that can fit and transform
// in a single pass.
type FitTransformer interface {
	Transformer
	FitTransform(t *frame.Table) (*frame.Table, error)
}

// FitTransform fits tr on t and returns tr's transform of t.
func FitTransform(tr Transformer, t *frame.Table) (*frame.Table, error) {
	if ft, ok := tr.(FitTransformer); ok {
		return ft.FitTransform(t)
	}
	if err := tr.Fit(t); err != nil {
		return nil, err
	}
	return tr.Transform(t)
}

// TransformerFunc adapts a stateless function to a Transformer. Fit is a
// no-op.
type TransformerFunc func(t *frame.Table) (*frame.Table, error)

// Fit does nothing.
func (f TransformerFunc) Fit(*frame.Table) error { return nil }

// Transform calls f.
func (f TransformerFunc) Transform(t *frame.Table) (*frame.Table, error) { return f(t) }

// Step is a named pipeline stage.
type Step struct {
	Name        string
	Transformer Transformer
}

// Pipeline applies its steps in order. A Pipeline is itself a Transformer.
type Pipeline struct {
	steps  []Step
	logger *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-step debug output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New builds a pipeline from explicitly named steps.
func New(steps []Step, opts ...Option) (*Pipeline, error) {
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.Transformer == nil {
			return nil, fmt.Errorf("%w: step %d has no transformer", ErrInvalidStep, i)
		}
		if s.Name == "" || seen[s.Name] {
			return nil, fmt.Errorf("%w: step %d has empty or duplicate name %q", ErrInvalidStep, i, s.Name)
		}
		seen[s.Name] = true
	}

	p := &Pipeline{
		steps:  append([]Step(nil), steps...),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MakePipeline builds a pipeline naming each step after the lowercased
// type name of its transformer. Repeated names get "-1", "-2", ...
// suffixes. Nil transformers are skipped.
func MakePipeline(transformers ...Transformer) *Pipeline {
	counts := make(map[string]int)
	var names []string
	var kept []Transformer
	for _, tr := range transformers {
		if tr == nil {
			continue
		}
		name := stepName(tr)
		counts[name]++
		names = append(names, name)
		kept = append(kept, tr)
	}

	used := make(map[string]int)
	steps := make([]Step, len(kept))
	for i, tr := range kept {
		name := names[i]
		if counts[name] > 1 {
			used[name]++
			name = fmt.Sprintf("%s-%d", name, used[name])
		}
		steps[i] = Step{Name: name, Transformer: tr}
	}
	return &Pipeline{steps: steps, logger: zap.NewNop()}
}

func stepName(tr Transformer) string {
	typ := reflect.TypeOf(tr)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return strings.ToLower(typ.Name())
}

// With applies opts to p and returns it.
func (p *Pipeline) With(opts ...Option) *Pipeline {
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Steps returns a copy of the pipeline's steps.
func (p *Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Fit fits every step on the output of the steps before it.
func (p *Pipeline) Fit(t *frame.Table) error {
	if len(p.steps) == 0 {
		return nil
	}
	current := t
	for _, s := range p.steps[:len(p.steps)-1] {
		next, err := FitTransform(s.Transformer, current)
		if err != nil {
			return fmt.Errorf("step %s: %w", s.Name, err)
		}
		p.logger.Debug("pipeline step fitted", zap.String("step", s.Name), zap.Int("columns", next.NumColumns()))
		current = next
	}
	last := p.steps[len(p.steps)-1]
	if err := last.Transformer.Fit(current); err != nil {
		return fmt.Errorf("step %s: %w", last.Name, err)
	}
	p.logger.Debug("pipeline step fitted", zap.String("step", last.Name))
	return nil
}

// Transform runs t through every step. An empty pipeline returns a copy.
func (p *Pipeline) Transform(t *frame.Table) (*frame.Table, error) {
	return p.run(t, func(tr Transformer, in *frame.Table) (*frame.Table, error) {
		return tr.Transform(in)
	})
}

// FitTransform fits and transforms every step in one pass.
func (p *Pipeline) FitTransform(t *frame.Table) (*frame.Table, error) {
	return p.run(t, FitTransform)
}

func (p *Pipeline) run(t *frame.Table, apply func(Transformer, *frame.Table) (*frame.Table, error)) (*frame.Table, error) {
	current := t
	for _, s := range p.steps {
		next, err := apply(s.Transformer, current)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", s.Name, err)
		}
		p.logger.Debug("pipeline step applied",
			zap.String("step", s.Name),
			zap.Int("rows", next.Len()),
			zap.Int("columns", next.NumColumns()),
		)
		current = next
	}
	if current == t {
		return t.Copy(), nil
	}
	return current, nil
}
