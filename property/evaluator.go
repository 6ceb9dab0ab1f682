package property

import (
	"context"
	"fmt"

	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/normalize"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/surrogate"
)

// Evaluator predicts one physical property for a composition batch.
// An Evaluator is immutable and safe for concurrent use.
type Evaluator struct {
	name      string
	unit      string
	model     surrogate.Model
	norm      normalize.Normalizer
	transform Transform
	exclude   string
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithUnit records the physical unit of the property.
func WithUnit(unit string) EvaluatorOption {
	return func(e *Evaluator) { e.unit = unit }
}

// WithTransform sets the label transform. The default is Identity.
func WithTransform(t Transform) EvaluatorOption {
	return func(e *Evaluator) {
		if t != nil {
			e.transform = t
		}
	}
}

// WithExclude names the oxide the model was trained without. Its column is
// dropped from every batch before inference.
func WithExclude(oxideID string) EvaluatorOption {
	return func(e *Evaluator) { e.exclude = oxideID }
}

// NewEvaluator builds an evaluator for model whose labels were normalized
// with norm.
func NewEvaluator(name string, model surrogate.Model, norm normalize.Normalizer, opts ...EvaluatorOption) (*Evaluator, error) {
	if name == "" {
		return nil, fmt.Errorf("property: evaluator needs a name")
	}
	if model == nil {
		return nil, fmt.Errorf("property %s: nil model", name)
	}
	if norm == nil {
		norm = normalize.Identity{}
	}
	e := &Evaluator{name: name, model: model, norm: norm, transform: Identity{}}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Name returns the property name.
func (e *Evaluator) Name() string { return e.name }

// Unit returns the physical unit, if known.
func (e *Evaluator) Unit() string { return e.unit }

// Exclude returns the excluded oxide, or "" when the model covers the full set.
func (e *Evaluator) Exclude() string { return e.exclude }

// InputWidth returns the width the underlying model was trained on.
func (e *Evaluator) InputWidth() int { return e.model.InputWidth() }

// Project returns the view of b the model consumes: b itself, or b without
// the excluded oxide column. The width is checked before any model call.
func (e *Evaluator) Project(b *composition.Batch) (*composition.Batch, error) {
	in := b
	if e.exclude != "" {
		j := b.Oxides.Index(e.exclude)
		if j < 0 {
			return nil, fmt.Errorf("property %s: excluded %w: %q", e.name, oxide.ErrUnknownOxide, e.exclude)
		}
		support, err := b.Oxides.Without(e.exclude)
		if err != nil {
			return nil, err
		}
		x, err := b.X.DropColumn(j)
		if err != nil {
			return nil, err
		}
		in = &composition.Batch{Oxides: support, X: x, MolarMass: b.MolarMass}
	}
	if in.X.Cols != e.model.InputWidth() {
		return nil, &composition.DimensionMismatchError{
			Expected: e.model.InputWidth(),
			Actual:   in.X.Cols,
			Context:  "property " + e.name,
		}
	}
	return in, nil
}

// Evaluate returns one physical value per row of b. The model is invoked once
// with the whole (projected) batch.
func (e *Evaluator) Evaluate(ctx context.Context, b *composition.Batch) ([]float64, error) {
	in, err := e.Project(b)
	if err != nil {
		return nil, err
	}

	y, err := e.model.Predict(ctx, in.X)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", e.name, err)
	}
	if len(y) != in.Len() {
		return nil, fmt.Errorf("property %s: model returned %d values for %d rows", e.name, len(y), in.Len())
	}

	normalize.DenormalizeInPlace(e.norm, y)
	if err := e.transform.Inverse(y, in); err != nil {
		return nil, fmt.Errorf("property %s: %w", e.name, err)
	}
	return y, nil
}

// Evaluators is an ordered list of evaluators.
type Evaluators []*Evaluator

// Names returns the property names in order.
func (es Evaluators) Names() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.name
	}
	return out
}

// ByName returns the evaluator for name.
func (es Evaluators) ByName(name string) (*Evaluator, bool) {
	for _, e := range es {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}
