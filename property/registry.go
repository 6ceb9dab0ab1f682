package property

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/codec"
	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/normalize"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/surrogate"
)

// Spec declares one predicted property.
type Spec struct {
	Name string `json:"name" mapstructure:"name"`
	Unit string `json:"unit,omitempty" mapstructure:"unit"`
	// Architecture, when set, must match the loaded artifact.
	Architecture  surrogate.Architecture `json:"architecture" mapstructure:"architecture"`
	Normalization normalize.Params       `json:"normalization" mapstructure:"normalization"`
	// Artifact is the blob name of the model. Empty means DefaultArtifactName.
	Artifact string `json:"artifact,omitempty" mapstructure:"artifact"`
	// Exclude names the oxide the model was trained without.
	Exclude   string        `json:"exclude,omitempty" mapstructure:"exclude"`
	Transform TransformSpec `json:"transform" mapstructure:"transform"`
	// Dataset and Label locate the training table. They feed bounds
	// intersection and fitting of an unset normalization.
	Dataset string `json:"dataset,omitempty" mapstructure:"dataset"`
	Label   string `json:"label,omitempty" mapstructure:"label"`
}

// Validate checks the declarative parts of s.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("property: spec without name")
	}
	if err := s.Transform.validate(); err != nil {
		return fmt.Errorf("property %s: %w", s.Name, err)
	}
	return nil
}

// ArtifactName returns the configured artifact or the conventional name
// derived from the property name and architecture.
func (s Spec) ArtifactName() string {
	if s.Artifact != "" {
		return s.Artifact
	}
	return DefaultArtifactName(s.Name, s.Architecture)
}

// DefaultArtifactName is "models/nn<property><arch>.json".
func DefaultArtifactName(name string, arch surrogate.Architecture) string {
	return "models/nn" + name + arch.Name() + ".json"
}

// Support returns the oxides the property's model was trained on.
func (s Spec) Support(global oxide.Set) (oxide.Set, error) {
	if s.Exclude == "" {
		return global, nil
	}
	return global.Without(s.Exclude)
}

// CoefficientTable supplies per-oxide coefficients aligned to an oxide set.
type CoefficientTable interface {
	Aligned(s oxide.Set) ([]float64, error)
}

// Registry maps property names to their Spec, in declaration order.
type Registry struct {
	specs []Spec
}

// NewRegistry validates specs and rejects duplicate names.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{}
	for _, s := range specs {
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a spec.
func (r *Registry) Add(s Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, ok := r.Get(s.Name); ok {
		return fmt.Errorf("property %s: declared twice", s.Name)
	}
	r.specs = append(r.specs, s)
	return nil
}

// Get returns the spec declared for name.
func (r *Registry) Get(name string) (Spec, bool) {
	for _, s := range r.specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Names returns the declared property names in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.specs))
	for i, s := range r.specs {
		out[i] = s.Name
	}
	return out
}

// Specs returns a copy of the declared specs.
func (r *Registry) Specs() []Spec { return slices.Clone(r.specs) }

// Resolve loads every artifact once and builds the evaluators in declaration
// order. Store errors are returned unmodified.
func (r *Registry) Resolve(ctx context.Context, store blobstore.BlobStore, global oxide.Set, coeffs map[string]CoefficientTable, opts ...surrogate.Option) (Evaluators, error) {
	out := make(Evaluators, 0, len(r.specs))
	for _, s := range r.specs {
		net, err := surrogate.Load(ctx, store, s.ArtifactName(), opts...)
		if err != nil {
			return nil, err
		}
		e, err := s.evaluator(net, global, coeffs)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s Spec) evaluator(net *surrogate.Network, global oxide.Set, coeffs map[string]CoefficientTable) (*Evaluator, error) {
	if !s.Architecture.IsZero() && !s.Architecture.Matches(net.Architecture()) {
		return nil, fmt.Errorf("property %s: artifact architecture %q does not match declared %q",
			s.Name, net.Architecture().Name(), s.Architecture.Name())
	}

	support, err := s.Support(global)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", s.Name, err)
	}
	if net.InputWidth() != support.Len() {
		return nil, &composition.DimensionMismatchError{Expected: support.Len(), Actual: net.InputWidth(), Context: "property " + s.Name}
	}

	norm, err := normalize.FromParams(s.Normalization)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", s.Name, err)
	}
	t, err := BuildTransform(s.Transform, support, coeffs)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", s.Name, err)
	}

	return NewEvaluator(s.Name, net, norm, WithUnit(s.Unit), WithTransform(t), WithExclude(s.Exclude))
}

// BuildTransform instantiates ts for the given support set.
func BuildTransform(ts TransformSpec, support oxide.Set, coeffs map[string]CoefficientTable) (Transform, error) {
	if err := ts.validate(); err != nil {
		return nil, err
	}
	switch ts.kind() {
	case TransformMolarVolume:
		return MolarVolume{}, nil
	case TransformCoefficientRatio:
		table, ok := coeffs[ts.Coefficients]
		if !ok {
			return nil, fmt.Errorf("coefficient table %q not provided", ts.Coefficients)
		}
		c, err := table.Aligned(support)
		if err != nil {
			return nil, err
		}
		factor := ts.Factor
		if factor == 0 {
			factor = 1
		}
		return CoefficientRatio{Coefficients: c, Factor: factor}, nil
	default:
		return Identity{}, nil
	}
}

// LoadRegistry reads a JSON list of specs from store.
func LoadRegistry(ctx context.Context, store blobstore.BlobStore, name string) (*Registry, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	var specs []Spec
	if err := codec.Default.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return NewRegistry(specs...)
}
