package surrogate

import (
	"context"
	"fmt"

	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/internal/parallel"
)

// Layer is a dense layer. Weights are stored row-major as Out rows of In
// values, so unit o computes Bias[o] + dot(Weights[o*In:(o+1)*In], x).
type Layer struct {
	In         int
	Out        int
	Weights    []float64
	Bias       []float64
	Activation Activation
}

func (l *Layer) validate() error {
	if l.In <= 0 || l.Out <= 0 {
		return fmt.Errorf("surrogate: layer shape %dx%d", l.Out, l.In)
	}
	if len(l.Weights) != l.In*l.Out {
		return fmt.Errorf("surrogate: layer %dx%d has %d weights", l.Out, l.In, len(l.Weights))
	}
	if len(l.Bias) != l.Out {
		return fmt.Errorf("surrogate: layer %dx%d has %d biases", l.Out, l.In, len(l.Bias))
	}
	return l.Activation.Validate()
}

// forward writes the layer output for x into dst.
func (l *Layer) forward(dst, x []float64) {
	for o := range l.Out {
		w := l.Weights[o*l.In : (o+1)*l.In]
		s := l.Bias[o]
		for i, v := range x {
			s += w[i] * v
		}
		dst[o] = s
	}
	l.Activation.applyInPlace(dst)
}

// Network is a dense feed-forward regressor with a single output unit.
// A Network is immutable and safe for concurrent use.
type Network struct {
	arch   Architecture
	layers []Layer
	maxW   int
	opts   options
}

// NewNetwork builds a network from its layers and checks that they match arch.
func NewNetwork(arch Architecture, layers []Layer, optFns ...Option) (*Network, error) {
	if err := arch.Validate(); err != nil {
		return nil, err
	}
	widths := arch.widths()
	if len(layers) != len(widths)-1 {
		return nil, fmt.Errorf("surrogate: architecture %q needs %d layers, got %d", arch.Name(), len(widths)-1, len(layers))
	}

	maxW := arch.Inputs
	for i := range layers {
		l := &layers[i]
		if l.In != widths[i] || l.Out != widths[i+1] {
			return nil, fmt.Errorf("surrogate: layer %d is %dx%d, architecture %q expects %dx%d",
				i, l.Out, l.In, arch.Name(), widths[i+1], widths[i])
		}
		want := arch.hidden()
		if i == len(layers)-1 {
			want = arch.output()
		}
		if l.Activation == "" {
			l.Activation = want
		}
		if l.Activation != want {
			return nil, fmt.Errorf("surrogate: layer %d activation %q, architecture expects %q", i, l.Activation, want)
		}
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("surrogate: layer %d: %w", i, err)
		}
		maxW = max(maxW, l.Out)
	}

	return &Network{arch: arch, layers: layers, maxW: maxW, opts: applyOptions(optFns)}, nil
}

// Architecture returns the network shape.
func (n *Network) Architecture() Architecture { return n.arch }

// InputWidth implements Model.
func (n *Network) InputWidth() int { return n.arch.Inputs }

// WithOptions returns a copy of n sharing its weights with different
// inference options.
func (n *Network) WithOptions(optFns ...Option) *Network {
	c := *n
	for _, fn := range optFns {
		fn(&c.opts)
	}
	return &c
}

// Predict implements Model. The matrix width must equal InputWidth.
func (n *Network) Predict(ctx context.Context, x *composition.Matrix) ([]float64, error) {
	if err := CheckWidth(n, x); err != nil {
		return nil, err
	}

	out := make([]float64, x.Rows)
	err := parallel.Chunks(ctx, x.Rows, n.opts.chunkSize, n.opts.workers, func(_ context.Context, _, lo, hi int) error {
		a := make([]float64, n.maxW)
		b := make([]float64, n.maxW)
		for r := lo; r < hi; r++ {
			out[r] = n.forward(x.Row(r), a, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forward evaluates one row using a and b as scratch buffers.
func (n *Network) forward(row, a, b []float64) float64 {
	cur := row
	for i := range n.layers {
		l := &n.layers[i]
		dst := a[:l.Out]
		l.forward(dst, cur)
		cur = dst
		a, b = b, a
	}
	return cur[0]
}
