package surrogate

import (
	"context"
	"fmt"

	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/internal/compress"
)

// FormatVersion is the artifact layout written by Encode.
const FormatVersion = 1

// artifact is the on-disk representation of a Network.
// Layer weights are nested as [out][in].
type artifact struct {
	Format       int             `json:"format"`
	Architecture Architecture    `json:"architecture"`
	Layers       []layerArtifact `json:"layers"`
}

type layerArtifact struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation Activation  `json:"activation,omitempty"`
}

// Encode serializes n and compresses the result with c.
func Encode(n *Network, c compress.Type, optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)
	a := artifact{
		Format:       FormatVersion,
		Architecture: n.arch,
		Layers:       make([]layerArtifact, len(n.layers)),
	}
	for i := range n.layers {
		l := &n.layers[i]
		w := make([][]float64, l.Out)
		for o := range l.Out {
			w[o] = l.Weights[o*l.In : (o+1)*l.In]
		}
		a.Layers[i] = layerArtifact{Weights: w, Bias: l.Bias, Activation: l.Activation}
	}

	data, err := o.codec.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("surrogate: encode: %w", err)
	}
	return compress.Compress(data, c)
}

// Decode parses an artifact produced by Encode. The compression frame, if
// any, is detected from the payload.
func Decode(data []byte, optFns ...Option) (*Network, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("surrogate: decompress: %w", err)
	}

	o := applyOptions(optFns)
	var a artifact
	if err := o.codec.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("surrogate: decode: %w", err)
	}
	if a.Format != FormatVersion {
		return nil, fmt.Errorf("surrogate: unsupported artifact format %d", a.Format)
	}

	layers := make([]Layer, len(a.Layers))
	for i, la := range a.Layers {
		out := len(la.Weights)
		if out == 0 {
			return nil, fmt.Errorf("surrogate: layer %d has no units", i)
		}
		in := len(la.Weights[0])
		flat := make([]float64, 0, out*in)
		for o, row := range la.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("surrogate: layer %d unit %d has %d weights, want %d", i, o, len(row), in)
			}
			flat = append(flat, row...)
		}
		layers[i] = Layer{In: in, Out: out, Weights: flat, Bias: la.Bias, Activation: la.Activation}
	}
	return NewNetwork(a.Architecture, layers, optFns...)
}

// Load reads and decodes the artifact stored under name. Store errors are
// returned unmodified.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Network, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	n, err := Decode(data, optFns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
