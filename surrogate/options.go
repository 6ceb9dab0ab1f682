package surrogate

import (
	"github.com/hupe1980/glassgen/codec"
	"github.com/hupe1980/glassgen/internal/parallel"
)

type options struct {
	workers   int
	chunkSize int
	codec     codec.Codec
}

func defaultOptions() options {
	return options{chunkSize: parallel.DefaultChunkSize, codec: codec.Default}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Option configures batch inference and artifact encoding of a Network.
type Option func(*options)

// WithWorkers limits the number of concurrent inference tasks.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithChunkSize sets the number of rows per inference task.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithCodec sets the codec used by Encode, Decode and Load.
// A nil codec keeps codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}
