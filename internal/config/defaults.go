package config

import "github.com/hupe1980/glassgen/internal/parallel"

const (
	DefaultBackend     = BackendLocal
	DefaultRoot        = "."
	DefaultCount       = 100_000
	DefaultSeed        = 1
	DefaultMaxAttempts = 1_000_000
	DefaultTable       = "screened"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultCodec       = "go-json"
)

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields that have already been set are left unchanged so that explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultBackend
	}
	if cfg.Storage.Backend == BackendLocal && cfg.Storage.Root == "" {
		cfg.Storage.Root = DefaultRoot
	}

	if cfg.Sampler.Count == 0 {
		cfg.Sampler.Count = DefaultCount
	}
	if cfg.Sampler.Seed == 0 {
		cfg.Sampler.Seed = DefaultSeed
	}
	if cfg.Sampler.MaxAttempts == 0 {
		cfg.Sampler.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Sampler.ChunkSize == 0 {
		cfg.Sampler.ChunkSize = parallel.DefaultChunkSize
	}
	if cfg.Inference.ChunkSize == 0 {
		cfg.Inference.ChunkSize = parallel.DefaultChunkSize
	}
	if cfg.Inference.Codec == "" {
		cfg.Inference.Codec = DefaultCodec
	}

	if cfg.Export.Table == "" {
		cfg.Export.Table = DefaultTable
	}
	if cfg.Export.Precision == 0 {
		cfg.Export.Precision = -1
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
