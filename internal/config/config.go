// Package config provides configuration loading, defaults, and validation for
// the glassgen command line tool.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/glassgen/codec"
	"github.com/hupe1980/glassgen/export"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/property"
	"github.com/hupe1980/glassgen/screen"
)

// Config is the root configuration of a screening run.
type Config struct {
	Oxides       []string             `mapstructure:"oxides"`
	MolarMasses  []MolarMassConfig    `mapstructure:"molar_masses"`
	Storage      StorageConfig        `mapstructure:"storage"`
	Registry     string               `mapstructure:"registry"`
	Properties   []property.Spec      `mapstructure:"properties"`
	Coefficients []CoefficientsConfig `mapstructure:"coefficients"`
	Sampler      SamplerConfig        `mapstructure:"sampler"`
	Inference    InferenceConfig      `mapstructure:"inference"`
	Windows      []WindowConfig       `mapstructure:"windows"`
	Export       ExportConfig         `mapstructure:"export"`
	Log          LogConfig            `mapstructure:"log"`
	Metrics      MetricsConfig        `mapstructure:"metrics"`
}

// MolarMassConfig overrides or adds the molar mass of one oxide (g/mol).
type MolarMassConfig struct {
	Oxide string  `mapstructure:"oxide"`
	Mass  float64 `mapstructure:"mass"`
}

// WindowConfig is a screening window. Enabled defaults to true.
type WindowConfig struct {
	Property string  `mapstructure:"property"`
	Min      float64 `mapstructure:"min"`
	Max      float64 `mapstructure:"max"`
	Enabled  *bool   `mapstructure:"enabled"`
}

// Window converts w to a screen.Window.
func (w WindowConfig) Window() screen.Window {
	enabled := true
	if w.Enabled != nil {
		enabled = *w.Enabled
	}
	return screen.Window{Property: w.Property, Min: w.Min, Max: w.Max, Enabled: enabled}
}

// ScreenWindows converts all configured windows.
func (c *Config) ScreenWindows() []screen.Window {
	out := make([]screen.Window, len(c.Windows))
	for i, w := range c.Windows {
		out[i] = w.Window()
	}
	return out
}

// MolarMassTable returns the built-in table overlaid with the configured masses.
func (c *Config) MolarMassTable() oxide.MolarMassTable {
	extra := make(oxide.MolarMassTable, len(c.MolarMasses))
	for _, m := range c.MolarMasses {
		extra[m.Oxide] = m.Mass
	}
	return oxide.DefaultMolarMasses.Merge(extra)
}

// StorageConfig selects the blob store holding datasets, models and exports.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	Root      string `mapstructure:"root"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// CoefficientsConfig names an oxide-keyed coefficient table.
type CoefficientsConfig struct {
	Name   string `mapstructure:"name"`
	Path   string `mapstructure:"path"`
	Column string `mapstructure:"column"`
}

// SamplerConfig mirrors sampler.Config.
type SamplerConfig struct {
	Count       int   `mapstructure:"count"`
	Seed        int64 `mapstructure:"seed"`
	MaxAttempts int   `mapstructure:"max_attempts"`
	ChunkSize   int   `mapstructure:"chunk_size"`
	Workers     int   `mapstructure:"workers"`
}

// InferenceConfig controls batch inference of surrogate networks.
type InferenceConfig struct {
	Workers   int `mapstructure:"workers"`
	ChunkSize int `mapstructure:"chunk_size"`
	// Codec names the artifact codec ("go-json" or "json").
	Codec string `mapstructure:"codec"`
}

// ArtifactCodec resolves Codec.
func (c InferenceConfig) ArtifactCodec() (codec.Codec, error) {
	cd, ok := codec.ByName(c.Codec)
	if !ok {
		return nil, fmt.Errorf("inference: unknown codec %q", c.Codec)
	}
	return cd, nil
}

// ExportConfig selects the result writers. Empty paths disable a writer.
type ExportConfig struct {
	CSV         string          `mapstructure:"csv"`
	Compression string          `mapstructure:"compression"`
	Precision   int             `mapstructure:"precision"`
	SQLite      string          `mapstructure:"sqlite"`
	Table       string          `mapstructure:"table"`
	Columns     []export.Column `mapstructure:"columns"`
}

// LogConfig controls the pipeline logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Storage backends.
const (
	BackendLocal  = "local"
	BackendMemory = "memory"
	BackendS3     = "s3"
	BackendMinIO  = "minio"
)

// Validate checks the configuration after defaults were applied.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Oxides) == 0 {
		errs = append(errs, errors.New("oxides: at least one oxide is required"))
	}
	if len(c.Properties) == 0 && c.Registry == "" {
		errs = append(errs, errors.New("properties: declare properties or a registry file"))
	}
	for _, p := range c.Properties {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i, co := range c.Coefficients {
		if co.Name == "" || co.Path == "" || co.Column == "" {
			errs = append(errs, fmt.Errorf("coefficients[%d]: name, path and column are required", i))
		}
	}
	for i, m := range c.MolarMasses {
		if m.Oxide == "" || m.Mass <= 0 {
			errs = append(errs, fmt.Errorf("molar_masses[%d]: oxide and a positive mass are required", i))
		}
	}
	for _, w := range c.ScreenWindows() {
		if err := w.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	switch c.Storage.Backend {
	case BackendLocal, BackendMemory:
	case BackendS3, BackendMinIO:
		if c.Storage.Bucket == "" {
			errs = append(errs, fmt.Errorf("storage: %s backend needs a bucket", c.Storage.Backend))
		}
		if c.Storage.Backend == BackendMinIO && c.Storage.Endpoint == "" {
			errs = append(errs, errors.New("storage: minio backend needs an endpoint"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage: unknown backend %q", c.Storage.Backend))
	}

	if c.Sampler.Count < 0 {
		errs = append(errs, fmt.Errorf("sampler: count must be non-negative, got %d", c.Sampler.Count))
	}
	if c.Sampler.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("sampler: max_attempts must be positive, got %d", c.Sampler.MaxAttempts))
	}
	if _, err := c.Inference.ArtifactCodec(); err != nil {
		errs = append(errs, err)
	}
	if _, err := compress.ParseType(c.Export.Compression); err != nil {
		errs = append(errs, fmt.Errorf("export: %w", err))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log: %w", err)
	}
	return lvl, nil
}
