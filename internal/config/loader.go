package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "GLASSGEN"

// envKeys are the scalar keys that may be overridden from the environment.
// Viper only resolves environment variables for keys it knows about.
var envKeys = []string{
	"registry",
	"storage.backend", "storage.root", "storage.bucket", "storage.prefix",
	"storage.region", "storage.endpoint", "storage.access_key", "storage.secret_key", "storage.use_ssl",
	"sampler.count", "sampler.seed", "sampler.max_attempts", "sampler.chunk_size", "sampler.workers",
	"inference.workers", "inference.chunk_size", "inference.codec",
	"export.csv", "export.compression", "export.precision", "export.sqlite", "export.table",
	"log.level", "log.format",
	"metrics.addr",
}

// newViper builds a pre-configured Viper instance: YAML file type, GLASSGEN_
// env prefix, automatic env binding, and a key replacer that maps "." to "_"
// so that nested keys like "sampler.count" resolve to "GLASSGEN_SAMPLER_COUNT".
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load reads the YAML file at configPath, merges any GLASSGEN_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// Parse reads configuration from YAML text. Environment overrides apply.
func Parse(yaml string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		return nil, fmt.Errorf("config: failed to parse configuration: %w", err)
	}
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}
