package config

import (
	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/remap"
)

// Config is the complete jarreloc configuration
type Config struct {
	// Relocations are applied in order; the first that accepts a name wins
	Relocations []remap.Relocation `koanf:"relocations" toml:"relocations,omitempty"`

	PruneSources   bool `koanf:"prune_sources" toml:"prune_sources"`
	KeepFailedTemp bool `koanf:"keep_failed_temp" toml:"keep_failed_temp"`
	DryRun         bool `koanf:"dry_run" toml:"dry_run"`

	Log LogConfig `koanf:"log" toml:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	File    string `koanf:"file" toml:"file"`
	NoColor bool   `koanf:"no_color" toml:"no_color"`
}

// Validate checks that every relocation can be compiled
func (c *Config) Validate() error {
	if _, err := remap.New(c.Relocations...); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid relocation in configuration").
			WithDetails(errors.GetErrorDetails(err))
	}
	return nil
}
