package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read as configuration.
// A double underscore separates nesting levels, so JARRELOC_LOG__FILE sets
// log.file and JARRELOC_PRUNE_SOURCES sets prune_sources.
const EnvPrefix = "JARRELOC_"

// LoadOptions selects the sources layered over the embedded defaults
type LoadOptions struct {
	// File is an explicit config file (.toml, .yaml or .yml)
	File string
	// Overrides are dotted keys applied last, typically from CLI flags
	Overrides map[string]interface{}
	// SkipUserConfig ignores the config file in the XDG config home
	SkipUserConfig bool
}

// UserConfigPath returns where the user config file is looked up
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "jarreloc", "config.toml")
}

// Load builds the configuration from every source and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config, if present
	if !opts.SkipUserConfig {
		userPath := UserConfigPath()
		if _, err := os.Stat(userPath); err == nil {
			if err := loadFile(k, userPath); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", userPath).Msg("Loaded user config")
		}
	}

	// 3. Explicit config file
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.File).
				WithDetail("path", opts.File)
		}
		if err := loadFile(k, opts.File); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.File).Msg("Loaded config file")
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults alone
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return &Config{}
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return &Config{}
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
