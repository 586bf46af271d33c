package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/fuelstats/core/factory"
)

// EnvPrefix marks environment variables that override file settings.
// FUELSTATS_LOGGING__LEVEL=debug sets logging.level.
const EnvPrefix = "FUELSTATS_"

// DefaultLogPath is read when neither the config nor the command line names
// an input.
const DefaultLogPath = "./tanken.txt"

type Config struct {
	Source  factory.ModuleConfig   `json:"source"`
	Sinks   []factory.ModuleConfig `json:"sinks"`
	Logging LoggingConfig          `json:"logging"`
	Sentry  SentryConfig           `json:"sentry"`
}

// Load reads path and applies environment overrides. A missing file is not
// an error when optional is set; defaults are used instead.
func Load(path string, optional bool) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := loadFile(k, path); err != nil {
			if !optional || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format: %s", ext)
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), parser)
}

// SetDefaults fills unset sections.
func (c *Config) SetDefaults() {
	if c.Source.Type == "" {
		c.Source.Type = "file"
	}
	if c.Source.Type == "file" && c.Source.Conf["path"] == nil {
		if c.Source.Conf == nil {
			c.Source.Conf = map[string]any{}
		}
		c.Source.Conf["path"] = DefaultLogPath
	}
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("sinks[%d]: type is required", i)
		}
	}
	return c.Logging.Validate()
}

// SetSourcePath points the source at path, keeping its type.
func (c *Config) SetSourcePath(path string) {
	if c.Source.Conf == nil {
		c.Source.Conf = map[string]any{}
	}
	c.Source.Conf["path"] = path
}
