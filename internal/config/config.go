package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/vigor/internal/logging"
	"github.com/aretw0/vigor/pkg/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAddr          = "VIGOR_ADDR"
	EnvLogLevel      = "VIGOR_LOG_LEVEL"
	EnvInitialEnergy = "VIGOR_INITIAL_ENERGY"
)

// Config holds the host settings shared by every vigor command.
type Config struct {
	Addr          string  `json:"addr" mapstructure:"addr"`
	LogLevel      string  `json:"log_level" mapstructure:"log_level"`
	LogFormat     string  `json:"log_format" mapstructure:"log_format"`
	InitialEnergy float64 `json:"initial_energy" mapstructure:"initial_energy"`
	Metrics       bool    `json:"metrics" mapstructure:"metrics"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Addr:          ":8080",
		LogLevel:      "info",
		LogFormat:     string(logging.FormatText),
		InitialEnergy: domain.DefaultEnergy,
		Metrics:       true,
	}
}

// Load reads a configuration file (YAML or JSON) on top of the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// decode merges raw onto cfg. Only keys present in raw are overwritten.
func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none is given)
// into the process environment. Variables already set are left untouched and
// missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvInitialEnergy); ok && v != "" {
		energy, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvInitialEnergy, err)
		}
		c.InitialEnergy = energy
	}
	return c.Validate()
}

// Validate checks the fields that have a closed set of values.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch logging.Format(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if err := c.InitialState().Validate(); err != nil {
		return fmt.Errorf("invalid initial_energy: %w", err)
	}
	return nil
}

// InitialState returns the state the store should be seeded with.
func (c Config) InitialState() domain.State {
	return domain.State{Energy: c.InitialEnergy}
}
