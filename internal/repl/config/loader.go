package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of config.yaml files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadFromFile loads configuration from a YAML file. If the file does
// not exist, it returns the default configuration with no error. A
// malformed file is an error; partial files are merged over defaults.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("config file not found, using defaults", zap.String("path", path))
			return resolveAPIKey(DefaultConfig()), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromString(string(content))
}

// LoadFromString loads configuration from a YAML document string.
func (l *Loader) LoadFromString(source string) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(source), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	hydrateDefaults(cfg)
	return resolveAPIKey(cfg), nil
}

// hydrateDefaults restores defaults for fields set to zero or nonsense
// values, so an explicit `maxSuggestions: 0` does not disable output.
func hydrateDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = defaults.MaxSuggestions
	}
	if cfg.MinInputLength <= 0 {
		cfg.MinInputLength = defaults.MinInputLength
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = defaults.DebounceMS
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaults.HistoryLimit
	}
}

// resolveAPIKey fills APIKey from the environment when the file did
// not set one.
func resolveAPIKey(cfg *Config) *Config {
	if cfg.APIKey != "" {
		return cfg
	}
	if key := os.Getenv("HINTSH_API_KEY"); key != "" {
		cfg.APIKey = key
		return cfg
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	return cfg
}
