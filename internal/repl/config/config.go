// Package config provides configuration management for the hintsh REPL.
// It loads ~/.hintsh/config.yaml, fills in defaults for anything the
// file omits, and resolves the API key from the environment when the
// file carries none.
package config

// Config holds all REPL configuration.
type Config struct {
	// LogLevel controls logging verbosity.
	LogLevel string `yaml:"logLevel"`

	// Offline disables the remote inference adapter entirely.
	Offline bool `yaml:"offline"`

	// APIKey authenticates against the inference endpoint. Falls back
	// to HINTSH_API_KEY, then OPENAI_API_KEY.
	APIKey string `yaml:"apiKey"`

	// BaseURL overrides the inference endpoint.
	BaseURL string `yaml:"baseURL"`

	// Model is the inference model identifier.
	Model string `yaml:"model"`

	// MaxSuggestions caps each suggestion list.
	MaxSuggestions int `yaml:"maxSuggestions"`

	// MinInputLength is the shortest input that gets analyzed.
	MinInputLength int `yaml:"minInputLength"`

	// DebounceMS is the keystroke debounce delay in milliseconds.
	DebounceMS int `yaml:"debounceMs"`

	// CacheSize bounds the suggestion cache.
	CacheSize int `yaml:"cacheSize"`

	// HistoryLimit is how many recent commands feed each analysis.
	HistoryLimit int `yaml:"historyLimit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		Model:          "gpt-4o-mini",
		MaxSuggestions: 7,
		MinInputLength: 2,
		DebounceMS:     150,
		CacheSize:      100,
		HistoryLimit:   20,
	}
}
