package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Offline)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 7, cfg.MaxSuggestions)
	assert.Equal(t, 2, cfg.MinInputLength)
	assert.Equal(t, 150, cfg.DebounceMS)
	assert.Equal(t, 100, cfg.CacheSize)
	assert.Equal(t, 20, cfg.HistoryLimit)
}
