package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineHeuristics(t *testing.T) {
	t.Run("flags filtered by the typed rest", func(t *testing.T) {
		suggestions := offlineHeuristics("git st")
		require.NotEmpty(t, suggestions)
		for _, s := range suggestions {
			assert.Contains(t, s.Command, "git st")
			assert.Equal(t, SourceGit, s.Source)
		}
	})

	t.Run("bare command with a flag table lists every flag", func(t *testing.T) {
		suggestions := offlineHeuristics("ls")
		assert.Len(t, suggestions, len(flagTables["ls"]))
	})

	t.Run("partial command name fuzzy completed", func(t *testing.T) {
		suggestions := offlineHeuristics("dock")
		require.NotEmpty(t, suggestions)
		assert.Equal(t, "docker", suggestions[0].Command)
		assert.Equal(t, SourceCompletion, suggestions[0].Source)
	})

	t.Run("unknown command with arguments yields nothing", func(t *testing.T) {
		assert.Empty(t, offlineHeuristics("frobnicate --all"))
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, offlineHeuristics(""))
	})
}

func TestOfflineExplanation(t *testing.T) {
	assert.Contains(t, offlineExplanation("git push origin main"), "version control")
	assert.Contains(t, offlineExplanation("tar -xzf release.tgz"), "archive")
	assert.Equal(t, `No offline explanation available for "frobnicate".`, offlineExplanation("frobnicate"))
}
