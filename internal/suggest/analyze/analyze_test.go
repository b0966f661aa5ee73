package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_Frequencies(t *testing.T) {
	a := New(Config{})

	history := []string{
		"git status",
		"git push",
		"git status",
		"ls -la",
		"git status",
		"ls",
	}
	result := a.Analyze(history, "/repo")

	require.GreaterOrEqual(t, len(result.Frequencies), 2)
	assert.Equal(t, "git", result.Frequencies[0].Command)
	assert.Equal(t, 4, result.Frequencies[0].Count)
	assert.Equal(t, "ls", result.Frequencies[1].Command)
	assert.Equal(t, 2, result.Frequencies[1].Count)

	// "status" occurs three times, "push" once.
	require.NotEmpty(t, result.Frequencies[0].PopularArgs)
	assert.Equal(t, "status", result.Frequencies[0].PopularArgs[0])
}

func TestAnalyzer_PopularArgsCapped(t *testing.T) {
	a := New(Config{})

	history := []string{
		"git status", "git status",
		"git push", "git pull", "git log", "git diff",
	}
	result := a.Analyze(history, "")

	require.NotEmpty(t, result.Frequencies)
	args := result.Frequencies[0].PopularArgs
	assert.Len(t, args, 3)
	assert.Equal(t, "status", args[0])
}

func TestAnalyzer_Sequences(t *testing.T) {
	a := New(Config{})

	history := []string{
		"go build", "go test",
		"go build", "go test",
		"ls",
	}
	result := a.Analyze(history, "")

	require.NotEmpty(t, result.Sequences)
	assert.Equal(t, []string{"go build", "go test"}, result.Sequences[0].Commands)
	assert.Equal(t, 2, result.Sequences[0].Count)

	for _, seq := range result.Sequences {
		assert.GreaterOrEqual(t, seq.Count, 2, "sequences below the threshold must be dropped")
	}
}

func TestAnalyzer_Patterns(t *testing.T) {
	a := New(Config{})

	history := []string{
		"git status",
		"git push",
		"grep -r TODO .",
		"cd src",
		"git status",
	}
	result := a.Analyze(history, "")

	require.NotEmpty(t, result.Patterns)
	assert.Equal(t, "version-control", result.Patterns[0].Name)
	assert.Equal(t, 3, result.Patterns[0].Count)
	// Examples are deduplicated.
	assert.Equal(t, []string{"git status", "git push"}, result.Patterns[0].Examples)

	names := make([]string, 0, len(result.Patterns))
	for _, p := range result.Patterns {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "search")
	assert.Contains(t, names, "navigation")
}

func TestAnalyzer_OptimizationFromPatternTip(t *testing.T) {
	a := New(Config{})

	history := []string{"grep -r TODO src"}
	result := a.Analyze(history, "")

	require.NotEmpty(t, result.Optimizations)
	assert.Equal(t, "grep -r TODO src", result.Optimizations[0].Original)
	assert.Equal(t, "rg TODO src", result.Optimizations[0].Optimized)
	assert.Equal(t, "speed", result.Optimizations[0].Benefit)
}

func TestAnalyzer_AliasSynthesis(t *testing.T) {
	a := New(Config{})

	history := []string{
		"docker compose up",
		"docker compose up",
		"docker compose up",
	}
	result := a.Analyze(history, "")

	var alias *Optimization
	for i := range result.Optimizations {
		if result.Optimizations[i].Benefit == "alias" {
			alias = &result.Optimizations[i]
			break
		}
	}
	require.NotNil(t, alias, "expected an alias optimization")
	assert.Equal(t, "docker compose up", alias.Original)
	assert.Equal(t, "alias dcu='docker compose up'", alias.Optimized)
}

func TestAnalyzer_CombinedPairs(t *testing.T) {
	t.Run("mkdir then cd", func(t *testing.T) {
		a := New(Config{})
		history := []string{
			"mkdir proj", "cd proj",
			"mkdir proj", "cd proj",
			"mkdir proj", "cd proj",
		}
		result := a.Analyze(history, "")

		found := false
		for _, opt := range result.Optimizations {
			if opt.Optimized == "mkdir -p proj && cd $_" {
				found = true
			}
		}
		assert.True(t, found, "expected combined mkdir/cd optimization, got %+v", result.Optimizations)
	})

	t.Run("git add then commit", func(t *testing.T) {
		a := New(Config{})
		history := []string{
			"git add .", `git commit -m "wip"`,
			"git add .", `git commit -m "wip"`,
		}
		result := a.Analyze(history, "")

		found := false
		for _, opt := range result.Optimizations {
			if opt.Optimized == `git commit -am "wip"` {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("single occurrence not reported", func(t *testing.T) {
		a := New(Config{})
		history := []string{"mkdir proj", "cd proj"}
		result := a.Analyze(history, "")

		for _, opt := range result.Optimizations {
			assert.NotEqual(t, "mkdir -p proj && cd $_", opt.Optimized)
		}
	})
}

func TestAnalyzer_Memoization(t *testing.T) {
	a := New(Config{})
	history := []string{"git status", "git push", "ls"}

	first := a.Analyze(history, "/repo")
	second := a.Analyze(history, "/repo")

	assert.Same(t, first, second, "identical inputs must return the cached result")
	assert.Equal(t, int64(1), a.Recomputes())

	// A different directory is a different memo key.
	a.Analyze(history, "/other")
	assert.Equal(t, int64(2), a.Recomputes())

	// Entries beyond the memo window do not affect the key.
	long := make([]string, memoWindow)
	for i := range long {
		long[i] = "ls"
	}
	a.Analyze(long, "/repo")
	a.Analyze(append(append([]string(nil), long...), "tail entry"), "/repo")
	assert.Equal(t, int64(3), a.Recomputes())
}

func TestAnalyzer_EmptyAndMalformedEntries(t *testing.T) {
	a := New(Config{})

	history := []string{"", "   ", "git status", "\t", "git status"}
	result := a.Analyze(history, "")

	require.NotEmpty(t, result.Frequencies)
	assert.Equal(t, "git", result.Frequencies[0].Command)
	assert.Equal(t, 2, result.Frequencies[0].Count)

	for _, seq := range result.Sequences {
		for _, cmd := range seq.Commands {
			assert.NotEmpty(t, cmd)
		}
	}
}

func TestSynthesizeAlias(t *testing.T) {
	assert.Equal(t, "dcu", synthesizeAlias("docker compose up"))
	assert.Equal(t, "gs", synthesizeAlias("git status"))
	assert.Equal(t, "ter", synthesizeAlias("terraform"))
}
