// Package analyze computes statistics over rolling command history:
// per-command frequencies, repeated n-gram sequences, workflow-pattern
// recognition, and synthesized optimization suggestions. Results are
// memoized by (recent history window, directory) so identical inputs
// never recompute.
package analyze

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hintsh/hintsh/internal/suggest/cache"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	// memoWindow is how many leading history entries participate in the
	// memoization key.
	memoWindow = 20

	// popularArgLimit caps how many argument variants are tracked per
	// base command.
	popularArgLimit = 3

	// minSequenceCount is the repetition threshold for reporting an
	// n-gram sequence.
	minSequenceCount = 2

	// aliasUseThreshold and aliasLengthThreshold gate alias synthesis.
	aliasUseThreshold    = 3
	aliasLengthThreshold = 10
)

// CommandFrequency is how often a base command appears, with its most
// common full-argument strings.
type CommandFrequency struct {
	Command     string
	Count       int
	PopularArgs []string
}

// CommandSequence is an ordered run of commands that repeats in history.
type CommandSequence struct {
	Commands []string
	Count    int
}

// PatternMatch is a recognized workflow category with its deduplicated
// example commands.
type PatternMatch struct {
	Name        string
	Description string
	Examples    []string
	Count       int
	Tips        []OptimizationTip
}

// Optimization is a concrete rewrite the user could adopt.
type Optimization struct {
	Original    string
	Optimized   string
	Explanation string
	Benefit     string
}

// Result is the full analysis of one history window.
type Result struct {
	Frequencies   []CommandFrequency
	Sequences     []CommandSequence
	Patterns      []PatternMatch
	Optimizations []Optimization
	Timestamp     time.Time
}

// Config holds configuration for creating an Analyzer.
type Config struct {
	// Cache memoizes analysis results under "analysis:" keys.
	// If nil, the analyzer creates its own.
	Cache *cache.Cache

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Analyzer computes and memoizes history analysis results.
type Analyzer struct {
	cache  *cache.Cache
	logger *zap.Logger

	recomputes atomic.Int64
}

// New creates an Analyzer with the given configuration.
func New(cfg Config) *Analyzer {
	c := cfg.Cache
	if c == nil {
		c = cache.New(cache.DefaultMaxSize)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		cache:  c,
		logger: logger,
	}
}

// Recomputes returns how many times a full analysis has run. Cached
// lookups do not increment it.
func (a *Analyzer) Recomputes() int64 {
	return a.recomputes.Load()
}

// Analyze returns the analysis of the given history in the given
// directory. Position 0 of history is the most recent command. The
// result is memoized; identical (history window, directory) pairs
// return the cached result without recomputation.
func (a *Analyzer) Analyze(history []string, directory string) *Result {
	key := memoKey(history, directory)
	if value, ok := a.cache.Get(key); ok {
		if result, ok := value.(*Result); ok {
			return result
		}
	}

	a.recomputes.Add(1)
	result := a.compute(history)
	a.cache.Set(key, result)

	a.logger.Debug("history analysis computed",
		zap.Int("entries", len(history)),
		zap.Int("frequencies", len(result.Frequencies)),
		zap.Int("sequences", len(result.Sequences)),
		zap.Int("patterns", len(result.Patterns)),
		zap.Int("optimizations", len(result.Optimizations)),
	)
	return result
}

func memoKey(history []string, directory string) string {
	window := history
	if len(window) > memoWindow {
		window = window[:memoWindow]
	}

	digest := xxhash.New()
	for _, entry := range window {
		digest.WriteString(entry)
		digest.WriteString("\x00")
	}
	digest.WriteString(directory)
	return fmt.Sprintf("analysis:%016x", digest.Sum64())
}

func (a *Analyzer) compute(history []string) *Result {
	frequencies := computeFrequencies(history)
	patterns := matchPatterns(history)

	return &Result{
		Frequencies:   frequencies,
		Sequences:     computeSequences(history),
		Patterns:      patterns,
		Optimizations: computeOptimizations(history, frequencies, patterns),
		Timestamp:     time.Now(),
	}
}

// computeFrequencies groups history by base command, tracking counts
// and the most common full-argument strings.
func computeFrequencies(history []string) []CommandFrequency {
	type argStats struct {
		counts map[string]int
		order  []string
	}

	counts := make(map[string]int)
	args := make(map[string]*argStats)
	var order []string

	for _, entry := range history {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		base := fields[0]

		if counts[base] == 0 {
			order = append(order, base)
			args[base] = &argStats{counts: make(map[string]int)}
		}
		counts[base]++

		if len(fields) > 1 {
			rest := strings.Join(fields[1:], " ")
			stats := args[base]
			if stats.counts[rest] == 0 {
				stats.order = append(stats.order, rest)
			}
			stats.counts[rest]++
		}
	}

	frequencies := make([]CommandFrequency, 0, len(order))
	for _, base := range order {
		stats := args[base]
		popular := append([]string(nil), stats.order...)
		sort.SliceStable(popular, func(i, j int) bool {
			return stats.counts[popular[i]] > stats.counts[popular[j]]
		})
		if len(popular) > popularArgLimit {
			popular = popular[:popularArgLimit]
		}
		frequencies = append(frequencies, CommandFrequency{
			Command:     base,
			Count:       counts[base],
			PopularArgs: popular,
		})
	}

	sort.SliceStable(frequencies, func(i, j int) bool {
		return frequencies[i].Count > frequencies[j].Count
	})
	return frequencies
}

// computeSequences slides windows of length 2 and 3 over history and
// keeps exact ordered subsequences occurring at least twice.
func computeSequences(history []string) []CommandSequence {
	counts := make(map[string]int)
	var order []string

	for _, n := range []int{2, 3} {
		for i := 0; i+n <= len(history); i++ {
			window := history[i : i+n]
			if lo.SomeBy(window, func(entry string) bool {
				return strings.TrimSpace(entry) == ""
			}) {
				continue
			}
			key := strings.Join(window, "\x00")
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	var sequences []CommandSequence
	for _, key := range order {
		if counts[key] < minSequenceCount {
			continue
		}
		sequences = append(sequences, CommandSequence{
			Commands: strings.Split(key, "\x00"),
			Count:    counts[key],
		})
	}

	sort.SliceStable(sequences, func(i, j int) bool {
		return sequences[i].Count > sequences[j].Count
	})
	return sequences
}

// matchPatterns tests each history entry against the category catalog,
// accumulating deduplicated examples and hit counts.
func matchPatterns(history []string) []PatternMatch {
	var matches []PatternMatch

	for _, def := range patternCatalog {
		var examples []string
		count := 0
		for _, entry := range history {
			trimmed := strings.TrimSpace(entry)
			if trimmed == "" || !def.Match.MatchString(trimmed) {
				continue
			}
			count++
			examples = append(examples, trimmed)
		}
		if count == 0 {
			continue
		}
		matches = append(matches, PatternMatch{
			Name:        def.Name,
			Description: def.Description,
			Examples:    lo.Uniq(examples),
			Count:       count,
			Tips:        def.Tips,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Count > matches[j].Count
	})
	return matches
}
