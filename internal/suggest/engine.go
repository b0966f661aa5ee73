package suggest

import (
	"context"
	"strings"

	"github.com/hintsh/hintsh/internal/llm"
	"github.com/hintsh/hintsh/internal/suggest/analyze"
	"github.com/hintsh/hintsh/internal/suggest/cache"
	"github.com/hintsh/hintsh/internal/suggest/correct"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	// DefaultMaxSuggestions bounds the returned list.
	DefaultMaxSuggestions = 7

	// DefaultMinInputLength is the shortest input the engine analyzes.
	DefaultMinInputLength = 2
)

// AIClient is the remote inference adapter as the engine sees it.
// *llm.Client implements it; tests substitute mocks.
type AIClient interface {
	Suggest(ctx context.Context, input string, pctx llm.PromptContext) ([]llm.Suggestion, error)
	Explain(ctx context.Context, command string) (string, error)
	ExplainStructured(ctx context.Context, command string) (*llm.StructuredExplanation, error)
}

// EngineConfig holds configuration for creating an Engine.
type EngineConfig struct {
	// AI is the remote inference adapter. nil means offline mode.
	AI AIClient

	// Offline forces offline mode even when AI is set.
	Offline bool

	// MaxSuggestions caps the returned list. Defaults to DefaultMaxSuggestions.
	MaxSuggestions int

	// MinInputLength is the shortest input analyzed. Defaults to
	// DefaultMinInputLength.
	MinInputLength int

	// CacheSize bounds the result cache. Defaults to cache.DefaultMaxSize.
	CacheSize int

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Engine orchestrates the suggestion pipeline. Construct one per
// application session and inject it into callers; it owns the cache
// and the static catalogs, while history is caller-owned and passed
// read-only per call.
type Engine struct {
	corrector *correct.Corrector
	analyzer  *analyze.Analyzer
	cache     *cache.Cache
	ai        AIClient

	offline        bool
	maxSuggestions int
	minInputLength int
	logger         *zap.Logger
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxSuggestions := cfg.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	minInputLength := cfg.MinInputLength
	if minInputLength <= 0 {
		minInputLength = DefaultMinInputLength
	}

	resultCache := cache.New(cfg.CacheSize)

	return &Engine{
		corrector:      correct.New(),
		analyzer:       analyze.New(analyze.Config{Cache: resultCache, Logger: logger}),
		cache:          resultCache,
		ai:             cfg.AI,
		offline:        cfg.Offline,
		maxSuggestions: maxSuggestions,
		minInputLength: minInputLength,
		logger:         logger,
	}
}

// Analyze turns raw input plus shell context into a ranked,
// deduplicated, bounded suggestion list. It never fails: analyzer and
// adapter errors degrade to smaller (possibly empty) results.
func (e *Engine) Analyze(ctx context.Context, input string, sctx Context) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || len(trimmed) < e.minInputLength {
		return Result{}
	}

	key := input + ":" + sctx.CurrentDirectory
	if value, ok := e.cache.Get(key); ok {
		if result, ok := value.(Result); ok {
			return result
		}
	}

	correction := e.corrector.Correct(trimmed)
	if correction != nil && correction.Kind == correct.KindDanger {
		// A danger correction is returned alone; nothing else runs.
		result := Result{
			Suggestions: []Suggestion{correctionSuggestion(correction)},
			HasWarning:  true,
		}
		e.cache.Set(key, result)
		return result
	}

	historySugs := e.historySuggestions(trimmed, sctx)

	var combined []Suggestion
	if e.offline || e.ai == nil {
		combined = e.offlineCombination(correction, historySugs, trimmed)
	} else {
		remote, err := e.ai.Suggest(ctx, trimmed, llm.PromptContext{
			Directory: sctx.CurrentDirectory,
			Recent:    sctx.RecentCommands,
			LastError: sctx.LastError,
		})
		if err != nil {
			// Fall back to the offline combination for this call only.
			e.logger.Warn("remote suggestions failed, using offline fallback",
				zap.String("input", trimmed),
				zap.Error(err),
			)
			combined = e.offlineCombination(correction, historySugs, trimmed)
		} else {
			combined = append(combined, historySugs...)
			for _, s := range remote {
				combined = append(combined, Suggestion{
					Command:     s.Command,
					Description: s.Explanation,
					Source:      SourceAI,
					Score:       aiScore,
				})
			}
		}
	}

	result := Result{Suggestions: e.merge(combined)}
	e.cache.Set(key, result)
	return result
}

// offlineCombination is the local pipeline: non-danger correction
// first, then history-derived suggestions, then static heuristics.
func (e *Engine) offlineCombination(correction *correct.Correction, historySugs []Suggestion, input string) []Suggestion {
	var combined []Suggestion
	if correction != nil {
		combined = append(combined, correctionSuggestion(correction))
	}
	combined = append(combined, historySugs...)
	combined = append(combined, offlineHeuristics(input)...)
	return combined
}

// merge enforces the list invariants: non-empty commands, first
// occurrence wins on duplicates, bounded length. Discovery order is
// the rank; scores are carried as metadata.
func (e *Engine) merge(suggestions []Suggestion) []Suggestion {
	filtered := lo.Filter(suggestions, func(s Suggestion, _ int) bool {
		return s.Command != ""
	})
	deduped := lo.UniqBy(filtered, func(s Suggestion) string {
		return s.Command
	})
	if len(deduped) > e.maxSuggestions {
		deduped = deduped[:e.maxSuggestions]
	}
	return deduped
}

// historySuggestions derives input-scoped suggestions from the
// memoized history analysis. Any internal failure degrades to an
// empty list and is logged, never propagated.
func (e *Engine) historySuggestions(input string, sctx Context) (suggestions []Suggestion) {
	if len(sctx.RecentCommands) == 0 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("history analysis failed",
				zap.Any("panic", r),
				zap.String("input", input),
			)
			suggestions = nil
		}
	}()

	analysis := e.analyzer.Analyze(sctx.RecentCommands, sctx.CurrentDirectory)
	latest := strings.TrimSpace(sctx.RecentCommands[0])

	// Sequences: when the latest command appears inside a recurring
	// run, propose the command that historically followed it. History
	// is most-recent-first, so the follower sits one position earlier.
	for _, seq := range analysis.Sequences {
		for i := len(seq.Commands) - 1; i >= 1; i-- {
			if seq.Commands[i] != latest {
				continue
			}
			next := seq.Commands[i-1]
			if next != input && strings.HasPrefix(next, input) {
				suggestions = append(suggestions, Suggestion{
					Command:     next,
					Description: "Usually follows " + latest,
					Source:      SourceSequence,
					Score:       sequenceScore,
				})
			}
			break
		}
	}

	// Frequencies: complete the input with the most popular full form.
	for _, freq := range analysis.Frequencies {
		full := freq.Command
		if len(freq.PopularArgs) > 0 {
			full = freq.Command + " " + freq.PopularArgs[0]
		}
		if full == input || !strings.HasPrefix(full, input) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Command:     full,
			Description: "Frequently used",
			Source:      SourceFrequency,
			Score:       frequencyScore,
		})
	}

	// Patterns: complete the input from deduplicated category examples.
	for _, pattern := range analysis.Patterns {
		for _, example := range pattern.Examples {
			if example == input || !strings.HasPrefix(example, input) {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				Command:     example,
				Description: pattern.Description,
				Source:      SourcePattern,
				Score:       patternScore,
			})
			break
		}
	}

	// Optimizations scoped to the input's base command.
	base := baseCommand(input)
	for _, opt := range analysis.Optimizations {
		if !strings.HasPrefix(opt.Original, base) && !strings.HasPrefix(opt.Optimized, base) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Command:     opt.Optimized,
			Description: opt.Explanation,
			Source:      SourceOptimization,
			Score:       optimizationScore,
		})
	}

	return suggestions
}

// Explain returns a free-text explanation of command: remote when
// online (cached under "explain:"), otherwise the static table.
func (e *Engine) Explain(ctx context.Context, command string) string {
	if e.offline || e.ai == nil {
		return offlineExplanation(command)
	}

	key := "explain:" + command
	if value, ok := e.cache.Get(key); ok {
		if text, ok := value.(string); ok {
			return text
		}
	}

	text, err := e.ai.Explain(ctx, command)
	if err != nil {
		e.logger.Warn("remote explanation failed",
			zap.String("command", command),
			zap.Error(err),
		)
		return offlineExplanation(command)
	}

	e.cache.Set(key, text)
	return text
}

// ExplainStructured returns a structured explanation of command:
// remote when online (cached under "structured:"), otherwise a minimal
// object built from the offline explanation.
func (e *Engine) ExplainStructured(ctx context.Context, command string) *llm.StructuredExplanation {
	if e.offline || e.ai == nil {
		return e.fallbackStructured(command)
	}

	key := "structured:" + command
	if value, ok := e.cache.Get(key); ok {
		if explanation, ok := value.(*llm.StructuredExplanation); ok {
			return explanation
		}
	}

	explanation, err := e.ai.ExplainStructured(ctx, command)
	if err != nil {
		e.logger.Warn("remote structured explanation failed",
			zap.String("command", command),
			zap.Error(err),
		)
		return e.fallbackStructured(command)
	}

	e.cache.Set(key, explanation)
	return explanation
}

func (e *Engine) fallbackStructured(command string) *llm.StructuredExplanation {
	return &llm.StructuredExplanation{
		Command: command,
		Purpose: offlineExplanation(command),
		Options: map[string]string{},
	}
}

// AnalyzePatterns exposes the memoized history analysis directly.
func (e *Engine) AnalyzePatterns(history []string, sctx Context) *analyze.Result {
	return e.analyzer.Analyze(history, sctx.CurrentDirectory)
}

// ClearCache empties the result cache.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// ClearCacheByPrefix removes cached entries whose key starts with prefix.
func (e *Engine) ClearCacheByPrefix(prefix string) {
	e.cache.ClearPrefix(prefix)
}

// CacheStats reports the result cache's size and key categories.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

func correctionSuggestion(correction *correct.Correction) Suggestion {
	s := Suggestion{
		Command:     correction.Command,
		Description: correction.Explanation,
		Score:       correction.Score,
		IsWarning:   correction.IsWarning,
	}
	switch correction.Kind {
	case correct.KindTypo:
		s.Source = SourceTypo
	case correct.KindDanger:
		s.Source = SourceSafety
		s.Type = "danger"
	case correct.KindSyntax:
		s.Source = SourceSyntax
	case correct.KindFuzzy:
		s.Source = SourceFuzzy
	}
	return s
}

// baseCommand returns the first whitespace-delimited token.
func baseCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
