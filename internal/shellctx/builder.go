package shellctx

import (
	"os"

	"github.com/hintsh/hintsh/internal/suggest"
	"go.uber.org/zap"
)

// Builder assembles the suggestion context for one analysis call.
// Every source degrades independently: a failing history store or an
// unresolvable working directory yields a smaller context, never an
// error.
type Builder struct {
	source HistorySource
	limit  int
	logger *zap.Logger
}

// BuilderConfig holds configuration for creating a Builder.
type BuilderConfig struct {
	// History is the command history source. nil yields contexts
	// without recent commands.
	History HistorySource

	// HistoryLimit bounds the recent-command window. Defaults to
	// DefaultHistoryLimit.
	HistoryLimit int

	// Logger for debug output.
	Logger *zap.Logger
}

// NewBuilder creates a Builder with the given configuration.
func NewBuilder(cfg BuilderConfig) *Builder {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		source: cfg.History,
		limit:  limit,
		logger: logger,
	}
}

// Build returns the current shell context.
func (b *Builder) Build() suggest.Context {
	var sctx suggest.Context

	if pwd, err := os.Getwd(); err == nil {
		sctx.CurrentDirectory = pwd
	} else {
		b.logger.Debug("failed to resolve working directory", zap.Error(err))
	}

	if b.source == nil {
		return sctx
	}

	commands, err := b.source.RecentCommands("", b.limit)
	if err != nil {
		b.logger.Warn("failed to load recent commands", zap.Error(err))
	} else {
		sctx.RecentCommands = commands
	}

	lastError, err := b.source.LastError()
	if err != nil {
		b.logger.Warn("failed to load last error", zap.Error(err))
	} else {
		sctx.LastError = lastError
	}

	return sctx
}
