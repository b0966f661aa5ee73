package suggest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounceDelay is the pause after the last keystroke before an
// analysis request is issued.
const DefaultDebounceDelay = 150 * time.Millisecond

// ScheduledResult is the outcome of one scheduled analysis.
type ScheduledResult struct {
	// Result holds the suggestions for the input that was scheduled.
	Result Result

	// Input is the text the result was computed for.
	Input string

	// StateID is the scheduler state when this analysis was requested.
	// Used to discard stale results.
	StateID int64
}

// Analyzer is the engine as the scheduler sees it. *Engine implements
// it; tests substitute mocks.
type Analyzer interface {
	Analyze(ctx context.Context, input string, sctx Context) Result
}

// Scheduler debounces and coordinates analysis requests as the user
// types. Each input change invalidates every in-flight request; only a
// result whose state ID still matches is delivered.
type Scheduler struct {
	// State ID for coordinating async analyses
	stateID atomic.Int64

	// Mutex for thread-safe access
	mu sync.Mutex

	debounceDelay time.Duration

	engine Analyzer
	logger *zap.Logger

	// Pending analysis cancel function
	cancelPending context.CancelFunc
}

// SchedulerConfig holds configuration for creating a Scheduler.
type SchedulerConfig struct {
	// DebounceDelay is the pause before an analysis is issued.
	// Defaults to DefaultDebounceDelay if not set.
	DebounceDelay time.Duration

	// Engine performs the analyses.
	Engine Analyzer

	// Logger for debug output.
	Logger *zap.Logger
}

// NewScheduler creates a Scheduler with the given configuration.
func NewScheduler(config SchedulerConfig) *Scheduler {
	debounceDelay := config.DebounceDelay
	if debounceDelay == 0 {
		debounceDelay = DefaultDebounceDelay
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		debounceDelay: debounceDelay,
		engine:        config.Engine,
		logger:        logger,
	}
}

// StateID returns the current state ID.
func (s *Scheduler) StateID() int64 {
	return s.stateID.Load()
}

// Clear cancels any pending analysis and invalidates in-flight results.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateID.Add(1)
	s.cancelPendingLocked()
}

// cancelPendingLocked cancels any pending analysis request.
// Must be called with mu held.
func (s *Scheduler) cancelPendingLocked() {
	if s.cancelPending != nil {
		s.cancelPending()
		s.cancelPending = nil
	}
}

// OnInputChanged should be called on every input change. It cancels
// any pending analysis and schedules a new one after the debounce
// delay. The returned channel delivers at most one result and is then
// closed; it is nil when no analysis will run for this input.
func (s *Scheduler) OnInputChanged(input string, sctx Context) <-chan ScheduledResult {
	s.mu.Lock()
	s.cancelPendingLocked()
	newStateID := s.stateID.Add(1)

	if s.engine == nil {
		s.mu.Unlock()
		return nil
	}

	resultCh := make(chan ScheduledResult, 1)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelPending = cancel
	s.mu.Unlock()

	go func() {
		defer close(resultCh)

		// Debounce calls to avoid spam
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.debounceDelay):
		}

		// Check if state is still valid
		if s.stateID.Load() != newStateID {
			return
		}

		result := s.engine.Analyze(ctx, input, sctx)

		// Send result if still valid
		if s.stateID.Load() != newStateID {
			s.logger.Debug("discarding stale analysis",
				zap.Int64("expectedStateID", s.stateID.Load()),
				zap.Int64("actualStateID", newStateID),
				zap.String("input", input),
			)
			return
		}

		select {
		case resultCh <- ScheduledResult{Result: result, Input: input, StateID: newStateID}:
		case <-ctx.Done():
		}
	}()

	return resultCh
}
