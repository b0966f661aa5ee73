package suggest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAnalyzer implements Analyzer for testing.
type mockAnalyzer struct {
	calls  atomic.Int64
	result Result

	// When set, Analyze signals started and blocks until release closes.
	started chan struct{}
	release chan struct{}
}

func (m *mockAnalyzer) Analyze(context.Context, string, Context) Result {
	m.calls.Add(1)
	if m.started != nil {
		m.started <- struct{}{}
		<-m.release
	}
	return m.result
}

func TestScheduler_OnInputChanged(t *testing.T) {
	t.Run("delivers a result after the debounce delay", func(t *testing.T) {
		engine := &mockAnalyzer{result: Result{Suggestions: []Suggestion{{Command: "git status"}}}}
		scheduler := NewScheduler(SchedulerConfig{
			DebounceDelay: 5 * time.Millisecond,
			Engine:        engine,
		})

		ch := scheduler.OnInputChanged("git s", Context{})
		require.NotNil(t, ch)

		result, ok := <-ch
		require.True(t, ok)
		assert.Equal(t, "git s", result.Input)
		assert.Equal(t, scheduler.StateID(), result.StateID)
		require.Len(t, result.Result.Suggestions, 1)
		assert.Equal(t, "git status", result.Result.Suggestions[0].Command)
	})

	t.Run("rapid input changes collapse to one analysis", func(t *testing.T) {
		engine := &mockAnalyzer{}
		scheduler := NewScheduler(SchedulerConfig{
			DebounceDelay: 50 * time.Millisecond,
			Engine:        engine,
		})

		first := scheduler.OnInputChanged("g", Context{})
		second := scheduler.OnInputChanged("gi", Context{})
		third := scheduler.OnInputChanged("git", Context{})

		result, ok := <-third
		require.True(t, ok)
		assert.Equal(t, "git", result.Input)

		_, ok = <-first
		assert.False(t, ok)
		_, ok = <-second
		assert.False(t, ok)

		assert.Equal(t, int64(1), engine.calls.Load())
	})

	t.Run("nil engine schedules nothing", func(t *testing.T) {
		scheduler := NewScheduler(SchedulerConfig{})
		assert.Nil(t, scheduler.OnInputChanged("git", Context{}))
	})
}

func TestScheduler_Clear(t *testing.T) {
	t.Run("cancels a pending analysis", func(t *testing.T) {
		engine := &mockAnalyzer{}
		scheduler := NewScheduler(SchedulerConfig{
			DebounceDelay: 50 * time.Millisecond,
			Engine:        engine,
		})

		ch := scheduler.OnInputChanged("git", Context{})
		scheduler.Clear()

		_, ok := <-ch
		assert.False(t, ok)
		assert.Zero(t, engine.calls.Load())
	})

	t.Run("discards a result that is already in flight", func(t *testing.T) {
		engine := &mockAnalyzer{
			started: make(chan struct{}),
			release: make(chan struct{}),
			result:  Result{Suggestions: []Suggestion{{Command: "stale"}}},
		}
		scheduler := NewScheduler(SchedulerConfig{
			DebounceDelay: time.Millisecond,
			Engine:        engine,
		})

		ch := scheduler.OnInputChanged("git", Context{})
		<-engine.started

		scheduler.Clear()
		close(engine.release)

		_, ok := <-ch
		assert.False(t, ok)
		assert.Equal(t, int64(1), engine.calls.Load())
	})
}
