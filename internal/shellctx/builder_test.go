package shellctx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHistorySource implements HistorySource for testing.
type mockHistorySource struct {
	commands  []string
	lastError string
	err       error

	requestedLimit int
}

func (m *mockHistorySource) RecentCommands(_ string, limit int) ([]string, error) {
	m.requestedLimit = limit
	return m.commands, m.err
}

func (m *mockHistorySource) LastError() (string, error) {
	return m.lastError, m.err
}

func TestBuilder_Build(t *testing.T) {
	t.Run("assembles directory, history, and last error", func(t *testing.T) {
		source := &mockHistorySource{
			commands:  []string{"git status", "ls"},
			lastError: "fatal: not a git repository",
		}
		builder := NewBuilder(BuilderConfig{History: source})

		sctx := builder.Build()
		assert.NotEmpty(t, sctx.CurrentDirectory)
		assert.Equal(t, []string{"git status", "ls"}, sctx.RecentCommands)
		assert.Equal(t, "fatal: not a git repository", sctx.LastError)
	})

	t.Run("history limit passed through", func(t *testing.T) {
		source := &mockHistorySource{}
		builder := NewBuilder(BuilderConfig{History: source, HistoryLimit: 5})

		builder.Build()
		assert.Equal(t, 5, source.requestedLimit)
	})

	t.Run("default history limit", func(t *testing.T) {
		source := &mockHistorySource{}
		builder := NewBuilder(BuilderConfig{History: source})

		builder.Build()
		assert.Equal(t, DefaultHistoryLimit, source.requestedLimit)
	})

	t.Run("history failure degrades to empty context", func(t *testing.T) {
		source := &mockHistorySource{err: errors.New("database locked")}
		builder := NewBuilder(BuilderConfig{History: source})

		sctx := builder.Build()
		assert.Empty(t, sctx.RecentCommands)
		assert.Empty(t, sctx.LastError)
		assert.NotEmpty(t, sctx.CurrentDirectory)
	})

	t.Run("nil history source", func(t *testing.T) {
		builder := NewBuilder(BuilderConfig{})

		sctx := builder.Build()
		assert.Empty(t, sctx.RecentCommands)
	})
}

func TestRecentCommandsRetriever(t *testing.T) {
	source := &mockHistorySource{commands: []string{"git status", "ls"}}
	retriever := NewRecentCommandsRetriever(source, 10)

	assert.Equal(t, "recent_commands", retriever.Name())

	text, err := retriever.GetContext()
	require.NoError(t, err)
	assert.Equal(t, "git status\nls", text)
}

func TestWorkingDirectoryRetriever(t *testing.T) {
	retriever := NewWorkingDirectoryRetriever()

	assert.Equal(t, "working_directory", retriever.Name())

	text, err := retriever.GetContext()
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
