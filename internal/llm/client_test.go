package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCompleter implements ChatCompleter for testing.
type mockCompleter struct {
	content  string
	err      error
	requests []openai.ChatCompletionRequest
}

func (m *mockCompleter) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.requests = append(m.requests, request)
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: m.content}},
		},
	}, nil
}

func TestClient_Suggest(t *testing.T) {
	t.Run("parses labeled lines", func(t *testing.T) {
		completer := &mockCompleter{content: "git status: show working tree status\ngit stash: shelve changes\nnot a suggestion line\n"}
		client := NewClient(Config{Completer: completer})

		suggestions, err := client.Suggest(context.Background(), "git st", PromptContext{
			Directory: "/repo",
			Recent:    []string{"git add ."},
		})
		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "git status", suggestions[0].Command)
		assert.Equal(t, "show working tree status", suggestions[0].Explanation)
		assert.Equal(t, "git stash", suggestions[1].Command)
	})

	t.Run("context embedded in prompt", func(t *testing.T) {
		completer := &mockCompleter{content: ""}
		client := NewClient(Config{Completer: completer})

		_, err := client.Suggest(context.Background(), "ls", PromptContext{
			Directory: "/home/user",
			Recent:    []string{"cd /home/user", "pwd"},
			LastError: "command not found: lls",
		})
		require.NoError(t, err)
		require.Len(t, completer.requests, 1)

		prompt := completer.requests[0].Messages[1].Content
		assert.Contains(t, prompt, "/home/user")
		assert.Contains(t, prompt, "cd /home/user")
		assert.Contains(t, prompt, "command not found: lls")
	})

	t.Run("recent commands truncated", func(t *testing.T) {
		completer := &mockCompleter{content: ""}
		client := NewClient(Config{Completer: completer})

		recent := make([]string, 30)
		for i := range recent {
			recent[i] = "cmd"
		}
		_, err := client.Suggest(context.Background(), "ls", PromptContext{Recent: recent})
		require.NoError(t, err)

		prompt := completer.requests[0].Messages[1].Content
		assert.Equal(t, maxRecentCommands, countOccurrences(prompt, "  cmd\n"))
	})

	t.Run("transport error propagated", func(t *testing.T) {
		completer := &mockCompleter{err: errors.New("connection refused")}
		client := NewClient(Config{Completer: completer})

		_, err := client.Suggest(context.Background(), "ls", PromptContext{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		client := NewClient(Config{Completer: &emptyCompleter{}})
		_, err := client.Suggest(context.Background(), "ls", PromptContext{})
		assert.Error(t, err)
	})
}

type emptyCompleter struct{}

func (e *emptyCompleter) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}

func TestClient_Explain(t *testing.T) {
	completer := &mockCompleter{content: "Lists directory contents in long form."}
	client := NewClient(Config{Completer: completer})

	explanation, err := client.Explain(context.Background(), "ls -l")
	require.NoError(t, err)
	assert.Equal(t, "Lists directory contents in long form.", explanation)

	prompt := completer.requests[0].Messages[1].Content
	assert.Contains(t, prompt, "ls -l")
}

func TestClient_ExplainStructured(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		completer := &mockCompleter{content: `{"command":"ls","purpose":"list files","options":{"-l":"long format"},"examples":[{"command":"ls -l","description":"long listing"}]}`}
		client := NewClient(Config{Completer: completer})

		explanation, err := client.ExplainStructured(context.Background(), "ls")
		require.NoError(t, err)
		assert.Equal(t, "ls", explanation.Command)
		assert.Equal(t, "list files", explanation.Purpose)
		assert.Equal(t, "long format", explanation.Options["-l"])
		require.Len(t, explanation.Examples, 1)
		assert.Equal(t, "ls -l", explanation.Examples[0].Command)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		completer := &mockCompleter{content: "```json\n{\"command\":\"ls\",\"purpose\":\"list files\"}\n```"}
		client := NewClient(Config{Completer: completer})

		explanation, err := client.ExplainStructured(context.Background(), "ls")
		require.NoError(t, err)
		assert.Equal(t, "list files", explanation.Purpose)
	})

	t.Run("malformed JSON falls back to minimal object", func(t *testing.T) {
		completer := &mockCompleter{content: "ls lists files, it is very useful"}
		client := NewClient(Config{Completer: completer})

		explanation, err := client.ExplainStructured(context.Background(), "ls")
		require.NoError(t, err)
		assert.Equal(t, "ls", explanation.Command)
		assert.Contains(t, explanation.Purpose, "ls")
		assert.NotNil(t, explanation.Options)
	})

	t.Run("missing command filled in", func(t *testing.T) {
		completer := &mockCompleter{content: `{"purpose":"list files"}`}
		client := NewClient(Config{Completer: completer})

		explanation, err := client.ExplainStructured(context.Background(), "ls")
		require.NoError(t, err)
		assert.Equal(t, "ls", explanation.Command)
	})

	t.Run("transport error propagated", func(t *testing.T) {
		completer := &mockCompleter{err: errors.New("boom")}
		client := NewClient(Config{Completer: completer})

		_, err := client.ExplainStructured(context.Background(), "ls")
		assert.Error(t, err)
	})
}

func TestParseSuggestions(t *testing.T) {
	t.Run("bullets and backticks stripped", func(t *testing.T) {
		text := "- `git status`: show status\n* git log: show log"
		suggestions := ParseSuggestions(text)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "git status", suggestions[0].Command)
		assert.Equal(t, "git log", suggestions[1].Command)
	})

	t.Run("prose and blank lines dropped", func(t *testing.T) {
		text := "Here are some ideas\n\ngit status: show status\n\nHope this helps!"
		suggestions := ParseSuggestions(text)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "git status", suggestions[0].Command)
	})

	t.Run("empty reply", func(t *testing.T) {
		assert.Empty(t, ParseSuggestions(""))
	})
}
