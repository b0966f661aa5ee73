// Package llm is the remote inference adapter. It sends the current
// input plus truncated shell context to a chat-completion endpoint and
// parses the free-text reply into structured suggestions or
// explanations. Every failure is recoverable; callers fall back to the
// local pipeline.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 10 * time.Second

	// maxRecentCommands bounds how much history is embedded in prompts.
	maxRecentCommands = 10
)

const systemPrompt = `You are a shell assistant embedded in a terminal. ` +
	`You help the user complete and understand shell commands. ` +
	`Be concise; never invent flags that do not exist.`

// ChatCompleter is the part of the OpenAI client the adapter uses.
// It exists so tests can substitute a mock transport.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// PromptContext is the truncated shell context embedded in prompts.
type PromptContext struct {
	Directory string
	Recent    []string
	LastError string
}

// Suggestion is one parsed `command: explanation` line from a reply.
type Suggestion struct {
	Command     string
	Explanation string
}

// Config holds configuration for creating a Client.
type Config struct {
	// APIKey authenticates against the endpoint. Required.
	APIKey string

	// BaseURL overrides the API endpoint (for OpenAI-compatible servers).
	BaseURL string

	// Model is the model identifier. Defaults to defaultModel.
	Model string

	// Timeout bounds each request. Defaults to defaultTimeout.
	Timeout time.Duration

	// Completer overrides the underlying transport (for testing).
	Completer ChatCompleter

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Client talks to a remote chat-completion endpoint. One request per
// call, no internal retries; the HTTP client's timeout is the only
// bound.
type Client struct {
	api    ChatCompleter
	model  string
	logger *zap.Logger
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	api := cfg.Completer
	if api == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		clientConfig.HTTPClient = &http.Client{Timeout: timeout}
		api = openai.NewClientWithConfig(clientConfig)
	}

	return &Client{
		api:    api,
		model:  model,
		logger: logger,
	}
}

// Suggest asks the endpoint for command completions of input and parses
// the reply line-by-line. Lines not shaped like `command: explanation`
// are dropped.
func (c *Client) Suggest(ctx context.Context, input string, pctx PromptContext) ([]Suggestion, error) {
	userPrompt := buildSuggestPrompt(input, pctx)

	content, err := c.complete(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	suggestions := ParseSuggestions(content)
	c.logger.Debug("remote suggestions parsed",
		zap.String("input", input),
		zap.Int("count", len(suggestions)),
	)
	return suggestions, nil
}

// Explain asks the endpoint for a short free-text explanation of command.
func (c *Client) Explain(ctx context.Context, command string) (string, error) {
	userPrompt := fmt.Sprintf(
		"Explain the shell command below in two or three sentences.\n\nCommand: %s",
		command,
	)
	return c.complete(ctx, userPrompt)
}

// ExplainStructured asks the endpoint for a JSON explanation of command.
// A malformed reply degrades to a minimal object built from the command
// itself; only transport failures return an error.
func (c *Client) ExplainStructured(ctx context.Context, command string) (*StructuredExplanation, error) {
	userPrompt := fmt.Sprintf(`Explain the shell command below. Respond with JSON only:
{"command": "...", "purpose": "...", "options": {"flag": "meaning"}, "examples": [{"command": "...", "description": "..."}]}

Command: %s`, command)

	content, err := c.complete(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	explanation, parseErr := ParseStructured(content)
	if parseErr != nil {
		c.logger.Warn("malformed structured explanation",
			zap.String("command", command),
			zap.Error(parseErr),
		)
		return minimalExplanation(command), nil
	}
	if explanation.Command == "" {
		explanation.Command = command
	}
	return explanation, nil
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	response, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return response.Choices[0].Message.Content, nil
}

func buildSuggestPrompt(input string, pctx PromptContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The user is typing a shell command: %q\n\n", input)
	if pctx.Directory != "" {
		fmt.Fprintf(&b, "Current directory: %s\n", pctx.Directory)
	}

	recent := pctx.Recent
	if len(recent) > maxRecentCommands {
		recent = recent[:maxRecentCommands]
	}
	if len(recent) > 0 {
		b.WriteString("Recent commands, most recent first:\n")
		for _, command := range recent {
			fmt.Fprintf(&b, "  %s\n", command)
		}
	}
	if pctx.LastError != "" {
		fmt.Fprintf(&b, "Last command error: %s\n", pctx.LastError)
	}

	b.WriteString("\nSuggest up to 5 likely complete commands, one per line, " +
		"formatted exactly as `command: explanation`. No other text.")
	return b.String()
}
