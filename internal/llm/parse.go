package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// StructuredExplanation is an explanation split into named fields.
type StructuredExplanation struct {
	Command  string            `json:"command"`
	Purpose  string            `json:"purpose"`
	Options  map[string]string `json:"options"`
	Examples []Example         `json:"examples"`
}

// Example is one usage example within a structured explanation.
type Example struct {
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
}

// suggestionLine matches `command: explanation`. The command part must
// not itself contain a colon, which drops prose lines like
// "Here are some suggestions:".
var suggestionLine = regexp.MustCompile("^[-*]?\\s*`?([^:`]+?)`?\\s*:\\s+(.+)$")

// fencedBlock extracts the body of a ``` fenced block.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseSuggestions parses a free-text reply line-by-line against the
// `command: explanation` shape. Non-matching lines are dropped.
func ParseSuggestions(text string) []Suggestion {
	var suggestions []Suggestion

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		match := suggestionLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		command := strings.TrimSpace(match[1])
		explanation := strings.TrimSpace(match[2])
		if command == "" || explanation == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Command:     command,
			Explanation: explanation,
		})
	}

	return suggestions
}

// ParseStructured parses a structured explanation reply: a JSON object,
// possibly wrapped in a fenced block.
func ParseStructured(text string) (*StructuredExplanation, error) {
	body := strings.TrimSpace(text)
	if match := fencedBlock.FindStringSubmatch(body); match != nil {
		body = strings.TrimSpace(match[1])
	}

	var explanation StructuredExplanation
	if err := json.Unmarshal([]byte(body), &explanation); err != nil {
		return nil, fmt.Errorf("parse structured explanation: %w", err)
	}
	return &explanation, nil
}

// minimalExplanation is the fallback when a structured reply cannot be
// parsed.
func minimalExplanation(command string) *StructuredExplanation {
	return &StructuredExplanation{
		Command: command,
		Purpose: fmt.Sprintf("No structured explanation available for %q.", command),
		Options: map[string]string{},
	}
}
