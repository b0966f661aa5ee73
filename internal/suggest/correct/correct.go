// Package correct detects typos, dangerous commands, syntax mistakes,
// and fuzzy command-name matches in raw shell input. It is a pure
// function of the input and its static rule catalogs; it performs no
// I/O and never touches command history.
package correct

import (
	"strings"
)

// Kind classifies a correction.
type Kind string

const (
	// KindTypo is an exact hit in the typo dictionary.
	KindTypo Kind = "typo"
	// KindDanger flags a destructive command. Danger corrections must
	// short-circuit the rest of the suggestion pipeline.
	KindDanger Kind = "danger"
	// KindSyntax is a regex-driven rewrite of a malformed command.
	KindSyntax Kind = "syntax"
	// KindFuzzy is an edit-distance match against the known-command
	// vocabulary.
	KindFuzzy Kind = "fuzzy"
)

// Scores per correction kind. The relative ordering is part of the
// engine's ranking contract.
const (
	typoScore   = 0.98
	dangerScore = 0.99
	syntaxScore = 0.97
	fuzzyScore  = 0.96
)

// Correction is a single proposed fix for a raw command.
type Correction struct {
	// Command is the corrected (or, for unfixable dangers, original) command.
	Command string

	// Explanation describes why the correction was proposed.
	Explanation string

	Kind      Kind
	Score     float64
	IsWarning bool
}

// Corrector checks raw commands against the static rule catalogs.
type Corrector struct{}

// New creates a Corrector.
func New() *Corrector {
	return &Corrector{}
}

// Correct returns at most one correction for the given raw command,
// checked in strict priority order: typo dictionary, danger catalog,
// syntax rewrites, fuzzy vocabulary match. First match wins. Returns
// nil when nothing matches.
func (c *Corrector) Correct(input string) *Correction {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	if correction := c.checkTypo(trimmed); correction != nil {
		return correction
	}
	if correction := c.checkDanger(trimmed); correction != nil {
		return correction
	}
	if correction := c.checkSyntax(trimmed); correction != nil {
		return correction
	}
	return c.checkFuzzy(trimmed)
}

// checkTypo replaces a misspelled base command using the typo dictionary.
func (c *Corrector) checkTypo(input string) *Correction {
	base, rest, _ := strings.Cut(input, " ")
	fixed, ok := typoDictionary[base]
	if !ok {
		return nil
	}

	command := fixed
	if rest != "" {
		command = fixed + " " + rest
	}
	return &Correction{
		Command:     command,
		Explanation: "Did you mean \"" + fixed + "\"?",
		Kind:        KindTypo,
		Score:       typoScore,
	}
}

// checkDanger matches the dangerous-command catalog in table order.
func (c *Corrector) checkDanger(input string) *Correction {
	for _, rule := range dangerRules {
		if !rule.pattern.MatchString(input) {
			continue
		}

		command := input
		if rule.alternative != nil {
			command = rule.alternative(input)
		}
		return &Correction{
			Command:     command,
			Explanation: rule.explanation,
			Kind:        KindDanger,
			Score:       dangerScore,
			IsWarning:   true,
		}
	}
	return nil
}

// checkSyntax applies the first matching syntax rewrite rule.
func (c *Corrector) checkSyntax(input string) *Correction {
	for _, rule := range syntaxRules {
		if !rule.pattern.MatchString(input) {
			continue
		}
		return &Correction{
			Command:     rule.pattern.ReplaceAllString(input, rule.rewrite),
			Explanation: rule.explanation,
			Kind:        KindSyntax,
			Score:       syntaxScore,
		}
	}
	return nil
}

// checkFuzzy searches the known-command vocabulary for the closest
// base command by edit distance. Candidates whose length differs by
// more than 3 are pruned, matches need distance <= 3, and ties keep
// the earliest vocabulary entry.
func (c *Corrector) checkFuzzy(input string) *Correction {
	base, rest, _ := strings.Cut(input, " ")
	if len(base) < 2 {
		return nil
	}

	bestDistance := maxFuzzyDistance + 1
	bestCommand := ""
	for _, candidate := range knownCommands {
		if diff := len(candidate) - len(base); diff > 3 || diff < -3 {
			continue
		}
		if d := Distance(base, candidate); d < bestDistance {
			bestDistance = d
			bestCommand = candidate
		}
	}

	if bestCommand == "" || bestCommand == base {
		return nil
	}

	command := bestCommand
	if rest != "" {
		command = bestCommand + " " + rest
	}
	return &Correction{
		Command:     command,
		Explanation: "Unknown command \"" + base + "\", closest match is \"" + bestCommand + "\"",
		Kind:        KindFuzzy,
		Score:       fuzzyScore,
	}
}
