package analyze

import (
	"fmt"
	"strings"
)

// combineRule recognizes a two-command shape that can collapse into a
// single command. match returns the combined form when (first, second)
// fit the shape.
type combineRule struct {
	explanation string
	benefit     string
	match       func(first, second string) (optimized string, ok bool)
}

// combineRules is evaluated per consecutive history pair, in order.
var combineRules = []combineRule{
	{
		explanation: "Create the directory and enter it in one step",
		benefit:     "fewer keystrokes",
		match: func(first, second string) (string, bool) {
			dir, ok := strings.CutPrefix(first, "mkdir ")
			if !ok {
				return "", false
			}
			dir = strings.TrimSpace(strings.TrimPrefix(dir, "-p "))
			if dir == "" || second != "cd "+dir {
				return "", false
			}
			return fmt.Sprintf("mkdir -p %s && cd $_", dir), true
		},
	},
	{
		explanation: "Stage and commit tracked changes with a single command",
		benefit:     "fewer keystrokes",
		match: func(first, second string) (string, bool) {
			if strings.TrimSpace(first) != "git add ." {
				return "", false
			}
			if !strings.HasPrefix(second, "git commit -m") {
				return "", false
			}
			return strings.Replace(second, "git commit -m", "git commit -am", 1), true
		},
	},
	{
		explanation: "List the directory without changing into it",
		benefit:     "fewer keystrokes",
		match: func(first, second string) (string, bool) {
			dir, ok := strings.CutPrefix(first, "cd ")
			if !ok || strings.TrimSpace(second) != "ls" {
				return "", false
			}
			dir = strings.TrimSpace(dir)
			if dir == "" {
				return "", false
			}
			return "ls " + dir, true
		},
	},
}

// computeOptimizations synthesizes rewrite suggestions from matched
// patterns, heavy command usage, and recurring combinable pairs.
func computeOptimizations(history []string, frequencies []CommandFrequency, patterns []PatternMatch) []Optimization {
	var optimizations []Optimization

	// Pattern tips: rewrite an observed example when the tip applies.
	for _, pattern := range patterns {
		for _, tip := range pattern.Tips {
			for _, example := range pattern.Examples {
				if !strings.Contains(example, tip.From) {
					continue
				}
				optimizations = append(optimizations, Optimization{
					Original:    example,
					Optimized:   strings.Replace(example, tip.From, tip.To, 1),
					Explanation: fmt.Sprintf("Consider %q instead of %q (%s)", tip.To, tip.From, tip.Benefit),
					Benefit:     tip.Benefit,
				})
				break
			}
		}
	}

	// Alias synthesis for long, frequently used commands.
	for _, freq := range frequencies {
		if freq.Count < aliasUseThreshold {
			continue
		}
		full := freq.Command
		if len(freq.PopularArgs) > 0 {
			full = freq.Command + " " + freq.PopularArgs[0]
		}
		if len(full) <= aliasLengthThreshold {
			continue
		}
		alias := synthesizeAlias(full)
		optimizations = append(optimizations, Optimization{
			Original:    full,
			Optimized:   fmt.Sprintf("alias %s='%s'", alias, full),
			Explanation: fmt.Sprintf("You ran %q %d times; an alias would save typing", full, freq.Count),
			Benefit:     "alias",
		})
	}

	// Combinable consecutive pairs recurring at least twice.
	type combined struct {
		optimization Optimization
		count        int
	}
	pairCounts := make(map[string]*combined)
	var pairOrder []string

	for i := 0; i+1 < len(history); i++ {
		first := strings.TrimSpace(history[i])
		second := strings.TrimSpace(history[i+1])
		for _, rule := range combineRules {
			optimized, ok := rule.match(first, second)
			if !ok {
				continue
			}
			if pairCounts[optimized] == nil {
				pairOrder = append(pairOrder, optimized)
				pairCounts[optimized] = &combined{
					optimization: Optimization{
						Original:    first + " && " + second,
						Optimized:   optimized,
						Explanation: rule.explanation,
						Benefit:     rule.benefit,
					},
				}
			}
			pairCounts[optimized].count++
			break
		}
	}
	for _, key := range pairOrder {
		if pairCounts[key].count >= minSequenceCount {
			optimizations = append(optimizations, pairCounts[key].optimization)
		}
	}

	return optimizations
}

// synthesizeAlias derives a short alias: initials for multi-word
// commands, otherwise the first two or three characters.
func synthesizeAlias(command string) string {
	words := strings.Fields(command)
	if len(words) > 1 {
		var initials strings.Builder
		for _, word := range words {
			initials.WriteByte(word[0])
		}
		return initials.String()
	}

	if len(command) <= 3 {
		return command[:2]
	}
	return command[:3]
}
