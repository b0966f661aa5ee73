// Package suggest implements the suggestion engine: it turns a
// partially typed command plus rolling history into a ranked,
// deduplicated list of candidates, combining the correction engine,
// the history analyzer, static offline heuristics, and an optional
// remote inference adapter.
package suggest

// Source identifies which analyzer produced a suggestion.
type Source string

const (
	SourceTypo         Source = "typo"
	SourceSafety       Source = "safety"
	SourceSyntax       Source = "syntax"
	SourceFuzzy        Source = "fuzzy"
	SourceFrequency    Source = "frequency"
	SourcePattern      Source = "pattern"
	SourceOptimization Source = "optimization"
	SourceSequence     Source = "sequence"
	SourceAI           Source = "ai"
	SourceFile         Source = "file"
	SourceGit          Source = "git"
	SourceNpm          Source = "npm"
	SourceCompletion   Source = "completion"
)

// Scores for history- and heuristic-derived suggestions. The relative
// ordering (sequence > frequency > pattern > optimization > heuristic)
// is part of the ranking contract; the correction engine's scores sit
// above all of these.
const (
	sequenceScore     = 0.95
	frequencyScore    = 0.90
	aiScore           = 0.85
	patternScore      = 0.80
	optimizationScore = 0.75
	heuristicScore    = 0.70
)

// Suggestion is one candidate presented to the user.
type Suggestion struct {
	// Command is the complete command to insert. Never empty; within
	// one returned list no two suggestions share a Command.
	Command string

	// Description explains the suggestion in one line.
	Description string

	Source Source
	Score  float64

	// IsWarning marks danger corrections.
	IsWarning bool

	// Type refines the source for warnings (currently only "danger").
	Type string
}

// Context is the caller-supplied shell context for one analysis call.
// The engine treats it as read-only.
type Context struct {
	// CurrentDirectory is the shell's working directory.
	CurrentDirectory string

	// RecentCommands is the rolling history, position 0 most recent.
	RecentCommands []string

	// LastError is the last command's error output, if any.
	LastError string
}

// Result is the outcome of one analysis call.
type Result struct {
	Suggestions []Suggestion

	// HasWarning is set when a danger correction short-circuited the
	// pipeline; Suggestions then holds exactly that one warning.
	HasWarning bool
}
