package suggest

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// flagInfo is one entry of a per-command flag table.
type flagInfo struct {
	flag        string
	description string
}

// basicCommands is the offline command table: name and a one-line
// description, used both for completion heuristics and as commandNames
// for fuzzy filtering.
var basicCommands = []struct {
	name        string
	description string
}{
	{"ls", "List directory contents"},
	{"cd", "Change the working directory"},
	{"pwd", "Print the working directory"},
	{"cat", "Print file contents"},
	{"grep", "Search file contents"},
	{"find", "Find files and directories"},
	{"mkdir", "Create a directory"},
	{"touch", "Create an empty file or update its timestamp"},
	{"rm", "Remove files or directories"},
	{"cp", "Copy files or directories"},
	{"mv", "Move or rename files"},
	{"git", "Version control"},
	{"npm", "Node package manager"},
	{"docker", "Container management"},
	{"kubectl", "Kubernetes control"},
	{"go", "Go toolchain"},
	{"make", "Run build targets"},
	{"curl", "Transfer data from a URL"},
	{"ssh", "Open a remote shell"},
	{"tar", "Archive files"},
	{"ps", "List processes"},
	{"kill", "Signal a process"},
	{"chmod", "Change file permissions"},
	{"history", "Show command history"},
}

// flagTables maps a base command to its commonly used flags.
var flagTables = map[string][]flagInfo{
	"ls": {
		{"-l", "Long listing format"},
		{"-a", "Include hidden entries"},
		{"-h", "Human-readable sizes"},
		{"-t", "Sort by modification time"},
		{"-R", "Recurse into subdirectories"},
	},
	"git": {
		{"status", "Show the working tree status"},
		{"add", "Stage changes"},
		{"commit", "Record staged changes"},
		{"push", "Upload commits to the remote"},
		{"pull", "Fetch and merge from the remote"},
		{"log", "Show commit history"},
		{"diff", "Show unstaged changes"},
		{"stash", "Shelve local changes"},
	},
	"npm": {
		{"install", "Install dependencies"},
		{"run", "Run a package script"},
		{"test", "Run the test script"},
		{"start", "Run the start script"},
	},
	"docker": {
		{"ps", "List running containers"},
		{"images", "List images"},
		{"build", "Build an image"},
		{"run", "Run a container"},
		{"logs", "Show container logs"},
	},
	"grep": {
		{"-r", "Search recursively"},
		{"-i", "Ignore case"},
		{"-n", "Show line numbers"},
		{"-v", "Invert the match"},
	},
	"go": {
		{"build", "Compile packages"},
		{"test", "Run tests"},
		{"run", "Compile and run"},
		{"mod tidy", "Prune the module graph"},
	},
	"kubectl": {
		{"get pods", "List pods"},
		{"apply -f", "Apply a manifest"},
		{"logs", "Show pod logs"},
		{"describe", "Describe a resource"},
	},
}

// commandSources maps commands with a dedicated suggestion source.
var commandSources = map[string]Source{
	"git": SourceGit,
	"npm": SourceNpm,
}

// offlineHeuristics produces static suggestions for the given input:
// flag-table completions when a base command is recognized, otherwise
// fuzzy-filtered command names from the basic-command table.
func offlineHeuristics(input string) []Suggestion {
	base, rest, hasRest := strings.Cut(strings.TrimSpace(input), " ")

	if flags, ok := flagTables[base]; ok {
		return flagSuggestions(base, strings.TrimSpace(rest), flags)
	}
	if hasRest {
		// The base command is complete but unknown; nothing useful to add.
		return nil
	}

	return commandSuggestions(base)
}

func flagSuggestions(base, rest string, flags []flagInfo) []Suggestion {
	source := SourceCompletion
	if s, ok := commandSources[base]; ok {
		source = s
	}

	var suggestions []Suggestion
	for _, info := range flags {
		if rest != "" && !strings.HasPrefix(info.flag, rest) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Command:     base + " " + info.flag,
			Description: info.description,
			Source:      source,
			Score:       heuristicScore,
		})
	}
	return suggestions
}

func commandSuggestions(partial string) []Suggestion {
	if partial == "" {
		return nil
	}

	names := make([]string, len(basicCommands))
	for i, command := range basicCommands {
		names[i] = command.name
	}

	var suggestions []Suggestion
	for _, match := range fuzzy.Find(partial, names) {
		command := basicCommands[match.Index]
		suggestions = append(suggestions, Suggestion{
			Command:     command.name,
			Description: command.description,
			Source:      SourceCompletion,
			Score:       heuristicScore,
		})
	}
	return suggestions
}
