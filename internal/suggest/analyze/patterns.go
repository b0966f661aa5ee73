package analyze

import "regexp"

// OptimizationTip rewrites a recurring habit into a better equivalent.
type OptimizationTip struct {
	From    string
	To      string
	Benefit string
}

// PatternDefinition is one entry of the static category catalog.
type PatternDefinition struct {
	Name        string
	Match       *regexp.Regexp
	Description string
	Tips        []OptimizationTip
}

// patternCatalog is the static, ordered category catalog. Catalog
// order breaks ties between categories with equal hit counts.
var patternCatalog = []PatternDefinition{
	{
		Name:        "search",
		Match:       regexp.MustCompile(`^(grep|rg|ag|ack|find|fd|locate)\b`),
		Description: "Searching files and file contents",
		Tips: []OptimizationTip{
			{From: "grep -r", To: "rg", Benefit: "speed"},
			{From: "find . -name", To: "fd", Benefit: "speed"},
		},
	},
	{
		Name:        "navigation",
		Match:       regexp.MustCompile(`^(cd|pushd|popd|z)\b`),
		Description: "Moving between directories",
	},
	{
		Name:        "file-ops",
		Match:       regexp.MustCompile(`^(cp|mv|rm|mkdir|rmdir|touch|cat|less|head|tail)\b`),
		Description: "Creating, copying, and removing files",
	},
	{
		Name:        "version-control",
		Match:       regexp.MustCompile(`^git\b`),
		Description: "Git version control",
		Tips: []OptimizationTip{
			{From: "git checkout -b", To: "git switch -c", Benefit: "clarity"},
		},
	},
	{
		Name:        "package-management",
		Match:       regexp.MustCompile(`^(npm|yarn|pnpm|pip|pip3|brew|apt|apt-get|cargo|gem)\b`),
		Description: "Installing and managing packages",
		Tips: []OptimizationTip{
			{From: "npm install", To: "npm ci", Benefit: "reproducible installs"},
		},
	},
	{
		Name:        "process-management",
		Match:       regexp.MustCompile(`^(ps|top|htop|kill|killall|pgrep|pkill)\b`),
		Description: "Inspecting and controlling processes",
		Tips: []OptimizationTip{
			{From: "ps aux | grep", To: "pgrep -f", Benefit: "simplicity"},
		},
	},
	{
		Name:        "permissions",
		Match:       regexp.MustCompile(`^(chmod|chown|chgrp|sudo)\b`),
		Description: "Changing ownership and permissions",
		Tips: []OptimizationTip{
			{From: "chmod 777", To: "chmod 755", Benefit: "safety"},
		},
	},
}
