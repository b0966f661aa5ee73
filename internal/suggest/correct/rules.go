package correct

import "regexp"

// typoDictionary maps misspelled base commands to their fixes.
// Lookup is exact, on the first whitespace token.
var typoDictionary = map[string]string{
	"giit":   "git",
	"gti":    "git",
	"gut":    "git",
	"sl":     "ls",
	"lls":    "ls",
	"claer":  "clear",
	"clera":  "clear",
	"pdw":    "pwd",
	"cd..":   "cd ..",
	"exot":   "exit",
	"exut":   "exit",
	"nmp":    "npm",
	"pyhton": "python",
	"dokcer": "docker",
	"grpe":   "grep",
	"mkae":   "make",
	"vmi":    "vim",
	"tuoch":  "touch",
}

type dangerRule struct {
	pattern *regexp.Regexp
	// alternative rewrites the command into a safer equivalent.
	// nil means there is no safe alternative and the original stands.
	alternative func(string) string
	explanation string
}

// dangerRules is evaluated in table order; the first match wins.
var dangerRules = []dangerRule{
	{
		pattern:     regexp.MustCompile(`^(sudo\s+)?rm\s+-[rRf]+\s+/\s*(\*\s*)?$`),
		explanation: "Recursively deletes the entire root filesystem",
	},
	{
		pattern:     regexp.MustCompile(`^(sudo\s+)?rm\s+-[rRf]+\s+(~/?|\$HOME/?)\s*$`),
		explanation: "Recursively deletes your home directory",
	},
	{
		pattern: regexp.MustCompile(`^(sudo\s+)?chmod\s+(-R\s+)?777\b`),
		alternative: func(command string) string {
			return regexp.MustCompile(`\b777\b`).ReplaceAllString(command, "755")
		},
		explanation: "chmod 777 makes files writable by everyone; 755 is usually enough",
	},
	{
		pattern: regexp.MustCompile(`^git\s+reset\s+--hard\b`),
		alternative: func(string) string {
			return "git stash"
		},
		explanation: "A hard reset discards uncommitted work; stash it instead",
	},
	{
		pattern: regexp.MustCompile(`^kill\s+-9\b`),
		alternative: func(command string) string {
			return regexp.MustCompile(`-9\b`).ReplaceAllString(command, "-15")
		},
		explanation: "SIGKILL gives the process no chance to save state; try SIGTERM first",
	},
	{
		pattern:     regexp.MustCompile(`^(sudo\s+)?dd\s+if=.*\bof=/dev/`),
		explanation: "Writes raw data directly to a block device",
	},
	{
		pattern:     regexp.MustCompile(`^(sudo\s+)?mkfs(\.[a-z0-9]+)?\s`),
		explanation: "Formats a filesystem, destroying its contents",
	},
	{
		pattern:     regexp.MustCompile(`:\(\)\s*\{\s*:\|:&\s*\}\s*;\s*:`),
		explanation: "Fork bomb; this will exhaust system resources",
	},
}

type syntaxRule struct {
	pattern     *regexp.Regexp
	rewrite     string
	explanation string
}

// syntaxRules is evaluated in table order; the first match wins.
var syntaxRules = []syntaxRule{
	{
		pattern:     regexp.MustCompile(`^git\s+commit\s+"([^"]+)"\s*$`),
		rewrite:     `git commit -m "$1"`,
		explanation: "git commit needs the -m flag before a message",
	},
	{
		pattern:     regexp.MustCompile(`^git\s+commit\s+(-m|--message)\s*$`),
		rewrite:     `git commit -m ""`,
		explanation: "The -m flag requires a commit message",
	},
	{
		pattern:     regexp.MustCompile(`^cd\s+(\S+)\s+\S.*$`),
		rewrite:     `cd $1`,
		explanation: "cd takes a single directory argument",
	},
	{
		pattern:     regexp.MustCompile(`^ssh\s+(\S+@\S+)\s+-p\s*(\d+)\s*$`),
		rewrite:     `ssh -p $2 $1`,
		explanation: "ssh flags must come before the destination",
	},
}

// knownCommands is the fuzzy-match vocabulary. Earlier entries win
// distance ties.
var knownCommands = []string{
	"git", "ls", "cd", "pwd", "cat", "echo", "grep", "find",
	"mkdir", "rmdir", "rm", "cp", "mv", "touch", "chmod", "chown",
	"npm", "node", "yarn", "pnpm", "python", "python3", "pip",
	"go", "cargo", "make", "docker", "kubectl", "terraform",
	"curl", "wget", "ssh", "scp", "rsync", "tar", "zip", "unzip",
	"vim", "nano", "less", "more", "head", "tail", "sed", "awk",
	"ps", "top", "htop", "kill", "killall", "sudo", "apt", "brew",
	"history", "clear", "exit", "man", "which", "env", "export",
}
