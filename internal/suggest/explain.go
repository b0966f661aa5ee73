package suggest

import "fmt"

// offlineExplanations is the static per-command explanation table used
// when no remote adapter is available.
var offlineExplanations = map[string]string{
	"ls":      "Lists directory contents. Common flags: -l (long format), -a (hidden entries), -h (human-readable sizes).",
	"cd":      "Changes the working directory. `cd -` returns to the previous directory, `cd` alone goes home.",
	"pwd":     "Prints the absolute path of the working directory.",
	"cat":     "Prints file contents to standard output. Use less for paging through long files.",
	"grep":    "Searches input for lines matching a pattern. -r recurses, -i ignores case, -n shows line numbers.",
	"find":    "Walks a directory tree finding files by name, type, size, or age.",
	"mkdir":   "Creates directories. -p creates missing parents and tolerates existing directories.",
	"rm":      "Removes files. -r recurses into directories, -f suppresses prompts; combine with care.",
	"cp":      "Copies files and directories. -r is required for directories.",
	"mv":      "Moves or renames files and directories.",
	"git":     "Distributed version control. Frequent subcommands: status, add, commit, push, pull, log.",
	"npm":     "Node.js package manager. install adds dependencies, run executes package scripts.",
	"docker":  "Builds and runs containers. ps lists running containers, logs shows their output.",
	"kubectl": "Controls Kubernetes clusters. get inspects resources, apply declares desired state.",
	"go":      "The Go toolchain. build compiles, test runs tests, mod tidy prunes dependencies.",
	"make":    "Runs targets from a Makefile, rebuilding only what changed.",
	"curl":    "Transfers data to or from a URL. -o saves to a file, -s silences progress output.",
	"ssh":     "Opens an encrypted shell on a remote host. -p selects a non-default port.",
	"tar":     "Archives files. -czf creates a gzipped archive, -xzf extracts one.",
	"chmod":   "Changes file permission bits, numerically (755) or symbolically (+x).",
	"ps":      "Lists processes. `ps aux` shows every process with owner and resource usage.",
	"kill":    "Sends a signal to a process; default TERM asks it to exit cleanly.",
	"history": "Shows previously executed commands from the shell's history.",
}

// offlineExplanation returns the static explanation for a command's
// base token, or a default message when the table has no entry.
func offlineExplanation(command string) string {
	base := baseCommand(command)
	if explanation, ok := offlineExplanations[base]; ok {
		return explanation
	}
	return fmt.Sprintf("No offline explanation available for %q.", command)
}
