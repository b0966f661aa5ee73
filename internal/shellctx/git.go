package shellctx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const gitQueryTimeout = 2 * time.Second

// GitBranchRetriever retrieves the current git branch context.
type GitBranchRetriever struct {
	logger *zap.Logger
}

// NewGitBranchRetriever creates a new GitBranchRetriever.
func NewGitBranchRetriever(logger *zap.Logger) *GitBranchRetriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitBranchRetriever{
		logger: logger,
	}
}

// Name returns the retriever name.
func (r *GitBranchRetriever) Name() string {
	return "git_branch"
}

// GetContext returns the checked-out branch, or a message when the
// working directory is not inside a git repository.
func (r *GitBranchRetriever) GetContext() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitQueryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		r.logger.Debug("error running `git rev-parse --abbrev-ref HEAD`", zap.Error(err))
		return "not in a git repository", nil
	}

	return fmt.Sprintf("on branch %s", strings.TrimSpace(string(out))), nil
}
