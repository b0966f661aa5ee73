package shellctx

import (
	"fmt"
	"os"
)

// WorkingDirectoryRetriever retrieves the current working directory context.
type WorkingDirectoryRetriever struct{}

// NewWorkingDirectoryRetriever creates a new WorkingDirectoryRetriever.
func NewWorkingDirectoryRetriever() *WorkingDirectoryRetriever {
	return &WorkingDirectoryRetriever{}
}

// Name returns the retriever name.
func (r *WorkingDirectoryRetriever) Name() string {
	return "working_directory"
}

// GetContext returns the current working directory.
func (r *WorkingDirectoryRetriever) GetContext() (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return pwd, nil
}
