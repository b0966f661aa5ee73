package shellctx

import "strings"

// DefaultHistoryLimit is the default number of history entries included
// in retrieved context.
const DefaultHistoryLimit = 20

// HistorySource is the slice of the history store the context layer
// reads. *history.Manager implements it.
type HistorySource interface {
	// RecentCommands returns command text, most recent first. An empty
	// directory matches every directory.
	RecentCommands(directory string, limit int) ([]string, error)

	// LastError returns the stderr of the most recent failed command,
	// or an empty string.
	LastError() (string, error)
}

// RecentCommandsRetriever retrieves recent command history context.
type RecentCommandsRetriever struct {
	source HistorySource
	limit  int
}

// NewRecentCommandsRetriever creates a new RecentCommandsRetriever.
// If limit is 0 or negative, DefaultHistoryLimit is used.
func NewRecentCommandsRetriever(source HistorySource, limit int) *RecentCommandsRetriever {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &RecentCommandsRetriever{
		source: source,
		limit:  limit,
	}
}

// Name returns the retriever name.
func (r *RecentCommandsRetriever) Name() string {
	return "recent_commands"
}

// GetContext returns recent commands, one per line, most recent first.
func (r *RecentCommandsRetriever) GetContext() (string, error) {
	commands, err := r.source.RecentCommands("", r.limit)
	if err != nil {
		return "", err
	}
	return strings.Join(commands, "\n"), nil
}
