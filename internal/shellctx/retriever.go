// Package shellctx provides shell context aggregation for suggestion
// analysis. It collects relevant information from various sources
// (working directory, git state, command history) and assembles the
// read-only context each analysis call consumes.
package shellctx

// Retriever is the interface that all context retrievers must implement.
// Each retriever is responsible for collecting a specific type of
// context information.
type Retriever interface {
	// Name returns the unique identifier for this retriever.
	// This is used as the key in the context map returned by Provider.
	Name() string

	// GetContext returns the context string for this retriever.
	GetContext() (string, error)
}
