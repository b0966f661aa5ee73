package shellctx

import (
	"strings"

	"go.uber.org/zap"
)

// Provider aggregates context from multiple retrievers.
type Provider struct {
	retrievers []Retriever
	logger     *zap.Logger
}

// NewProvider creates a Provider with the given retrievers.
func NewProvider(logger *zap.Logger, retrievers ...Retriever) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		retrievers: retrievers,
		logger:     logger,
	}
}

// AddRetriever appends a retriever to the provider.
func (p *Provider) AddRetriever(retriever Retriever) {
	p.retrievers = append(p.retrievers, retriever)
}

// GetContext collects context from every retriever, keyed by retriever
// name. A failing retriever is logged and skipped.
func (p *Provider) GetContext() map[string]string {
	result := make(map[string]string)
	for _, retriever := range p.retrievers {
		text, err := retriever.GetContext()
		if err != nil {
			p.logger.Debug("context retriever failed",
				zap.String("retriever", retriever.Name()),
				zap.Error(err),
			)
			continue
		}
		result[retriever.Name()] = strings.TrimSpace(text)
	}
	return result
}

// GetContextForTypes collects context only from the named retrievers.
// Empty or nil types collects from all of them.
func (p *Provider) GetContextForTypes(types []string) map[string]string {
	if len(types) == 0 {
		return p.GetContext()
	}

	wanted := make(map[string]bool, len(types))
	for _, name := range types {
		wanted[strings.TrimSpace(name)] = true
	}

	result := make(map[string]string)
	for _, retriever := range p.retrievers {
		if !wanted[retriever.Name()] {
			continue
		}
		text, err := retriever.GetContext()
		if err != nil {
			p.logger.Debug("context retriever failed",
				zap.String("retriever", retriever.Name()),
				zap.Error(err),
			)
			continue
		}
		result[retriever.Name()] = strings.TrimSpace(text)
	}
	return result
}
