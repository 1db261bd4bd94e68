package mock

import (
	"github.com/voicetask/docingest/ai"
)

// MockProvider aggregates mock AI services for testing.
type MockProvider struct {
	embedder  *MockEmbedder
	condenser *MockCondenser
}

// NewMockProvider creates a provider backed by mock services.
//
// Returns ai.Provider since it is the primary entry point; use
// GetMockEmbedder/GetMockCondenser to reach the concrete types for
// assertions and behavior injection.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		condenser: NewMockCondenser(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Condenser returns the mock condensation service.
func (p *MockProvider) Condenser() ai.Condenser {
	return p.condenser
}

// GetMockEmbedder returns the concrete mock embedder for assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockCondenser returns the concrete mock condenser for assertions.
func (p *MockProvider) GetMockCondenser() *MockCondenser {
	return p.condenser
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}
