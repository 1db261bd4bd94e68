package mock

import (
	"context"
)

// MockCondenser is a test double for ai.Condenser.
// It allows custom behavior injection via function fields.
type MockCondenser struct {
	// CondenseFunc is called by Condense if set.
	// If nil, the question is returned unchanged.
	CondenseFunc func(ctx context.Context, history, question string) (string, error)

	callCount int
}

// NewMockCondenser creates a mock condenser with default behavior.
// Note: returns the concrete type to allow test assertions.
func NewMockCondenser() *MockCondenser {
	return &MockCondenser{}
}

// Condense returns the question unchanged unless CondenseFunc is set.
func (m *MockCondenser) Condense(ctx context.Context, history, question string) (string, error) {
	m.callCount++

	if m.CondenseFunc != nil {
		return m.CondenseFunc(ctx, history, question)
	}
	return question, nil
}

// CallCount returns the number of times Condense was called.
func (m *MockCondenser) CallCount() int {
	return m.callCount
}

// Reset clears the call counter.
func (m *MockCondenser) Reset() {
	m.callCount = 0
}
