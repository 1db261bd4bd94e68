package mock

import (
	"context"
	"strings"

	"github.com/voicetask/docingest/docintel"
)

// MockAnalyzer is a test double for docintel.Analyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, the default echoes the content back as recognized lines.
	AnalyzeFunc func(ctx context.Context, content []byte) (*docintel.Result, error)

	callCount int
}

// NewMockAnalyzer creates a mock analyzer with default behavior.
// Note: returns the concrete type to allow test assertions.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// Analyze returns a single-page result whose lines are the newline-split
// content, mimicking a service that recognizes every line of the input.
func (m *MockAnalyzer) Analyze(ctx context.Context, content []byte) (*docintel.Result, error) {
	m.callCount++

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, content)
	}

	var lines []docintel.Line
	for _, line := range strings.Split(strings.TrimRight(string(content), "\n"), "\n") {
		lines = append(lines, docintel.Line{Content: line})
	}
	return &docintel.Result{Pages: []docintel.Page{{Lines: lines}}}, nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call counter.
func (m *MockAnalyzer) Reset() {
	m.callCount = 0
}
