package docintel

import (
	"context"
	"strings"
)

// Line is a single recognized line of text.
type Line struct {
	Content string
}

// Page holds the recognized lines of one document page, in reading order
// as reported by the service.
type Page struct {
	Lines []Line
}

// Result is the outcome of one document analysis.
type Result struct {
	Pages []Page
}

// Text concatenates every recognized line, each followed by a newline,
// in page order then line order.
func (r *Result) Text() string {
	var b strings.Builder
	for _, page := range r.Pages {
		for _, line := range page.Lines {
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Analyzer submits document content to a document-understanding service and
// blocks until the analysis completes. Implementations must be safe for
// concurrent use.
type Analyzer interface {
	// Analyze runs the configured read model over the raw document bytes
	// and returns the recognized pages. The call blocks until the remote
	// analysis finishes, fails, or ctx is done.
	Analyze(ctx context.Context, content []byte) (*Result, error)
}
