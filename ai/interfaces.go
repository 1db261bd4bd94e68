package ai

import "context"

// Embedder generates vector embeddings from text for downstream indexing.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Condenser rewrites a follow-up question into a standalone question using
// conversation history for context. Implementations must be thread-safe
// for concurrent use.
type Condenser interface {
	// Condense returns the question reformulated so it can be understood
	// without the chat history, or the question unchanged when no
	// reformulation is needed. Remote failures are returned as-is; there
	// is no local fallback, and callers are expected to degrade to the
	// raw question themselves.
	Condense(ctx context.Context, history, question string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Condenser instances sharing configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Condenser returns the question condensation service.
	Condenser() Condenser

	// Close releases resources held by the provider and its services.
	Close() error
}
