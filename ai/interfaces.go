package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input
	// texts, all with the same dimensionality.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TokenFunc receives one streamed answer token. Returning an error cancels
// the generation.
type TokenFunc func(ctx context.Context, token string) error

// Generator answers questions grounded in retrieved document context.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// IsRelevant decides whether the question can be answered using only
	// the provided document context. This is a cheap non-streaming call
	// made before committing to a full answer.
	IsRelevant(ctx context.Context, contextText, question string) (bool, error)

	// StreamAnswer generates an answer token by token, invoking fn for each
	// token in order. It returns once the stream completes or fails.
	StreamAnswer(ctx context.Context, contextText, question string, fn TokenFunc) error
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the answer generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
