package ai

import "context"

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingModel is a loaded embedding model. It is constructed once by its
// owner, shared by every search, and released with Close.
type EmbeddingModel interface {
	Embedder

	// ModelName identifies the model. Vectors from different models are not
	// comparable, so the name is part of every cache key.
	ModelName() string

	// Close releases resources held by the model.
	// After Close is called, the model should not be used.
	Close() error
}
