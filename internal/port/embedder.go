package port

import "context"

// Embedder generates vector embeddings for text via an external provider.
type Embedder interface {
	// Embed generates embeddings for the given texts. The returned slice is
	// positionally aligned with the input: vector i belongs to texts[i].
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
