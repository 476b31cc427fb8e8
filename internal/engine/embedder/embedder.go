// Package embedder turns text into fixed-length vectors. The matching core
// treats providers as external collaborators: it only requires that a
// provider is deterministic (same model + same input → same vector) and
// returns one vector of constant dimensionality per input string.
package embedder

import "context"

// Embedder produces vector embeddings from text.
type Embedder interface {
	// EmbedBatch returns one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Close releases provider resources.
	Close() error
}
