package embedding

import "context"

// Dim is the embedding dimension served by both the remote service and the
// local model (all-MiniLM class models).
const Dim = 384

// LocalProvider generates embeddings without the remote embedding service.
// It is the fallback path once the client goes sticky-local.
type LocalProvider interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	// Loaded reports whether the underlying model has served at least one
	// request (used by health reporting).
	Loaded() bool
	ModelName() string
}
