package storage

import (
	"context"

	"github.com/poiesic/arremate/core"
)

// VectorCache persists embeddings keyed by a content-derived ID.
// Implementations must be thread-safe and support concurrent access.
type VectorCache interface {
	// GetVector returns the cached vector for id.
	// Returns ErrNotFound if nothing is cached under id.
	GetVector(ctx context.Context, id core.ID) ([]float32, error)

	// PutVector stores vec under id, replacing any previous value.
	PutVector(ctx context.Context, id core.ID, vec []float32) error

	// Close releases resources held by the cache.
	Close() error
}
