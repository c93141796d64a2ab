package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/arremate/core"
	"github.com/poiesic/arremate/storage"
)

// VectorCache implements storage.VectorCache for BadgerDB.
type VectorCache struct {
	backend *Backend
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache creates a new VectorCache on top of backend.
// The backend stays owned by the caller.
func NewVectorCache(backend *Backend) *VectorCache {
	return &VectorCache{
		backend: backend,
	}
}

// GetVector retrieves the vector cached under id.
// Returns storage.ErrNotFound if nothing is cached.
func (c *VectorCache) GetVector(ctx context.Context, id core.ID) ([]float32, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var vec []float32
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			vec, unmarshalErr = storage.UnmarshalVector(val)
			return unmarshalErr
		})
	}, false)

	return vec, err
}

// PutVector stores vec under id.
func (c *VectorCache) PutVector(ctx context.Context, id core.ID, vec []float32) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(id), storage.MarshalVector(vec)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Clear removes every cached vector.
func (c *VectorCache) Clear(ctx context.Context) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return c.backend.DropPrefix([]byte(vectorCachePrefix + ":"))
}

// Close is a no-op; the backend is closed by its owner.
func (c *VectorCache) Close() error {
	return nil
}
