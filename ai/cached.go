// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"context"
	"errors"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/arremate/core"
	"github.com/poiesic/arremate/storage"
)

// CachedModel wraps an EmbeddingModel with an in-memory LRU and, optionally,
// a persistent VectorCache. Repeated queries and unchanged catalog texts are
// answered without calling the model.
type CachedModel struct {
	inner  EmbeddingModel
	memory *lru.Cache[core.ID, []float32]
	store  storage.VectorCache
	logger *slog.Logger
}

var _ EmbeddingModel = (*CachedModel)(nil)

// CacheOption configures a CachedModel.
type CacheOption func(*CachedModel)

// WithVectorStore adds a persistent cache behind the in-memory one.
func WithVectorStore(store storage.VectorCache) CacheOption {
	return func(c *CachedModel) {
		c.store = store
	}
}

// WithCacheLogger sets a custom logger.
// Default is slog.Default().
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedModel) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewCachedModel wraps inner with an LRU of size entries.
// A size of zero or less uses DefaultQueryCacheSize.
func NewCachedModel(inner EmbeddingModel, size int, opts ...CacheOption) (*CachedModel, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if size <= 0 {
		size = DefaultQueryCacheSize
	}

	memory, err := lru.New[core.ID, []float32](size)
	if err != nil {
		return nil, err
	}

	c := &CachedModel{
		inner:  inner,
		memory: memory,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "embedding-cache")
	return c, nil
}

// cacheKey binds the text to the model name; vectors from different models
// must never be mixed.
func (c *CachedModel) cacheKey(text string) core.ID {
	return core.IDFromContent(c.inner.ModelName() + "\x00" + text)
}

// EmbedText returns the cached embedding if available, otherwise computes and caches it.
func (c *CachedModel) EmbedText(ctx context.Context, text string) ([]float32, error) {
	key := c.cacheKey(text)
	if vec, ok := c.lookup(ctx, key); ok {
		return vec, nil
	}

	vec, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	c.remember(ctx, key, vec)
	return vec, nil
}

// EmbedTexts embeds only the texts missing from the cache, in one batch.
func (c *CachedModel) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	results := make([][]float32, len(texts))
	keys := make([]core.ID, len(texts))
	missingIdx := make([]int, 0, len(texts))
	missingTexts := make([]string, 0, len(texts))

	for i, text := range texts {
		keys[i] = c.cacheKey(text)
		if vec, ok := c.lookup(ctx, keys[i]); ok {
			results[i] = vec
			continue
		}
		missingIdx = append(missingIdx, i)
		missingTexts = append(missingTexts, text)
	}

	if len(missingTexts) == 0 {
		return results, nil
	}

	c.logger.Debug("embedding cache misses", "misses", len(missingTexts), "total", len(texts))
	fresh, err := c.inner.EmbedTexts(ctx, missingTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missingTexts) {
		return nil, errors.New("embedding count mismatch from model")
	}

	for j, i := range missingIdx {
		results[i] = fresh[j]
		c.remember(ctx, keys[i], fresh[j])
	}
	return results, nil
}

func (c *CachedModel) lookup(ctx context.Context, key core.ID) ([]float32, bool) {
	if vec, ok := c.memory.Get(key); ok {
		return vec, true
	}
	if c.store == nil {
		return nil, false
	}

	vec, err := c.store.GetVector(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("persistent cache read failed", "err", err)
		}
		return nil, false
	}
	c.memory.Add(key, vec)
	return vec, true
}

// remember logs and ignores cache write errors.
func (c *CachedModel) remember(ctx context.Context, key core.ID, vec []float32) {
	c.memory.Add(key, vec)
	if c.store == nil {
		return
	}
	if err := c.store.PutVector(ctx, key, vec); err != nil {
		c.logger.Warn("persistent cache write failed", "err", err)
	}
}

// ModelName returns the model identifier (passthrough to inner).
func (c *CachedModel) ModelName() string {
	return c.inner.ModelName()
}

// Close closes the inner model. The persistent store is owned by the caller.
func (c *CachedModel) Close() error {
	return c.inner.Close()
}
