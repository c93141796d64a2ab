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

package search

import (
	"fmt"

	"github.com/poiesic/arremate/core"
	"github.com/poiesic/arremate/storage"
)

// Index is a read-only catalog aligned position by position with its
// embedding vectors. It is safe for concurrent use.
type Index struct {
	items      []core.CatalogItem
	vectors    [][]float32
	normalized []string
	dim        int
}

// NewIndex pairs items with vectors. Both slices must have the same length
// and every vector must have the same non-zero dimension.
func NewIndex(items []core.CatalogItem, vectors [][]float32) (*Index, error) {
	if len(items) != len(vectors) {
		return nil, fmt.Errorf("%w: %d items, %d vectors", core.ErrIndexMisaligned, len(items), len(vectors))
	}

	dim := 0
	for i, vec := range vectors {
		if i == 0 {
			dim = len(vec)
		}
		if len(vec) == 0 || len(vec) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d", core.ErrDimensionMismatch, i, len(vec), dim)
		}
	}

	normalized := make([]string, len(items))
	for i, item := range items {
		normalized[i] = Normalize(item.Description)
	}

	return &Index{
		items:      items,
		vectors:    vectors,
		normalized: normalized,
		dim:        dim,
	}, nil
}

// LoadIndex reads the catalog and vector files and builds an Index.
// A missing file yields core.ErrMissingInputData.
func LoadIndex(catalogPath, vectorsPath string) (*Index, error) {
	items, err := storage.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	vectors, err := storage.LoadVectors(vectorsPath)
	if err != nil {
		return nil, err
	}
	return NewIndex(items, vectors)
}

// Len returns the number of catalog items.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.items)
}

// Dim returns the embedding dimension, or zero for an empty index.
func (ix *Index) Dim() int {
	return ix.dim
}

// Item returns the catalog item at position i.
func (ix *Index) Item(i int) core.CatalogItem {
	return ix.items[i]
}

// Vector returns the embedding of item i. Callers must not modify it.
func (ix *Index) Vector(i int) []float32 {
	return ix.vectors[i]
}

func (ix *Index) normalizedDescription(i int) string {
	return ix.normalized[i]
}
