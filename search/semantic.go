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
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/arremate/ai"
	"github.com/poiesic/arremate/core"
)

// Retriever ranks catalog items by cosine similarity to a query embedding.
type Retriever struct {
	model ai.Embedder
}

// NewRetriever creates a retriever that encodes queries with model.
func NewRetriever(model ai.Embedder) (*Retriever, error) {
	if model == nil {
		return nil, ErrModelRequired
	}
	return &Retriever{model: model}, nil
}

// TopK returns the k items most similar to query, best first. Equal scores
// are ordered by catalog position. An empty index returns no hits without
// calling the model.
func (r *Retriever) TopK(ctx context.Context, query string, index *Index, k int) ([]core.SemanticHit, error) {
	if index.Len() == 0 || k <= 0 {
		return []core.SemanticHit{}, nil
	}

	queryVec, err := r.model.EmbedText(ctx, query)
	if err != nil {
		if errors.Is(err, ai.ErrModelUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}
	if len(queryVec) != index.Dim() {
		return nil, fmt.Errorf("%w: query has dimension %d, catalog has %d", core.ErrDimensionMismatch, len(queryVec), index.Dim())
	}

	hits := make([]core.SemanticHit, index.Len())
	for i := range hits {
		hits[i] = core.SemanticHit{Index: i, Score: cosine(queryVec, index.Vector(i))}
	}
	slices.SortFunc(hits, func(a, b core.SemanticHit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector. a and b must have the same length.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
