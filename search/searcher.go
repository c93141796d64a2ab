package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/poiesic/arremate/ai"
	"github.com/poiesic/arremate/core"
)

const (
	// SemanticCandidates is how many nearest items the semantic stage keeps.
	SemanticCandidates = 50

	// MaxResults caps the ranked output.
	MaxResults = 20
)

// Searcher provides hybrid semantic and lexical search over an Index.
type Searcher struct {
	retriever *Retriever
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher that encodes queries with model.
func NewSearcher(model ai.Embedder, opts ...Option) (*Searcher, error) {
	retriever, err := NewRetriever(model)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		retriever: retriever,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the items of index against query.
// Returns at most MaxResults results, best first.
func (s *Searcher) Search(ctx context.Context, query string, index *Index) ([]core.RankedResult, error) {
	return s.SearchWithMonitor(ctx, query, index, nil)
}

// SearchWithMonitor ranks the items of index against query with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, index *Index, monitor SearchMonitor) ([]core.RankedResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// 1. Semantic retrieval
	hits, err := s.retriever.TopK(ctx, query, index, SemanticCandidates)
	if err != nil {
		s.logger.Error("error retrieving semantic candidates", "query", query, "err", err)
		return nil, err
	}
	semantic := make(map[int]float64, len(hits))
	for _, hit := range hits {
		semantic[hit.Index] = hit.Score
	}
	monitor.AfterSemanticSearch(hits)

	// 2. Lexical scan over the whole catalog
	lexical := make(map[int]LexicalMatch)
	if normalizedQuery := Normalize(query); normalizedQuery != "" {
		for i := 0; i < index.Len(); i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			m := MatchLexical(normalizedQuery, index.normalizedDescription(i))
			if m.Bonus > 0 {
				lexical[i] = m
			}
		}
	}
	monitor.AfterLexicalScan(lexical)

	// 3. Fuse, threshold, order and cap
	results := make([]core.RankedResult, 0, MaxResults)
	for idx, f := range Fuse(semantic, lexical) {
		if !Accept(f) {
			continue
		}
		results = append(results, core.RankedResult{
			Index: idx,
			Item:  index.Item(idx),
			Score: f.Score,
			Kind:  f.Kind,
		})
	}

	slices.SortFunc(results, func(a, b core.RankedResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	s.logger.Debug("search complete",
		"query", query,
		"semantic", len(hits),
		"lexical", len(lexical),
		"results", len(results))
	monitor.Finish(results)

	return results, nil
}
