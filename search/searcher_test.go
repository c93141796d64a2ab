package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/poiesic/arremate/ai"
	"github.com/poiesic/arremate/ai/mock"
	"github.com/poiesic/arremate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearcher(t *testing.T) {
	model := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(model)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(model, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(model, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil model", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrModelRequired, err)
	})
}

func TestSearch_EmptyCatalog(t *testing.T) {
	model := mock.NewMockEmbedder()
	searcher, err := NewSearcher(model)
	require.NoError(t, err)

	ix, err := NewIndex(nil, nil)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "mesa", ix)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_Thresholds(t *testing.T) {
	ix, err := NewIndex(
		items("Poltrona reclinavel", "Armario de aco", "Mesa antiga", "Mesa velha"),
		[][]float32{unitAt(0.20), unitAt(0.40), unitAt(0.05), unitAt(-0.10)},
	)
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "mesa xyzw", ix)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Semantic-only 0.40 is kept, semantic-only 0.20 is dropped.
	assert.Equal(t, 1, results[0].Index)
	assert.Equal(t, core.MatchSemanticOnly, results[0].Kind)
	assert.InDelta(t, 0.40, results[0].Score, 1e-6)

	// Lexical match totalling 0.20 is kept, one totalling 0.05 is dropped.
	assert.Equal(t, 2, results[1].Index)
	assert.Equal(t, core.MatchLexicalAndSemantic, results[1].Kind)
	assert.InDelta(t, 0.20, results[1].Score, 1e-6)
}

func TestSearch_CapIsPrefixOfFullOrdering(t *testing.T) {
	const n = 30
	descriptions := make([]string, n)
	vectors := make([][]float32, n)
	for i := range n {
		descriptions[i] = "Mesa de jantar"
		// Pairs share a score so ties are resolved by position.
		vectors[i] = unitAt(0.9 - 0.01*float64(i/2))
	}
	ix, err := NewIndex(items(descriptions...), vectors)
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "mesa", ix)
	require.NoError(t, err)
	require.Len(t, results, MaxResults)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, core.MatchLexicalAndSemantic, r.Kind)
		if i > 0 {
			assert.LessOrEqual(t, r.Score, results[i-1].Score)
		}
	}
}

func TestSearch_LexicalScanCoversWholeCatalog(t *testing.T) {
	const n = 60
	descriptions := make([]string, n)
	vectors := make([][]float32, n)
	for i := range n {
		descriptions[i] = "Cadeira"
		vectors[i] = unitAt(0.5)
	}
	// The last item is outside the semantic candidates but matches lexically.
	descriptions[n-1] = "Mesa"
	vectors[n-1] = unitAt(0)

	ix, err := NewIndex(items(descriptions...), vectors)
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "mesa", ix)
	require.NoError(t, err)
	require.Len(t, results, MaxResults)

	assert.Equal(t, n-1, results[0].Index)
	assert.Equal(t, core.MatchLexicalAndSemantic, results[0].Kind)
	assert.InDelta(t, 0.7, results[0].Score, 1e-6)

	assert.Equal(t, 0, results[1].Index)
	assert.Equal(t, 18, results[MaxResults-1].Index)
	for _, r := range results[1:] {
		assert.Equal(t, core.MatchSemanticOnly, r.Kind)
	}
}

func TestSearch_EmptyQueryIsSemanticOnly(t *testing.T) {
	ix, err := NewIndex(
		items("Mesa", "Cadeira", "Armario"),
		[][]float32{unitAt(0.40), unitAt(0.20), unitAt(0.36)},
	)
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	for _, query := range []string{"", "  !!! "} {
		results, err := searcher.Search(context.Background(), query, ix)
		require.NoError(t, err)
		require.Len(t, results, 2, "query %q", query)
		assert.Equal(t, 0, results[0].Index)
		assert.Equal(t, 2, results[1].Index)
		for _, r := range results {
			assert.Equal(t, core.MatchSemanticOnly, r.Kind)
			assert.Greater(t, r.Score, SemanticOnlyThreshold)
		}
	}
}

func TestSearch_PluralQuery(t *testing.T) {
	ix, err := NewIndex(items("Furadeira de impacto Bosch"), [][]float32{unitAt(0)})
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "Furadeiras", ix)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.MatchLexicalAndSemantic, results[0].Kind)
}

func TestSearch_EndToEnd(t *testing.T) {
	catalog := []core.CatalogItem{{
		ID:          "123",
		AuctionDate: "10/03/2025",
		Location:    "Sao Paulo",
		Description: "Mesa de escritorio em madeira",
		SourceURL:   "https://example.com/123",
	}}
	lot := core.RawLot{ID: "123", AuctionDate: "10/03/2025", Description: catalog[0].Description}
	vectors := [][]float32{mock.GenerateDeterministicVector(lot.EmbeddingText(), mock.DefaultDimensions)}

	ix, err := NewIndex(catalog, vectors)
	require.NoError(t, err)

	searcher, err := NewSearcher(mock.NewMockEmbedder())
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "mesa madeira", ix)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "123", results[0].Item.ID)
	assert.Equal(t, core.MatchLexicalAndSemantic, results[0].Kind)
	assert.Greater(t, results[0].Score, LexicalThreshold)
}

func TestSearch_Deterministic(t *testing.T) {
	descriptions := []string{
		"Mesa de escritorio em madeira",
		"Cadeira giratoria",
		"Furadeira de impacto",
		"Mesa de jantar com 6 cadeiras",
		"Geladeira duplex",
	}
	vectors := make([][]float32, len(descriptions))
	for i, d := range descriptions {
		vectors[i] = mock.GenerateDeterministicVector(d, mock.DefaultDimensions)
	}
	ix, err := NewIndex(items(descriptions...), vectors)
	require.NoError(t, err)

	searcher, err := NewSearcher(mock.NewMockEmbedder())
	require.NoError(t, err)

	ctx := context.Background()
	first, err := searcher.Search(ctx, "mesa cadeiras", ix)
	require.NoError(t, err)
	second, err := searcher.Search(ctx, "mesa cadeiras", ix)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearch_ModelUnavailable(t *testing.T) {
	ix, err := NewIndex(items("Mesa"), [][]float32{{1, 0}})
	require.NoError(t, err)

	searcher, err := NewSearcher(ai.NewUnavailableModel("all-minilm", nil))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "mesa", ix)
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)
	assert.Nil(t, results)
}

func TestSearch_CanceledContext(t *testing.T) {
	ix, err := NewIndex(items("Mesa"), [][]float32{unitAt(0.9)})
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = searcher.Search(ctx, "mesa", ix)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingMonitor struct {
	query    string
	semantic []core.SemanticHit
	lexical  map[int]LexicalMatch
	results  []core.RankedResult
	finished bool
}

func (m *recordingMonitor) Start(query string)                          { m.query = query }
func (m *recordingMonitor) AfterSemanticSearch(hits []core.SemanticHit) { m.semantic = hits }
func (m *recordingMonitor) AfterLexicalScan(lm map[int]LexicalMatch)    { m.lexical = lm }
func (m *recordingMonitor) Finish(results []core.RankedResult) {
	m.results = results
	m.finished = true
}

func TestSearchWithMonitor(t *testing.T) {
	ix, err := NewIndex(
		items("Mesa redonda", "Cadeira"),
		[][]float32{unitAt(0.3), unitAt(0.6)},
	)
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(context.Background(), "Mesa", ix, monitor)
	require.NoError(t, err)

	assert.Equal(t, "Mesa", monitor.query)
	assert.Len(t, monitor.semantic, 2)
	assert.Len(t, monitor.lexical, 1)
	assert.True(t, monitor.lexical[0].Matched)
	assert.True(t, monitor.finished)
	assert.Equal(t, results, monitor.results)
}

func TestLogMonitor(t *testing.T) {
	ix, err := NewIndex(items("Mesa"), [][]float32{unitAt(0.9)})
	require.NoError(t, err)

	searcher, err := NewSearcher(fixedModel(queryAxis))
	require.NoError(t, err)

	results, err := searcher.SearchWithMonitor(context.Background(), "mesa", ix, NewLogMonitor(nil))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
