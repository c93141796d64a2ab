package arremate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/arremate/ai"
	"github.com/poiesic/arremate/ai/mock"
	"github.com/poiesic/arremate/config"
	"github.com/poiesic/arremate/core"
	"github.com/poiesic/arremate/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Ingestion.RetryDelay = 0
	return cfg
}

func writeRawLots(t *testing.T, cfg *config.Config) {
	t.Helper()
	lots := []core.RawLot{
		{ID: "123", AuctionDate: "10/03/2025", Location: "Contagem/MG", Description: "Mesa de escritorio em madeira", SourceURL: "https://example.com/123"},
		{ID: "124", AuctionDate: "10/03/2025", Location: "Contagem/MG", Description: "Furadeira de impacto", SourceURL: "https://example.com/124"},
		{ID: "125", AuctionDate: "11/03/2025", Location: "Betim/MG", Description: "Geladeira duplex", SourceURL: "https://example.com/125"},
	}
	data, err := json.Marshal(lots)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.RawPath(), data, 0o644))
}

func TestNewEngine(t *testing.T) {
	t.Run("default model from config", func(t *testing.T) {
		engine, err := NewEngine(testConfig(t))
		require.NoError(t, err)
		defer engine.Close()

		assert.Equal(t, "all-minilm", engine.ModelName())
		assert.NotNil(t, engine.backend, "persistent cache opened under the data dir")
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		engine, err := NewEngine(nil, WithModel(mock.NewMockEmbedder()))
		require.NoError(t, err)
		defer engine.Close()
		assert.Equal(t, "mock-embedder", engine.ModelName())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Ingestion.BatchSize = 0
		_, err := NewEngine(cfg, WithModel(mock.NewMockEmbedder()))
		assert.Error(t, err)
	})

	t.Run("persistent cache disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Embedding.CacheDir = ""
		engine, err := NewEngine(cfg, WithModel(mock.NewMockEmbedder()))
		require.NoError(t, err)
		defer engine.Close()

		assert.Nil(t, engine.backend)
		assert.NoError(t, engine.ClearCache(context.Background()))
	})

	t.Run("unusable cache path is not fatal", func(t *testing.T) {
		cfg := testConfig(t)
		blocker := filepath.Join(cfg.DataDir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
		cfg.Embedding.CacheDir = blocker

		engine, err := NewEngine(cfg, WithModel(mock.NewMockEmbedder()))
		require.NoError(t, err)
		defer engine.Close()
		assert.Nil(t, engine.backend)
	})
}

func TestEngine_SearchBeforeProcess(t *testing.T) {
	engine, err := NewEngine(testConfig(t), WithModel(mock.NewMockEmbedder()))
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Search(context.Background(), "mesa")
	assert.ErrorIs(t, err, core.ErrMissingInputData)
}

func TestEngine_ProcessSearchExport(t *testing.T) {
	cfg := testConfig(t)
	writeRawLots(t, cfg)

	clock := func() time.Time { return time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local) }
	engine, err := NewEngine(cfg, WithModel(mock.NewMockEmbedder()), WithExportClock(clock))
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()
	summary, err := engine.Process(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Lots)

	results, err := engine.Search(ctx, "mesa madeira")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "123", results[0].Item.ID)
	assert.Equal(t, core.MatchLexicalAndSemantic, results[0].Kind)

	path, err := engine.Export(results, "mesa madeira")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.DataDir, "resultado_mesa_madeira_20250310_093000.csv"), path)
	assert.FileExists(t, path)
}

func TestEngine_ModelUnavailable(t *testing.T) {
	cfg := testConfig(t)
	writeRawLots(t, cfg)

	// Build the dataset with a working model first.
	builder, err := NewEngine(cfg, WithModel(mock.NewMockEmbedder()))
	require.NoError(t, err)
	_, err = builder.Process(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, builder.ClearCache(context.Background()))
	require.NoError(t, builder.Close())

	engine, err := NewEngine(cfg, WithModel(ai.NewUnavailableModel("all-minilm", nil)))
	require.NoError(t, err)
	defer engine.Close()

	results, err := engine.Search(context.Background(), "mesa")
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)
	assert.Nil(t, results)
}

type countingMonitor struct {
	starts int
}

func (m *countingMonitor) Start(string)                                 { m.starts++ }
func (m *countingMonitor) AfterSemanticSearch([]core.SemanticHit)       {}
func (m *countingMonitor) AfterLexicalScan(map[int]search.LexicalMatch) {}
func (m *countingMonitor) Finish([]core.RankedResult)                   {}

func TestEngine_SearchMonitor(t *testing.T) {
	cfg := testConfig(t)
	writeRawLots(t, cfg)

	monitor := &countingMonitor{}
	engine, err := NewEngine(cfg, WithModel(mock.NewMockEmbedder()), WithSearchMonitor(monitor))
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Process(context.Background(), nil)
	require.NoError(t, err)
	_, err = engine.Search(context.Background(), "furadeira")
	require.NoError(t, err)

	assert.Equal(t, 1, monitor.starts)
}

func TestEngine_Close(t *testing.T) {
	model := mock.NewMockEmbedder()
	engine, err := NewEngine(testConfig(t), WithModel(model))
	require.NoError(t, err)

	require.NoError(t, engine.Close())
	assert.True(t, model.Closed())
}

func TestEngine_QueriesAreNotPersisted(t *testing.T) {
	cfg := testConfig(t)
	writeRawLots(t, cfg)
	ctx := context.Background()

	first := mock.NewMockEmbedder()
	engine, err := NewEngine(cfg, WithModel(first))
	require.NoError(t, err)
	_, err = engine.Process(ctx, nil)
	require.NoError(t, err)
	_, err = engine.Search(ctx, "mesa madeira")
	require.NoError(t, err)
	assert.Equal(t, 2, first.CallCount())
	require.NoError(t, engine.Close())

	second := mock.NewMockEmbedder()
	engine, err = NewEngine(cfg, WithModel(second))
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Search(ctx, "mesa madeira")
	require.NoError(t, err)
	assert.Equal(t, 1, second.CallCount(), "query must be embedded again")

	_, err = engine.Process(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.CallCount(), "unchanged lots come from the persistent cache")
}

func TestEngine_QueryCacheSize(t *testing.T) {
	cfg := testConfig(t)
	cfg.Embedding.CacheSize = 1
	cfg.Embedding.CacheDir = ""
	writeRawLots(t, cfg)
	ctx := context.Background()

	model := mock.NewMockEmbedder()
	engine, err := NewEngine(cfg, WithModel(model))
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Process(ctx, nil)
	require.NoError(t, err)
	before := model.CallCount()

	for _, query := range []string{"mesa", "mesa", "geladeira", "mesa"} {
		_, err = engine.Search(ctx, query)
		require.NoError(t, err)
	}
	// "mesa" is evicted by "geladeira" in a one-entry cache.
	assert.Equal(t, 3, model.CallCount()-before)
}
