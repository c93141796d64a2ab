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

// Package arremate searches a locally cached auction catalog by combining
// embedding similarity with accent-insensitive lexical matching.
package arremate

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/arremate/ai"
	"github.com/poiesic/arremate/ai/openai"
	"github.com/poiesic/arremate/config"
	"github.com/poiesic/arremate/core"
	"github.com/poiesic/arremate/export"
	"github.com/poiesic/arremate/ingestion"
	"github.com/poiesic/arremate/search"
	"github.com/poiesic/arremate/storage/badger"
)

// Engine owns the embedding model and its caches and runs searches,
// exports and dataset processing against the files named by a Config.
type Engine struct {
	cfg   *config.Config
	model ai.EmbeddingModel
	// queryModel caches search queries in memory only.
	queryModel *ai.CachedModel
	// lotModel also persists lot vectors in the badger cache for Process.
	lotModel *ai.CachedModel
	backend  *badger.Backend
	searcher *search.Searcher
	exporter *export.Exporter
	monitor  search.SearchMonitor
	mu       sync.Mutex
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	model   ai.EmbeddingModel
	logger  *slog.Logger
	monitor search.SearchMonitor
	clock   func() time.Time
}

// WithModel replaces the OpenAI-compatible model built from the config.
// The engine takes ownership and closes it.
func WithModel(model ai.EmbeddingModel) EngineOption {
	return func(o *engineOptions) {
		o.model = model
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSearchMonitor observes every search run by the engine.
func WithSearchMonitor(monitor search.SearchMonitor) EngineOption {
	return func(o *engineOptions) {
		o.monitor = monitor
	}
}

// WithExportClock sets the time source used to name export files.
func WithExportClock(now func() time.Time) EngineOption {
	return func(o *engineOptions) {
		o.clock = now
	}
}

// NewEngine builds an engine from cfg. A nil cfg uses config.Default.
//
// When the embedding model cannot be set up the engine still starts, and
// every search fails with ai.ErrModelUnavailable.
func NewEngine(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedding.Host),
		ai.WithEmbeddingModel(cfg.Embedding.Model),
		ai.WithQueryCacheSize(cfg.Embedding.CacheSize),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	model := options.model
	if model == nil {
		m, err := openai.NewModel(aiConfig)
		if err != nil {
			logger.Warn("embedding model unavailable", "model", cfg.Embedding.Model, "err", err)
			m = ai.NewUnavailableModel(cfg.Embedding.Model, err)
		}
		model = m
	}

	e := &Engine{
		cfg:     cfg,
		model:   model,
		monitor: options.monitor,
		logger:  logger.With("component", "engine"),
	}

	cacheOpts := []ai.CacheOption{ai.WithCacheLogger(logger)}
	if path := cfg.CachePath(); path != "" {
		backend, err := badger.OpenBackend(path, false)
		if err != nil {
			e.logger.Warn("persistent embedding cache disabled", "path", path, "err", err)
		} else {
			e.backend = backend
			cacheOpts = append(cacheOpts, ai.WithVectorStore(badger.NewVectorCache(backend)))
		}
	}

	var err error
	e.lotModel, err = ai.NewCachedModel(model, aiConfig.QueryCacheSize, cacheOpts...)
	if err != nil {
		e.closeResources(model)
		return nil, err
	}
	e.queryModel, err = ai.NewCachedModel(model, aiConfig.QueryCacheSize, ai.WithCacheLogger(logger))
	if err != nil {
		e.closeResources(model)
		return nil, err
	}

	e.searcher, err = search.NewSearcher(e.queryModel, search.WithLogger(logger))
	if err != nil {
		e.closeResources(model)
		return nil, err
	}

	exportOpts := []export.Option{
		export.WithDirectory(cfg.DataDir),
		export.WithDelimiter(cfg.Delimiter()),
		export.WithEncoding(cfg.Export.Encoding),
		export.WithLogger(logger),
	}
	if options.clock != nil {
		exportOpts = append(exportOpts, export.WithClock(options.clock))
	}
	e.exporter, err = export.NewExporter(exportOpts...)
	if err != nil {
		e.closeResources(model)
		return nil, err
	}

	return e, nil
}

func (e *Engine) closeResources(model ai.EmbeddingModel) {
	if err := model.Close(); err != nil {
		e.logger.Error("error closing embedding model", "err", err)
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing embedding cache", "err", err)
		}
	}
}

// Search loads the current catalog and vectors and ranks them against query.
// Searches are serialized, so at most one query is encoded at a time.
func (e *Engine) Search(ctx context.Context, query string) ([]core.RankedResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	index, err := search.LoadIndex(e.cfg.CatalogPath(), e.cfg.VectorsPath())
	if err != nil {
		e.logger.Error("error loading search index", "err", err)
		return nil, err
	}
	return e.searcher.SearchWithMonitor(ctx, query, index, e.monitor)
}

// Export writes results to a new file in the data directory and returns its path.
func (e *Engine) Export(results []core.RankedResult, query string) (string, error) {
	return e.exporter.Export(results, query)
}

// Process rebuilds the catalog and vector store from the raw lots, reporting
// progress to progress (which may be nil).
func (e *Engine) Process(ctx context.Context, progress io.Writer) (*ingestion.Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	proc, err := ingestion.NewProcessor(e.lotModel, ingestion.Paths{
		Raw:     e.cfg.RawPath(),
		Catalog: e.cfg.CatalogPath(),
		Vectors: e.cfg.VectorsPath(),
	},
		ingestion.WithBatchSize(e.cfg.Ingestion.BatchSize),
		ingestion.WithPoolSize(e.cfg.Ingestion.PoolSize),
		ingestion.WithRetry(e.cfg.Ingestion.MaxRetries, e.cfg.Ingestion.RetryDelay),
		ingestion.WithProgress(progress),
		ingestion.WithLogger(e.logger),
	)
	if err != nil {
		return nil, err
	}
	defer proc.Release()

	return proc.Run(ctx)
}

// ClearCache empties the persistent lot embedding cache, if one is open.
func (e *Engine) ClearCache(ctx context.Context) error {
	if e.backend == nil {
		return nil
	}
	return badger.NewVectorCache(e.backend).Clear(ctx)
}

// ModelName returns the embedding model in use.
func (e *Engine) ModelName() string {
	return e.model.ModelName()
}

// Close releases the model and the persistent cache.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	if err := e.model.Close(); err != nil {
		e.logger.Error("error closing embedding model", "err", err)
		firstErr = err
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing embedding cache", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
