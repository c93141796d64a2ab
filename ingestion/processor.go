package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/arremate/ai"
	"github.com/poiesic/arremate/core"
	"github.com/poiesic/arremate/search"
	"github.com/poiesic/arremate/storage"
)

const (
	DefaultBatchSize  = 32
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

// Paths locates the files a Processor reads and writes.
type Paths struct {
	Raw     string
	Catalog string
	Vectors string
}

// Summary describes a completed run.
type Summary struct {
	Lots       int
	Skipped    int
	Batches    int
	Dimensions int
	Elapsed    time.Duration
}

// Processor builds the catalog dataset and vector store from raw lots.
type Processor struct {
	model      ai.Embedder
	paths      Paths
	pool       *ants.Pool
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	progress   io.Writer
	logger     *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithPoolSize sets the number of batches embedded concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Processor) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many lots are sent to the model per request.
func WithBatchSize(size int) Option {
	return func(p *Processor) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets how many times a failed batch is retried and the delay
// before the first retry.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(p *Processor) error {
		if maxRetries < 0 {
			return fmt.Errorf("max retries must be non-negative, got %d", maxRetries)
		}
		p.maxRetries = maxRetries
		p.retryDelay = delay
		return nil
	}
}

// WithProgress reports embedding progress to w.
func WithProgress(w io.Writer) Option {
	return func(p *Processor) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProcessor creates a processor that embeds lots with model.
// Call Release when done.
func NewProcessor(model ai.Embedder, paths Paths, opts ...Option) (*Processor, error) {
	if model == nil {
		return nil, ErrModelRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		model:      model,
		paths:      paths,
		pool:       pool,
		batchSize:  DefaultBatchSize,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "processor")

	return p, nil
}

// Run embeds every valid raw lot and writes the catalog and vector store.
// Nothing is written unless every batch succeeds.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()

	lots, err := storage.LoadRawLots(p.paths.Raw)
	if err != nil {
		if errors.Is(err, core.ErrMissingInputData) {
			return nil, fmt.Errorf("%w: %s", ErrRawDataNotFound, p.paths.Raw)
		}
		return nil, err
	}

	valid := make([]core.RawLot, 0, len(lots))
	for i := range lots {
		if err := core.ValidateRawLot(&lots[i]); err != nil {
			p.logger.Warn("skipping lot", "position", i, "lot", lots[i].ID, "err", err)
			continue
		}
		valid = append(valid, lots[i])
	}
	if len(valid) == 0 {
		return nil, ErrNoLots
	}

	p.logger.Info("processing lots", "lots", len(valid), "skipped", len(lots)-len(valid), "batchSize", p.batchSize)

	vectors, batches, err := p.embed(ctx, valid)
	if err != nil {
		return nil, err
	}

	items := make([]core.CatalogItem, len(valid))
	for i, lot := range valid {
		items[i] = core.CatalogItemFromLot(lot)
	}

	// Refuse to write anything search could not load.
	index, err := search.NewIndex(items, vectors)
	if err != nil {
		return nil, err
	}

	if err := storage.SaveDataset(p.paths.Catalog, items, p.paths.Vectors, vectors); err != nil {
		p.logger.Error("failed to save dataset", "err", err)
		return nil, err
	}

	summary := &Summary{
		Lots:       len(valid),
		Skipped:    len(lots) - len(valid),
		Batches:    batches,
		Dimensions: index.Dim(),
		Elapsed:    time.Since(started),
	}
	p.logger.Info("processing complete", "lots", summary.Lots, "dimensions", summary.Dimensions, "elapsed", summary.Elapsed)
	return summary, nil
}

// embed submits one pool task per batch and fills a vector slice aligned
// with lots. The first failing batch cancels the others.
func (p *Processor) embed(ctx context.Context, lots []core.RawLot) ([][]float32, int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(lots))
	tracker := NewProgressTracker(p.progress, len(lots), p.batchSize)
	tracker.Start()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	batches := 0
	for start := 0; start < len(lots); start += p.batchSize {
		end := min(start+p.batchSize, len(lots))
		texts := make([]string, end-start)
		for i, lot := range lots[start:end] {
			texts[i] = lot.EmbeddingText()
		}
		batches++

		wg.Add(1)
		offset := start
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			err := RetryWithBackoff(ctx, p.logger, p.maxRetries+1, p.retryDelay, func(ctx context.Context) error {
				embedded, err := p.model.EmbedTexts(ctx, texts)
				if err != nil {
					return err
				}
				if len(embedded) != len(texts) {
					return Permanent(fmt.Errorf("%w: sent %d, received %d", ErrEmbeddingCountMismatch, len(texts), len(embedded)))
				}
				copy(vectors[offset:], embedded)
				return nil
			})
			if err != nil {
				p.logger.Error("batch failed", "offset", offset, "size", len(texts), "err", err)
				fail(fmt.Errorf("embedding lots %d-%d: %w", offset, offset+len(texts)-1, err))
				return
			}
			tracker.Add(len(texts))
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}

	wg.Wait()
	tracker.Finish()

	if firstErr != nil {
		return nil, 0, firstErr
	}
	return vectors, batches, nil
}

// Release releases the worker pool.
// The processor should not be used after calling Release.
func (p *Processor) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
