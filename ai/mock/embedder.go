package mock

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	"github.com/poiesic/arremate/ai"
)

// DefaultDimensions matches all-MiniLM-L6-v2.
const DefaultDimensions = 384

type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// Name is returned by ModelName.
	Name string

	mu        sync.Mutex
	callCount int
	closed    bool
}

var _ ai.EmbeddingModel = (*MockEmbedder)(nil)

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{Name: "mock-embedder"}
}

func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.EmbedTextFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}

	// Default: generate deterministic vector from text hash
	return GenerateDeterministicVector(text, DefaultDimensions), nil
}

func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.EmbedTextsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, texts)
	}

	// Default: generate deterministic vectors for each text
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = GenerateDeterministicVector(text, DefaultDimensions)
	}
	return embeddings, nil
}

func (m *MockEmbedder) ModelName() string {
	return m.Name
}

func (m *MockEmbedder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Closed reports whether Close has been called.
func (m *MockEmbedder) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockEmbedder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// GenerateDeterministicVector returns a unit vector derived from a hash of text.
func GenerateDeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		// Simple pseudo-random generation based on seed and index
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	// Normalize to unit vector
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}

// VectorsFunc returns an EmbedTextFunc that answers from a fixed table and
// falls back to a zero vector of dim for unknown texts.
func VectorsFunc(table map[string][]float32, dim int) func(ctx context.Context, text string) ([]float32, error) {
	return func(_ context.Context, text string) ([]float32, error) {
		if vec, ok := table[text]; ok {
			return vec, nil
		}
		return make([]float32, dim), nil
	}
}
