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

package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/arremate/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Model implements ai.EmbeddingModel using an OpenAI-compatible embedding API.
type Model struct {
	embedder embeddings.Embedder
	name     string
	logger   *slog.Logger
}

var _ ai.EmbeddingModel = (*Model)(nil)

// newModel returns the concrete type so in-package tests can reach its fields.
func newModel(config *ai.Config) (*Model, error) {
	if config == nil {
		config = ai.NewConfig()
	}
	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible services ignore the token but the client requires one.
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}

	return &Model{
		embedder: embedder,
		name:     config.EmbeddingModel,
		logger:   slog.Default().With("component", "openai-embedder", "model", config.EmbeddingModel),
	}, nil
}

// NewModel creates an embedding model using the provided configuration.
//
// Returns ai.EmbeddingModel to enforce abstraction.
func NewModel(config *ai.Config) (ai.EmbeddingModel, error) {
	return newModel(config)
}

// EmbedText generates a vector embedding for a single text string.
func (m *Model) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := m.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		m.logger.Error("failed to generate embedding", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ai.ErrModelUnavailable)
	}

	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (m *Model) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors, err := m.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		m.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ai.ErrModelUnavailable, len(vectors), len(texts))
	}

	return vectors, nil
}

// ModelName returns the configured embedding model.
func (m *Model) ModelName() string {
	return m.name
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (m *Model) Close() error {
	return nil
}
