package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "all-minilm", cfg.EmbeddingModel)
	assert.Equal(t, DefaultQueryCacheSize, cfg.QueryCacheSize)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "all-minilm", cfg.EmbeddingModel)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithEmbeddingModel("nomic-embed-text"),
			WithQueryCacheSize(10),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
		assert.Equal(t, 10, cfg.QueryCacheSize)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{
			name:     "already has /v1",
			host:     "http://localhost:11434/v1",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "missing /v1",
			host:     "http://localhost:11434",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "has trailing slash",
			host:     "http://localhost:11434/",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "empty host",
			host:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.EmbeddingHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434",
			EmbeddingModel: "all-minilm",
		}

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := &Config{EmbeddingModel: "all-minilm"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:11434/v1"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("negative cache size", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434/v1",
			EmbeddingModel: "all-minilm",
			QueryCacheSize: -1,
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "QueryCacheSize")
	})
}
