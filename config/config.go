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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvDataDir        = "ARREMATE_DATA_DIR"
	EnvEmbeddingHost  = "ARREMATE_EMBEDDING_HOST"
	EnvEmbeddingModel = "ARREMATE_EMBEDDING_MODEL"
	EnvBatchSize      = "ARREMATE_BATCH_SIZE"
)

// Config is the complete arremate configuration.
type Config struct {
	// DataDir holds the dataset files, the embedding cache and exports.
	DataDir string `yaml:"data_dir"`

	// RawFile is the scraper output, relative to DataDir.
	RawFile string `yaml:"raw_file"`

	// CatalogFile is the processed catalog, relative to DataDir.
	CatalogFile string `yaml:"catalog_file"`

	// VectorsFile is the vector store, relative to DataDir.
	VectorsFile string `yaml:"vectors_file"`

	Embedding EmbeddingConfig `yaml:"embedding"`
	Export    ExportConfig    `yaml:"export"`
	Ingestion IngestionConfig `yaml:"ingestion"`
}

// EmbeddingConfig configures the embedding model and its caches.
type EmbeddingConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`

	// CacheSize is the number of vectors kept in memory, per cache.
	CacheSize int `yaml:"cache_size"`

	// CacheDir is the persistent cache of lot vectors written by process,
	// relative to DataDir. Search queries are never stored there.
	// Empty disables it.
	CacheDir string `yaml:"cache_dir"`
}

// ExportConfig configures result exports.
type ExportConfig struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
}

// IngestionConfig configures dataset processing.
type IngestionConfig struct {
	BatchSize  int           `yaml:"batch_size"`
	PoolSize   int           `yaml:"pool_size"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:     "data",
		RawFile:     "dados_brutos.json",
		CatalogFile: "dados_processados.json",
		VectorsFile: "embeddings.bin",
		Embedding: EmbeddingConfig{
			Host:      "http://localhost:11434/v1",
			Model:     "all-minilm",
			CacheSize: 1000,
			CacheDir:  "embedding_cache",
		},
		Export: ExportConfig{
			Delimiter: ";",
			Encoding:  "utf-8-sig",
		},
		Ingestion: IngestionConfig{
			BatchSize:  32,
			PoolSize:   4,
			MaxRetries: 3,
			RetryDelay: time.Second,
		},
	}
}

// Load reads the YAML file at path on top of Default and applies
// environment overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No config file is fine - use defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvEmbeddingHost); v != "" {
		c.Embedding.Host = v
	}
	if v := os.Getenv(EnvEmbeddingModel); v != "" {
		c.Embedding.Model = v
	}
	if v := os.Getenv(EnvBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Ingestion.BatchSize = n
		}
	}
}

// Validate checks the configuration for values the program cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	for name, file := range map[string]string{
		"raw_file":     c.RawFile,
		"catalog_file": c.CatalogFile,
		"vectors_file": c.VectorsFile,
	} {
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	if c.Embedding.Model == "" {
		return errors.New("embedding.model must not be empty")
	}
	if c.Embedding.CacheSize < 0 {
		return fmt.Errorf("embedding.cache_size must be non-negative, got %d", c.Embedding.CacheSize)
	}

	if utf8.RuneCountInString(c.Export.Delimiter) != 1 {
		return fmt.Errorf("export.delimiter must be a single character, got %q", c.Export.Delimiter)
	}
	validEncodings := map[string]bool{"utf-8-sig": true, "utf-8": true, "windows-1252": true, "cp1252": true}
	if !validEncodings[strings.ToLower(c.Export.Encoding)] {
		return fmt.Errorf("export.encoding must be 'utf-8-sig', 'utf-8' or 'windows-1252', got %s", c.Export.Encoding)
	}

	if c.Ingestion.BatchSize <= 0 {
		return fmt.Errorf("ingestion.batch_size must be positive, got %d", c.Ingestion.BatchSize)
	}
	if c.Ingestion.PoolSize <= 0 {
		return fmt.Errorf("ingestion.pool_size must be positive, got %d", c.Ingestion.PoolSize)
	}
	if c.Ingestion.MaxRetries < 0 {
		return fmt.Errorf("ingestion.max_retries must be non-negative, got %d", c.Ingestion.MaxRetries)
	}
	if c.Ingestion.RetryDelay < 0 {
		return fmt.Errorf("ingestion.retry_delay must be non-negative, got %s", c.Ingestion.RetryDelay)
	}
	return nil
}

// Delimiter returns the export delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Export.Delimiter)
	return r
}

// RawPath returns the scraper output path.
func (c *Config) RawPath() string {
	return filepath.Join(c.DataDir, c.RawFile)
}

// CatalogPath returns the processed catalog path.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, c.CatalogFile)
}

// VectorsPath returns the vector store path.
func (c *Config) VectorsPath() string {
	return filepath.Join(c.DataDir, c.VectorsFile)
}

// CachePath returns the persistent embedding cache directory, or "" when
// the cache is disabled.
func (c *Config) CachePath() string {
	if c.Embedding.CacheDir == "" {
		return ""
	}
	if filepath.IsAbs(c.Embedding.CacheDir) {
		return c.Embedding.CacheDir
	}
	return filepath.Join(c.DataDir, c.Embedding.CacheDir)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
