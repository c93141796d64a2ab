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

// Package mock provides test double implementations of AI service interfaces.
//
// MockEmbedder implements ai.EmbeddingModel for use in unit tests. It lets
// tests run without an embedding server and gives them controlled,
// deterministic vectors.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	model := mock.NewMockEmbedder()
//	vec, err := model.EmbedText(ctx, "furadeira")
//
//	// Custom behavior injection
//	model.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := model.CallCount()
//
// # Default Behavior
//
// Without injected funcs MockEmbedder returns unit vectors of
// DefaultDimensions derived from an FNV hash of the text, so equal texts get
// equal vectors.
package mock
