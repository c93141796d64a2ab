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

// Package openai provides the production embedding model, backed by an
// OpenAI-compatible embeddings endpoint (Ollama, LocalAI, vLLM) through
// langchaingo.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434"), // /v1 added automatically
//	    ai.WithEmbeddingModel("all-minilm"),
//	)
//
//	model, err := openai.NewModel(config)
//	if err != nil {
//	    model = ai.NewUnavailableModel(config.EmbeddingModel, err)
//	}
//	defer model.Close()
//
//	vec, err := model.EmbedText(ctx, "furadeira de impacto")
package openai
