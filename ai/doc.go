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

// Package ai provides the embedding abstractions used by arremate.
//
// The search and ingestion packages depend only on the EmbeddingModel
// interface. Implementations live in sub-packages:
//
//   - ai/openai: production model using OpenAI-compatible APIs
//   - ai/mock: deterministic test double
//
// CachedModel wraps any EmbeddingModel with an LRU and, optionally, a
// persistent storage.VectorCache so repeated texts are embedded once.
//
// When the configured model cannot be reached at startup, callers install
// NewUnavailableModel instead. Every call on it fails with
// ErrModelUnavailable, which lets search report the condition per query
// rather than refusing to start.
//
// Public constructors return interface types. Mock constructors return
// concrete types so tests can inject behavior and assert on call counts.
package ai
