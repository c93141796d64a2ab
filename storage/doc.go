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

// Package storage provides the persistence layer for arremate.
//
// Two kinds of data live here:
//
//   - The search dataset: the processed catalog (JSON) and the vector store
//     (a mus-encoded blob), written together by the process command and
//     loaded read-only by every search.
//   - The VectorCache abstraction for persistent embedding caches, with a
//     BadgerDB implementation in storage/badger.
//
// # Dataset files
//
// The catalog and the vector store are index-aligned: vector i embeds
// catalog item i. Both are written through a temp file and a rename so a
// reader never sees a half-written file. Absent files are reported as
// core.ErrMissingInputData.
//
//	items, err := storage.LoadCatalog("data/dados_processados.json")
//	vectors, err := storage.LoadVectors("data/embeddings.bin")
//
// # Vector cache
//
// Use in tests with in-memory storage:
//
//	cache, backend, err := badger.NewMemoryVectorCache()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Thread Safety
//
// VectorCache implementations must be thread-safe and support
// concurrent access from multiple goroutines. Dataset functions hold
// no state.
package storage
