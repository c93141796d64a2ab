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

// Package search provides hybrid semantic and lexical search over an
// auction catalog.
//
// The Searcher runs a fixed pipeline for each query:
//   - Semantic retrieval of the 50 items closest to the query embedding
//   - A full lexical scan with accent folding and light Portuguese stemming
//   - Fusion of both signals, thresholding and a cap of 20 results
//
// An Index holds the catalog and its vectors aligned by position and is
// validated when it is built.
package search
