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

package ingestion

import "errors"

var (
	// ErrModelRequired is returned when an embedding model is not provided.
	ErrModelRequired = errors.New("embedding model required")

	// ErrRawDataNotFound is returned when the scraper output does not exist.
	ErrRawDataNotFound = errors.New("raw lot data not found: run the scraper first")

	// ErrNoLots is returned when the scraper output holds no usable lots.
	ErrNoLots = errors.New("no lots to process")

	// ErrEmbeddingCountMismatch is returned when the model answers a batch
	// with a different number of vectors than texts.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match batch size")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
