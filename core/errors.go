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

package core

import "errors"

// Domain errors
var (
	// ErrInvalidLot indicates a raw lot failed validation.
	ErrInvalidLot = errors.New("invalid lot")

	// ErrEmptyLotID indicates the lot identifier is empty.
	ErrEmptyLotID = errors.New("lot id cannot be empty")

	// ErrMissingDescription indicates a catalog record has no description field.
	ErrMissingDescription = errors.New("lot description is missing")

	// ErrMissingInputData indicates the catalog dataset or the vector store
	// has not been produced yet.
	ErrMissingInputData = errors.New("catalog data not found: run the process command first")

	// ErrIndexMisaligned indicates the catalog and vector store lengths differ.
	ErrIndexMisaligned = errors.New("catalog and vector store are not aligned")

	// ErrDimensionMismatch indicates vectors of different lengths were mixed.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
