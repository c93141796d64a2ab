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

package ai

import (
	"context"
	"fmt"
)

// unavailableModel is the EmbeddingModel used when no real model could be
// set up. Every call fails with ErrModelUnavailable.
type unavailableModel struct {
	name   string
	reason error
}

var _ EmbeddingModel = (*unavailableModel)(nil)

// NewUnavailableModel returns a model whose every call fails with
// ErrModelUnavailable, carrying reason as the cause when it is not nil.
func NewUnavailableModel(name string, reason error) EmbeddingModel {
	return &unavailableModel{name: name, reason: reason}
}

func (m *unavailableModel) err() error {
	if m.reason == nil {
		return ErrModelUnavailable
	}
	return fmt.Errorf("%w: %w", ErrModelUnavailable, m.reason)
}

func (m *unavailableModel) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, m.err()
}

func (m *unavailableModel) EmbedTexts(_ context.Context, _ []string) ([][]float32, error) {
	return nil, m.err()
}

func (m *unavailableModel) ModelName() string {
	return m.name
}

func (m *unavailableModel) Close() error {
	return nil
}
