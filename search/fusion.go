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

package search

import "github.com/poiesic/arremate/core"

const (
	// LexicalThreshold is the score a result with a lexical match must exceed.
	LexicalThreshold = 0.10

	// SemanticOnlyThreshold is the score a result without one must exceed.
	SemanticOnlyThreshold = 0.35
)

// Fused is the combined evidence for one catalog item.
type Fused struct {
	Score float64
	Kind  core.MatchKind
}

// Fuse merges semantic scores and lexical matches keyed by catalog index.
// Every index present in either map appears in the result.
func Fuse(semantic map[int]float64, lexical map[int]LexicalMatch) map[int]Fused {
	fused := make(map[int]Fused, len(semantic)+len(lexical))
	for idx, score := range semantic {
		fused[idx] = Fused{Score: score, Kind: core.MatchSemanticOnly}
	}
	for idx, m := range lexical {
		f, ok := fused[idx]
		if !ok {
			f.Kind = core.MatchSemanticOnly
		}
		f.Score += m.Bonus
		if m.Matched {
			f.Kind = core.MatchLexicalAndSemantic
		}
		fused[idx] = f
	}
	return fused
}

// Accept reports whether a fused result clears the threshold for its kind.
func Accept(f Fused) bool {
	if f.Kind == core.MatchLexicalAndSemantic {
		return f.Score > LexicalThreshold
	}
	return f.Score > SemanticOnlyThreshold
}
