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

import "strings"

const (
	// PhraseBonus is added when the whole query occurs in the item text.
	PhraseBonus = 0.4

	// TokenWeight scales the fraction of query tokens found in the item.
	TokenWeight = 0.3

	// Tokens shorter than this only match an identical item token.
	shortTokenLen = 4

	// Stems shorter than this are discarded.
	minStemLen = 3
)

// LexicalMatch is the lexical contribution of one item to a query.
type LexicalMatch struct {
	Bonus   float64
	Matched bool
}

// MatchLexical scores an item against a query. Both must already be
// normalized with Normalize.
//
// Short query tokens must equal an item token. Longer ones match when they
// occur anywhere in the item text, when the token without its plural "s" is
// an item token, or when its stem is an item token. Item tokens are never
// stemmed, so "furadeiras" finds "furadeira" but "caso" does not find "casa".
func MatchLexical(query, item string) LexicalMatch {
	queryTokens := strings.Fields(query)
	if len(queryTokens) == 0 {
		return LexicalMatch{}
	}

	itemTokens := strings.Fields(item)
	tokens := make(map[string]struct{}, len(itemTokens))
	for _, tok := range itemTokens {
		tokens[tok] = struct{}{}
	}

	matched := 0
	for _, qt := range queryTokens {
		if len(qt) < shortTokenLen {
			if _, ok := tokens[qt]; ok {
				matched++
			}
			continue
		}

		if strings.Contains(item, qt) {
			matched++
			continue
		}

		if singular, ok := strings.CutSuffix(qt, "s"); ok && len(singular) >= minStemLen {
			if _, ok := tokens[singular]; ok {
				matched++
				continue
			}
		}

		s, ok := stem(qt)
		if !ok {
			continue
		}
		if _, ok := tokens[s]; ok {
			matched++
		}
	}

	var m LexicalMatch
	if strings.Contains(item, query) {
		m.Bonus += PhraseBonus
	}
	if matched > 0 {
		m.Bonus += float64(matched) / float64(len(queryTokens)) * TokenWeight
		m.Matched = true
	}
	return m
}

// stem strips one plural "s" and then one final vowel among o, a and e.
func stem(token string) (string, bool) {
	s := strings.TrimSuffix(token, "s")
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'o', 'a', 'e':
			s = s[:n-1]
		}
	}
	if len(s) < minStemLen {
		return "", false
	}
	return s, true
}
