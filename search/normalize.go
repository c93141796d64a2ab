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

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds text to lower-case ASCII letters and digits separated by
// single spaces. Accents are removed by compatibility decomposition, so
// "Furadeira Elétrica Nº 2" becomes "furadeira eletrica no 2".
//
// Normalize is idempotent and safe for concurrent use.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// transform.Chain keeps state, so each call builds its own.
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(stripper, text)
	if err != nil {
		stripped = text
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	pendingSpace := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}
