package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/arremate/core"
)

const (
	snippetRunes   = 150
	separatorWidth = 60
)

// renderResults prints one block per result with its score, match kind,
// description snippet and link.
func renderResults(w io.Writer, st styles, query string, results []core.RankedResult) {
	fmt.Fprintln(w, st.Header.Render(fmt.Sprintf("Results for %q", query)))
	fmt.Fprintln(w, st.Separator.Render(strings.Repeat("=", separatorWidth)))

	if len(results) == 0 {
		fmt.Fprintln(w, st.Error.Render("No relevant lots found."))
		return
	}

	for i, r := range results {
		kindStyle := st.AIMatch
		if r.Kind == core.MatchLexicalAndSemantic {
			kindStyle = st.TextMatch
		}
		heading := fmt.Sprintf("#%d [Score: %.2f] (%s)", i+1, r.Score, r.Kind)
		fmt.Fprintf(w, "%s Lote: %s\n", kindStyle.Render(heading), r.Item.ID)
		fmt.Fprintf(w, "   %s %s\n", st.Label.Render("desc:"), snippet(r.Item.Description))
		fmt.Fprintf(w, "   %s %s\n", st.Label.Render("link:"), r.Item.SourceURL)
		fmt.Fprintln(w, st.Separator.Render(strings.Repeat("-", separatorWidth)))
	}
	fmt.Fprintf(w, "%d relevant lots found.\n", len(results))
}

// snippet flattens s to one line and cuts it to snippetRunes runes.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= snippetRunes {
		return s
	}
	return string(runes[:snippetRunes]) + "..."
}
