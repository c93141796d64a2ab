package search

import (
	"log/slog"

	"github.com/poiesic/arremate/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterSemanticSearch(hits []core.SemanticHit)
	AfterLexicalScan(matches map[int]LexicalMatch)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                           {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.SemanticHit) {}
func (n *noopMonitor) AfterLexicalScan(_ map[int]LexicalMatch)  {}
func (n *noopMonitor) Finish(_ []core.RankedResult)             {}

// LogMonitor writes each search stage to a logger at debug level.
type LogMonitor struct {
	logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger.With("component", "search-monitor")}
}

func (m *LogMonitor) Start(query string) {
	m.logger.Debug("search started", "query", query)
}

func (m *LogMonitor) AfterSemanticSearch(hits []core.SemanticHit) {
	best := 0.0
	if len(hits) > 0 {
		best = hits[0].Score
	}
	m.logger.Debug("semantic candidates", "count", len(hits), "best", best)
}

func (m *LogMonitor) AfterLexicalScan(matches map[int]LexicalMatch) {
	confirmed := 0
	for _, lm := range matches {
		if lm.Matched {
			confirmed++
		}
	}
	m.logger.Debug("lexical scan", "withBonus", len(matches), "matched", confirmed)
}

func (m *LogMonitor) Finish(results []core.RankedResult) {
	for i, r := range results {
		m.logger.Debug("result", "rank", i+1, "lot", r.Item.ID, "score", r.Score, "kind", r.Kind.String())
	}
}
