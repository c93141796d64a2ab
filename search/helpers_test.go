package search

import (
	"context"
	"math"

	"github.com/poiesic/arremate/ai/mock"
	"github.com/poiesic/arremate/core"
)

// queryAxis is the query embedding used with unitAt.
var queryAxis = []float32{1, 0}

// unitAt returns a unit vector whose cosine similarity with queryAxis is score.
func unitAt(score float64) []float32 {
	return []float32{float32(score), float32(math.Sqrt(1 - score*score))}
}

// fixedModel returns a mock that embeds every query as vec.
func fixedModel(vec []float32) *mock.MockEmbedder {
	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return vec, nil
	}
	return m
}

func items(descriptions ...string) []core.CatalogItem {
	out := make([]core.CatalogItem, len(descriptions))
	for i, d := range descriptions {
		out[i] = core.CatalogItem{
			ID:          string(rune('A'+i%26)) + string(rune('0'+i/26)),
			AuctionDate: "01/02/2025",
			Location:    "Leiloeiro Central",
			Description: d,
			SourceURL:   "https://example.com/lote",
		}
	}
	return out
}
