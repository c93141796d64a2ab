package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RawLot is one record as written by the catalog scraper.
type RawLot struct {
	ID          string `json:"lote"`
	AuctionDate string `json:"data"`
	Location    string `json:"local"`
	Description string `json:"texto_completo"`
	SourceURL   string `json:"url"`
	// RawText keeps the description with its original line breaks.
	RawText string `json:"texto_bruto_com_quebras,omitempty"`
}

// CatalogItem is one lot of the processed catalog. Its position in the
// catalog is its identity and matches the position of its embedding.
type CatalogItem struct {
	ID          string `json:"lote"`
	AuctionDate string `json:"data"`
	Location    string `json:"local"`
	Description string `json:"texto_completo"`
	SourceURL   string `json:"url"`
}

// CatalogItemFromLot drops the scraper-only fields of a raw lot.
func CatalogItemFromLot(lot RawLot) CatalogItem {
	return CatalogItem{
		ID:          lot.ID,
		AuctionDate: lot.AuctionDate,
		Location:    lot.Location,
		Description: lot.Description,
		SourceURL:   lot.SourceURL,
	}
}

// EmbeddingText is the text embedded for a lot. Lot id and date are folded in
// so queries on either hit the semantic side too.
func (l RawLot) EmbeddingText() string {
	return "Lote " + l.ID + " Data " + l.AuctionDate + ". " + l.Description
}

// MatchKind records which signals contributed to a ranked result.
type MatchKind int

const (
	// MatchSemanticOnly marks results found only by embedding similarity.
	MatchSemanticOnly MatchKind = iota + 1
	// MatchLexicalAndSemantic marks results with a confirmed lexical match.
	MatchLexicalAndSemantic
)

// String returns the label shown to users and written to exports.
func (k MatchKind) String() string {
	switch k {
	case MatchSemanticOnly:
		return "Conceito IA"
	case MatchLexicalAndSemantic:
		return "Texto + IA"
	default:
		return "desconhecido"
	}
}

// SemanticHit is one entry of a top-K similarity lookup.
type SemanticHit struct {
	Index int
	Score float64
}

// RankedResult is a catalog item with its final relevance score.
type RankedResult struct {
	Index int
	Item  CatalogItem
	Score float64
	Kind  MatchKind
}
