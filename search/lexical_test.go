package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLexical(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		item      string
		wantBonus float64
		wantMatch bool
	}{
		{"empty query", "", "mesa de madeira", 0, false},
		{"empty item", "mesa", "", 0, false},
		{"plural found by stem", "furadeiras", "furadeira de impacto", 0.3, true},
		{"plural masculine", "carros", "carro usado", 0.3, true},
		{"all tokens without phrase", "mesa madeira", "mesa de escritorio em madeira", 0.3, true},
		{"phrase and tokens", "mesa de", "mesa de escritorio", 0.7, true},
		{"half the tokens", "mesa xyzw", "mesa antiga", 0.15, true},
		{"short token exact", "tv", "tv led 42", 0.7, true},
		{"short token is not a prefix match", "pc", "pcs antigos", 0.4, false},
		{"long token substring", "casa", "casaco de couro", 0.7, true},
		{"three letter singular", "aves", "ave", 0.3, true},
		{"stem too short", "aves", "av", 0, false},
		{"stem equal to item token", "motores", "motor eletrico", 0.3, true},
		{"item tokens are not stemmed", "caso", "casa amarela", 0, false},
		{"plural of a different word", "mesas", "meses de uso", 0, false},
		{"no overlap", "geladeira", "fogao industrial", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchLexical(tt.query, tt.item)
			assert.InDelta(t, tt.wantBonus, got.Bonus, 1e-9)
			assert.Equal(t, tt.wantMatch, got.Matched)
		})
	}
}

func TestMatchLexical_NormalizedInputs(t *testing.T) {
	got := MatchLexical(Normalize("Furadeiras"), Normalize("Furadeira de Impacto BOSCH"))
	assert.True(t, got.Matched)
	assert.InDelta(t, 0.3, got.Bonus, 1e-9)
}

func TestStem(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"furadeiras", "furadeir", true},
		{"carro", "carr", true},
		{"mesas", "mes", true},
		{"motores", "motor", true},
		{"ave", "", false},
		{"lapis", "lapi", true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := stem(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
