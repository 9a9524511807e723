package textspan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind Kind
		want []Span
	}{
		{
			name: "Should find bracket blocks",
			text: "hola [risas] adiós [tos]",
			kind: Bracket,
			want: []Span{{Start: 5, End: 12, Kind: Bracket}, {Start: 20, End: 25, Kind: Bracket}},
		},
		{
			name: "Should find brace blocks",
			text: "a {b} c",
			kind: Brace,
			want: []Span{{Start: 2, End: 5, Kind: Brace}},
		},
		{
			name: "Should return nothing without blocks",
			text: "sin bloques",
			kind: Paren,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Find(tt.text, tt.kind))
		})
	}
}

func TestCovered(t *testing.T) {
	text := "aa [bb] cc"
	spans := Protected(text)

	assert.True(t, Covered(spans, strings.Index(text, "bb")))
	assert.False(t, Covered(spans, 0))
	assert.False(t, Covered(spans, strings.Index(text, "cc")))
}

func TestProtectRoundTrip(t *testing.T) {
	table := map[string]string{
		"no se: no": "no sé no",
		"se:":       "sé",
	}

	t.Run("Should hide literals behind opaque placeholders", func(t *testing.T) {
		protectedText, m := Protect("pues no se: no digo", table)
		assert.NotContains(t, protectedText, "no se: no")
		assert.Contains(t, protectedText, phPrefix)
		require.Len(t, m.Pairs(), 1)
		assert.Equal(t, Pair{Original: "no se: no", Value: "no sé no"}, m.Pairs()[0])
	})

	t.Run("Should restore the exact input", func(t *testing.T) {
		in := "pues no se: no digo y se: acabó"
		protectedText, m := Protect(in, table)
		assert.Equal(t, in, m.Restore(protectedText))
	})

	t.Run("Should apply fixups on RestoreFixed", func(t *testing.T) {
		protectedText, m := Protect("pues no se: no digo", table)
		assert.Equal(t, "pues no sé no digo", m.RestoreFixed(protectedText))
	})

	t.Run("Should prefer the longest key at overlaps", func(t *testing.T) {
		protectedText, m := Protect("no se: no", table)
		assert.Equal(t, "no sé no", m.RestoreFixed(protectedText))
		require.Len(t, m.Pairs(), 1)
	})
}
