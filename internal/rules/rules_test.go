package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOracle validates exactly the words it was built with.
type fakeOracle struct {
	words map[string]struct{}
}

func newFakeOracle(words ...string) fakeOracle {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = struct{}{}
	}
	return fakeOracle{words: m}
}

func (f fakeOracle) IsValidWord(token string) bool {
	_, ok := f.words[strings.ToLower(token)]
	return ok
}

func testDicts(t *testing.T) *Dictionaries {
	t.Helper()
	d, err := LoadDictionaries("")
	require.NoError(t, err)
	return d
}

func TestLoadDictionaries(t *testing.T) {
	d := testDicts(t)

	assert.NotEmpty(t, d.Languages)
	assert.NotEmpty(t, d.Apostrophe)
	assert.NotEmpty(t, d.VariantsBase)
	assert.NotEmpty(t, d.VariantsAsturian)
	assert.NotEmpty(t, d.ExactFixes)
	assert.Equal(t, "se se", d.FusionFixes["sese"])
}

func TestDetectLanguage(t *testing.T) {
	d := testDicts(t)

	tests := []struct {
		name    string
		content string
		wantTag string
		wantOK  bool
	}{
		{name: "Should match a bare language name", content: "euskera", wantTag: "EUSKERA", wantOK: true},
		{name: "Should match inside a longer span", content: "habla en quechua", wantTag: "QUECHUA", wantOK: true},
		{name: "Should fold case and accents", content: "GUARANI", wantTag: "GUARANÍ", wantOK: true},
		{name: "Should not match unrelated content", content: "risas", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := d.DetectLanguage(tt.content)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}

func TestIsMetaBlock(t *testing.T) {
	d := testDicts(t)

	assert.True(t, d.IsMetaBlock("risas"))
	assert.True(t, d.IsMetaBlock("  RISAS "))
	assert.True(t, d.IsMetaBlock("n. de t. aclaración"))
	assert.True(t, d.IsMetaBlock("ruido de fondo"))
	assert.False(t, d.IsMetaBlock("bueno"))
	assert.False(t, d.IsMetaBlock("arisas"))
}

func TestResolveDialect(t *testing.T) {
	prefixes := []string{"014"}

	assert.True(t, ResolveDialect("014_M31_E1.txt", prefixes).Asturian)
	assert.False(t, ResolveDialect("003_H22_E1.txt", prefixes).Asturian)
	assert.False(t, ResolveDialect("014_M31_E1.txt", nil).Asturian)
}

func TestEngineApply(t *testing.T) {
	oracle := newFakeOracle("bueno", "casa")
	dicts := testDicts(t)
	engine := NewPhaseOne(oracle, dicts)

	t.Run("Should thread text through rules in order", func(t *testing.T) {
		out, events, deleted := engine.Apply("bue- [bueno] eso fue (risas) ya")
		assert.False(t, deleted)
		assert.Equal(t, "bueno eso fue ya", out)

		var actions []string
		for _, ev := range events {
			actions = append(actions, ev.Action)
		}
		assert.Contains(t, actions, "NORMA7_APLICADA")
		assert.Contains(t, actions, "NORMA1_CORRECCION")
	})

	t.Run("Should report deletion when content empties out", func(t *testing.T) {
		out, _, deleted := engine.Apply("(risas) [tos]")
		assert.True(t, deleted)
		assert.Equal(t, "", out)
	})

	t.Run("Should attribute events to their rule", func(t *testing.T) {
		_, events, _ := engine.Apply("dijo AAAH (risas)")
		for _, ev := range events {
			switch ev.Action {
			case "NORMA7_APLICADA":
				assert.Equal(t, 7, ev.RuleID)
				assert.Equal(t, "PARENTESIS", ev.Phenomenon)
			case "NORMA8_VOCAL":
				assert.Equal(t, 8, ev.RuleID)
			}
		}
	})

	t.Run("Should be idempotent on already normalized text", func(t *testing.T) {
		in := "bueno eso fue así y nada más"
		out1, _, _ := engine.Apply(in)
		out2, _, _ := engine.Apply(out1)
		assert.Equal(t, out1, out2)
	})
}

func TestReplaceTokens(t *testing.T) {
	got := replaceTokens("uno dos, tres", func(tok string, start, end int) (string, bool) {
		if tok == "dos" {
			return "2", true
		}
		return tok, false
	})
	assert.Equal(t, "uno 2, tres", got)
}
