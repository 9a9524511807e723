package morph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeOne(t *testing.T, a *Analyzer, text string) Token {
	t.Helper()
	doc, err := a.Analyze(text)
	require.NoError(t, err)
	require.Len(t, doc, 1)
	return doc[0]
}

func TestAnalyzeToken(t *testing.T) {
	a, err := NewAnalyzer("")
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantPOS  string
		wantFin  bool
		wantForm string
	}{
		{name: "Should tag a closed-class determiner", token: "el", wantPOS: "DET"},
		{name: "Should tag a closed-class preposition", token: "de", wantPOS: "ADP"},
		{name: "Should tag que as subordinating conjunction", token: "que", wantPOS: "SCONJ"},
		{name: "Should tag an irregular copula form as finite", token: "fue", wantPOS: "VERB", wantFin: true},
		{name: "Should tag a regular imperfect as finite", token: "trabajaba", wantPOS: "VERB", wantFin: true},
		{name: "Should tag a regular preterite as finite", token: "trabajaron", wantPOS: "VERB", wantFin: true},
		{name: "Should tag an infinitive as non-finite", token: "trabajar", wantPOS: "VERB", wantForm: "Inf"},
		{name: "Should tag a gerund as non-finite", token: "trabajando", wantPOS: "VERB", wantForm: "Ger"},
		{name: "Should fall back to noun for unknown words", token: "fábrica", wantPOS: "NOUN"},
		{name: "Should read capitalized unknowns as proper nouns", token: "Uviéu", wantPOS: "PROPN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := analyzeOne(t, a, tt.token)
			assert.Equal(t, tt.wantPOS, tok.POS)
			assert.Equal(t, tt.wantFin, tok.IsFinite())
			if tt.wantForm != "" {
				assert.Equal(t, tt.wantForm, tok.Feats["VerbForm"])
			}
		})
	}
}

func TestAnalyzeSentence(t *testing.T) {
	a, err := NewAnalyzer("")
	require.NoError(t, err)

	doc, err := a.Analyze("yo trabajaba en la fábrica, sí")
	require.NoError(t, err)
	require.Len(t, doc, 7)

	assert.Equal(t, "PRON", doc[0].POS)
	assert.True(t, doc[1].IsFinite())
	assert.Equal(t, "PUNCT", doc[5].POS)
	assert.True(t, doc[5].IsPunct())
	assert.Equal(t, "ADV", doc[6].POS)
}

func TestLexiconOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.tsv")
	content := "# surface\tlemma\tpos\tfeats\n" +
		"fíos\thijo\tNOUN\tNumber=Plur\n" +
		"yera\tser\tVERB\tVerbForm=Fin|Mood=Ind|Tense=Imp\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	a, err := NewAnalyzer(path)
	require.NoError(t, err)

	t.Run("Should prefer the lexicon over heuristics", func(t *testing.T) {
		tok := analyzeOne(t, a, "yera")
		assert.Equal(t, "ser", tok.Lemma)
		assert.True(t, tok.IsFinite())
		assert.Equal(t, "Imp", tok.Feats["Tense"])
	})

	t.Run("Should keep the original surface form", func(t *testing.T) {
		tok := analyzeOne(t, a, "Fíos")
		assert.Equal(t, "Fíos", tok.Surface)
		assert.Equal(t, "NOUN", tok.POS)
	})

	t.Run("Should fail on a missing lexicon file", func(t *testing.T) {
		_, err := NewAnalyzer(filepath.Join(t.TempDir(), "missing.tsv"))
		assert.Error(t, err)
	})
}
