package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corpustools/corec/internal/morph"
)

// fakeParser analyzes by table lookup. Unknown words come back as nouns, which
// keeps lookahead windows harmless unless a test wires them otherwise.
type fakeParser struct {
	lexicon map[string]morph.Token
	err     error
}

func (p fakeParser) Analyze(text string) ([]morph.Token, error) {
	if p.err != nil {
		return nil, p.err
	}
	var doc []morph.Token
	for _, w := range strings.Fields(text) {
		key := strings.ToLower(strings.Trim(w, ".,;!?"))
		if key == "" {
			continue
		}
		tok, ok := p.lexicon[key]
		if !ok {
			tok = morph.Token{Lemma: key, POS: "NOUN"}
		}
		tok.Surface = w
		doc = append(doc, tok)
	}
	return doc, nil
}

func finVerb(lemma string) morph.Token {
	return morph.Token{Lemma: lemma, POS: "VERB", Feats: map[string]string{"VerbForm": "Fin"}}
}

func infVerb(lemma string) morph.Token {
	return morph.Token{Lemma: lemma, POS: "VERB", Feats: map[string]string{"VerbForm": "Inf"}}
}

func testParser() fakeParser {
	return fakeParser{lexicon: map[string]morph.Token{
		"trabajaba": finVerb("trabajar"),
		"vino":      finVerb("venir"),
		"estaba":    finVerb("estar"),
		"es":        {Lemma: "ser", POS: "AUX", Feats: map[string]string{"VerbForm": "Fin"}},
		"vivir":     infVerb("vivir"),
		"que":       {Lemma: "que", POS: "SCONJ"},
		"cuyo":      {Lemma: "cuyo", POS: "PRON"},
		"donde":     {Lemma: "donde", POS: "ADV"},
		"de":        {Lemma: "de", POS: "ADP"},
		"para":      {Lemma: "para", POS: "ADP"},
		"la":        {Lemma: "el", POS: "DET"},
		"guapa":     {Lemma: "guapo", POS: "ADJ"},
	}}
}

func TestNormalizeSlashes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Should space out a single slash", in: "hola/adiós", want: "hola / adiós"},
		{name: "Should collapse double and triple slashes", in: "uno // dos /// tres", want: "uno / dos / tres"},
		{name: "Should squash whitespace and trim", in: "  hola   / adiós  ", want: "hola / adiós"},
		{name: "Should pass slash-free text through", in: "sin marcas", want: "sin marcas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSlashes(tt.in))
		})
	}
}

func TestAnalysisText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Should drop embedded speaker tags", in: "bueno E1: sí claro", want: "bueno sí claro"},
		{name: "Should drop tilde remains and colons", in: "bueno <~resto> fu- eso: sí", want: "bueno fu eso sí"},
		{name: "Should strip leading dots", in: ". . hola", want: "hola"},
		{name: "Should strip a short capital prefix", in: "TL la casa", want: "la casa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysisText(tt.in))
		})
	}
}

func TestSplitTurn(t *testing.T) {
	tests := []struct {
		name      string
		minTokens int
		in        string
		want      []string
	}{
		{
			name:      "Should close at slashes when the sentence carries a finite verb",
			minTokens: 3,
			in:        "yo trabajaba en la casa / luego vino más gente / y ya",
			want:      []string{"yo trabajaba en la casa", "luego vino más gente", "y ya"},
		},
		{
			name:      "Should absorb the marker after a connective",
			minTokens: 3,
			in:        "yo trabajaba mucho pero / ya no",
			want:      []string{"yo trabajaba mucho pero ya no"},
		},
		{
			name:      "Should treat trailing punctuation as transparent for connectives",
			minTokens: 3,
			in:        "yo trabajaba con aquello, pero... / ya no",
			want:      []string{"yo trabajaba con aquello, pero... ya no"},
		},
		{
			name:      "Should close on an evaluative formula without a verb",
			minTokens: 3,
			in:        "bueno eso fue todo aquello / y nada",
			want:      []string{"bueno eso fue todo aquello", "y nada"},
		},
		{
			name:      "Should keep short sentences open at the default length",
			minTokens: 0,
			in:        "yo trabajaba en la casa / y ya",
			want:      []string{"yo trabajaba en la casa y ya"},
		},
		{
			name:      "Should stay open before a preposition with infinitive",
			minTokens: 3,
			in:        "yo trabajaba en la casa / para vivir mejor allí",
			want:      []string{"yo trabajaba en la casa para vivir mejor allí"},
		},
		{
			name:      "Should stay open before a relative opening",
			minTokens: 3,
			in:        "yo trabajaba en la casa / que estaba lejos",
			want:      []string{"yo trabajaba en la casa que estaba lejos"},
		},
		{
			name:      "Should not count cuyo after a preposition as blocking",
			minTokens: 3,
			in:        "yo trabajaba en la casa / de cuyo dueño hablamos",
			want:      []string{"yo trabajaba en la casa", "de cuyo dueño hablamos"},
		},
		{
			name:      "Should stay open when a copula leaves its predicate to the right",
			minTokens: 3,
			in:        "la muchacha es muy guapa / guapa y lista",
			want:      []string{"la muchacha es muy guapa guapa y lista"},
		},
		{
			name:      "Should close after an evaluative formula and buffer the causal tail",
			minTokens: 3,
			in:        "bueno eso fue / porque sí mismo",
			want:      []string{"bueno eso fue", "porque sí mismo"},
		},
		{
			name:      "Should flush the remainder at turn end",
			minTokens: 3,
			in:        "yo trabajaba en la casa / sin más",
			want:      []string{"yo trabajaba en la casa", "sin más"},
		},
		{
			name:      "Should clean doubled commas in the output",
			minTokens: 3,
			in:        "sí , , bueno vale",
			want:      []string{"sí, bueno vale"},
		},
		{
			name:      "Should return nothing for blank content",
			minTokens: 3,
			in:        "   ",
			want:      nil,
		},
		{
			name:      "Should return nothing for slash-only content",
			minTokens: 3,
			in:        "/ //",
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := New(testParser(), tt.minTokens)
			assert.Equal(t, tt.want, seg.SplitTurn(tt.in))
		})
	}
}

func TestSplitTurnParserFailure(t *testing.T) {
	seg := New(fakeParser{err: errors.New("model unavailable")}, 3)
	got := seg.SplitTurn("yo trabajaba en la casa / y luego más")
	assert.Equal(t, []string{"yo trabajaba en la casa y luego más"}, got)
}
