// Package morph defines the morphological analysis capability consumed by the
// discourse segmentation engine.
//
// The core never depends on a concrete NLP backend: segmentation talks to the
// Parser interface and tests supply deterministic fakes. The default Analyzer
// is dictionary-backed (an optional TSV lexicon) with a closed-class table and
// suffix heuristics filling the gaps, in the spirit of dictionary analyzers
// with predictors for out-of-vocabulary words.
package morph

// Token is one analyzed token with its part of speech and morphological
// features. POS values follow the Universal Dependencies tag set.
type Token struct {
	Surface string
	Lemma   string
	POS     string
	Feats   map[string]string
}

// Has reports whether the token carries the given feature value.
func (t Token) Has(feat, value string) bool {
	return t.Feats[feat] == value
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	return t.POS == "PUNCT"
}

// IsFinite reports whether the token is a finite verb or carries mood/tense.
func (t Token) IsFinite() bool {
	if t.POS != "VERB" && t.POS != "AUX" {
		return false
	}
	if t.Has("VerbForm", "Fin") {
		return true
	}
	return t.Feats["Mood"] != "" || t.Feats["Tense"] != ""
}

// Parser analyzes a text span into tokens.
type Parser interface {
	Analyze(text string) ([]Token, error)
}
