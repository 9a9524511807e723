// Package segment splits normalized speaker turns into discourse utterances.
//
// A turn is scanned token by token. Slash markers are candidate boundaries;
// at each one the buffered sentence is scored on five features and the marker
// either closes the sentence or is absorbed. The morphological analysis
// behind the verb features goes through morph.Parser, so tests can run with a
// deterministic fake.
package segment

import (
	"regexp"
	"strings"

	"github.com/corpustools/corec/internal/morph"
)

// DefaultMinTokens is the minimum sentence length, in tokens, for a slash
// marker to close a sentence.
const DefaultMinTokens = 8

// connectives that keep a sentence open when they end it.
var connectives = []string{
	"y", "pero", "porque", "entonces", "por", "por ejemplo",
	"ya sea", "así", "aunque", "sino", "que",
}

var (
	slashRe      = regexp.MustCompile(`\s*/{1,3}\s*`)
	spaceRe      = regexp.MustCompile(`\s+`)
	trailPunctRe = regexp.MustCompile(`[.,;:¡!¿?\)\]\}]+$`)
	doubleComma  = regexp.MustCompile(`\s*,\s*,\s*`)

	// Evaluative closure formulas. Accented letters rule out \b here, so the
	// boundaries are spelled out.
	closureRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(?:eso fue|eso sería|me di cuenta|me sorprendió|por eso|no sé)(?:$|[^\p{L}\p{N}_])`)

	speakerTagRe  = regexp.MustCompile(`\b[A-Z]+\d*:\s*`)
	tildeBlockRe  = regexp.MustCompile(`<~.*?>`)
	leadingDotsRe = regexp.MustCompile(`^[.\s]+`)
	leadingCapsRe = regexp.MustCompile(`^[A-Z]{1,3}\s+`)
	colonHyphenRe = regexp.MustCompile(`[:\-]`)
)

// NormalizeSlashes collapses runs of one to three slashes into a single
// spaced marker and squashes whitespace.
func NormalizeSlashes(text string) string {
	text = slashRe.ReplaceAllString(text, " / ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// analysisText strips transcript residue that would confuse the analyzer:
// embedded speaker tags, <~...> remains, leading dots or stray capital
// prefixes, and colons and hyphens.
func analysisText(text string) string {
	text = speakerTagRe.ReplaceAllString(text, " ")
	text = tildeBlockRe.ReplaceAllString(text, " ")
	text = leadingDotsRe.ReplaceAllString(text, "")
	text = leadingCapsRe.ReplaceAllString(text, "")
	text = colonHyphenRe.ReplaceAllString(text, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// Segmenter applies the boundary decision to turn content.
type Segmenter struct {
	parser    morph.Parser
	minTokens int
}

// New returns a Segmenter over the given parser. minTokens values below one
// fall back to DefaultMinTokens.
func New(parser morph.Parser, minTokens int) *Segmenter {
	if minTokens < 1 {
		minTokens = DefaultMinTokens
	}
	return &Segmenter{parser: parser, minTokens: minTokens}
}

// SplitTurn segments one turn's content into utterances. A slash closes the
// buffered sentence iff ((finite verb or closure formula) and not ending in a
// connective and long enough) and the lookahead does not block; otherwise the
// marker is absorbed. Whatever remains when the tokens run out is flushed as
// the final utterance.
func (s *Segmenter) SplitTurn(content string) []string {
	t := NormalizeSlashes(content)
	if t == "" {
		return nil
	}

	toks := strings.Split(t, " ")
	var sentences []string
	var current []string

	for i, tok := range toks {
		if tok != "/" {
			current = append(current, tok)
			continue
		}
		sent := strings.TrimSpace(strings.Join(current, " "))
		if sent == "" {
			continue
		}

		x1 := s.hasFiniteVerb(sent)
		x2 := !endsInConnective(sent)
		x3 := len(strings.Fields(sent)) >= s.minTokens
		x4 := closureRe.MatchString(sent)

		if (x1 || x4) && x2 && x3 && !s.blocked(sent, toks, i+1) {
			sentences = append(sentences, sent)
			current = current[:0]
		}
	}

	if sent := strings.TrimSpace(strings.Join(current, " ")); sent != "" {
		sentences = append(sentences, sent)
	}

	out := make([]string, 0, len(sentences))
	for _, sent := range sentences {
		sent = doubleComma.ReplaceAllString(sent, ", ")
		sent = strings.TrimSpace(spaceRe.ReplaceAllString(sent, " "))
		if sent != "" {
			out = append(out, sent)
		}
	}
	return out
}

// hasFiniteVerb is feature x1. A parser failure counts as no finite verb, so
// an unparseable sentence stays buffered and is emitted whole at turn end.
func (s *Segmenter) hasFiniteVerb(sent string) bool {
	doc, err := s.parser.Analyze(analysisText(sent))
	if err != nil {
		return false
	}
	for _, tok := range doc {
		if tok.IsFinite() {
			return true
		}
	}
	return false
}

func endsInConnective(sent string) bool {
	t := strings.TrimSpace(strings.ToLower(sent))
	t = trailPunctRe.ReplaceAllString(t, "")
	for _, c := range connectives {
		if strings.HasSuffix(t, c) {
			return true
		}
	}
	return false
}

const maxLookahead = 6

// blocked is feature x5: a lookahead of up to six tokens past the marker,
// skipping further slashes, that signals the sentence continues to the right.
func (s *Segmenter) blocked(left string, toks []string, next int) bool {
	j := next
	for j < len(toks) && toks[j] == "/" {
		j++
	}
	if j >= len(toks) {
		return false
	}
	end := j + maxLookahead
	if end > len(toks) {
		end = len(toks)
	}
	window := strings.ToLower(strings.Join(toks[j:end], " "))

	doc, err := s.parser.Analyze(analysisText(window))
	if err != nil || len(doc) == 0 {
		return false
	}

	// Preposition opening a purpose or complement clause with an infinitive.
	first := strings.ToLower(doc[0].Surface)
	if first == "a" || first == "de" || first == "para" {
		for _, tok := range doc {
			if (tok.POS == "VERB" || tok.POS == "AUX") && tok.Has("VerbForm", "Inf") {
				return true
			}
		}
	}

	// Relative or completive openings.
	if isRelativeLemma(doc[0].Lemma) && relativePOS(doc[0].POS) {
		return true
	}
	if len(doc) > 1 {
		if (doc[0].POS == "DET" || doc[0].POS == "PRON") && doc[1].Lemma == "que" {
			return true
		}
		if doc[0].POS == "ADP" && isRelativeLemma(doc[1].Lemma) && doc[1].Lemma != "cuyo" && relativePOS(doc[1].POS) {
			return true
		}
	}

	// Copula on the left with a predicate continuing on the right.
	leftDoc, err := s.parser.Analyze(analysisText(left))
	if err != nil {
		return false
	}
	var lastVerb *morph.Token
	for k := len(leftDoc) - 1; k >= 0; k-- {
		tok := leftDoc[k]
		if tok.IsPunct() {
			continue
		}
		if tok.POS == "VERB" || tok.POS == "AUX" {
			lastVerb = &leftDoc[k]
			break
		}
	}
	if lastVerb != nil && isCopula(lastVerb.Lemma) {
		for _, tok := range doc {
			if tok.IsPunct() {
				continue
			}
			if tok.POS == "ADJ" || tok.POS == "NOUN" || tok.POS == "PROPN" {
				return true
			}
			break
		}
	}

	return false
}

func isRelativeLemma(lemma string) bool {
	switch lemma {
	case "que", "quien", "cual", "cuyo", "donde":
		return true
	}
	return false
}

func relativePOS(pos string) bool {
	return pos == "PRON" || pos == "SCONJ" || pos == "ADV"
}

func isCopula(lemma string) bool {
	return lemma == "ser" || lemma == "estar" || lemma == "parecer"
}
