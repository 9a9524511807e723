package rules

import (
	"regexp"
	"strings"
)

var (
	// Tokens for dictionary lookup may carry internal hyphens ("se-y").
	hyphenTokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+(?:-[\p{L}\p{N}_]+)*`)

	asturianCliticRe = regexp.MustCompile(`([\p{L}\p{N}_]{3,}|da|di)-(y|ys|yos|ylo|ylu|yla|ylos|yles)`)
)

// LexiconRule performs dialectal and colloquial lexical normalization
// (rule 11): token-level substitution from the base map, extended by the
// Asturian map and clitic splitting when the document's dialect profile says
// so. Tokens touching a colon are exempt so rule-2 leftovers stay intact.
type LexiconRule struct {
	Dicts   *Dictionaries
	Profile DialectProfile
}

func (LexiconRule) ID() int            { return 11 }
func (LexiconRule) Phenomenon() string { return "NORMALIZACION_LEXICA" }

func (r LexiconRule) Apply(text string) (string, []Event) {
	var events []Event
	out := text

	if r.Profile.Asturian {
		out = r.splitClitics(out, &events)
	}

	var b strings.Builder
	last := 0
	for _, loc := range hyphenTokenRe.FindAllStringIndex(out, -1) {
		b.WriteString(out[last:loc[0]])
		tok := out[loc[0]:loc[1]]
		b.WriteString(r.rewriteToken(out, tok, loc[0], loc[1], &events))
		last = loc[1]
	}
	b.WriteString(out[last:])

	return squashSpaces(b.String()), events
}

func (r LexiconRule) rewriteToken(text, tok string, start, end int, events *[]Event) string {
	// Colon adjacency marks a rule-2 leftover; leave it alone.
	if runeBefore(text, start) == ':' || runeAt(text, end) == ':' {
		return tok
	}

	if r.Profile.Asturian {
		if fr, ok := r.Dicts.CliticsAsturian[tok]; ok {
			*events = append(*events, Event{FormOriginal: tok, FormResulting: fr, Action: "AST_CLIT_MAP"})
			return fr
		}
	}

	fr, ok := r.Dicts.VariantsBase[tok]
	if !ok {
		fr = tok
	}
	if r.Profile.Asturian {
		if fr2, ok := r.Dicts.VariantsAsturian[tok]; ok {
			fr = fr2
		}
	}
	if fr == tok {
		return tok
	}
	*events = append(*events, Event{FormOriginal: tok, FormResulting: fr, Action: "NORMA11_APLICADA"})
	return fr
}

// splitClitics rewrites attached pronominal clitics ("BASE-y", "BASE-ys", ...)
// into separate words before dictionary lookup.
func (r LexiconRule) splitClitics(text string, events *[]Event) string {
	var b strings.Builder
	last := 0
	for _, loc := range asturianCliticRe.FindAllStringSubmatchIndex(text, -1) {
		if isWordRune(runeBefore(text, loc[0])) || isWordRune(runeAt(text, loc[1])) {
			continue
		}
		base := text[loc[2]:loc[3]]
		clit := text[loc[4]:loc[5]]
		fr := base + " " + clit
		if clit == "y" {
			fr = base + " le"
		}
		*events = append(*events, Event{FormOriginal: text[loc[0]:loc[1]], FormResulting: fr, Action: "AST_GUION_CLIT_SPLIT"})
		b.WriteString(text[last:loc[0]])
		b.WriteString(fr)
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
