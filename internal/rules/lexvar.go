package rules

import (
	"regexp"
	"strings"
)

var lexvarRe = regexp.MustCompile(`([\p{L}\p{N}_]+)\s*:?\s*\[([^\]]+)\]`)

// LexVarRule resolves token+bracket lexical variants (rule 4): "token[variant]"
// becomes the variant when the two surface forms are similar enough and the
// bracket content is not a meta-annotation (those are left for rule 6).
type LexVarRule struct {
	Dicts *Dictionaries
}

func (r LexVarRule) ID() int            { return 4 }
func (r LexVarRule) Phenomenon() string { return "VARIANTE_LEXICA_CORCHETES" }

func (r LexVarRule) Apply(text string) (string, []Event) {
	var events []Event
	out := lexvarRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := lexvarRe.FindStringSubmatch(m)
		prev := sub[1]
		brClean := strings.TrimSpace(strings.NewReplacer("<", "", "~", "").Replace(sub[2]))

		if r.Dicts.IsMetaBlock(brClean) {
			return m
		}
		if !similarEnough(prev, brClean) {
			return m
		}
		events = append(events, Event{FormOriginal: m, FormResulting: brClean, Action: "NORMA4_SUSTITUCION"})
		return brClean
	})
	return squashSpaces(out), events
}

// lettersEquiv folds a token for comparison only: lowercase, diacritics
// removed, ll and i collapsed onto y, everything but a-z and ñ dropped.
func lettersEquiv(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	).Replace(s)
	s = strings.ReplaceAll(s, "ll", "y")
	s = strings.ReplaceAll(s, "i", "y")
	var b strings.Builder
	for _, r := range s {
		if ('a' <= r && r <= 'z') || r == 'ñ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// similarEnough is the frozen similarity contract: tokens of up to two letters
// need one shared letter; longer tokens need a shared bigram.
func similarEnough(prevRaw, brRaw string) bool {
	a := lettersEquiv(prevRaw)
	b := lettersEquiv(brRaw)
	if a == "" || b == "" {
		return false
	}
	if len([]rune(a)) <= 2 {
		return strings.ContainsAny(b, a)
	}
	return hasCommonBigram(a, b)
}

func hasCommonBigram(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return false
	}
	bigrams := make(map[string]struct{}, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])] = struct{}{}
	}
	for j := 0; j < len(rb)-1; j++ {
		if _, ok := bigrams[string(rb[j:j+2])]; ok {
			return true
		}
	}
	return false
}
