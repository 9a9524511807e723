package rules

import (
	"strings"
	"unicode"

	"github.com/corpustools/corec/internal/spell"
)

// CapsRule lowers emphatic all-caps words (rule 10). Title-case tokens are
// untouched. All-caps tokens of two to ten letters are lowered only when the
// lowered form is a dictionary word, which protects genuine acronyms; longer
// all-caps tokens are always lowered.
type CapsRule struct {
	Oracle spell.Oracle
}

func (CapsRule) ID() int            { return 10 }
func (CapsRule) Phenomenon() string { return "MAYUSCULAS_ENFATICAS" }

func (r CapsRule) Apply(text string) (string, []Event) {
	var events []Event
	out := replaceTokens(text, func(tok string, _, _ int) (string, bool) {
		if isTitleCase(tok) || !isAllCaps(tok) {
			return tok, false
		}
		low := strings.ToLower(tok)
		if n := len([]rune(tok)); 2 <= n && n <= 10 {
			if !r.Oracle.IsValidWord(low) {
				return tok, false
			}
		}
		events = append(events, Event{FormOriginal: tok, FormResulting: low, Action: "NORMA10_BAJA"})
		return low, true
	})
	return squashSpaces(out), events
}

func isTitleCase(tok string) bool {
	runes := []rune(tok)
	if len(runes) < 2 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	cased := false
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

func isAllCaps(tok string) bool {
	hasAlpha := false
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasAlpha = true
		}
	}
	return hasAlpha
}
