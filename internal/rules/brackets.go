package rules

import (
	"strings"

	"github.com/corpustools/corec/internal/textspan"
)

// ParenRule removes parenthetical asides (rule 7). Removal iterates until
// stable so nested asides peel off layer by layer; a contact-language name
// inside becomes a placeholder tag instead of vanishing. Stray unmatched
// parentheses are stripped as final cleanup.
type ParenRule struct {
	Dicts *Dictionaries
}

func (r ParenRule) ID() int            { return 7 }
func (r ParenRule) Phenomenon() string { return "PARENTESIS" }

func (r ParenRule) Apply(text string) (string, []Event) {
	var events []Event
	out := text
	for {
		changed := false
		next := parenBlockRe.ReplaceAllStringFunc(out, func(block string) string {
			changed = true
			inner := block[1 : len(block)-1]
			if tag, ok := r.Dicts.DetectLanguage(inner); ok {
				fr := langPlaceholder(tag)
				events = append(events, Event{FormOriginal: block, FormResulting: fr, Action: "NORMA7_L2"})
				return fr
			}
			events = append(events, Event{FormOriginal: block, Action: "NORMA7_APLICADA"})
			return ""
		})
		if !changed {
			break
		}
		out = next
	}
	if strings.ContainsAny(out, "()") {
		out = strings.ReplaceAll(out, "(", "")
		out = strings.ReplaceAll(out, ")", "")
	}
	return squashSpaces(out), events
}

// AngleRule deletes <...> spans that sit outside bracket and brace regions
// (rule 5). A single left-to-right scan keeps a nesting counter per bracket
// kind; an angle span that never closes is left untouched.
type AngleRule struct{}

func (AngleRule) ID() int            { return 5 }
func (AngleRule) Phenomenon() string { return "COMILLAS_ANGULARES" }

func (AngleRule) Apply(text string) (string, []Event) {
	var events []Event
	var out strings.Builder
	sq, cu := 0, 0
	i, n := 0, len(text)

	for i < n {
		ch := text[i]
		switch ch {
		case '[':
			sq++
		case ']':
			if sq > 0 {
				sq--
			}
		case '{':
			cu++
		case '}':
			if cu > 0 {
				cu--
			}
		case '<':
			if sq == 0 && cu == 0 {
				j := i + 1
				for j < n && text[j] != '>' {
					j++
				}
				if j < n {
					events = append(events, Event{FormOriginal: text[i : j+1], Action: "NORMA5_APLICADA"})
					i = j + 1
					continue
				}
			}
		}
		out.WriteByte(ch)
		i++
	}
	return squashSpaces(out.String()), events
}

// BracketRule deletes non-lexical [...] and {...} content unless it names a
// contact language (rule 6), and removes standalone laughter tokens that occur
// outside any bracket or brace region.
type BracketRule struct {
	Dicts *Dictionaries
}

func (r BracketRule) ID() int            { return 6 }
func (r BracketRule) Phenomenon() string { return "NO_LEXICO_CORCHETES_LLAVES_L2" }

func (r BracketRule) Apply(text string) (string, []Event) {
	var events []Event

	protected := textspan.Protected(text)
	out := replaceTokens(text, func(tok string, start, _ int) (string, bool) {
		if textspan.Covered(protected, start) {
			return tok, false
		}
		if !isLaughterToken(tok) {
			return tok, false
		}
		events = append(events, Event{FormOriginal: tok, Action: "NORMA6_RISA_FUERA"})
		return "", true
	})

	handleBlock := func(block string) string {
		inner := block[1 : len(block)-1]
		if tag, ok := r.Dicts.DetectLanguage(inner); ok {
			fr := langPlaceholder(tag)
			events = append(events, Event{FormOriginal: block, FormResulting: fr, Action: "NORMA6_L2"})
			return fr
		}
		events = append(events, Event{FormOriginal: block, Action: "NORMA6_NO_LEXICO"})
		return ""
	}
	out = bracketBlockRe.ReplaceAllStringFunc(out, handleBlock)
	out = braceBlockRe.ReplaceAllStringFunc(out, handleBlock)

	return squashSpaces(out), events
}

// isLaughterToken recognizes laughter-like tokens: a j followed by at least
// two more j's interleaved with vowels ("jajaja", "jejeje", "jjj aja"-style
// runs), at least five characters long.
func isLaughterToken(tok string) bool {
	runes := []rune(strings.ToLower(tok))
	if len(runes) < 5 || runes[0] != 'j' {
		return false
	}
	js, vowels := 0, 0
	for _, r := range runes {
		switch {
		case r == 'j':
			js++
		case strings.ContainsRune("aeiouáéíóúü", r):
			vowels++
		default:
			return false
		}
	}
	return js >= 3 && vowels >= 1
}

func langPlaceholder(tag string) string {
	return "⟦L2_" + tag + "⟧"
}
