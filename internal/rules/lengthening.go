package rules

import (
	"strings"
)

// LengtheningRule collapses expressive phonetic lengthening (rule 8): runs of
// two or more identical a/i/u vowels and three or more identical e/o vowels
// (legitimate double e/o survives), word-final runs of repeated consonants
// other than ll/rr, and y runs.
type LengtheningRule struct{}

func (LengtheningRule) ID() int            { return 8 }
func (LengtheningRule) Phenomenon() string { return "REPETICION_VOCALICA" }

const (
	vowelsAIU  = "aiuáíúAIUÁÍÚ"
	vowelsEO   = "eoéóEOÉÓ"
	consonants = "bcdfghjklmnpqrstvwxzñBCDFGHJKLMNPQRSTVWXZÑ"
)

func (LengtheningRule) Apply(text string) (string, []Event) {
	var events []Event

	out := collapseRuns(text, func(r rune, n int) bool {
		return strings.ContainsRune(vowelsAIU, r) && n >= 2 ||
			strings.ContainsRune(vowelsEO, r) && n >= 3
	}, &events, "NORMA8_VOCAL")

	out = replaceTokens(out, func(tok string, _, _ int) (string, bool) {
		collapsed, fo, fr := collapseFinalConsonants(tok)
		if !collapsed {
			return tok, false
		}
		events = append(events, Event{FormOriginal: fo, FormResulting: fr, Action: "NORMA8_CONS_FINAL"})
		return fr, true
	})

	out = replaceTokens(out, func(tok string, _, _ int) (string, bool) {
		if len(tok) < 2 || strings.Trim(strings.ToLower(tok), "y") != "" {
			return tok, false
		}
		events = append(events, Event{FormOriginal: tok, FormResulting: "y", Action: "NORMA8_Y"})
		return "y", true
	})

	return squashSpaces(out), events
}

// collapseRuns rewrites every run of an identical rune accepted by pred to a
// single occurrence.
func collapseRuns(text string, pred func(r rune, n int) bool, events *[]Event, action string) string {
	runes := []rune(text)
	var b strings.Builder
	i := 0
	for i < len(runes) {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		n := j - i
		if n > 1 && pred(runes[i], n) {
			*events = append(*events, Event{
				FormOriginal:  string(runes[i:j]),
				FormResulting: string(runes[i]),
				Action:        action,
			})
			b.WriteRune(runes[i])
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}
	return b.String()
}

// collapseFinalConsonants reduces a word-final run of two or more identical
// consonants to one, keeping the legitimate geminates ll and rr.
func collapseFinalConsonants(tok string) (bool, string, string) {
	runes := []rune(tok)
	n := len(runes)
	if n < 2 {
		return false, "", ""
	}
	last := runes[n-1]
	if !strings.ContainsRune(consonants, last) {
		return false, "", ""
	}
	i := n - 1
	for i > 0 && runes[i-1] == last {
		i--
	}
	run := n - i
	if run < 2 {
		return false, "", ""
	}
	lower := []rune(strings.ToLower(string(last)))[0]
	if (lower == 'l' || lower == 'r') && run == 2 {
		return false, "", ""
	}
	return true, tok, string(runes[:i]) + string(last)
}
