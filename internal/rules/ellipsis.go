package rules

import (
	"regexp"
	"strings"
)

var ellipsisRe = regexp.MustCompile(`(?:\.\s*){3,}|…`)

// EllipsisRule collapses ellipses (rule 3): runs of three or more dots, with
// optional interleaved spaces, and the ellipsis glyph. Flanked by word
// characters on both sides the run becomes a single space so words do not
// fuse; everywhere else it is deleted.
type EllipsisRule struct{}

func (EllipsisRule) ID() int            { return 3 }
func (EllipsisRule) Phenomenon() string { return "PUNTOS_SUSPENSIVOS" }

func (EllipsisRule) Apply(text string) (string, []Event) {
	var events []Event
	var b strings.Builder
	last := 0
	for _, loc := range ellipsisRe.FindAllStringIndex(text, -1) {
		b.WriteString(text[last:loc[0]])
		fo := text[loc[0]:loc[1]]
		leftWord := isWordRune(runeBefore(text, loc[0]))
		rightWord := isWordRune(runeAt(text, loc[1]))
		if leftWord && rightWord {
			events = append(events, Event{FormOriginal: fo, FormResulting: " ", Action: "NORMA3_APLICADA"})
			b.WriteString(" ")
		} else {
			events = append(events, Event{FormOriginal: fo, Action: "NORMA3_APLICADA"})
		}
		last = loc[1]
	}
	b.WriteString(text[last:])
	return squashSpaces(b.String()), events
}
