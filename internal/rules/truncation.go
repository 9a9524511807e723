package rules

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	truncCorrRe  = regexp.MustCompile(`([\p{L}\p{N}_]+)[-–—]\s*\[([^\]]+)\]`)
	truncAloneRe = regexp.MustCompile(`[\p{L}\p{N}_]+[-–—]`)
)

// TruncationRule resolves word-truncation markers (rule 1): "X- [Y]" keeps
// the bracketed correction Y; a bare trailing "X-" with no correction is
// deleted entirely.
type TruncationRule struct{}

func (TruncationRule) ID() int            { return 1 }
func (TruncationRule) Phenomenon() string { return "TRUNCAMIENTO_GUION" }

func (TruncationRule) Apply(text string) (string, []Event) {
	var events []Event

	out := truncCorrRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := truncCorrRe.FindStringSubmatch(m)
		y := strings.TrimSpace(sub[2])
		events = append(events, Event{FormOriginal: m, FormResulting: y, Action: "NORMA1_CORRECCION"})
		return y
	})

	// Bare X-: removed only when followed by a break (space, end, sentence
	// punctuation) and not by a bracketed correction.
	var b strings.Builder
	last := 0
	for _, loc := range truncAloneRe.FindAllStringIndex(out, -1) {
		if !bareTruncation(out, loc[1]) {
			continue
		}
		b.WriteString(out[last:loc[0]])
		events = append(events, Event{FormOriginal: out[loc[0]:loc[1]], Action: "NORMA1_TRUNC_ELIMINADA"})
		last = loc[1]
	}
	b.WriteString(out[last:])

	return squashSpaces(b.String()), events
}

func bareTruncation(text string, end int) bool {
	next := runeAt(text, end)
	if next != 0 && !unicode.IsSpace(next) && !strings.ContainsRune(".,;:!?¿¡", next) {
		return false
	}
	// A correction bracket after optional spaces keeps the marker for the
	// correction pass.
	rest := strings.TrimLeft(text[end:], " \t")
	return !strings.HasPrefix(rest, "[")
}
