package rules

import (
	"regexp"
	"sort"
	"strings"
)

var lApostropheRe = regexp.MustCompile(`l[’']\s*([\p{L}\p{N}_]+)`)

// ApostropheRule expands apostrophe contractions (rule 9): a literal table of
// colloquial contractions, then the productive l’WORD rule with the article
// chosen by a short exception list and the "ends in a -> la" default.
type ApostropheRule struct {
	Dicts *Dictionaries
}

func (ApostropheRule) ID() int            { return 9 }
func (ApostropheRule) Phenomenon() string { return "APOSTROFO" }

func (r ApostropheRule) Apply(text string) (string, []Event) {
	var events []Event
	out := text

	// Longest keys first so "pa'l" wins over "pa'".
	keys := make([]string, 0, len(r.Dicts.Apostrophe))
	for k := range r.Dicts.Apostrophe {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, fo := range keys {
		n := strings.Count(out, fo)
		if n == 0 {
			continue
		}
		fr := r.Dicts.Apostrophe[fo]
		for range n {
			events = append(events, Event{FormOriginal: fo, FormResulting: fr, Action: "NORMA9_APLICADA"})
		}
		out = strings.ReplaceAll(out, fo, fr)
	}

	var b strings.Builder
	last := 0
	for _, loc := range lApostropheRe.FindAllStringSubmatchIndex(out, -1) {
		if isWordRune(runeBefore(out, loc[0])) {
			continue
		}
		w := out[loc[2]:loc[3]]
		fo := out[loc[0]:loc[1]]
		fr := r.article(w) + " " + w
		events = append(events, Event{FormOriginal: fo, FormResulting: fr, Action: "NORMA9_L_APOSTROFO"})
		b.WriteString(out[last:loc[0]])
		b.WriteString(fr)
		last = loc[1]
	}
	b.WriteString(out[last:])

	return squashSpaces(b.String()), events
}

func (r ApostropheRule) article(w string) string {
	low := strings.ToLower(w)
	for _, exc := range r.Dicts.ApostropheElExceptions {
		if low == exc {
			return "el"
		}
	}
	if strings.HasSuffix(low, "a") {
		return "la"
	}
	return "el"
}
