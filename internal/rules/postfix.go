package rules

import "sort"

// FusionRule fixes a small closed list of known mis-tokenized fusions
// (rule 12) with literal whole-word substitutions.
type FusionRule struct {
	Dicts *Dictionaries
}

func (FusionRule) ID() int            { return 12 }
func (FusionRule) Phenomenon() string { return "POST_TOKEN_FIX" }

func (r FusionRule) Apply(text string) (string, []Event) {
	var events []Event

	keys := make([]string, 0, len(r.Dicts.FusionFixes))
	for k := range r.Dicts.FusionFixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := text
	for _, fo := range keys {
		fr := r.Dicts.FusionFixes[fo]
		applied := false
		out = replaceTokens(out, func(tok string, _, _ int) (string, bool) {
			if tok != fo {
				return tok, false
			}
			applied = true
			return fr, true
		})
		if applied {
			events = append(events, Event{FormOriginal: fo, FormResulting: fr, Action: "NORMA12_APLICADA"})
		}
	}
	return out, events
}

// AnonymizeRule replaces the standalone token "x" with the anonymization
// placeholder tag (rule 13).
type AnonymizeRule struct{}

func (AnonymizeRule) ID() int            { return 13 }
func (AnonymizeRule) Phenomenon() string { return "ANONIMIZACION" }

const anonPlaceholder = "⟦ANON_X⟧"

func (AnonymizeRule) Apply(text string) (string, []Event) {
	var events []Event
	out := replaceTokens(text, func(tok string, _, _ int) (string, bool) {
		if tok != "x" {
			return tok, false
		}
		events = append(events, Event{FormOriginal: tok, FormResulting: anonPlaceholder, Action: "NORMA13_APLICADA"})
		return anonPlaceholder, true
	})
	return out, events
}
