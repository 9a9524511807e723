// Package rules implements the ordered normalization rule pipeline applied to
// interview turn content.
//
// Each rule is a pure value over one turn's content string: it returns the
// rewritten string plus the rewrite events it produced. The engine threads the
// output of each rule into the next in a fixed total order. Phase I covers
// rules 7, 5, 1, 4, 6, 3, 8 and 10; Phase II covers rules 2, 9, 11, 12 and 13
// and only ever runs on Phase I output.
package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Event is one atomic rewrite produced by a rule. Phenomenon is normally left
// empty and filled by the engine from the rule's default; rules that log more
// than one phenomenon set it explicitly.
type Event struct {
	Phenomenon    string
	FormOriginal  string
	FormResulting string
	Action        string
}

// Rule rewrites turn content and reports what it changed.
type Rule interface {
	ID() int
	Phenomenon() string
	Apply(text string) (string, []Event)
}

// TaggedEvent is an Event attributed to the rule that produced it.
type TaggedEvent struct {
	RuleID        int
	Phenomenon    string
	FormOriginal  string
	FormResulting string
	Action        string
}

// Engine applies rules in construction order.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over an ordered rule list.
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Apply runs every rule over the text. deleted is true when the content is
// empty after all rules and trimming; the caller drops the whole turn and logs
// the deletion as a single event.
func (e *Engine) Apply(text string) (out string, events []TaggedEvent, deleted bool) {
	out = text
	for _, r := range e.rules {
		var evs []Event
		out, evs = r.Apply(out)
		for _, ev := range evs {
			phenom := ev.Phenomenon
			if phenom == "" {
				phenom = r.Phenomenon()
			}
			events = append(events, TaggedEvent{
				RuleID:        r.ID(),
				Phenomenon:    phenom,
				FormOriginal:  ev.FormOriginal,
				FormResulting: ev.FormResulting,
				Action:        ev.Action,
			})
		}
	}
	if strings.TrimSpace(out) == "" {
		return "", events, true
	}
	return out, events, false
}

var (
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	wordRunRe    = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	parenBlockRe   = regexp.MustCompile(`\([^)]*\)`)
	bracketBlockRe = regexp.MustCompile(`\[[^\]]*\]`)
	braceBlockRe   = regexp.MustCompile(`\{[^}]*\}`)
)

// squashSpaces collapses space runs opened up by deletions. It does not trim:
// leading and trailing whitespace is left for the caller.
func squashSpaces(s string) string {
	return multiSpaceRe.ReplaceAllString(s, " ")
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || isLetter(r)
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r > 127 && letterRe.MatchString(string(r))
}

var letterRe = regexp.MustCompile(`\p{L}`)

// runeBefore returns the rune ending at byte position pos, or 0 at the start.
func runeBefore(s string, pos int) rune {
	if pos <= 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s[:pos])
	return r
}

// runeAt returns the rune starting at byte position pos, or 0 at the end.
func runeAt(s string, pos int) rune {
	if pos >= len(s) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return r
}

// replaceTokens rewrites every maximal letter/digit/underscore run through fn.
// fn receives the token and its byte offsets in the original text and returns
// the replacement plus whether it changed anything.
func replaceTokens(text string, fn func(tok string, start, end int) (string, bool)) string {
	matches := wordRunRe.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range matches {
		b.WriteString(text[last:loc[0]])
		tok := text[loc[0]:loc[1]]
		if repl, changed := fn(tok, loc[0], loc[1]); changed {
			b.WriteString(repl)
		} else {
			b.WriteString(tok)
		}
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
