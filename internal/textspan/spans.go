// Package textspan tracks bracket-protected regions and provides the
// placeholder vault used to shield literal fixups from generic rewriting.
package textspan

import "regexp"

// Kind names the bracket family enclosing a protected span.
type Kind int

const (
	Bracket Kind = iota // [...]
	Brace               // {...}
	Paren               // (...)
	Angle               // <...>
)

// Span is a byte range [Start, End) over the text it was computed from.
// Spans are recomputed per rule invocation; earlier passes can remove them.
type Span struct {
	Start int
	End   int
	Kind  Kind
}

var blockRes = map[Kind]*regexp.Regexp{
	Bracket: regexp.MustCompile(`\[[^\]]*\]`),
	Brace:   regexp.MustCompile(`\{[^}]*\}`),
	Paren:   regexp.MustCompile(`\([^)]*\)`),
	Angle:   regexp.MustCompile(`<[^>]*>`),
}

// Find returns the shortest-match spans of one bracket kind.
func Find(text string, kind Kind) []Span {
	var spans []Span
	for _, loc := range blockRes[kind].FindAllStringIndex(text, -1) {
		spans = append(spans, Span{Start: loc[0], End: loc[1], Kind: kind})
	}
	return spans
}

// Protected returns the spans generic substitution rules must not enter:
// bracket and brace regions.
func Protected(text string) []Span {
	spans := Find(text, Bracket)
	return append(spans, Find(text, Brace)...)
}

// Covered reports whether byte position pos lies inside any span.
func Covered(spans []Span, pos int) bool {
	for _, s := range spans {
		if s.Start <= pos && pos < s.End {
			return true
		}
	}
	return false
}
