package rules

import (
	"regexp"
	"strings"

	"github.com/corpustools/corec/internal/spell"
	"github.com/corpustools/corec/internal/textspan"
)

var (
	joinRe         = regexp.MustCompile(`([\p{L}\p{N}_]+):(\s+)([\p{L}\p{N}_]+)`)
	compactColonRe = regexp.MustCompile(`([\p{L}\p{N}_]+):([\p{L}\p{N}_]+)`)
	formaOrigRe    = regexp.MustCompile(`(?:[\p{L}\p{N}_]+:\s*[\p{L}\p{N}_]+|[\p{L}\p{N}_]+:[\p{L}\p{N}_]+|:[\p{L}\p{N}_]+|[\p{L}\p{N}_]+:)`)
	leadingDotNum  = regexp.MustCompile(`^\s*\.\s*[0-9]+\.\s*`)
	yGuardRe       = regexp.MustCompile(`y\s*:\s*`)
	aGuardRe       = regexp.MustCompile(`a\s*:\s*`)
)

// Join decision tables. These are the frozen contract of the colon heuristic:
// their exact boundary behavior is what downstream analyses depend on, so they
// are preserved verbatim, quirks included.
var (
	rightFrags = map[string]bool{
		"z": true, "s": true, "r": true,
		"ja": true, "sa": true, "llo": true, "mos": true, "tas": true,
		"mbos": true,
		"rbas": true, "nes": true, "lla": true, "cas": true, "rse": true,
		"ndo": true,
		"da": true, "rgos": true,
	}
	stopLeft = map[string]bool{
		"y":   true,
		"que": true, "pero": true, "hasta": true, "de": true, "en": true,
		"la": true, "lo": true, "un": true, "una": true,
		"eh": true, "ya": true, "si": true, "no": true, "por": true,
		"con": true, "como": true,
	}
	noJoinRight1  = map[string]bool{"a": true, "y": true, "e": true, "o": true, "u": true}
	yesJoinRight1 = map[string]bool{"s": true, "r": true, "z": true}
	allow1x1      = map[[2]string]bool{{"e", "s"}: true, {"i", "r"}: true}
)

// StripLeadingResidue removes the ". TL" marker and ". N." enumeration residue
// some transcripts carry at the start of turn content. Runs before rule 2.
func StripLeadingResidue(rest string) string {
	if strings.HasPrefix(rest, ". TL") {
		rest = strings.TrimLeft(rest[4:], " \t")
	} else {
		rest = strings.TrimLeft(rest, " \t")
	}
	return leadingDotNum.ReplaceAllString(rest, "")
}

// BuildObservedWords extracts the lowercase vocabulary of a text the way the
// colon rule will see it: mid-word colons read as separators, stray adjacent
// colons dropped.
func BuildObservedWords(text string) map[string]struct{} {
	tmp := colonAsSpace(text)
	tmp = removeAdjacentColons(tmp)
	vocab := make(map[string]struct{})
	for _, w := range wordRunRe.FindAllString(tmp, -1) {
		vocab[strings.ToLower(w)] = struct{}{}
	}
	return vocab
}

// ColonRule resolves stray mid-word colons left by transcription conventions
// (rule 2). A curated exact-match table is shielded through the placeholder
// vault before the generic join/split heuristics run, then restored with its
// fixups applied.
type ColonRule struct {
	Oracle   spell.Oracle
	Observed map[string]struct{}
	Dicts    *Dictionaries
}

func (ColonRule) ID() int            { return 2 }
func (ColonRule) Phenomenon() string { return "ALARGAMIENTO_DOS_PUNTOS" }

func (r ColonRule) Apply(text string) (string, []Event) {
	var events []Event

	// Provenance is computed over the incoming text, one triple per
	// colon-bearing context, whether or not the heuristic changes it.
	for _, m := range formaOrigRe.FindAllString(text, -1) {
		fo := strings.TrimSpace(m)
		fr := strings.TrimSpace(r.rewrite(fo))
		if fr == "" {
			continue
		}
		action := "NORMA2_NO_APLICADA"
		if fr != fo {
			action = "NORMA2_APLICADA"
		}
		events = append(events, Event{FormOriginal: fo, FormResulting: fr, Action: action})
	}

	protected, mapping := textspan.Protect(text, r.Dicts.ExactFixes)
	out := r.rewrite(protected)
	out = mapping.RestoreFixed(out)
	for _, p := range mapping.Pairs() {
		events = append(events, Event{
			Phenomenon:    "LISTA_EXACTA",
			FormOriginal:  p.Original,
			FormResulting: p.Value,
			Action:        "LISTA_EXACTA_APLICADA",
		})
	}
	return out, events
}

// rewrite applies the join heuristics to one span of text.
func (r ColonRule) rewrite(ud string) string {
	// Spaced pass: "word: word" joins only when the decision table says so.
	var parts []string
	last := 0
	for _, loc := range joinRe.FindAllStringSubmatchIndex(ud, -1) {
		a := ud[loc[2]:loc[3]]
		b := ud[loc[6]:loc[7]]
		if r.shouldJoinSpaced(a, b) {
			parts = append(parts, ud[last:loc[0]], a+b)
			last = loc[1]
		}
	}
	parts = append(parts, ud[last:])
	out := strings.Join(parts, "")

	// Compact pass: "word:word".
	out = compactColonRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := compactColonRe.FindStringSubmatch(m)
		a, b := sub[1], sub[2]
		al, bl := strings.ToLower(a), strings.ToLower(b)
		ab := strings.ToLower(a + b)

		switch {
		case al == "y" && bl == "y":
			return a
		case al == "y":
			return a + " " + b
		case allow1x1[[2]string{al, bl}]:
			return a + b
		case r.Oracle.IsValidWord(ab) || r.observed(ab):
			return a + b
		default:
			return a + " " + b
		}
	})

	// Keep conjunction "y" and preposition "a" from fusing with what follows
	// once the colon goes away.
	out = guardColon(out, yGuardRe)
	out = guardColon(out, aGuardRe)

	return removeAdjacentColons(out)
}

func (r ColonRule) observed(w string) bool {
	_, ok := r.Observed[w]
	return ok
}

// shouldJoinSpaced decides "a: b" -> "ab" vs "a b".
func (r ColonRule) shouldJoinSpaced(a, b string) bool {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	ab := strings.ToLower(a + b)

	if allow1x1[[2]string{al, bl}] {
		return true
	}
	if stopLeft[al] {
		return false
	}
	if r.Oracle.IsValidWord(ab) {
		return true
	}
	lenA, lenB := len([]rune(a)), len([]rune(b))
	if lenA == 1 {
		return strings.Contains("aeiou", al) && lenB >= 3 && r.observed(ab)
	}
	if lenB == 1 {
		if noJoinRight1[bl] {
			return false
		}
		return yesJoinRight1[bl]
	}
	if rightFrags[bl] {
		if bl == "da" {
			return lenA >= 4
		}
		if bl == "ndo" {
			return lenA >= 3
		}
		return true
	}
	return r.observed(ab)
}

// guardColon rewrites "w :" sequences to "w " when a word follows, for the
// single-letter-risk words the guard regexes cover.
func guardColon(text string, re *regexp.Regexp) string {
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if isWordRune(runeBefore(text, loc[0])) || !isWordRune(runeAt(text, loc[1])) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(text[loc[0]:loc[0]+1] + " ")
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// colonAsSpace turns a colon flanked by word characters into a space.
func colonAsSpace(text string) string {
	var b strings.Builder
	for i, r := range text {
		if r == ':' && isWordRune(runeBefore(text, i)) && isWordRune(runeAt(text, i+1)) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// removeAdjacentColons drops every colon touching a word character on either
// side.
func removeAdjacentColons(text string) string {
	var b strings.Builder
	for i, r := range text {
		if r == ':' && (isWordRune(runeBefore(text, i)) || isWordRune(runeAt(text, i+1))) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
