package rules

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed dicts.yaml
var embeddedDicts []byte

// Dictionaries holds every rewrite table the rules consume. Loaded once at
// construction time and treated as immutable afterwards.
type Dictionaries struct {
	Languages              map[string]string `yaml:"languages"`
	MetaBlocks             []string          `yaml:"meta_blocks"`
	Apostrophe             map[string]string `yaml:"apostrophe"`
	ApostropheElExceptions []string          `yaml:"apostrophe_el_exceptions"`
	VariantsBase           map[string]string `yaml:"variants_base"`
	VariantsAsturian       map[string]string `yaml:"variants_asturian"`
	CliticsAsturian        map[string]string `yaml:"clitics_asturian"`
	ExactFixes             map[string]string `yaml:"exact_fixes"`
	FusionFixes            map[string]string `yaml:"fusion_fixes"`

	// langKeys caches the accent-folded language names, longest first.
	langKeys []string
}

// LoadDictionaries returns the embedded dictionaries, or the contents of
// overridePath when given.
func LoadDictionaries(overridePath string) (*Dictionaries, error) {
	data := embeddedDicts
	if overridePath != "" {
		var err error
		data, err = os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("reading dictionaries %s: %w", overridePath, err)
		}
	}
	var d Dictionaries
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing dictionaries: %w", err)
	}
	seen := make(map[string]struct{})
	for k := range d.Languages {
		folded := foldLangKey(k)
		if _, ok := seen[folded]; !ok {
			seen[folded] = struct{}{}
			d.langKeys = append(d.langKeys, folded)
		}
	}
	sort.Slice(d.langKeys, func(i, j int) bool {
		if len(d.langKeys[i]) != len(d.langKeys[j]) {
			return len(d.langKeys[i]) > len(d.langKeys[j])
		}
		return d.langKeys[i] < d.langKeys[j]
	})
	return &d, nil
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stripAccents removes combining marks: "guaraní" -> "guarani".
func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

func foldLangKey(s string) string {
	return strings.ToLower(stripAccents(s))
}

// DetectLanguage reports the canonical placeholder tag when the span content
// names a contact language, matching accent- and case-insensitively.
func (d *Dictionaries) DetectLanguage(content string) (string, bool) {
	folded := foldLangKey(strings.TrimSpace(content))
	for _, key := range d.langKeys {
		if key == "" || !strings.Contains(folded, key) {
			continue
		}
		for name, tag := range d.Languages {
			if foldLangKey(name) == key {
				return tag, true
			}
		}
		return strings.ToUpper(key), true
	}
	return "", false
}

// IsMetaBlock reports whether bracket content is a recognized meta-annotation
// (laughter, cough, silence, noise, transcriber note).
func (d *Dictionaries) IsMetaBlock(content string) bool {
	s := strings.ToLower(strings.TrimSpace(content))
	s = multiSpaceRe.ReplaceAllString(s, " ")
	for _, kw := range d.MetaBlocks {
		if s == kw {
			return true
		}
	}
	if strings.HasPrefix(s, "n. de t.") {
		return true
	}
	for _, kw := range d.MetaBlocks {
		if containsWord(s, kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether kw occurs in s delimited by non-word runes.
func containsWord(s, kw string) bool {
	start := 0
	for {
		i := strings.Index(s[start:], kw)
		if i == -1 {
			return false
		}
		i += start
		before := runeBefore(s, i)
		after := runeAt(s, i+len(kw))
		if (before == 0 || !isWordRune(before)) && (after == 0 || !isWordRune(after)) {
			return true
		}
		start = i + len(kw)
	}
}

// DialectProfile selects the alternate substitution map and clitic handling
// for a document, resolved once from its id.
type DialectProfile struct {
	Asturian bool
}

// ResolveDialect maps a document id to its dialect profile using the
// configured prefix list.
func ResolveDialect(fileID string, asturianPrefixes []string) DialectProfile {
	for _, p := range asturianPrefixes {
		if p != "" && strings.HasPrefix(fileID, p) {
			return DialectProfile{Asturian: true}
		}
	}
	return DialectProfile{}
}
