// Package turns parses speaker-tagged transcript lines into turns.
//
// Two tag grammars coexist in the corpus: the strict one used by the
// normalization stages (one labelled line per utterance, colon required) and the
// looser one used by the segmentation stage, where several speakers can share a
// tag ("E1/I2") and the colon is optional.
package turns

import (
	"regexp"
	"strings"
)

// Role identifies which side of the interview a speaker is on.
type Role string

const (
	Interviewer Role = "ENTREVISTADOR"
	Informant   Role = "INFORMANTE"
)

// Turn is one speaker's contribution. Label round-trips byte-identical through
// every downstream stage.
type Turn struct {
	Label   string
	Role    Role
	Content string
}

var (
	// Strict grammar: INF/ENT/E/I followed by digits or dotted alnum suffixes,
	// then a mandatory colon.
	labelRe = regexp.MustCompile(`^\s*(?P<label>(?:INF|ENT|E|I)(?:[0-9]+|(?:\.[A-Za-z0-9]+))*)\s*:\s*(?P<rest>.*)$`)

	// Loose grammar: tag sequences like "E1", "I2", "E1/I1", optional ":" or "=".
	tagTurnRe = regexp.MustCompile(`^\s*((?:INF|ENT|E|I|C)(?:\d+)?(?:/(?:INF|ENT|E|I|C)(?:\d+)?)*)\s*[:=]?\s*(.*)$`)
)

// RoleFromLabel derives the speaker role from the label's leading letters.
func RoleFromLabel(label string) Role {
	lab := strings.ToUpper(label)
	if strings.HasPrefix(lab, "E") || strings.HasPrefix(lab, "ENT") {
		return Interviewer
	}
	return Informant
}

// MatchLine parses a line with the strict grammar. ok is false when the line
// carries no recognizable speaker tag; the caller decides the
// continuation-vs-discard policy.
func MatchLine(line string) (label, rest string, ok bool) {
	m := labelRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// MatchTag parses a line with the loose segmentation grammar.
func MatchTag(line string) (label, rest string, ok bool) {
	m := tagTurnRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// Collector folds raw lines into turns under the loose grammar: a tagged line
// opens a turn, untagged non-empty lines continue the open turn, and untagged
// lines with no open turn are dropped.
type Collector struct {
	turns   []Turn
	label   string
	buffer  []string
	hasOpen bool
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Feed consumes one raw transcript line.
func (c *Collector) Feed(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if label, rest, ok := MatchTag(line); ok {
		c.closeOpen()
		c.label = label
		c.hasOpen = true
		if rest != "" {
			c.buffer = append(c.buffer, rest)
		}
		return
	}
	if c.hasOpen {
		c.buffer = append(c.buffer, strings.TrimSpace(line))
	}
}

// Flush closes the open turn, if any, and returns all collected turns.
func (c *Collector) Flush() []Turn {
	c.closeOpen()
	out := c.turns
	c.turns = nil
	return out
}

func (c *Collector) closeOpen() {
	if c.hasOpen && len(c.buffer) > 0 {
		content := strings.TrimSpace(strings.Join(c.buffer, " "))
		if content != "" {
			c.turns = append(c.turns, Turn{
				Label:   c.label,
				Role:    RoleFromLabel(c.label),
				Content: content,
			})
		}
	}
	c.buffer = nil
	c.hasOpen = false
}
