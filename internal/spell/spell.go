// Package spell defines the word-validity oracle the normalization rules
// consult, plus a backend reading hunspell .dic wordlists.
//
// The oracle is a hard dependency: the colon and emphatic-caps rules make
// correctness-sensitive decisions on its answers, so initialization fails
// rather than running degraded when no dictionary can be found.
package spell

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrDictionaryNotFound is returned when none of the candidate dictionary
// paths exists.
var ErrDictionaryNotFound = errors.New("spell: no dictionary found")

// Oracle answers whether a token is a valid dictionary word.
type Oracle interface {
	IsValidWord(token string) bool
}

// Dictionary is a wordlist-backed Oracle. Lookups are case-insensitive and
// safe for concurrent use once loaded.
type Dictionary struct {
	words map[string]struct{}
	path  string
}

// Open loads the first existing dictionary from the candidate paths.
func Open(candidates []string) (*Dictionary, error) {
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return load(p)
		}
	}
	return nil, fmt.Errorf("%w (tried %s)", ErrDictionaryNotFound, strings.Join(candidates, ", "))
}

// load reads a hunspell .dic file: optional leading entry count, then one
// entry per line with affix flags after "/" and morph fields after a tab.
func load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer f.Close()

	d := &Dictionary{words: make(map[string]struct{}), path: path}
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if isCount(line) {
				continue
			}
		}
		if i := strings.IndexAny(line, "/\t "); i >= 0 {
			line = line[:i]
		}
		if line == "" {
			continue
		}
		d.words[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	return d, nil
}

func isCount(line string) bool {
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Path returns the dictionary file this oracle was loaded from.
func (d *Dictionary) Path() string {
	return d.path
}

// Len returns the number of loaded entries.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// IsValidWord reports whether the token is in the dictionary.
func (d *Dictionary) IsValidWord(token string) bool {
	w := strings.TrimSpace(token)
	if w == "" {
		return false
	}
	_, ok := d.words[strings.ToLower(w)]
	return ok
}
