package textspan

import (
	"fmt"
	"sort"
	"strings"
)

const (
	phPrefix = "⟦FIX_"
	phSuffix = "⟧"
)

// Pair records one protected occurrence: the literal that was hidden and the
// corrected form the fixup table maps it to.
type Pair struct {
	Original string
	Value    string
}

// Mapping holds the placeholder assignments of one Protect call.
type Mapping struct {
	originals map[string]string // placeholder -> hidden literal
	values    map[string]string // placeholder -> table value
	pairs     []Pair
}

// Pairs returns the occurrences in the order they were protected.
func (m *Mapping) Pairs() []Pair {
	return m.pairs
}

// Protect replaces every literal occurrence of a table key with a unique opaque
// placeholder token. Keys are applied longest-first so a shorter key never
// shadows part of a longer one.
func Protect(text string, table map[string]string) (string, *Mapping) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	m := &Mapping{
		originals: make(map[string]string),
		values:    make(map[string]string),
	}
	out := text
	idx := 0
	for _, k := range keys {
		start := 0
		for {
			pos := strings.Index(out[start:], k)
			if pos == -1 {
				break
			}
			pos += start
			ph := fmt.Sprintf("%s%d%s", phPrefix, idx, phSuffix)
			idx++
			m.originals[ph] = k
			m.values[ph] = table[k]
			m.pairs = append(m.pairs, Pair{Original: k, Value: table[k]})
			out = out[:pos] + ph + out[pos+len(k):]
			start = pos + len(ph)
		}
	}
	return out, m
}

// Restore reverses Protect exactly, putting the hidden literals back.
func (m *Mapping) Restore(text string) string {
	out := text
	for ph, orig := range m.originals {
		out = strings.ReplaceAll(out, ph, orig)
	}
	return out
}

// RestoreFixed replaces each placeholder with the table value instead of the
// hidden literal, applying the fixup while lifting the protection.
func (m *Mapping) RestoreFixed(text string) string {
	out := text
	for ph, val := range m.values {
		out = strings.ReplaceAll(out, ph, val)
	}
	return out
}
