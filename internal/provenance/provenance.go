// Package provenance accumulates rewrite events across all rules and exports
// the audit log.
package provenance

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Event records one atomic substring rewrite or deletion. Events are
// append-only and never mutated once recorded.
type Event struct {
	FileID        string
	UtteranceID   string
	LineNumber    int
	Speaker       string
	Role          string
	RuleID        int
	Phenomenon    string
	FormOriginal  string
	FormResulting string
	Action        string
	Context       string
}

// Recorder buffers events for one unit of work. Workers keep their own
// recorder and merge after the pool drains, so no locking is needed here.
type Recorder struct {
	events []Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds one event.
func (r *Recorder) Append(ev Event) {
	r.events = append(r.events, ev)
}

// Merge appends all events of another recorder.
func (r *Recorder) Merge(other *Recorder) {
	r.events = append(r.events, other.events...)
}

// Events returns the recorded events in append order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.events)
}

// Sort orders events by (file, utterance, line, rule), the order the second
// normalization phase publishes its log in.
func (r *Recorder) Sort() {
	sort.SliceStable(r.events, func(i, j int) bool {
		a, b := r.events[i], r.events[j]
		if a.FileID != b.FileID {
			return a.FileID < b.FileID
		}
		if a.UtteranceID != b.UtteranceID {
			return a.UtteranceID < b.UtteranceID
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.RuleID < b.RuleID
	})
}

var csvHeader = []string{
	"id_archivo", "id_ud", "linea_n", "hablante", "rol",
	"norma_id", "fenomeno", "forma_original", "forma_resultante",
	"accion", "contexto",
}

// WriteCSV writes the log as semicolon-delimited CSV with a UTF-8 signature,
// the encoding spreadsheet tools expect.
func (r *Recorder) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing log header: %w", err)
	}
	for _, ev := range r.events {
		record := []string{
			ev.FileID, ev.UtteranceID, strconv.Itoa(ev.LineNumber),
			ev.Speaker, ev.Role,
			strconv.Itoa(ev.RuleID), ev.Phenomenon,
			ev.FormOriginal, ev.FormResulting,
			ev.Action, ev.Context,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing log row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
