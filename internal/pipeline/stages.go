package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corpustools/corec/internal/provenance"
	"github.com/corpustools/corec/internal/rules"
	"github.com/corpustools/corec/internal/segment"
	"github.com/corpustools/corec/internal/turns"
)

// segmentFile splits every turn of one transcript into utterances. Output is
// one "SPEAKER: sentence" line per utterance with a blank line between turns.
func (p *Pipeline) segmentFile(ctx context.Context, seg *segment.Segmenter, inPath, outPath string) (Summary, error) {
	lines, err := readLines(inPath)
	if err != nil {
		return Summary{}, err
	}

	collector := turns.NewCollector()
	for _, line := range lines {
		collector.Feed(line)
	}

	var sum Summary
	var out []string
	for _, turn := range collector.Flush() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sents := seg.SplitTurn(turn.Content)
		if len(sents) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		for _, s := range sents {
			out = append(out, fmt.Sprintf("%s: %s", turn.Label, s))
		}
		sum.Turns++
		sum.Utterances += len(sents)
	}

	if err := writeLines(outPath, out); err != nil {
		return sum, err
	}
	return sum, nil
}

// normalizeFile rewrites one transcript through the given rule engine, one
// labelled line per utterance. Lines without a recognizable tag are skipped
// silently; a line whose content empties out is dropped with a single
// deletion row. The second pass additionally strips enumeration residue
// before the engine sees the content.
func (p *Pipeline) normalizeFile(ctx context.Context, engine *rules.Engine, inPath, outPath string, phaseTwo bool) (Summary, *provenance.Recorder, error) {
	lines, err := readLines(inPath)
	if err != nil {
		return Summary{}, nil, err
	}

	fileID := filepath.Base(inPath)
	rec := provenance.NewRecorder()

	var sum Summary
	var out []string
	lineN := 0
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return sum, nil, err
		}
		label, rest, ok := turns.MatchLine(line)
		if !ok {
			continue
		}
		lineN++
		utteranceID := fmt.Sprintf("UD%05d", lineN)
		role := string(turns.RoleFromLabel(label))

		if phaseTwo {
			rest = rules.StripLeadingResidue(rest)
		}

		result, events, deleted := engine.Apply(rest)
		for _, ev := range events {
			rec.Append(provenance.Event{
				FileID:        fileID,
				UtteranceID:   utteranceID,
				LineNumber:    lineN,
				Speaker:       label,
				Role:          role,
				RuleID:        ev.RuleID,
				Phenomenon:    ev.Phenomenon,
				FormOriginal:  ev.FormOriginal,
				FormResulting: ev.FormResulting,
				Action:        ev.Action,
				Context:       rest,
			})
		}

		if deleted {
			rec.Append(provenance.Event{
				FileID:        fileID,
				UtteranceID:   utteranceID,
				LineNumber:    lineN,
				Speaker:       label,
				Role:          role,
				RuleID:        0,
				Phenomenon:    "LINEA_VACIA",
				FormOriginal:  rest,
				FormResulting: "",
				Action:        "LINEA_ELIMINADA",
				Context:       rest,
			})
			continue
		}

		out = append(out, fmt.Sprintf("%s: %s", label, strings.TrimSpace(result)))
		sum.Turns++
	}

	if err := writeLines(outPath, out); err != nil {
		return sum, nil, err
	}
	return sum, rec, nil
}
