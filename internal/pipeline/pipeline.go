// Package pipeline orchestrates the three corpus stages: discourse
// segmentation, the structural normalization pass and the lexical
// normalization pass. Files are independent units of work and run on a
// bounded worker pool; the shared vocabulary snapshot is built before any
// worker starts and never mutated afterwards.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/corpustools/corec/config"
	"github.com/corpustools/corec/internal/logging"
	"github.com/corpustools/corec/internal/morph"
	"github.com/corpustools/corec/internal/provenance"
	"github.com/corpustools/corec/internal/rules"
	"github.com/corpustools/corec/internal/segment"
	"github.com/corpustools/corec/internal/spell"
)

// Summary aggregates the counters a run reports.
type Summary struct {
	Files      int
	Skipped    int
	Turns      int
	Utterances int
	LogRows    int
}

func (s *Summary) add(o Summary) {
	s.Files += o.Files
	s.Skipped += o.Skipped
	s.Turns += o.Turns
	s.Utterances += o.Utterances
	s.LogRows += o.LogRows
}

// Pipeline wires the external capabilities into the stages. A Pipeline is
// safe for concurrent use: all of its state is read-only after New.
type Pipeline struct {
	cfg    config.Config
	oracle spell.Oracle
	parser morph.Parser
	dicts  *rules.Dictionaries
	log    *logrus.Entry
}

// New resolves the external capabilities. A missing spelling dictionary is a
// setup failure: the spell-dependent rules are order-sensitive, so starting
// without one would silently corrupt the output.
func New(cfg config.Config) (*Pipeline, error) {
	log := logging.NewLogger("pipeline")

	dict, err := spell.Open(cfg.Spell.DictionaryPaths)
	if err != nil {
		return nil, fmt.Errorf("resolving spelling dictionary: %w", err)
	}
	log.WithFields(logrus.Fields{"path": dict.Path(), "words": dict.Len()}).Debug("spelling dictionary loaded")

	parser, err := morph.NewAnalyzer(cfg.Morph.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("loading morphological lexicon: %w", err)
	}

	dicts, err := rules.LoadDictionaries("")
	if err != nil {
		return nil, fmt.Errorf("loading rewrite dictionaries: %w", err)
	}

	return &Pipeline{cfg: cfg, oracle: dict, parser: parser, dicts: dicts, log: log}, nil
}

// fileFunc processes one input file and returns its counters plus the
// provenance it produced, if any.
type fileFunc func(ctx context.Context, inPath string) (Summary, *provenance.Recorder, error)

// forEach runs fn over every file on a bounded pool. Each file gets its own
// deadline; a timed-out or failed file is skipped with a warning and counted,
// never aborting the run. Recorders are merged in input order after the pool
// drains so the log is deterministic.
func (p *Pipeline) forEach(ctx context.Context, files []string, rec *provenance.Recorder, fn fileFunc) (Summary, error) {
	var mu sync.Mutex
	var total Summary
	recorders := make([]*provenance.Recorder, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Run.Workers)

	for i, inPath := range files {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Run.FileTimeout))
			defer cancel()

			sum, frec, err := fn(fctx, inPath)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					p.log.WithField("file", inPath).Warn("file timed out, skipping")
				} else {
					p.log.WithField("file", inPath).WithError(err).Warn("file failed, skipping")
				}
				mu.Lock()
				total.Skipped++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			total.add(sum)
			total.Files++
			mu.Unlock()
			recorders[i] = frec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return total, err
	}

	if rec != nil {
		for _, r := range recorders {
			if r != nil {
				rec.Merge(r)
			}
		}
		total.LogRows = rec.Len()
	}
	return total, nil
}

// Segment runs the discourse segmentation stage: inDir/*.txt in,
// outDir/*_seg.txt out.
func (p *Pipeline) Segment(ctx context.Context, inDir, outDir string) (Summary, error) {
	files, err := Discover(inDir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("no .txt files under %s", inDir)
	}

	seg := segment.New(p.parser, p.cfg.Segment.MinTokens)
	return p.forEach(ctx, files, nil, func(ctx context.Context, inPath string) (Summary, *provenance.Recorder, error) {
		outPath, err := outputPath(inDir, outDir, inPath, "_seg")
		if err != nil {
			return Summary{}, nil, err
		}
		sum, err := p.segmentFile(ctx, seg, inPath, outPath)
		return sum, nil, err
	})
}

// PhaseOne runs the structural normalization pass: *_normas_1.txt plus an
// append-ordered provenance log.
func (p *Pipeline) PhaseOne(ctx context.Context, inDir, outDir, logPath string) (Summary, error) {
	files, err := Discover(inDir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("no .txt files under %s", inDir)
	}

	engine := rules.NewPhaseOne(p.oracle, p.dicts)
	rec := provenance.NewRecorder()
	sum, err := p.forEach(ctx, files, rec, func(ctx context.Context, inPath string) (Summary, *provenance.Recorder, error) {
		outPath, err := outputPath(inDir, outDir, inPath, "_normas_1")
		if err != nil {
			return Summary{}, nil, err
		}
		return p.normalizeFile(ctx, engine, inPath, outPath, false)
	})
	if err != nil {
		return sum, err
	}
	if err := rec.WriteCSV(logPath); err != nil {
		return sum, err
	}
	return sum, nil
}

// PhaseTwo runs the lexical normalization pass. The corpus-wide vocabulary
// snapshot feeds the colon join heuristic and is fully built before any file
// is rewritten; the log is sorted by (file, utterance, line, rule) before it
// is written.
func (p *Pipeline) PhaseTwo(ctx context.Context, inDir, outDir, logPath string) (Summary, error) {
	files, err := Discover(inDir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("no .txt files under %s", inDir)
	}

	observed, err := p.buildVocabulary(files)
	if err != nil {
		return Summary{}, err
	}
	p.log.WithField("words", len(observed)).Debug("vocabulary snapshot built")

	rec := provenance.NewRecorder()
	sum, err := p.forEach(ctx, files, rec, func(ctx context.Context, inPath string) (Summary, *provenance.Recorder, error) {
		outPath, err := outputPath(inDir, outDir, inPath, "_normas_2")
		if err != nil {
			return Summary{}, nil, err
		}
		profile := rules.ResolveDialect(filepath.Base(inPath), p.cfg.Dialect.AsturianPrefixes)
		engine := rules.NewPhaseTwo(p.oracle, p.dicts, observed, profile)
		return p.normalizeFile(ctx, engine, inPath, outPath, true)
	})
	if err != nil {
		return sum, err
	}
	rec.Sort()
	if err := rec.WriteCSV(logPath); err != nil {
		return sum, err
	}
	return sum, nil
}

// Run chains the three stages end to end under outDir: segmented text in
// "1_segmentado", pass outputs in "2_normas_1" and "3_normas_2", logs under
// "logs".
func (p *Pipeline) Run(ctx context.Context, inDir, outDir string) (Summary, error) {
	segDir := filepath.Join(outDir, "1_segmentado")
	n1Dir := filepath.Join(outDir, "2_normas_1")
	n2Dir := filepath.Join(outDir, "3_normas_2")
	logDir := filepath.Join(outDir, "logs")

	var total Summary

	sum, err := p.Segment(ctx, inDir, segDir)
	if err != nil {
		return total, fmt.Errorf("segmentation stage: %w", err)
	}
	total.add(sum)

	sum, err = p.PhaseOne(ctx, segDir, n1Dir, filepath.Join(logDir, "Log_normas_1.csv"))
	if err != nil {
		return total, fmt.Errorf("first normalization stage: %w", err)
	}
	total.add(sum)

	sum, err = p.PhaseTwo(ctx, n1Dir, n2Dir, filepath.Join(logDir, "Log_normas_2.csv"))
	if err != nil {
		return total, fmt.Errorf("second normalization stage: %w", err)
	}
	total.add(sum)

	return total, nil
}

func (p *Pipeline) buildVocabulary(files []string) (map[string]struct{}, error) {
	observed := make(map[string]struct{})
	for _, path := range files {
		lines, err := readLines(path)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			for w := range rules.BuildObservedWords(line) {
				observed[w] = struct{}{}
			}
		}
	}
	return observed, nil
}
