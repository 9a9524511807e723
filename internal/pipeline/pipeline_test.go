package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpustools/corec/config"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	for _, name := range []string{"b.txt", "a.TXT", "notes.csv", filepath.Join("sub", "c.txt")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	files, err := Discover(root)
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "a.TXT"), files[0])
	assert.Equal(t, filepath.Join(root, "b.txt"), files[1])
	assert.Equal(t, filepath.Join(root, "sub", "c.txt"), files[2])
}

func TestOutputPath(t *testing.T) {
	got, err := outputPath("/in", "/out", "/in/sub/014_M1.txt", "_seg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "sub", "014_M1_seg.txt"), got)

	got, err = outputPath("/in", "/out", "/in/014_M1_seg.txt", "_normas_1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "014_M1_seg_normas_1.txt"), got)
}

func TestReadWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "f.txt")
	require.NoError(t, writeLines(path, []string{"uno", "dos"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "uno\ndos\n", string(raw))

	require.NoError(t, os.WriteFile(path, []byte("uno\r\ndos\r\n"), 0o644))
	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"uno", "dos", ""}, lines)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dict := filepath.Join(t.TempDir(), "es_ES.dic")
	require.NoError(t, os.WriteFile(dict, []byte("2\nbueno\ncasa\n"), 0o644))

	cfg := config.Default()
	cfg.Spell.DictionaryPaths = []string{dict}
	cfg.Segment.MinTokens = 3
	cfg.Run.Workers = 2
	cfg.Run.FileTimeout = config.Duration(time.Minute)
	return cfg
}

func TestPipelineRun(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	transcript := "I1: yo trabajaba (risas) en la fábrica / y eso fue todo\n" +
		"E1: BUENO eso sí\n"
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "014_M1.txt"), []byte(transcript), 0o644))

	p, err := New(testConfig(t))
	require.NoError(t, err)

	sum, err := p.Run(context.Background(), inDir, outDir)
	require.NoError(t, err)

	// One input file through three stages.
	assert.Equal(t, 3, sum.Files)
	assert.Equal(t, 0, sum.Skipped)
	assert.Equal(t, 3, sum.Utterances)
	assert.Equal(t, 2, sum.LogRows)

	seg, err := os.ReadFile(filepath.Join(outDir, "1_segmentado", "014_M1_seg.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"I1: yo trabajaba (risas) en la fábrica\nI1: y eso fue todo\n\nE1: BUENO eso sí\n",
		string(seg))

	n1, err := os.ReadFile(filepath.Join(outDir, "2_normas_1", "014_M1_seg_normas_1.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"I1: yo trabajaba en la fábrica\nI1: y eso fue todo\nE1: bueno eso sí\n",
		string(n1))

	n2, err := os.ReadFile(filepath.Join(outDir, "3_normas_2", "014_M1_seg_normas_1_normas_2.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"I1: yo trabajaba en la fábrica\nI1: y eso fue todo\nE1: bueno eso sí\n",
		string(n2))

	for _, log := range []string{"Log_normas_1.csv", "Log_normas_2.csv"} {
		_, err := os.Stat(filepath.Join(outDir, "logs", log))
		assert.NoError(t, err)
	}
}

func TestPipelineSegmentNoInputs(t *testing.T) {
	p, err := New(testConfig(t))
	require.NoError(t, err)

	_, err = p.Segment(context.Background(), t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .txt files")
}

func TestPipelineDeletesEmptiedLines(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "003_H2.txt"),
		[]byte("I1: (risas)\nI1: bueno vale\n"), 0o644))

	p, err := New(testConfig(t))
	require.NoError(t, err)

	logPath := filepath.Join(outDir, "Log_normas_1.csv")
	sum, err := p.PhaseOne(context.Background(), inDir, outDir, logPath)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Turns)
	assert.Equal(t, 2, sum.LogRows)

	out, err := os.ReadFile(filepath.Join(outDir, "003_H2_normas_1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "I1: bueno vale\n", string(out))

	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "LINEA_ELIMINADA")
	assert.Contains(t, string(raw), "003_H2.txt;UD00001;1;I1;INFORMANTE")
}
