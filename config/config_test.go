package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "corec.yml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 8, cfg.Segment.MinTokens)
	assert.Equal(t, 4, cfg.Run.Workers)
	assert.Equal(t, Duration(2*time.Minute), cfg.Run.FileTimeout)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corec.yml")
	content := `
spell:
  dictionary_paths: ["/opt/dicts/es.dic"]
segment:
  min_tokens: 5
dialect:
  asturian_prefixes: ["014", "021"]
run:
  workers: 2
  file_timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/opt/dicts/es.dic"}, cfg.Spell.DictionaryPaths)
	assert.Equal(t, 5, cfg.Segment.MinTokens)
	assert.Equal(t, []string{"014", "021"}, cfg.Dialect.AsturianPrefixes)
	assert.Equal(t, 2, cfg.Run.Workers)
	assert.Equal(t, Duration(30*time.Second), cfg.Run.FileTimeout)
}

func TestLoadClampsNonPositiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corec.yml")
	content := `
segment:
  min_tokens: 0
run:
  workers: -1
  file_timeout: 0s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Segment.MinTokens)
	assert.Equal(t, 4, cfg.Run.Workers)
	assert.Equal(t, Duration(2*time.Minute), cfg.Run.FileTimeout)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corec.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\nnot yaml ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
