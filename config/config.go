// Package config defines the corec.yml configuration structure.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../tools/schema-generator

// Duration is a time.Duration that reads from yaml scalars like "90s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// SpellConfig locates the spelling dictionary.
type SpellConfig struct {
	// DictionaryPaths are candidate hunspell .dic wordlists, tried in order.
	// The first existing path wins. Failing to resolve one is a fatal setup error.
	DictionaryPaths []string `yaml:"dictionary_paths,omitempty"`
}

// MorphConfig locates the morphological lexicon.
type MorphConfig struct {
	// LexiconPath points to a tab-separated surface/lemma/pos/features lexicon.
	// When empty, the built-in suffix-heuristic analyzer is used alone.
	LexiconPath string `yaml:"lexicon_path,omitempty"`
}

// SegmentConfig tunes the discourse segmentation engine.
type SegmentConfig struct {
	// MinTokens is the minimum token count a candidate sentence needs before a
	// slash marker may close it.
	MinTokens int `yaml:"min_tokens,omitempty"`
}

// DialectConfig controls dialect-profile resolution.
type DialectConfig struct {
	// AsturianPrefixes lists document-id prefixes that activate the Asturian
	// variant map and clitic splitting.
	AsturianPrefixes []string `yaml:"asturian_prefixes,omitempty"`
}

// RunConfig bounds the per-file worker pool.
type RunConfig struct {
	// Workers is the number of files processed concurrently.
	Workers int `yaml:"workers,omitempty"`

	// FileTimeout bounds how long a single file may take before it is skipped.
	FileTimeout Duration `yaml:"file_timeout,omitempty"`
}

// Config is the top-level configuration structure for corec.
type Config struct {
	Spell   SpellConfig   `yaml:"spell,omitempty"`
	Morph   MorphConfig   `yaml:"morph,omitempty"`
	Segment SegmentConfig `yaml:"segment,omitempty"`
	Dialect DialectConfig `yaml:"dialect,omitempty"`
	Run     RunConfig     `yaml:"run,omitempty"`
}

// Default returns the configuration used when no corec.yml is present.
func Default() Config {
	return Config{
		Spell: SpellConfig{
			DictionaryPaths: []string{
				"/usr/share/hunspell/es_ES.dic",
				"/usr/share/hunspell/es_ANY.dic",
				"/usr/share/myspell/es_ES.dic",
			},
		},
		Segment: SegmentConfig{MinTokens: 8},
		Dialect: DialectConfig{AsturianPrefixes: []string{"014"}},
		Run: RunConfig{
			Workers:     4,
			FileTimeout: Duration(2 * time.Minute),
		},
	}
}

// Load reads a yaml config file and fills unset fields with defaults.
// A missing file is not an error: defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Segment.MinTokens <= 0 {
		cfg.Segment.MinTokens = 8
	}
	if cfg.Run.Workers <= 0 {
		cfg.Run.Workers = 4
	}
	if cfg.Run.FileTimeout <= 0 {
		cfg.Run.FileTimeout = Duration(2 * time.Minute)
	}
	return cfg, nil
}
