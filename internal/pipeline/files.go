package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks root and returns every .txt file, sorted so runs are
// deterministic regardless of filesystem order.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// outputPath maps an input file to its output location: the input tree is
// mirrored under outDir and the given suffix is inserted before the
// extension ("014_M1.txt" with suffix "_seg" becomes ".../014_M1_seg.txt").
func outputPath(inRoot, outDir, inPath, suffix string) (string, error) {
	rel, err := filepath.Rel(inRoot, inPath)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", inPath, err)
	}
	ext := filepath.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)
	return filepath.Join(outDir, stem+suffix+ext), nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
