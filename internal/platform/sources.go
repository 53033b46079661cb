package platform

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandSources resolves file patterns (with ** support) into file paths,
// keeping pattern order and sorting the matches of each pattern.
// A pattern that matches nothing is an error.
func ExpandSources(patterns ...string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no source file matches %q", pattern)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// ReadSources returns the concatenated lines of every file matched by patterns.
func ReadSources(patterns ...string) (string, error) {
	files, err := ExpandSources(patterns...)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("read source: %w", err)
		}
		sb.Write(raw)
		if len(raw) > 0 && raw[len(raw)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
