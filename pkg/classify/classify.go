// Package classify turns raw commit subject lines into core.Commit values.
//
// A line has the shape
//
//	<kind>[ (<title>)]: <content> :<hash>
//
// or the legacy two-segment shape
//
//	<content> :<hash>
//
// Segments are split positionally on ':' with no escaping. A content that
// itself contains ':' therefore shifts the hash into a later segment, and
// whatever lands in the third position is taken as the hash.
package classify

import (
	"fmt"
	"iter"
	"strings"

	"github.com/aretw0/dedma/pkg/core"
)

const delimiter = ":"

// Classify parses a single trimmed line.
// It fails with core.ErrMalformedLine when the line has no delimiter at all.
func Classify(line string) (core.Commit, error) {
	parts := strings.Split(line, delimiter)

	switch {
	case len(parts) >= 3:
		kind, title := splitHeader(parts[0])
		return core.Commit{
			Kind:    kind,
			Title:   title,
			Content: strings.TrimSpace(parts[1]),
			Hash:    strings.TrimSpace(parts[2]),
		}, nil
	case len(parts) == 2:
		return core.Commit{
			Kind:    core.DefaultLabel,
			Title:   core.DefaultLabel,
			Content: strings.TrimSpace(parts[0]),
			Hash:    strings.TrimSpace(parts[1]),
		}, nil
	default:
		return core.Commit{}, fmt.Errorf("%w: %q", core.ErrMalformedLine, line)
	}
}

// splitHeader separates "kind (title)" into its lower-cased parts.
func splitHeader(field string) (kind, title string) {
	before, after, found := strings.Cut(field, "(")
	if !found {
		return label(field), core.DefaultLabel
	}
	return label(before), label(strings.ReplaceAll(after, ")", ""))
}

func label(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return core.DefaultLabel
	}
	return s
}

// Lines classifies every non-blank line of text, in order.
// The sequence is lazy and can be ranged over any number of times.
// A malformed line yields its error; ranging may continue past it.
func Lines(text string) iter.Seq2[core.Commit, error] {
	return func(yield func(core.Commit, error) bool) {
		n := 0
		for raw := range strings.Lines(text) {
			n++
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			c, err := Classify(line)
			if err != nil {
				err = fmt.Errorf("line %d: %w", n, err)
			}
			if !yield(c, err) {
				return
			}
		}
	}
}

// All collects Lines, stopping at the first malformed line.
func All(text string) ([]core.Commit, error) {
	var commits []core.Commit
	for c, err := range Lines(text) {
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}
