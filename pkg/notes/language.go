package notes

import (
	"fmt"
	"slices"
	"strings"
)

// Language selects the label and message tables.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// ParseLanguage accepts "en", "fr" and locale forms such as "fr_FR.UTF-8".
// An empty value selects English.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return English, nil
	}
	switch {
	case strings.HasPrefix(s, "en"):
		return English, nil
	case strings.HasPrefix(s, "fr"):
		return French, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// kindOrder is the fixed section order of a release note.
// Kinds outside this list are never rendered.
var kindOrder = []string{
	"other", "feat", "fix", "update", "chore", "refactor",
	"docs", "style", "test", "perf", "ci", "build", "revert",
}

// KindOrder returns the section order of a release note.
func KindOrder() []string {
	return slices.Clone(kindOrder)
}

// Messages holds the progress texts shown while generating notes.
type Messages struct {
	Gathering string // %s: source
	Parsing   string
	Found     string // %d: commits
	Recorded  string // %d: new commits
	Writing   string // %s: output path
}

// Table is the immutable set of texts for one language.
type Table struct {
	labels   map[string]string
	messages Messages
}

// Label returns the section label for kind.
func (t Table) Label(kind string) (string, bool) {
	l, ok := t.labels[kind]
	return l, ok
}

// Messages returns the progress texts.
func (t Table) Messages() Messages {
	return t.messages
}

var tables = map[Language]Table{
	English: {
		labels: map[string]string{
			"other":    "Other changes",
			"feat":     "New features",
			"fix":      "Bug fix",
			"update":   "Updates",
			"chore":    "Chores",
			"refactor": "Refactoring",
			"docs":     "Documentation",
			"style":    "Style",
			"test":     "Tests",
			"perf":     "Performance",
			"ci":       "Continuous integration",
			"build":    "Build",
			"revert":   "Reverts",
		},
		messages: Messages{
			Gathering: "Gathering commits from %s",
			Parsing:   "Parsing the commits",
			Found:     "%d commits found",
			Recorded:  "%d new commits recorded",
			Writing:   "Writing the release note in '%s'",
		},
	},
	French: {
		labels: map[string]string{
			"other":    "Autres changements",
			"feat":     "Nouvelles fonctionnalités",
			"fix":      "Corrections de bugs",
			"update":   "Mises à jour",
			"chore":    "Maintenance",
			"refactor": "Refactorisation",
			"docs":     "Documentation",
			"style":    "Style",
			"test":     "Tests",
			"perf":     "Performances",
			"ci":       "Intégration continue",
			"build":    "Compilation",
			"revert":   "Annulations",
		},
		messages: Messages{
			Gathering: "Récupération des commits depuis %s",
			Parsing:   "Analyse des commits",
			Found:     "%d commits trouvés",
			Recorded:  "%d nouveaux commits enregistrés",
			Writing:   "Écriture de la note de version dans '%s'",
		},
	},
}

// TableFor returns the table of lang, falling back to English.
func TableFor(lang Language) Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[English]
}

// NewTable builds a custom table. The label map is copied.
func NewTable(labels map[string]string, messages Messages) Table {
	copied := make(map[string]string, len(labels))
	for k, v := range labels {
		copied[k] = v
	}
	return Table{labels: copied, messages: messages}
}
