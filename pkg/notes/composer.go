// Package notes rebuilds grouped release notes from the commit store.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/dedma/pkg/core"
)

// ReleaseNote is the structured document for one tag.
type ReleaseNote struct {
	Tag      string
	Sections []Section
}

// Section groups the commits of one kind.
type Section struct {
	Kind        string
	Label       string
	Subsections []Subsection
}

// Subsection groups the commits of one title. Heading is empty for the
// default title.
type Subsection struct {
	Title   string
	Heading string
	Items   []string
}

// Composer renders release notes from a core.Reader.
type Composer struct {
	repo   core.Reader
	table  Table
	logger *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLanguage selects the label table.
func WithLanguage(lang Language) Option {
	return func(c *Composer) {
		c.table = TableFor(lang)
	}
}

// WithTable installs a custom label table.
func WithTable(t Table) Option {
	return func(c *Composer) {
		c.table = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Composer. English is used unless another language is given.
func New(repo core.Reader, opts ...Option) *Composer {
	c := &Composer{
		repo:   repo,
		table:  TableFor(English),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build queries the store and assembles the note for tag.
func (c *Composer) Build(ctx context.Context, tag string) (ReleaseNote, error) {
	note := ReleaseNote{Tag: tag}

	kinds, err := c.repo.ListKinds(ctx, tag)
	if err != nil {
		return note, fmt.Errorf("list kinds: %w", err)
	}

	for _, kind := range kindOrder {
		if !slices.Contains(kinds, kind) {
			continue
		}

		label, ok := c.table.Label(kind)
		if !ok {
			return note, fmt.Errorf("%w: %q", core.ErrUnknownKindLabel, kind)
		}

		section, err := c.section(ctx, tag, kind, label)
		if err != nil {
			return note, err
		}
		note.Sections = append(note.Sections, section)
	}

	for _, kind := range kinds {
		if !slices.Contains(kindOrder, kind) {
			c.logger.Debug("dropping unlisted kind", "kind", kind, "tag", tag)
		}
	}

	return note, nil
}

func (c *Composer) section(ctx context.Context, tag, kind, label string) (Section, error) {
	section := Section{Kind: kind, Label: label}

	titles, err := c.repo.ListTitles(ctx, tag, kind)
	if err != nil {
		return section, fmt.Errorf("list titles of %s: %w", kind, err)
	}

	for _, t := range titles {
		items, err := c.repo.ListContents(ctx, tag, t.Kind, t.Title)
		if err != nil {
			return section, fmt.Errorf("list contents of %s/%s: %w", t.Kind, t.Title, err)
		}
		section.Subsections = append(section.Subsections, Subsection{
			Title:   t.Title,
			Heading: Heading(t.Title),
			Items:   items,
		})
	}
	return section, nil
}

// Compose builds and renders the note for tag.
func (c *Composer) Compose(ctx context.Context, tag string) (string, error) {
	note, err := c.Build(ctx, tag)
	if err != nil {
		return "", err
	}
	return Render(note), nil
}

// Heading formats a title for display. The default title has no heading.
// Titles of three characters or fewer are treated as acronyms.
func Heading(title string) string {
	if title == "" || title == core.DefaultLabel {
		return ""
	}
	if utf8.RuneCountInString(title) <= 3 {
		return strings.ToUpper(title)
	}
	r, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(r)) + title[size:]
}

// Render writes note as Markdown.
func Render(note ReleaseNote) string {
	var blocks []string
	for _, s := range note.Sections {
		blocks = append(blocks, "# "+s.Label)
		for _, sub := range s.Subsections {
			if sub.Heading != "" {
				blocks = append(blocks, "## "+sub.Heading)
			}
			if len(sub.Items) == 0 {
				continue
			}
			var sb strings.Builder
			for i, item := range sub.Items {
				if i > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString("- ")
				sb.WriteString(item)
			}
			blocks = append(blocks, sb.String())
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
