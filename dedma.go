package dedma

import (
	_ "embed"
	"io"
	"log/slog"

	"github.com/aretw0/dedma/internal/platform"
	"github.com/aretw0/dedma/pkg/classify"
	"github.com/aretw0/dedma/pkg/core"
	"github.com/aretw0/dedma/pkg/notes"
)

// Version exposes the version of the library.
//
//go:embed VERSION
var Version string

// --- Types ---

// App is the wired application for one project root.
type App = platform.App

// Request describes one generation run.
type Request = platform.Request

// Report summarizes a generation run.
type Report = platform.Report

// Language selects the label table of rendered notes.
type Language = notes.Language

const (
	English = notes.English
	French  = notes.French
)

// --- Configuration ---

// Option defines a functional option for configuring dedma.
type Option = platform.Option

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom commit store.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter by name ("sqlite" or "fs").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".dedma").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithLanguage forces the display language.
func WithLanguage(lang Language) Option {
	return platform.WithLanguage(lang)
}

// WithReadOnly opens an existing store without writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithProgress registers a callback invoked for each newly recorded commit.
func WithProgress(fn func(core.Commit)) Option {
	return platform.WithProgress(fn)
}

// WithReporter sets where localized progress messages are written.
func WithReporter(w io.Writer) Option {
	return platform.WithReporter(w)
}

// --- Factory ---

// New opens (and lazily creates) the commit store under root.
func New(root string, opts ...Option) (*App, error) {
	return platform.New(root, opts...)
}

// --- Utils ---

// Classify parses one commit line.
func Classify(line string) (core.Commit, error) {
	return classify.Classify(line)
}

// ParseLanguage reads a language name such as "en" or "fr_FR".
func ParseLanguage(s string) (Language, error) {
	return notes.ParseLanguage(s)
}

// FindRoot recursively looks upwards for a project root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir, "")
}
