package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/dedma/pkg/core"
	"github.com/aretw0/dedma/pkg/notes"
)

// options holds the internal configuration for the application.
type options struct {
	repository core.Repository
	adapter    string
	logger     *slog.Logger
	systemDir  string
	language   notes.Language
	readOnly   bool
	progress   func(core.Commit)
	reporter   io.Writer
}

// Option defines a functional option for configuring the application.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		reporter: io.Discard,
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom commit store.
// If provided, the default SQLite store is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("sqlite" or "fs").
// Defaults to the config file value, then "sqlite".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSystemDir sets the hidden directory holding the store and config (e.g. ".dedma").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithLanguage forces the display language, overriding config file and environment.
func WithLanguage(lang notes.Language) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithReadOnly opens the store without creating or writing anything.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithProgress registers a callback invoked for each newly recorded commit.
func WithProgress(fn func(core.Commit)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithReporter sets where localized progress messages are written.
func WithReporter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.reporter = w
		}
	}
}
