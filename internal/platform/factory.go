package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/dedma/pkg/adapters/fs"
	"github.com/aretw0/dedma/pkg/adapters/sqlite"
	"github.com/aretw0/dedma/pkg/core"
	"github.com/aretw0/dedma/pkg/git"
	"github.com/aretw0/dedma/pkg/notes"
)

// App wires the store, the service, the composer and the git source
// for one project root.
type App struct {
	Root     string
	Config   Config
	Language notes.Language
	Service  *core.Service
	Composer *notes.Composer
	Git      *git.Client

	table    notes.Table
	logger   *slog.Logger
	reporter io.Writer
}

// New opens the commit store under root, creating it when missing, and
// returns the wired application.
func New(root string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := LoadConfig(root, o.systemDir)
	if err != nil {
		return nil, err
	}

	lang := o.language
	if lang == "" {
		if lang, err = notes.ParseLanguage(cfg.Language); err != nil {
			return nil, err
		}
	}

	repo := o.repository
	if repo == nil {
		adapter := o.adapter
		if adapter == "" {
			adapter = cfg.Adapter
		}
		if repo, err = newRepository(adapter, root, cfg.SystemDir, o.readOnly, logger); err != nil {
			return nil, err
		}
	}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	table := notes.TableFor(lang)
	return &App{
		Root:     root,
		Config:   cfg,
		Language: lang,
		Service:  core.NewService(repo, core.WithLogger(logger), core.WithProgress(o.progress)),
		Composer: notes.New(repo, notes.WithTable(table), notes.WithLogger(logger)),
		Git:      git.NewClient(root, logger),
		table:    table,
		logger:   logger,
		reporter: o.reporter,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if c, ok := a.Service.Repository().(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Messages returns the localized progress texts.
func (a *App) Messages() notes.Messages {
	return a.table.Messages()
}

func (a *App) report(format string, args ...any) {
	fmt.Fprintf(a.reporter, format+"\n", args...)
}

// newRepository builds the storage adapter named by adapter.
func newRepository(adapter, root, systemDir string, readOnly bool, logger *slog.Logger) (core.Repository, error) {
	switch adapter {
	case "sqlite":
		return sqlite.NewRepository(sqlite.Config{
			Root:      root,
			SystemDir: systemDir,
			ReadOnly:  readOnly,
			Logger:    logger,
		}), nil
	case "fs":
		return fs.NewRepository(fs.Config{
			Root:      root,
			SystemDir: systemDir,
			ReadOnly:  readOnly,
			Logger:    logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", adapter)
	}
}
