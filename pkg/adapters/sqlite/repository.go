// Package sqlite implements core.Repository on a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aretw0/dedma/pkg/core"
)

// DefaultFileName is the database file created inside the system directory.
const DefaultFileName = "dedma.db"

const schema = `
CREATE TABLE IF NOT EXISTS commits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	kind TEXT NOT NULL,
	title TEXT NOT NULL,
	tag TEXT NOT NULL,
	hash TEXT NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS idx_commits_group ON commits(tag, kind, title);
`

// Config holds the configuration for the SQLite repository.
type Config struct {
	Root      string // directory holding the system directory
	SystemDir string // e.g. ".dedma"
	FileName  string // defaults to DefaultFileName
	ReadOnly  bool
	Logger    *slog.Logger
}

// Repository implements core.Repository using SQLite.
type Repository struct {
	Path   string
	config Config
	logger *slog.Logger

	mu         sync.RWMutex
	db         *sql.DB
	inserted   int
	duplicates int
}

// NewRepository creates a repository. Nothing touches the disk until Initialize.
func NewRepository(config Config) *Repository {
	if config.FileName == "" {
		config.FileName = DefaultFileName
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		Path:   filepath.Join(config.Root, config.SystemDir, config.FileName),
		config: config,
		logger: logger,
	}
}

// Initialize creates the storage directory, the database file and the schema
// when they are missing. Calling it again is a no-op.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return nil
	}

	if r.config.ReadOnly {
		if _, err := os.Stat(r.Path); err != nil {
			return fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
		}
	} else if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", core.ErrStoreUnavailable, err)
	}

	dsn, err := fileURI(r.Path, r.config.ReadOnly)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %w", core.ErrStoreUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	if !r.config.ReadOnly {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			db.Close()
			return fmt.Errorf("%w: failed to initialize schema: %w", core.ErrStoreUnavailable, err)
		}
	} else if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
	}

	r.logger.Debug("commit store ready", "path", r.Path, "read_only", r.config.ReadOnly)
	r.db = db
	return nil
}

// fileURI builds the SQLite URI of path. The path is percent-encoded so
// that '#', '?' and '%' in directory names stay part of the file name.
func fileURI(path string, readOnly bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		// Windows drive letters: file:///C:/...
		abs = "/" + abs
	}

	query := "_pragma=busy_timeout(5000)"
	if readOnly {
		query += "&mode=ro"
	}
	u := url.URL{Scheme: "file", Path: abs, RawQuery: query}
	return u.String(), nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Repository) conn() (*sql.DB, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.db == nil {
		return nil, fmt.Errorf("%w: repository not initialized", core.ErrStoreUnavailable)
	}
	return r.db, nil
}

// Insert appends a commit unless its hash is already stored.
// The UNIQUE constraint on hash decides; there is no prior lookup.
func (r *Repository) Insert(ctx context.Context, tag string, c core.Commit) (core.Outcome, error) {
	if r.config.ReadOnly {
		return core.Inserted, core.ErrReadOnly
	}
	if c.Hash == "" {
		return core.Inserted, core.ErrEmptyHash
	}

	db, err := r.conn()
	if err != nil {
		return core.Inserted, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO commits (content, kind, title, tag, hash) VALUES (?, ?, ?, ?, ?)`,
		c.Content, c.Kind, c.Title, tag, c.Hash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.count(core.Duplicate)
			r.logger.Debug("duplicate commit", "hash", c.Hash, "tag", tag)
			return core.Duplicate, nil
		}
		return core.Inserted, fmt.Errorf("%w: insert %s: %w", core.ErrStoreFailure, c.Hash, err)
	}

	r.count(core.Inserted)
	return core.Inserted, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func (r *Repository) count(o core.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o == core.Duplicate {
		r.duplicates++
	} else {
		r.inserted++
	}
}

// ListKinds returns the distinct kinds recorded under tag.
func (r *Repository) ListKinds(ctx context.Context, tag string) ([]string, error) {
	return r.queryStrings(ctx,
		`SELECT kind FROM commits WHERE tag = ? GROUP BY kind ORDER BY MIN(id)`,
		tag)
}

// ListTitles returns the distinct titles recorded under tag and kind.
func (r *Repository) ListTitles(ctx context.Context, tag, kind string) ([]core.TitleKey, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT kind, title FROM commits WHERE tag = ? AND kind = ? GROUP BY kind, title ORDER BY MIN(id)`,
		tag, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: list titles: %w", core.ErrStoreFailure, err)
	}
	defer rows.Close()

	var titles []core.TitleKey
	for rows.Next() {
		var k core.TitleKey
		if err := rows.Scan(&k.Kind, &k.Title); err != nil {
			return nil, fmt.Errorf("%w: scan title: %w", core.ErrStoreFailure, err)
		}
		titles = append(titles, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list titles: %w", core.ErrStoreFailure, err)
	}
	return titles, nil
}

// ListContents returns the distinct contents for a title, by first insertion.
func (r *Repository) ListContents(ctx context.Context, tag, kind, title string) ([]string, error) {
	return r.queryStrings(ctx,
		`SELECT content FROM commits WHERE tag = ? AND kind = ? AND title = ? GROUP BY content ORDER BY MIN(id)`,
		tag, kind, title)
}

// ListTags returns every tag, in the order they were first recorded.
func (r *Repository) ListTags(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT tag FROM commits GROUP BY tag ORDER BY MIN(id)`)
}

// Count returns the number of commits recorded under tag.
func (r *Repository) Count(ctx context.Context, tag string) (int, error) {
	db, err := r.conn()
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commits WHERE tag = ?`, tag).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %w", core.ErrStoreFailure, err)
	}
	return n, nil
}

func (r *Repository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreFailure, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrStoreFailure, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreFailure, err)
	}
	return out, nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Cataloger = (*Repository)(nil)
