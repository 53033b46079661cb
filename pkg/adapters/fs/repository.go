// Package fs implements core.Repository as one YAML file per commit.
//
// Files live under <root>/<system dir>/commits and are named after the
// SHA-256 digest of the commit hash, which makes the filesystem itself the
// uniqueness constraint whatever the hash length.
//
// Listings follow the recorded_at stamp of each file. A Repository never
// stamps a record at or before the newest one it has seen, so a clock
// stepping backwards does not reorder a store. Separate processes writing
// at the same time are ordered by their own clocks.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/dedma/pkg/core"
)

const (
	commitsDir = "commits"
	fileExt    = ".yaml"
)

// Config holds the configuration for the filesystem repository.
type Config struct {
	Root      string
	SystemDir string // e.g. ".dedma"
	ReadOnly  bool
	Logger    *slog.Logger
}

// record is the on-disk shape of a commit.
type record struct {
	Tag        string `yaml:"tag"`
	Kind       string `yaml:"kind"`
	Title      string `yaml:"title"`
	Content    string `yaml:"content"`
	Hash       string `yaml:"hash"`
	RecordedAt int64  `yaml:"recorded_at"`
}

// Repository implements core.Repository using the filesystem.
type Repository struct {
	Path   string
	config Config
	logger *slog.Logger

	mu          sync.RWMutex
	initialized bool
	lastStamp   int64
	inserted    int
	duplicates  int
}

// NewRepository creates a filesystem-backed repository.
func NewRepository(config Config) *Repository {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		Path:   filepath.Join(config.Root, config.SystemDir, commitsDir),
		config: config,
		logger: logger,
	}
}

// Initialize creates the commits directory when missing and reads the
// newest recording stamp.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: not a directory: %s", core.ErrStoreUnavailable, r.Path)
		}
	} else if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", core.ErrStoreUnavailable, err)
	}

	records, err := r.readRecords(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		r.lastStamp = max(r.lastStamp, rec.RecordedAt)
	}

	r.initialized = true
	return nil
}

func (r *Repository) filename(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return filepath.Join(r.Path, hex.EncodeToString(sum[:])+fileExt)
}

// nextStamp returns the wall clock in nanoseconds, bumped past the newest
// stamp already observed.
func (r *Repository) nextStamp() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := max(time.Now().UnixNano(), r.lastStamp+1)
	r.lastStamp = stamp
	return stamp
}

// Insert writes the commit file unless one already exists for its hash.
func (r *Repository) Insert(ctx context.Context, tag string, c core.Commit) (core.Outcome, error) {
	if r.config.ReadOnly {
		return core.Inserted, core.ErrReadOnly
	}
	if c.Hash == "" {
		return core.Inserted, core.ErrEmptyHash
	}
	if err := r.ready(); err != nil {
		return core.Inserted, err
	}

	data, err := yaml.Marshal(record{
		Tag:        tag,
		Kind:       c.Kind,
		Title:      c.Title,
		Content:    c.Content,
		Hash:       c.Hash,
		RecordedAt: r.nextStamp(),
	})
	if err != nil {
		return core.Inserted, fmt.Errorf("%w: encode %s: %w", core.ErrStoreFailure, c.Hash, err)
	}

	err = writeFileExclusive(r.filename(c.Hash), data, 0644)
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case errors.Is(err, errExists):
		r.duplicates++
		r.logger.Debug("duplicate commit", "hash", c.Hash, "tag", tag)
		return core.Duplicate, nil
	case err != nil:
		return core.Inserted, fmt.Errorf("%w: %w", core.ErrStoreFailure, err)
	}
	r.inserted++
	return core.Inserted, nil
}

func (r *Repository) ready() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.initialized {
		return fmt.Errorf("%w: repository not initialized", core.ErrStoreUnavailable)
	}
	return nil
}

// load reads every commit file, in recording order.
func (r *Repository) load(ctx context.Context) ([]record, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	records, err := r.readRecords(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	for _, rec := range records {
		r.lastStamp = max(r.lastStamp, rec.RecordedAt)
	}
	r.mu.Unlock()

	slices.SortStableFunc(records, func(a, b record) int {
		if a.RecordedAt != b.RecordedAt {
			if a.RecordedAt < b.RecordedAt {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Hash, b.Hash)
	})
	return records, nil
}

// readRecords decodes every commit file, in directory order.
func (r *Repository) readRecords(ctx context.Context) ([]record, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreFailure, err)
	}

	var records []record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) || strings.HasPrefix(e.Name(), TempFilePrefix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(filepath.Join(r.Path, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrStoreFailure, err)
		}
		var rec record
		if err := yaml.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", core.ErrStoreFailure, e.Name(), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// distinct collects key(rec) for matching records, keeping first occurrences.
func (r *Repository) distinct(ctx context.Context, match func(record) bool, key func(record) string) ([]string, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := make(map[string]bool)
	for _, rec := range records {
		if !match(rec) {
			continue
		}
		k := key(rec)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// ListKinds returns the distinct kinds recorded under tag.
func (r *Repository) ListKinds(ctx context.Context, tag string) ([]string, error) {
	return r.distinct(ctx,
		func(rec record) bool { return rec.Tag == tag },
		func(rec record) string { return rec.Kind })
}

// ListTitles returns the distinct titles recorded under tag and kind.
func (r *Repository) ListTitles(ctx context.Context, tag, kind string) ([]core.TitleKey, error) {
	titles, err := r.distinct(ctx,
		func(rec record) bool { return rec.Tag == tag && rec.Kind == kind },
		func(rec record) string { return rec.Title })
	if err != nil {
		return nil, err
	}

	keys := make([]core.TitleKey, 0, len(titles))
	for _, t := range titles {
		keys = append(keys, core.TitleKey{Kind: kind, Title: t})
	}
	return keys, nil
}

// ListContents returns the distinct contents for a title, by first recording.
func (r *Repository) ListContents(ctx context.Context, tag, kind, title string) ([]string, error) {
	return r.distinct(ctx,
		func(rec record) bool { return rec.Tag == tag && rec.Kind == kind && rec.Title == title },
		func(rec record) string { return rec.Content })
}

// ListTags returns every tag, in the order they were first recorded.
func (r *Repository) ListTags(ctx context.Context) ([]string, error) {
	return r.distinct(ctx,
		func(record) bool { return true },
		func(rec record) string { return rec.Tag })
}

// Count returns the number of commits recorded under tag.
func (r *Repository) Count(ctx context.Context, tag string) (int, error) {
	records, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, rec := range records {
		if rec.Tag == tag {
			n++
		}
	}
	return n, nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Cataloger = (*Repository)(nil)
