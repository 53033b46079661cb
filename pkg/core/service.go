package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Service handles the business logic for recording commits.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	progress func(Commit)

	mu         sync.RWMutex
	recorded   int
	duplicates int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress registers a callback invoked once per newly recorded commit.
func WithProgress(fn func(Commit)) Option {
	return func(s *Service) {
		s.progress = fn
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}

// Insert records a single commit under tag.
func (s *Service) Insert(ctx context.Context, tag string, c Commit) (Outcome, error) {
	if c.Hash == "" {
		return Inserted, fmt.Errorf("insert %q: %w", c.Content, ErrEmptyHash)
	}

	outcome, err := s.repo.Insert(ctx, tag, c)
	if err != nil {
		return outcome, err
	}

	s.mu.Lock()
	if outcome == Duplicate {
		s.duplicates++
	} else {
		s.recorded++
	}
	s.mu.Unlock()

	return outcome, nil
}

// Record inserts commits one after the other and returns how many were new.
// Duplicates are skipped silently. There is no enclosing transaction:
// rows recorded before a failure stay recorded.
func (s *Service) Record(ctx context.Context, tag string, commits []Commit) (int, error) {
	count := 0
	for _, c := range commits {
		outcome, err := s.Insert(ctx, tag, c)
		if err != nil {
			return count, err
		}
		if outcome == Duplicate {
			s.logger.Debug("skipping recorded commit", "hash", c.Hash, "tag", tag)
			continue
		}
		count++
		if s.progress != nil {
			s.progress(c)
		}
	}

	s.logger.Debug("recorded commits", "tag", tag, "new", count, "total", len(commits))
	return count, nil
}

// Tags lists every tag known to the repository.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	c, ok := s.repo.(Cataloger)
	if !ok {
		return nil, errors.New("repository does not support listing tags")
	}
	return c.ListTags(ctx)
}

// Count returns the number of commits stored under tag.
func (s *Service) Count(ctx context.Context, tag string) (int, error) {
	c, ok := s.repo.(Cataloger)
	if !ok {
		return 0, errors.New("repository does not support counting")
	}
	return c.Count(ctx, tag)
}
