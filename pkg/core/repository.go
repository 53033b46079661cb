package core

import "context"

// Repository defines the contract for storing and querying commits.
// Adhering to this interface keeps the core independent of the
// underlying storage mechanism.
type Repository interface {
	Reader

	// Insert records a commit under tag. A commit whose hash is already
	// stored, under any tag, yields Duplicate and a nil error.
	// Uniqueness must be enforced by the backend itself so that concurrent
	// processes sharing a store cannot both record the same hash.
	Insert(ctx context.Context, tag string, c Commit) (Outcome, error)

	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error
}

// Reader is the query surface used to rebuild release notes.
// Every listing returns distinct values in first-insertion order.
type Reader interface {
	ListKinds(ctx context.Context, tag string) ([]string, error)
	ListTitles(ctx context.Context, tag, kind string) ([]TitleKey, error)
	ListContents(ctx context.Context, tag, kind, title string) ([]string, error)
}

// Cataloger is implemented by repositories able to enumerate their tags.
type Cataloger interface {
	ListTags(ctx context.Context) ([]string, error)
	Count(ctx context.Context, tag string) (int, error)
}
