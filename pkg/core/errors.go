package core

import "errors"

// Common errors.
var (
	ErrMalformedLine    = errors.New("malformed commit line")
	ErrEmptyHash        = errors.New("commit hash cannot be empty")
	ErrStoreUnavailable = errors.New("commit store unavailable")
	ErrStoreFailure     = errors.New("commit store failure")
	ErrUnknownKindLabel = errors.New("no label for commit kind")
	ErrReadOnly         = errors.New("repository is in read-only mode")
)
