package fs

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path       string `json:"path"`
	SystemDir  string `json:"system_dir"`
	ReadOnly   bool   `json:"read_only"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:       r.Path,
		SystemDir:  r.config.SystemDir,
		ReadOnly:   r.config.ReadOnly,
		Inserted:   r.inserted,
		Duplicates: r.duplicates,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
