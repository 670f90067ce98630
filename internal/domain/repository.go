package domain

import (
	"path/filepath"
	"time"
)

// Repository is a tracked local working tree.
type Repository struct {
	ID            int64
	Path          string
	Name          string
	CurrentBranch string
	IsFavorite    bool
	LastOpenedAt  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRepository creates a repository entry for the given working-tree path.
// The name defaults to the last path element.
func NewRepository(path string) *Repository {
	now := time.Now()
	return &Repository{
		Path:         path,
		Name:         filepath.Base(path),
		LastOpenedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch records that the repository was opened.
func (r *Repository) Touch() {
	now := time.Now()
	r.LastOpenedAt = now
	r.UpdatedAt = now
}

// WorktreeInfo is a point-in-time view of a working tree, read directly from
// the repository rather than the persisted store.
type WorktreeInfo struct {
	Branch    string
	Head      string
	RemoteURL string
	IsClean   bool
}
