package ports

import (
	"context"

	"github.com/dvoss/gitdeck/internal/domain"
)

// LogSource extracts structured commit data from a working tree using the
// external git tool. This is a driven port (implemented by adapters).
type LogSource interface {
	// Extract returns the commits reachable from the current branch tip,
	// newest first. When sinceHash is non-empty only commits not reachable
	// from it are returned (a since..HEAD range). The second return value
	// counts malformed records that were discarded during parsing.
	Extract(ctx context.Context, repoPath, sinceHash string) ([]*domain.Commit, int, error)

	// CommitFiles returns the per-file change list for one commit.
	CommitFiles(ctx context.Context, repoPath, hash string) ([]domain.CommitFile, error)

	// FileDiff returns the unified diff for one file in one commit. Commits
	// without a parent fall back to a root-compatible diff form.
	FileDiff(ctx context.Context, repoPath, hash, file string) (string, error)
}

// WorktreeInspector reads live repository state without going through the
// persisted store. This is a driven port (implemented by adapters).
type WorktreeInspector interface {
	// Inspect opens the working tree at path and returns its current
	// branch, head and cleanliness. Returns domain.ErrNotGitRepository
	// when the path is not a git working tree.
	Inspect(ctx context.Context, path string) (*domain.WorktreeInfo, error)
}
