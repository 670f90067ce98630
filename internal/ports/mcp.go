package ports

import (
	"context"

	"github.com/dvoss/gitdeck/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error
}

// HistoryProvider exposes the commit-history pipeline to the MCP server.
// This is a driven port (implemented by the services layer).
type HistoryProvider interface {
	// Scan runs an incremental scan for a repository.
	Scan(ctx context.Context, repositoryID int64, repoPath string, onProgress domain.ProgressFunc) domain.ScanResult

	// FullScan clears persisted commits and rescans the whole history.
	FullScan(ctx context.Context, repositoryID int64, repoPath string, onProgress domain.ProgressFunc) domain.ScanResult

	// ListCommits returns persisted commits, newest first.
	ListCommits(ctx context.Context, repositoryID int64, offset, limit int) ([]*domain.Commit, error)

	// CountCommits returns the number of persisted commits.
	CountCommits(ctx context.Context, repositoryID int64) (int, error)

	// CommitFiles returns the changed-file list for one commit.
	CommitFiles(ctx context.Context, repoPath, hash string) []domain.CommitFile

	// FileDiff returns the diff for one file in one commit.
	FileDiff(ctx context.Context, repoPath, hash, file string) string
}

// RepositoryProvider exposes tracked repositories to the MCP server.
// This is a driven port (implemented by the services layer).
type RepositoryProvider interface {
	// List returns all tracked repositories.
	List(ctx context.Context) ([]*domain.Repository, error)

	// Resolve finds a repository by ID or (fuzzy) name.
	Resolve(ctx context.Context, ref string) (*domain.Repository, error)
}
