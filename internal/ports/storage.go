// Package ports defines the interfaces (driven and driving ports)
// for gitdeck following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/dvoss/gitdeck/internal/domain"
)

// CommitRepository defines the interface for commit persistence.
// This is a driven port (implemented by adapters).
type CommitRepository interface {
	// InsertBatch persists a batch of commits with conflict-skip semantics:
	// a row already present by its (repository_id, hash) key is silently
	// skipped. It returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, commits []*domain.Commit) (int, error)

	// Latest returns the most recent commit for a repository by commit
	// date, or nil when none is persisted yet.
	Latest(ctx context.Context, repositoryID int64) (*domain.Commit, error)

	// List returns commits for a repository ordered by date descending.
	List(ctx context.Context, repositoryID int64, offset, limit int) ([]*domain.Commit, error)

	// Count returns the number of persisted commits for a repository.
	Count(ctx context.Context, repositoryID int64) (int, error)

	// DeleteByRepository removes all commits for a repository.
	DeleteByRepository(ctx context.Context, repositoryID int64) error
}

// RepositoryRepository defines the interface for tracked-repository
// persistence. This is a driven port (implemented by adapters).
type RepositoryRepository interface {
	// Save persists a new repository and fills in its assigned ID.
	Save(ctx context.Context, repo *domain.Repository) error

	// FindByID retrieves a repository by its identifier.
	FindByID(ctx context.Context, id int64) (*domain.Repository, error)

	// FindByPath retrieves a repository by its working-tree path, or nil
	// when the path is not tracked.
	FindByPath(ctx context.Context, path string) (*domain.Repository, error)

	// FindAll retrieves all repositories ordered by last opened descending.
	FindAll(ctx context.Context) ([]*domain.Repository, error)

	// Update modifies an existing repository.
	Update(ctx context.Context, repo *domain.Repository) error

	// Delete removes a repository; its commits are removed by cascade.
	Delete(ctx context.Context, id int64) error
}

// SettingsRepository defines the interface for application key/value
// settings. This is a driven port (implemented by adapters).
type SettingsRepository interface {
	// Get returns the value for key, or domain.ErrSettingNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Commits provides access to commit operations.
	Commits() CommitRepository

	// Repositories provides access to tracked-repository operations.
	Repositories() RepositoryRepository

	// Settings provides access to application settings.
	Settings() SettingsRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
