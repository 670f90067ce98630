package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/ports"
)

// repositoryRepository implements ports.RepositoryRepository using SQLite.
type repositoryRepository struct {
	db *sql.DB
}

// newRepositoryRepository creates a new tracked-repository repository.
func newRepositoryRepository(db *sql.DB) ports.RepositoryRepository {
	return &repositoryRepository{db: db}
}

const repositoryColumns = `id, path, name, current_branch, is_favorite, last_opened_at, created_at, updated_at`

// Save persists a new repository and fills in its assigned ID.
func (r *repositoryRepository) Save(ctx context.Context, repo *domain.Repository) error {
	query := `
		INSERT INTO repositories (path, name, current_branch, is_favorite, last_opened_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		repo.Path,
		repo.Name,
		nullableString(repo.CurrentBranch),
		repo.IsFavorite,
		repo.LastOpenedAt,
		repo.CreatedAt,
		repo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save repository: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read repository id: %w", err)
	}
	repo.ID = id
	return nil
}

// FindByID retrieves a repository by its identifier.
func (r *repositoryRepository) FindByID(ctx context.Context, id int64) (*domain.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories WHERE id = ?`

	repo, err := scanRepository(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, domain.ErrRepositoryNotFound
	}
	return repo, nil
}

// FindByPath retrieves a repository by its working-tree path, or nil when
// the path is not tracked.
func (r *repositoryRepository) FindByPath(ctx context.Context, path string) (*domain.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories WHERE path = ?`
	return scanRepository(r.db.QueryRowContext(ctx, query, path))
}

// FindAll retrieves all repositories ordered by last opened descending.
func (r *repositoryRepository) FindAll(ctx context.Context) ([]*domain.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories ORDER BY last_opened_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repositories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var repos []*domain.Repository
	for rows.Next() {
		repo, err := scanRepositoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repository: %w", err)
		}
		repos = append(repos, repo)
	}
	return repos, rows.Err()
}

// Update modifies an existing repository.
func (r *repositoryRepository) Update(ctx context.Context, repo *domain.Repository) error {
	query := `
		UPDATE repositories
		SET path = ?, name = ?, current_branch = ?, is_favorite = ?,
		    last_opened_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		repo.Path,
		repo.Name,
		nullableString(repo.CurrentBranch),
		repo.IsFavorite,
		repo.LastOpenedAt,
		repo.UpdatedAt,
		repo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update repository: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrRepositoryNotFound
	}
	return nil
}

// Delete removes a repository; its commits are removed by the FK cascade.
func (r *repositoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM repositories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete repository: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrRepositoryNotFound
	}
	return nil
}

// nullableString returns a NULL for the empty string.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// scanRepository scans a single repository row, mapping sql.ErrNoRows to nil.
func scanRepository(row *sql.Row) (*domain.Repository, error) {
	var repo domain.Repository
	var branch sql.NullString
	var lastOpened sql.NullTime

	err := row.Scan(
		&repo.ID,
		&repo.Path,
		&repo.Name,
		&branch,
		&repo.IsFavorite,
		&lastOpened,
		&repo.CreatedAt,
		&repo.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if branch.Valid {
		repo.CurrentBranch = branch.String
	}
	if lastOpened.Valid {
		repo.LastOpenedAt = lastOpened.Time
	}
	return &repo, nil
}

// scanRepositoryRow scans one repository from a multi-row result.
func scanRepositoryRow(rows *sql.Rows) (*domain.Repository, error) {
	var repo domain.Repository
	var branch sql.NullString
	var lastOpened sql.NullTime

	err := rows.Scan(
		&repo.ID,
		&repo.Path,
		&repo.Name,
		&branch,
		&repo.IsFavorite,
		&lastOpened,
		&repo.CreatedAt,
		&repo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if branch.Valid {
		repo.CurrentBranch = branch.String
	}
	if lastOpened.Valid {
		repo.LastOpenedAt = lastOpened.Time
	}
	return &repo, nil
}
