package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/ports"
)

// commitRepository implements ports.CommitRepository using SQLite.
type commitRepository struct {
	db *sql.DB
}

// newCommitRepository creates a new commit repository.
func newCommitRepository(db *sql.DB) ports.CommitRepository {
	return &commitRepository{db: db}
}

const commitColumns = `repository_id, hash, abbreviated_hash, author_name, author_email, date, message, body, parent_hashes`

// InsertBatch persists a batch of commits inside one transaction. Rows that
// collide on (repository_id, hash) are skipped by INSERT OR IGNORE; the
// returned count includes only rows actually inserted.
func (r *commitRepository) InsertBatch(ctx context.Context, commits []*domain.Commit) (int, error) {
	if len(commits) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin batch insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO commits (`+commitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	added := 0
	for _, commit := range commits {
		var body sql.NullString
		if commit.Body != nil {
			body = sql.NullString{String: *commit.Body, Valid: true}
		}
		var parents sql.NullString
		if commit.ParentHashes != "" {
			parents = sql.NullString{String: commit.ParentHashes, Valid: true}
		}

		result, err := stmt.ExecContext(ctx,
			commit.RepositoryID,
			commit.Hash,
			commit.AbbreviatedHash,
			commit.AuthorName,
			commit.AuthorEmail,
			commit.Date,
			commit.Message,
			body,
			parents,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert commit %s: %w", commit.Hash, err)
		}
		rows, _ := result.RowsAffected()
		added += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch insert: %w", err)
	}

	return added, nil
}

// Latest returns the most recent commit for a repository by commit date, or
// nil when none is persisted yet.
func (r *commitRepository) Latest(ctx context.Context, repositoryID int64) (*domain.Commit, error) {
	query := `
		SELECT ` + commitColumns + `
		FROM commits
		WHERE repository_id = ?
		ORDER BY date DESC
		LIMIT 1
	`

	commit, err := scanCommit(r.db.QueryRowContext(ctx, query, repositoryID))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest commit: %w", err)
	}
	return commit, nil
}

// List returns commits for a repository ordered by date descending.
func (r *commitRepository) List(ctx context.Context, repositoryID int64, offset, limit int) ([]*domain.Commit, error) {
	query := `
		SELECT ` + commitColumns + `
		FROM commits
		WHERE repository_id = ?
		ORDER BY date DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, repositoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query commits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var commits []*domain.Commit
	for rows.Next() {
		commit, err := scanCommitRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commit: %w", err)
		}
		commits = append(commits, commit)
	}
	return commits, rows.Err()
}

// Count returns the number of persisted commits for a repository.
func (r *commitRepository) Count(ctx context.Context, repositoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM commits WHERE repository_id = ?`, repositoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits: %w", err)
	}
	return count, nil
}

// DeleteByRepository removes all commits for a repository.
func (r *commitRepository) DeleteByRepository(ctx context.Context, repositoryID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM commits WHERE repository_id = ?`, repositoryID)
	if err != nil {
		return fmt.Errorf("failed to delete commits: %w", err)
	}
	return nil
}

// scanCommit scans a single commit row, mapping sql.ErrNoRows to nil.
func scanCommit(row *sql.Row) (*domain.Commit, error) {
	var commit domain.Commit
	var body sql.NullString
	var parents sql.NullString

	err := row.Scan(
		&commit.RepositoryID,
		&commit.Hash,
		&commit.AbbreviatedHash,
		&commit.AuthorName,
		&commit.AuthorEmail,
		&commit.Date,
		&commit.Message,
		&body,
		&parents,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if body.Valid {
		commit.Body = &body.String
	}
	if parents.Valid {
		commit.ParentHashes = parents.String
	}
	return &commit, nil
}

// scanCommitRow scans one commit from a multi-row result.
func scanCommitRow(rows *sql.Rows) (*domain.Commit, error) {
	var commit domain.Commit
	var body sql.NullString
	var parents sql.NullString

	err := rows.Scan(
		&commit.RepositoryID,
		&commit.Hash,
		&commit.AbbreviatedHash,
		&commit.AuthorName,
		&commit.AuthorEmail,
		&commit.Date,
		&commit.Message,
		&body,
		&parents,
	)
	if err != nil {
		return nil, err
	}

	if body.Valid {
		commit.Body = &body.String
	}
	if parents.Valid {
		commit.ParentHashes = parents.String
	}
	return &commit, nil
}
