package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/ports"
)

// settingsRepository implements ports.SettingsRepository using SQLite.
type settingsRepository struct {
	db *sql.DB
}

// newSettingsRepository creates a new settings repository.
func newSettingsRepository(db *sql.DB) ports.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the value for key.
func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", domain.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value for key.
func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}
