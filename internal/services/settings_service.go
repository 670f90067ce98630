package services

import (
	"context"

	"github.com/dvoss/gitdeck/internal/ports"
)

// SettingsService handles application key/value settings.
type SettingsService struct {
	storage ports.Storage
}

// NewSettingsService creates a new settings service.
func NewSettingsService(storage ports.Storage) *SettingsService {
	return &SettingsService{storage: storage}
}

// Get returns the value for key, or domain.ErrSettingNotFound.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	return s.storage.Settings().Get(ctx, key)
}

// Set inserts or replaces the value for key.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return s.storage.Settings().Set(ctx, key, value)
}
