package domain

import "errors"

// Common domain errors.
var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrRepositoryPath     = errors.New("repository path does not exist")
	ErrNotGitRepository   = errors.New("not a git repository")
	ErrSettingNotFound    = errors.New("setting not found")
)
