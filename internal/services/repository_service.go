package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/logging"
	"github.com/dvoss/gitdeck/internal/ports"
	"github.com/sahilm/fuzzy"
)

// RepositoryService handles tracked-repository use cases.
type RepositoryService struct {
	storage   ports.Storage
	inspector ports.WorktreeInspector
	log       logging.Logger
}

// NewRepositoryService creates a new repository service.
func NewRepositoryService(storage ports.Storage, inspector ports.WorktreeInspector, log logging.Logger) *RepositoryService {
	if log == nil {
		log = logging.Nop()
	}
	return &RepositoryService{storage: storage, inspector: inspector, log: log}
}

// Ensure RepositoryService implements the MCP provider port.
var _ ports.RepositoryProvider = (*RepositoryService)(nil)

// Add validates the path as a git working tree and tracks it. Adding an
// already-tracked path refreshes its branch and last-opened time instead of
// inserting a duplicate.
func (s *RepositoryService) Add(ctx context.Context, path string) (*domain.Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	info, err := s.inspector.Inspect(ctx, abs)
	if err != nil {
		return nil, err
	}

	existing, err := s.storage.Repositories().FindByPath(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("look up repository: %w", err)
	}
	if existing != nil {
		existing.CurrentBranch = info.Branch
		existing.Touch()
		if err := s.storage.Repositories().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("refresh repository: %w", err)
		}
		return existing, nil
	}

	repo := domain.NewRepository(abs)
	repo.CurrentBranch = info.Branch
	if err := s.storage.Repositories().Save(ctx, repo); err != nil {
		return nil, fmt.Errorf("save repository: %w", err)
	}

	s.log.Info("repository added", "repository_id", repo.ID, "path", abs)
	return repo, nil
}

// List returns all tracked repositories, most recently opened first.
func (s *RepositoryService) List(ctx context.Context) ([]*domain.Repository, error) {
	return s.storage.Repositories().FindAll(ctx)
}

// Get retrieves a repository by its identifier.
func (s *RepositoryService) Get(ctx context.Context, id int64) (*domain.Repository, error) {
	return s.storage.Repositories().FindByID(ctx, id)
}

// Remove deletes a tracked repository along with its persisted commits.
func (s *RepositoryService) Remove(ctx context.Context, id int64) error {
	return s.storage.Repositories().Delete(ctx, id)
}

// ToggleFavorite flips the favorite flag of a repository.
func (s *RepositoryService) ToggleFavorite(ctx context.Context, id int64) (*domain.Repository, error) {
	repo, err := s.storage.Repositories().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	repo.IsFavorite = !repo.IsFavorite
	repo.Touch()
	if err := s.storage.Repositories().Update(ctx, repo); err != nil {
		return nil, fmt.Errorf("update repository: %w", err)
	}
	return repo, nil
}

// UpdateBranch records the repository's current branch.
func (s *RepositoryService) UpdateBranch(ctx context.Context, id int64, branch string) error {
	repo, err := s.storage.Repositories().FindByID(ctx, id)
	if err != nil {
		return err
	}

	repo.CurrentBranch = branch
	repo.Touch()
	return s.storage.Repositories().Update(ctx, repo)
}

// Resolve finds a repository by reference: a numeric ID, an exact name, or a
// fuzzy name match as a last resort.
func (s *RepositoryService) Resolve(ctx context.Context, ref string) (*domain.Repository, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return s.storage.Repositories().FindByID(ctx, id)
	}

	repos, err := s.storage.Repositories().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(repos))
	for i, repo := range repos {
		if repo.Name == ref {
			return repo, nil
		}
		names[i] = repo.Name
	}

	matches := fuzzy.Find(ref, names)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, ref)
	}
	return repos[matches[0].Index], nil
}
