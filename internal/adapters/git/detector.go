package git

import (
	"context"
	"fmt"
	"os"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/ports"
	gogit "github.com/go-git/go-git/v5"
)

// Detector implements the WorktreeInspector port using go-git.
type Detector struct{}

// NewDetector creates a new worktree detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Ensure Detector implements the WorktreeInspector port.
var _ ports.WorktreeInspector = (*Detector)(nil)

// Inspect opens the working tree at path and reads its current branch, head
// commit, origin URL and cleanliness.
func (d *Detector) Inspect(_ context.Context, path string) (*domain.WorktreeInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryPath, path)
	}

	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotGitRepository, path)
	}

	info := &domain.WorktreeInfo{}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("read HEAD: %w", err)
	}
	info.Head = head.Hash().String()
	info.Branch = head.Name().Short()
	if info.Branch == "HEAD" {
		info.Branch = "HEAD detached"
	}

	// Remote name is cosmetic; ignore lookup failures.
	if remotes, err := repo.Remotes(); err == nil {
		for _, remote := range remotes {
			urls := remote.Config().URLs
			if remote.Config().Name == "origin" && len(urls) > 0 {
				info.RemoteURL = urls[0]
				break
			}
		}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("read worktree status: %w", err)
	}
	info.IsClean = status.IsClean()

	return info, nil
}
