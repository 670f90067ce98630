package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dvoss/gitdeck/internal/domain"
)

func TestRepositoryRepository_SaveAndFind(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := domain.NewRepository("/home/dev/project")
	repo.CurrentBranch = "main"

	if err := store.Repositories().Save(ctx, repo); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if repo.ID == 0 {
		t.Error("Save() should assign an ID")
	}

	t.Run("find by id", func(t *testing.T) {
		found, err := store.Repositories().FindByID(ctx, repo.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Path != "/home/dev/project" {
			t.Errorf("FindByID() path = %q, want %q", found.Path, "/home/dev/project")
		}
		if found.Name != "project" {
			t.Errorf("FindByID() name = %q, want %q", found.Name, "project")
		}
		if found.CurrentBranch != "main" {
			t.Errorf("FindByID() branch = %q, want %q", found.CurrentBranch, "main")
		}
	})

	t.Run("find by path", func(t *testing.T) {
		found, err := store.Repositories().FindByPath(ctx, "/home/dev/project")
		if err != nil {
			t.Fatalf("FindByPath() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindByPath() returned nil for tracked path")
		}
		if found.ID != repo.ID {
			t.Errorf("FindByPath() id = %d, want %d", found.ID, repo.ID)
		}
	})

	t.Run("find by unknown path returns nil", func(t *testing.T) {
		found, err := store.Repositories().FindByPath(ctx, "/nowhere")
		if err != nil {
			t.Fatalf("FindByPath() error = %v", err)
		}
		if found != nil {
			t.Errorf("FindByPath() = %v, want nil", found)
		}
	})

	t.Run("find by unknown id returns not found", func(t *testing.T) {
		_, err := store.Repositories().FindByID(ctx, 9999)
		if !errors.Is(err, domain.ErrRepositoryNotFound) {
			t.Errorf("FindByID() error = %v, want ErrRepositoryNotFound", err)
		}
	})

	t.Run("duplicate path fails", func(t *testing.T) {
		dup := domain.NewRepository("/home/dev/project")
		if err := store.Repositories().Save(ctx, dup); err == nil {
			t.Error("Save() should fail for a duplicate path")
		}
	})
}

func TestRepositoryRepository_FindAll(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	older := domain.NewRepository("/home/dev/older")
	older.LastOpenedAt = time.Unix(1700000000, 0)
	newer := domain.NewRepository("/home/dev/newer")
	newer.LastOpenedAt = time.Unix(1700003600, 0)

	if err := store.Repositories().Save(ctx, older); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Repositories().Save(ctx, newer); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	repos, err := store.Repositories().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("FindAll() returned %d repositories, want 2", len(repos))
	}
	if repos[0].Name != "newer" {
		t.Errorf("FindAll()[0] = %q, want most recently opened first", repos[0].Name)
	}
}

func TestRepositoryRepository_Update(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := domain.NewRepository("/home/dev/project")
	if err := store.Repositories().Save(ctx, repo); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	repo.CurrentBranch = "feature/extract"
	repo.IsFavorite = true
	repo.Touch()
	if err := store.Repositories().Update(ctx, repo); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := store.Repositories().FindByID(ctx, repo.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.CurrentBranch != "feature/extract" {
		t.Errorf("branch = %q, want %q", found.CurrentBranch, "feature/extract")
	}
	if !found.IsFavorite {
		t.Error("IsFavorite should be true after update")
	}

	t.Run("update of missing row returns not found", func(t *testing.T) {
		ghost := domain.NewRepository("/home/dev/ghost")
		ghost.ID = 9999
		if err := store.Repositories().Update(ctx, ghost); !errors.Is(err, domain.ErrRepositoryNotFound) {
			t.Errorf("Update() error = %v, want ErrRepositoryNotFound", err)
		}
	})
}

func TestRepositoryRepository_Delete(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := domain.NewRepository("/home/dev/project")
	if err := store.Repositories().Save(ctx, repo); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Repositories().Delete(ctx, repo.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Repositories().FindByID(ctx, repo.ID); !errors.Is(err, domain.ErrRepositoryNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrRepositoryNotFound", err)
	}

	t.Run("deleting again returns not found", func(t *testing.T) {
		if err := store.Repositories().Delete(ctx, repo.ID); !errors.Is(err, domain.ErrRepositoryNotFound) {
			t.Errorf("Delete() error = %v, want ErrRepositoryNotFound", err)
		}
	})
}
