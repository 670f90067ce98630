package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/ports"
)

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	t.Helper()
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { store.Close() }
}

// trackRepository inserts a repository row so commit FKs resolve.
func trackRepository(t *testing.T, store ports.Storage, path string) *domain.Repository {
	t.Helper()
	repo := domain.NewRepository(path)
	if err := store.Repositories().Save(context.Background(), repo); err != nil {
		t.Fatalf("Failed to save repository: %v", err)
	}
	return repo
}

// makeCommit builds a commit with a deterministic hash derived from n and a
// date n minutes after a fixed base.
func makeCommit(repositoryID int64, n int) *domain.Commit {
	hash := fmt.Sprintf("%040x", n)
	return &domain.Commit{
		RepositoryID:    repositoryID,
		Hash:            hash,
		AbbreviatedHash: hash[:7],
		AuthorName:      "Test Author",
		AuthorEmail:     "author@example.com",
		Date:            time.Unix(1700000000, 0).Add(time.Duration(n) * time.Minute),
		Message:         fmt.Sprintf("commit %d", n),
	}
}

func TestCommitRepository_InsertBatch(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := trackRepository(t, store, "/tmp/project")

	t.Run("inserts new commits", func(t *testing.T) {
		batch := []*domain.Commit{
			makeCommit(repo.ID, 1),
			makeCommit(repo.ID, 2),
			makeCommit(repo.ID, 3),
		}

		added, err := store.Commits().InsertBatch(ctx, batch)
		if err != nil {
			t.Fatalf("InsertBatch() error = %v", err)
		}
		if added != 3 {
			t.Errorf("InsertBatch() added = %d, want 3", added)
		}
	})

	t.Run("skips duplicate hashes", func(t *testing.T) {
		batch := []*domain.Commit{
			makeCommit(repo.ID, 3), // already persisted
			makeCommit(repo.ID, 4),
		}

		added, err := store.Commits().InsertBatch(ctx, batch)
		if err != nil {
			t.Fatalf("InsertBatch() error = %v", err)
		}
		if added != 1 {
			t.Errorf("InsertBatch() added = %d, want 1", added)
		}

		count, err := store.Commits().Count(ctx, repo.ID)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 4 {
			t.Errorf("Count() = %d, want 4", count)
		}
	})

	t.Run("same hash in another repository inserts", func(t *testing.T) {
		other := trackRepository(t, store, "/tmp/other")
		batch := []*domain.Commit{makeCommit(other.ID, 1)}

		added, err := store.Commits().InsertBatch(ctx, batch)
		if err != nil {
			t.Fatalf("InsertBatch() error = %v", err)
		}
		if added != 1 {
			t.Errorf("InsertBatch() added = %d, want 1", added)
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		added, err := store.Commits().InsertBatch(ctx, nil)
		if err != nil {
			t.Fatalf("InsertBatch() error = %v", err)
		}
		if added != 0 {
			t.Errorf("InsertBatch() added = %d, want 0", added)
		}
	})
}

func TestCommitRepository_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := trackRepository(t, store, "/tmp/project")

	body := "multi-line\nbody text"
	commit := makeCommit(repo.ID, 1)
	commit.Body = &body
	commit.ParentHashes = fmt.Sprintf("%040x", 99)

	if _, err := store.Commits().InsertBatch(ctx, []*domain.Commit{commit}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	got, err := store.Commits().Latest(ctx, repo.ID)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got == nil {
		t.Fatal("Latest() returned nil")
	}
	if got.Hash != commit.Hash {
		t.Errorf("Latest() hash = %q, want %q", got.Hash, commit.Hash)
	}
	if got.Body == nil || *got.Body != body {
		t.Errorf("Latest() body = %v, want %q", got.Body, body)
	}
	if got.ParentHashes != commit.ParentHashes {
		t.Errorf("Latest() parents = %q, want %q", got.ParentHashes, commit.ParentHashes)
	}
	if !got.Date.Equal(commit.Date) {
		t.Errorf("Latest() date = %v, want %v", got.Date, commit.Date)
	}
}

func TestCommitRepository_Latest(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := trackRepository(t, store, "/tmp/project")

	t.Run("empty repository returns nil", func(t *testing.T) {
		got, err := store.Commits().Latest(ctx, repo.ID)
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if got != nil {
			t.Errorf("Latest() = %v, want nil", got)
		}
	})

	t.Run("returns the newest by date", func(t *testing.T) {
		// Inserted out of order on purpose.
		batch := []*domain.Commit{
			makeCommit(repo.ID, 2),
			makeCommit(repo.ID, 5),
			makeCommit(repo.ID, 3),
		}
		if _, err := store.Commits().InsertBatch(ctx, batch); err != nil {
			t.Fatalf("InsertBatch() error = %v", err)
		}

		got, err := store.Commits().Latest(ctx, repo.ID)
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if got == nil {
			t.Fatal("Latest() returned nil")
		}
		if got.Message != "commit 5" {
			t.Errorf("Latest() message = %q, want %q", got.Message, "commit 5")
		}
	})
}

func TestCommitRepository_List(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := trackRepository(t, store, "/tmp/project")

	var batch []*domain.Commit
	for n := 1; n <= 10; n++ {
		batch = append(batch, makeCommit(repo.ID, n))
	}
	if _, err := store.Commits().InsertBatch(ctx, batch); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	t.Run("newest first", func(t *testing.T) {
		commits, err := store.Commits().List(ctx, repo.ID, 0, 3)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(commits) != 3 {
			t.Fatalf("List() returned %d commits, want 3", len(commits))
		}
		if commits[0].Message != "commit 10" {
			t.Errorf("List()[0] = %q, want %q", commits[0].Message, "commit 10")
		}
		if commits[2].Message != "commit 8" {
			t.Errorf("List()[2] = %q, want %q", commits[2].Message, "commit 8")
		}
	})

	t.Run("offset pages through", func(t *testing.T) {
		commits, err := store.Commits().List(ctx, repo.ID, 8, 5)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(commits) != 2 {
			t.Fatalf("List() returned %d commits, want 2", len(commits))
		}
		if commits[0].Message != "commit 2" {
			t.Errorf("List()[0] = %q, want %q", commits[0].Message, "commit 2")
		}
	})

	t.Run("offset past the end is empty", func(t *testing.T) {
		commits, err := store.Commits().List(ctx, repo.ID, 100, 5)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(commits) != 0 {
			t.Errorf("List() returned %d commits, want 0", len(commits))
		}
	})
}

func TestCommitRepository_DeleteByRepository(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := trackRepository(t, store, "/tmp/project")
	other := trackRepository(t, store, "/tmp/other")

	if _, err := store.Commits().InsertBatch(ctx, []*domain.Commit{
		makeCommit(repo.ID, 1),
		makeCommit(repo.ID, 2),
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}
	if _, err := store.Commits().InsertBatch(ctx, []*domain.Commit{
		makeCommit(other.ID, 1),
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	if err := store.Commits().DeleteByRepository(ctx, repo.ID); err != nil {
		t.Fatalf("DeleteByRepository() error = %v", err)
	}

	count, err := store.Commits().Count(ctx, repo.ID)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0 after delete", count)
	}

	otherCount, err := store.Commits().Count(ctx, other.ID)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if otherCount != 1 {
		t.Errorf("Count() = %d, want 1 for untouched repository", otherCount)
	}
}

func TestCommitRepository_CascadeDelete(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	repo := trackRepository(t, store, "/tmp/project")
	if _, err := store.Commits().InsertBatch(ctx, []*domain.Commit{
		makeCommit(repo.ID, 1),
		makeCommit(repo.ID, 2),
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	if err := store.Repositories().Delete(ctx, repo.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, err := store.Commits().Count(ctx, repo.ID)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0 after repository delete", count)
	}
}
