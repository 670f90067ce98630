// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/logging"
	"github.com/dvoss/gitdeck/internal/ports"
)

// DefaultBatchSize is the number of commits inserted per batch. Cancellation
// is only observed at batch boundaries, so this also bounds supersession
// latency.
const DefaultBatchSize = 100

// DefaultListLimit caps commit listings when the caller passes no limit.
const DefaultListLimit = 50

// HistoryService coordinates commit-history scans: one live scan per
// repository, incremental or full strategy, batched deduplicated inserts,
// progress reporting, and cancellation by supersession.
type HistoryService struct {
	storage   ports.Storage
	source    ports.LogSource
	log       logging.Logger
	scans     *scanRegistry
	batchSize int
}

// NewHistoryService creates a new history service. Each service instance
// owns its own scan registry.
func NewHistoryService(storage ports.Storage, source ports.LogSource, log logging.Logger) *HistoryService {
	if log == nil {
		log = logging.Nop()
	}
	return &HistoryService{
		storage:   storage,
		source:    source,
		log:       log,
		scans:     newScanRegistry(),
		batchSize: DefaultBatchSize,
	}
}

// Ensure HistoryService implements the MCP provider port.
var _ ports.HistoryProvider = (*HistoryService)(nil)

// SetBatchSize overrides the insert batch size. Values below 1 are ignored.
func (s *HistoryService) SetBatchSize(n int) {
	if n >= 1 {
		s.batchSize = n
	}
}

// Scan runs an incremental scan: only commits newer than the latest already
// persisted one are extracted. A scan always completes with a count; errors
// are logged and reported as an empty (or partial) result.
func (s *HistoryService) Scan(ctx context.Context, repositoryID int64, repoPath string, onProgress domain.ProgressFunc) domain.ScanResult {
	return s.scan(ctx, repositoryID, repoPath, false, onProgress)
}

// FullScan clears all persisted commits for the repository first and then
// extracts the complete history.
func (s *HistoryService) FullScan(ctx context.Context, repositoryID int64, repoPath string, onProgress domain.ProgressFunc) domain.ScanResult {
	return s.scan(ctx, repositoryID, repoPath, true, onProgress)
}

func (s *HistoryService) scan(ctx context.Context, repositoryID int64, repoPath string, full bool, onProgress domain.ProgressFunc) domain.ScanResult {
	token := s.scans.Begin(repositoryID)
	defer s.scans.End(repositoryID, token)

	result, err := s.run(ctx, token, repositoryID, repoPath, full, onProgress)
	if err != nil {
		// The caller-facing contract is that a scan completes with a
		// count; batches committed before the failure stay persisted.
		s.log.Error("commit scan failed",
			"repository_id", repositoryID,
			"scan_id", token.id,
			"full", full,
			"error", err,
		)
		return result
	}

	if result.Cancelled {
		s.log.Info("commit scan superseded",
			"repository_id", repositoryID,
			"scan_id", token.id,
			"added", result.Added,
		)
	}
	return result
}

// run performs one scan attempt. Partial progress accumulated before an
// error or cancellation is reflected in the returned result either way.
func (s *HistoryService) run(ctx context.Context, token *scanToken, repositoryID int64, repoPath string, full bool, onProgress domain.ProgressFunc) (domain.ScanResult, error) {
	var result domain.ScanResult

	var sinceHash string
	if full {
		if err := s.storage.Commits().DeleteByRepository(ctx, repositoryID); err != nil {
			return result, fmt.Errorf("clear persisted commits: %w", err)
		}
	} else {
		latest, err := s.storage.Commits().Latest(ctx, repositoryID)
		if err != nil {
			return result, fmt.Errorf("look up latest commit: %w", err)
		}
		if latest != nil {
			sinceHash = latest.Hash
		}
	}

	commits, dropped, err := s.source.Extract(ctx, repoPath, sinceHash)
	if err != nil {
		return result, err
	}

	result.Total = len(commits)
	result.Dropped = dropped
	if dropped > 0 {
		s.log.Warn("dropped malformed log records",
			"repository_id", repositoryID,
			"scan_id", token.id,
			"dropped", dropped,
		)
	}
	if len(commits) == 0 {
		return result, nil
	}

	for start := 0; start < len(commits); start += s.batchSize {
		// Cancellation is cooperative: a superseding scan flips the
		// flag and this loop stops scheduling further batches. Rows
		// already inserted stay persisted.
		if token.Cancelled() {
			result.Cancelled = true
			break
		}

		end := start + s.batchSize
		if end > len(commits) {
			end = len(commits)
		}
		batch := commits[start:end]
		for _, commit := range batch {
			commit.RepositoryID = repositoryID
		}

		added, err := s.storage.Commits().InsertBatch(ctx, batch)
		if err != nil {
			return result, fmt.Errorf("insert commit batch: %w", err)
		}
		result.Added += added
		result.Scanned += len(batch)

		if onProgress != nil {
			onProgress(domain.ScanProgress{
				RepositoryID: repositoryID,
				Scanned:      result.Scanned,
				Total:        result.Total,
			})
		}
	}

	return result, nil
}

// ListCommits returns persisted commits for a repository, newest first.
func (s *HistoryService) ListCommits(ctx context.Context, repositoryID int64, offset, limit int) ([]*domain.Commit, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.storage.Commits().List(ctx, repositoryID, offset, limit)
}

// CountCommits returns the number of persisted commits for a repository.
func (s *HistoryService) CountCommits(ctx context.Context, repositoryID int64) (int, error) {
	return s.storage.Commits().Count(ctx, repositoryID)
}

// CommitFiles returns the changed-file list for one commit. Failures are
// logged and yield an empty list.
func (s *HistoryService) CommitFiles(ctx context.Context, repoPath, hash string) []domain.CommitFile {
	files, err := s.source.CommitFiles(ctx, repoPath, hash)
	if err != nil {
		s.log.Error("failed to read commit files", "hash", hash, "error", err)
		return nil
	}
	return files
}

// FileDiff returns the diff for one file in one commit. Failures, after the
// root-commit fallback inside the extractor, are logged and yield empty text.
func (s *HistoryService) FileDiff(ctx context.Context, repoPath, hash, file string) string {
	diff, err := s.source.FileDiff(ctx, repoPath, hash, file)
	if err != nil {
		s.log.Error("failed to read file diff", "hash", hash, "file", file, "error", err)
		return ""
	}
	return diff
}
