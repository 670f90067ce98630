package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/ports"
)

// Two-level delimiter scheme: commit subjects and bodies are free text that
// may contain newlines and tabs, so records and fields are separated by rare
// token sequences instead of single characters.
const (
	fieldDelim = "<%GD+%>"
	recordEnd  = "<%GD+END%>"
)

// logFormat lays out one record: full hash, abbreviated hash, author name,
// author email, author-date unix seconds, subject, body, parent hashes.
var logFormat = "--format=" + strings.Join(
	[]string{"%H", "%h", "%an", "%ae", "%at", "%s", "%b", "%P"},
	fieldDelim,
) + recordEnd

// Extractor produces commit records by invoking the git log and diff
// commands through a Runner.
type Extractor struct {
	runner Runner
}

// NewExtractor creates a log extractor over the given runner.
func NewExtractor(runner Runner) *Extractor {
	return &Extractor{runner: runner}
}

// Ensure Extractor implements the LogSource port.
var _ ports.LogSource = (*Extractor)(nil)

// Extract runs git log and parses its output into commit records, newest
// first. A non-empty sinceHash bounds the extraction to since..HEAD. The
// second return value counts malformed records that were discarded.
func (e *Extractor) Extract(ctx context.Context, repoPath, sinceHash string) ([]*domain.Commit, int, error) {
	args := []string{"log", logFormat}
	if sinceHash != "" {
		args = append(args, sinceHash+"..HEAD")
	}

	raw, err := e.runner.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("extract commit log: %w", err)
	}

	commits, dropped := parseLog(raw)
	return commits, dropped, nil
}

// parseLog splits a raw log dump into commit records. Fragments that are
// empty (the trailing terminator produces one) are skipped; records with
// fewer than 6 fields or an invalid hash are dropped and counted.
func parseLog(raw string) ([]*domain.Commit, int) {
	if strings.TrimSpace(raw) == "" {
		return nil, 0
	}

	var commits []*domain.Commit
	dropped := 0

	for _, record := range strings.Split(raw, recordEnd) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		parts := strings.Split(record, fieldDelim)
		if len(parts) < 6 || !domain.IsCommitHash(parts[0]) {
			dropped++
			continue
		}

		seconds, err := strconv.ParseInt(parts[4], 10, 64)
		if err != nil {
			dropped++
			continue
		}

		commit := &domain.Commit{
			Hash:            parts[0],
			AbbreviatedHash: parts[1],
			AuthorName:      parts[2],
			AuthorEmail:     parts[3],
			Date:            time.Unix(seconds, 0),
			Message:         parts[5],
		}
		if len(parts) > 6 {
			if body := strings.TrimSpace(parts[6]); body != "" {
				commit.Body = &body
			}
		}
		if len(parts) > 7 {
			commit.ParentHashes = strings.TrimSpace(parts[7])
		}

		commits = append(commits, commit)
	}

	return commits, dropped
}

// CommitFiles returns the per-file change list for one commit via
// git diff-tree --name-status.
func (e *Extractor) CommitFiles(ctx context.Context, repoPath, hash string) ([]domain.CommitFile, error) {
	out, err := e.runner.Run(ctx, repoPath,
		"diff-tree", "--no-commit-id", "-r", "--name-status", hash)
	if err != nil {
		return nil, fmt.Errorf("commit files for %s: %w", hash, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}

	var files []domain.CommitFile
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		// Rename and copy lines arrive with a similarity score (R100);
		// the first byte is the status code.
		status := domain.FileStatus(parts[0][:1])
		switch status {
		case domain.FileAdded, domain.FileModified, domain.FileDeleted,
			domain.FileRenamed, domain.FileCopied:
		default:
			continue
		}
		files = append(files, domain.CommitFile{
			Status: status,
			File:   strings.Join(parts[1:], "\t"),
		})
	}
	return files, nil
}

// FileDiff returns the unified diff for one file in one commit. When the
// parent diff fails, typically for a root commit, it falls back to
// git show with an empty format.
func (e *Extractor) FileDiff(ctx context.Context, repoPath, hash, file string) (string, error) {
	out, err := e.runner.Run(ctx, repoPath, "diff", hash+"^", hash, "--", file)
	if err == nil {
		return out, nil
	}

	out, showErr := e.runner.Run(ctx, repoPath, "show", "--format=", hash, "--", file)
	if showErr != nil {
		return "", fmt.Errorf("file diff for %s in %s: %w", file, hash, showErr)
	}
	return out, nil
}
