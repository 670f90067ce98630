// Package domain contains the core entities for gitdeck.
// These entities represent commits, repositories, and scan results and are
// independent of any external frameworks or infrastructure.
package domain

import (
	"regexp"
	"strings"
	"time"
)

// commitHashRe matches a full lowercase object identifier.
var commitHashRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

// IsCommitHash reports whether s is a full 40-character lowercase hex hash.
func IsCommitHash(s string) bool {
	return commitHashRe.MatchString(s)
}

// Commit is one commit record extracted from a repository's log.
// RepositoryID is zero until the commit is bound to a persisted repository.
type Commit struct {
	RepositoryID    int64
	Hash            string
	AbbreviatedHash string
	AuthorName      string
	AuthorEmail     string
	Date            time.Time
	Message         string
	// Body is nil when the commit has no body, as opposed to the empty
	// string, so "no body" and "body not parsed" stay distinguishable.
	Body *string
	// ParentHashes is the space-joined list of parent hashes as emitted by
	// the log, kept raw. Empty for root commits.
	ParentHashes string
}

// HasBody reports whether the commit message has text beyond the subject.
func (c *Commit) HasBody() bool {
	return c.Body != nil
}

// ParentCount returns the number of parent commits.
func (c *Commit) ParentCount() int {
	if strings.TrimSpace(c.ParentHashes) == "" {
		return 0
	}
	return len(strings.Fields(c.ParentHashes))
}

// IsMerge reports whether the commit has two or more parents.
func (c *Commit) IsMerge() bool {
	return c.ParentCount() >= 2
}

// IsRoot reports whether the commit has no parent.
func (c *Commit) IsRoot() bool {
	return c.ParentCount() == 0
}

// FileStatus is the change type of one file within a commit.
type FileStatus string

const (
	FileAdded    FileStatus = "A"
	FileModified FileStatus = "M"
	FileDeleted  FileStatus = "D"
	FileRenamed  FileStatus = "R"
	FileCopied   FileStatus = "C"
)

// CommitFile is one changed file in a commit's tree diff.
type CommitFile struct {
	Status FileStatus
	File   string
}
