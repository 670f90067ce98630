package git

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output keyed by the git subcommand and records
// every invocation.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if err, ok := f.errs[args[0]]; ok {
		return "", err
	}
	return f.outputs[args[0]], nil
}

func record(fields ...string) string {
	return strings.Join(fields, fieldDelim) + recordEnd
}

const (
	hashA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("parses commits newest first", func(t *testing.T) {
		runner := newFakeRunner()
		runner.outputs["log"] = record(hashA, "aaaaaaa", "Ada", "ada@example.com", "1700000100", "fix parser", "Handles tabs in subjects.\n", hashB) +
			record(hashB, "bbbbbbb", "Ben", "ben@example.com", "1700000000", "initial commit", "", "")

		ext := NewExtractor(runner)
		commits, dropped, err := ext.Extract(ctx, "/repo", "")
		require.NoError(t, err)
		assert.Zero(t, dropped)
		require.Len(t, commits, 2)

		first := commits[0]
		assert.Equal(t, hashA, first.Hash)
		assert.Equal(t, "aaaaaaa", first.AbbreviatedHash)
		assert.Equal(t, "Ada", first.AuthorName)
		assert.Equal(t, "ada@example.com", first.AuthorEmail)
		assert.Equal(t, time.Unix(1700000100, 0), first.Date)
		assert.Equal(t, "fix parser", first.Message)
		require.NotNil(t, first.Body)
		assert.Equal(t, "Handles tabs in subjects.", *first.Body)
		assert.Equal(t, hashB, first.ParentHashes)
		assert.False(t, first.IsRoot())

		second := commits[1]
		assert.Nil(t, second.Body)
		assert.True(t, second.IsRoot())
	})

	t.Run("unbounded extraction runs plain log", func(t *testing.T) {
		runner := newFakeRunner()
		ext := NewExtractor(runner)

		_, _, err := ext.Extract(ctx, "/repo", "")
		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"log", logFormat}, runner.calls[0])
	})

	t.Run("since hash bounds the range", func(t *testing.T) {
		runner := newFakeRunner()
		ext := NewExtractor(runner)

		_, _, err := ext.Extract(ctx, "/repo", hashB)
		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"log", logFormat, hashB + "..HEAD"}, runner.calls[0])
	})

	t.Run("empty output yields no commits", func(t *testing.T) {
		runner := newFakeRunner()
		runner.outputs["log"] = "\n"

		ext := NewExtractor(runner)
		commits, dropped, err := ext.Extract(ctx, "/repo", "")
		require.NoError(t, err)
		assert.Empty(t, commits)
		assert.Zero(t, dropped)
	})

	t.Run("runner failure propagates", func(t *testing.T) {
		runner := newFakeRunner()
		runner.errs["log"] = errors.New("fatal: not a git repository")

		ext := NewExtractor(runner)
		_, _, err := ext.Extract(ctx, "/repo", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a git repository")
	})
}

func TestParseLog_DropsMalformedRecords(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kept    int
		dropped int
	}{
		{
			name:    "truncated hash",
			raw:     record(hashA[:39], "aaaaaaa", "Ada", "ada@example.com", "1700000100", "subject", "", ""),
			kept:    0,
			dropped: 1,
		},
		{
			name:    "too few fields",
			raw:     record(hashA, "aaaaaaa", "Ada", "ada@example.com", "1700000100"),
			kept:    0,
			dropped: 1,
		},
		{
			name:    "bad timestamp",
			raw:     record(hashA, "aaaaaaa", "Ada", "ada@example.com", "last tuesday", "subject", "", ""),
			kept:    0,
			dropped: 1,
		},
		{
			name: "good record survives surrounding bad ones",
			raw: record("garbage", "x", "y", "z", "0", "s", "", "") +
				record(hashA, "aaaaaaa", "Ada", "ada@example.com", "1700000100", "subject", "", "") +
				record(hashB[:12], "b", "c", "d", "1700000000", "s", "", ""),
			kept:    1,
			dropped: 2,
		},
		{
			name: "record with field delimiter in body",
			raw: record(hashA, "aaaaaaa", "Ada", "ada@example.com", "1700000100", "subject",
				"body line one\nbody line two", hashB),
			kept:    1,
			dropped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits, dropped := parseLog(tt.raw)
			assert.Len(t, commits, tt.kept)
			assert.Equal(t, tt.dropped, dropped)
		})
	}
}

func TestExtractor_CommitFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("parses name-status output", func(t *testing.T) {
		runner := newFakeRunner()
		runner.outputs["diff-tree"] = strings.Join([]string{
			"A\tinternal/new.go",
			"M\tREADME.md",
			"D\told.go",
			"R100\tpkg/before.go\tpkg/after.go",
			"C75\tsrc/a.go\tsrc/b.go",
			"X\tweird.go",
		}, "\n") + "\n"

		ext := NewExtractor(runner)
		files, err := ext.CommitFiles(ctx, "/repo", hashA)
		require.NoError(t, err)
		require.Len(t, files, 5)

		assert.Equal(t, "A", string(files[0].Status))
		assert.Equal(t, "internal/new.go", files[0].File)
		assert.Equal(t, "R", string(files[3].Status))
		assert.Equal(t, "pkg/before.go\tpkg/after.go", files[3].File)
		assert.Equal(t, "C", string(files[4].Status))

		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"diff-tree", "--no-commit-id", "-r", "--name-status", hashA}, runner.calls[0])
	})

	t.Run("empty output yields no files", func(t *testing.T) {
		runner := newFakeRunner()
		runner.outputs["diff-tree"] = "\n"

		ext := NewExtractor(runner)
		files, err := ext.CommitFiles(ctx, "/repo", hashA)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("runner failure propagates", func(t *testing.T) {
		runner := newFakeRunner()
		runner.errs["diff-tree"] = errors.New("bad object")

		ext := NewExtractor(runner)
		_, err := ext.CommitFiles(ctx, "/repo", hashA)
		require.Error(t, err)
	})
}

func TestExtractor_FileDiff(t *testing.T) {
	ctx := context.Background()

	t.Run("parent diff succeeds", func(t *testing.T) {
		runner := newFakeRunner()
		runner.outputs["diff"] = "--- a/main.go\n+++ b/main.go\n"

		ext := NewExtractor(runner)
		diff, err := ext.FileDiff(ctx, "/repo", hashA, "main.go")
		require.NoError(t, err)
		assert.Equal(t, "--- a/main.go\n+++ b/main.go\n", diff)

		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"diff", hashA + "^", hashA, "--", "main.go"}, runner.calls[0])
	})

	t.Run("falls back to show for root commits", func(t *testing.T) {
		runner := newFakeRunner()
		runner.errs["diff"] = errors.New("unknown revision " + hashA + "^")
		runner.outputs["show"] = "+package main\n"

		ext := NewExtractor(runner)
		diff, err := ext.FileDiff(ctx, "/repo", hashA, "main.go")
		require.NoError(t, err)
		assert.Equal(t, "+package main\n", diff)

		require.Len(t, runner.calls, 2)
		assert.Equal(t, []string{"show", "--format=", hashA, "--", "main.go"}, runner.calls[1])
	})

	t.Run("both attempts failing returns an error", func(t *testing.T) {
		runner := newFakeRunner()
		runner.errs["diff"] = errors.New("unknown revision")
		runner.errs["show"] = errors.New("bad object")

		ext := NewExtractor(runner)
		_, err := ext.FileDiff(ctx, "/repo", hashA, "main.go")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad object")
	})
}
