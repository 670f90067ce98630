// Package git provides adapters around the external git tool and go-git.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts executing git commands against a working tree.
// Implementations may call the git binary or serve canned output in tests.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner executes the configured git binary.
type ExecRunner struct {
	GitBin string
}

// NewExecRunner creates a runner for the given git binary, defaulting to
// "git" on PATH.
func NewExecRunner(gitBin string) *ExecRunner {
	if strings.TrimSpace(gitBin) == "" {
		gitBin = "git"
	}
	return &ExecRunner{GitBin: gitBin}
}

// Ensure ExecRunner implements Runner.
var _ Runner = (*ExecRunner)(nil)

// Run executes git with the given arguments in dir and returns stdout.
// On failure the stderr text is folded into the returned error.
func (e *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmdArgs := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, e.GitBin, cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %v: %s", commandName(args), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", commandName(args), err)
	}
	return stdout.String(), nil
}

// commandName returns the git subcommand for error messages, without
// repeating arguments that may carry paths.
func commandName(args []string) string {
	if len(args) == 0 {
		return "<no-args>"
	}
	return args[0]
}
