// Package gitutil looks up git state for captures. Everything here is
// best-effort: a missing git binary, a directory outside any repository, or
// a detached HEAD all mean "no branch", never an error.
package gitutil

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// branchTimeout bounds the git invocation so a hung filesystem cannot stall
// a capture.
const branchTimeout = 2 * time.Second

// CurrentBranch returns the current git branch for dir. The second return
// is false when the branch cannot be determined for any reason.
func CurrentBranch(ctx context.Context, dir string) (string, bool) {
	execCtx, cancel := context.WithTimeout(ctx, branchTimeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "git", "branch", "--show-current")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", false
	}

	branch := strings.TrimSpace(string(output))
	if branch == "" {
		// Detached HEAD prints nothing.
		return "", false
	}
	return branch, true
}
