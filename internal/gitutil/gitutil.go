// Package gitutil shells out to git for the shallow clone/update flow used
// by org-wide scans.
package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultBranch is assumed when a repository reports none.
const DefaultBranch = "main"

func runGit(ctx context.Context, dir string, timeout time.Duration, args ...string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(runCtx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(stdout.String() + "\n" + stderr.String())
		return out, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

// ShallowClone clones a single branch of repoURL into destDir with limited
// history depth.
func ShallowClone(ctx context.Context, repoURL, destDir, branch string, depth int, timeout time.Duration) error {
	if branch == "" {
		branch = DefaultBranch
	}
	_, err := runGit(ctx, "", timeout,
		"clone", "--depth", strconv.Itoa(depth), "--single-branch", "--branch", branch, repoURL, destDir)
	return err
}

// UpdateToLatest moves an existing shallow clone to the latest commit on
// branch, creating or resetting the local branch as needed.
func UpdateToLatest(ctx context.Context, repoDir, branch string, depth int, timeout time.Duration) error {
	if branch == "" {
		branch = DefaultBranch
	}
	// The branch may not exist locally yet in a shallow single-branch clone.
	_, _ = runGit(ctx, repoDir, timeout, "fetch", "--depth", strconv.Itoa(depth), "origin", branch)
	if _, err := runGit(ctx, repoDir, timeout, "checkout", branch); err != nil {
		_, _ = runGit(ctx, repoDir, timeout, "checkout", "-B", branch, "origin/"+branch)
	}
	_, err := runGit(ctx, repoDir, timeout, "reset", "--hard", "origin/"+branch)
	return err
}
