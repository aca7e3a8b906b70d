package gitutil

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, string(out))
	}
	return string(out)
}

func TestShallowCloneAndUpdate(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	git(t, src, "init")
	git(t, src, "checkout", "-b", "main")
	if err := os.WriteFile(filepath.Join(src, "file.txt"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, src, "add", ".")
	git(t, src, "commit", "-m", "initial")

	dest := filepath.Join(tmp, "clone")
	if err := ShallowClone(ctx, src, dest, "main", 1, 30*time.Second); err != nil {
		t.Fatalf("shallow clone: %v", err)
	}
	if out := git(t, dest, "rev-list", "--count", "HEAD"); out != "1\n" {
		t.Fatalf("expected shallow history with 1 commit, got %q", out)
	}

	if err := os.WriteFile(filepath.Join(src, "file.txt"), []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, src, "add", ".")
	git(t, src, "commit", "-m", "update")
	want := git(t, src, "rev-parse", "HEAD")

	if err := UpdateToLatest(ctx, dest, "main", 1, 30*time.Second); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := git(t, dest, "rev-parse", "HEAD"); got != want {
		t.Fatalf("clone head %q does not match source head %q", got, want)
	}
}

func TestShallowClone_BadURL(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clone")
	err := ShallowClone(context.Background(), filepath.Join(t.TempDir(), "missing"), dest, "", 1, 10*time.Second)
	if err == nil {
		t.Fatal("expected error cloning nonexistent repository")
	}
}
