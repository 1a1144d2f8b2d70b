package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureRepo initializes a repository at dir unless dir already is the
// top level of one. A theme nested inside another repository still gets
// its own.
func EnsureRepo(ctx context.Context, dir string) error {
	if HasOwnRepo(dir) {
		return nil
	}
	if err := runGit(ctx, dir, "init", "-b", "main"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// HasOwnRepo reports whether dir is the top level of a repository rather
// than a folder inside an enclosing one.
func HasOwnRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// AddAll stages every change in the work tree.
func AddAll(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	return nil
}

// HasChanges reports whether the index or work tree differs from HEAD.
// A repository without commits counts as changed when anything is staged.
func HasChanges(ctx context.Context, dir string) (bool, error) {
	out, err := outputGit(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, notRepo(err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// HasCommits reports whether HEAD points at a commit.
func HasCommits(ctx context.Context, dir string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "HEAD") == nil
}

// Commit records the staged changes with message.
func Commit(ctx context.Context, dir, message string) error {
	if err := runGit(ctx, dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}
