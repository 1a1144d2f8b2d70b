package forge

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/raphi011/btm/internal/cmd"
	"github.com/raphi011/btm/internal/git"
)

// GitHub implements Forge using the gh CLI.
type GitHub struct{}

// Name returns "github"
func (g *GitHub) Name() string {
	return "github"
}

// Check verifies that gh CLI is available and authenticated
func (g *GitHub) Check(ctx context.Context) error {
	if _, err := exec.LookPath("gh"); err != nil {
		return fmt.Errorf("gh not found: please install GitHub CLI (https://cli.github.com)")
	}

	res := cmd.Capture(ctx, "", nil, "gh", "auth", "status")
	if res.Success() {
		return nil
	}
	errMsg := strings.TrimSpace(res.Stderr)
	if strings.Contains(errMsg, "not logged") || strings.Contains(errMsg, "no accounts") || errMsg == "" {
		return fmt.Errorf("gh not authenticated: please run 'gh auth login'")
	}
	return fmt.Errorf("gh auth check failed: %s", errMsg)
}

// CreateRepo refuses a repository that already has an origin, makes sure
// dir is a repository of its own with at least one commit, then creates
// org/name on GitHub with dir as source, adds it as origin and pushes.
// The origin of an enclosing repository does not count.
func (g *GitHub) CreateRepo(ctx context.Context, dir string, params CreateRepoParams) (*CreateRepoResult, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if git.HasOwnRepo(dir) {
		if origin, err := git.GetOriginURL(ctx, dir); err == nil && origin != "" {
			return nil, fmt.Errorf("%w: %s", ErrOriginExists, origin)
		}
	}

	if err := prepareRepo(ctx, dir); err != nil {
		return nil, err
	}

	visibility := params.Visibility
	if visibility == "" {
		visibility = "public"
	}

	res := cmd.Capture(ctx, dir, nil, "gh", "repo", "create",
		params.Org+"/"+params.Name,
		"--"+visibility,
		"--description", params.Description,
		"--source", ".",
		"--remote", "origin",
		"--push")
	out := combine(res.Stdout, res.Stderr)
	if !res.Success() {
		return &CreateRepoResult{Output: out}, fmt.Errorf("gh repo create failed: %w", res.Err)
	}

	return &CreateRepoResult{
		URL:    RepoURL(params.Org, params.Name),
		Output: out,
	}, nil
}

// prepareRepo initializes dir and records an initial commit when needed.
func prepareRepo(ctx context.Context, dir string) error {
	if err := git.EnsureRepo(ctx, dir); err != nil {
		return err
	}
	if err := git.AddAll(ctx, dir); err != nil {
		return err
	}
	changed, err := git.HasChanges(ctx, dir)
	if err != nil {
		return err
	}
	if !changed && git.HasCommits(ctx, dir) {
		return nil
	}
	msg := "Update theme"
	if !git.HasCommits(ctx, dir) {
		msg = "Initial commit"
	}
	return git.Commit(ctx, dir, msg)
}
