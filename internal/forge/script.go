package forge

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/raphi011/btm/internal/cmd"
)

// Script delegates repository creation to a user script called as
// `<script> <org> <repo> <description>` inside the theme folder.
type Script struct {
	Path string
}

// Name returns "script"
func (s *Script) Name() string {
	return "script"
}

// Check verifies that the script resolves to an executable.
func (s *Script) Check(ctx context.Context) error {
	if _, err := exec.LookPath(s.Path); err != nil {
		return fmt.Errorf("create script %s: %w", s.Path, err)
	}
	return nil
}

// CreateRepo runs the script. The script owns git setup and pushing.
func (s *Script) CreateRepo(ctx context.Context, dir string, params CreateRepoParams) (*CreateRepoResult, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	res := cmd.Capture(ctx, dir, nil, s.Path, params.Org, params.Name, params.Description)
	out := combine(res.Stdout, res.Stderr)
	if !res.Success() {
		return &CreateRepoResult{Output: out}, fmt.Errorf("create script failed: %w", res.Err)
	}
	return &CreateRepoResult{
		URL:    RepoURL(params.Org, params.Name),
		Output: out,
	}, nil
}
