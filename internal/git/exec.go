package git

import (
	"context"

	"github.com/raphi011/btm/internal/cmd"
)

// gitEnv pins git's message locale so notRepo can match stderr, and keeps
// git from blocking on a credential prompt inside the server.
var gitEnv = []string{"LC_ALL=C", "GIT_TERMINAL_PROMPT=0"}

// runGit runs git in dir.
func runGit(ctx context.Context, dir string, args ...string) error {
	_, err := outputGit(ctx, dir, args...)
	return err
}

// outputGit runs git in dir and returns stdout. Stderr is carried in the
// error on failure.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	res := cmd.Capture(ctx, dir, gitEnv, "git", args...)
	if res.Err != nil {
		return nil, res.Err
	}
	return []byte(res.Stdout), nil
}
