// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Every helper wraps [os/exec.Cmd], logs the invocation through the
// context logger and turns stderr into the error message so that failures
// from git, gh, blocklet or yarn read naturally to users.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "status"); err != nil {
//	    return fmt.Errorf("git failed: %w", err)
//	}
//
//	// Commands whose full output matters (bundle checks, scaffolding):
//	res := cmd.Capture(ctx, dir, []string{"NODE_OPTIONS=..."}, "yarn", "run", "bundle")
//	if !res.Success() {
//	    // res.Stdout, res.Stderr and res.ExitCode are all populated
//	}
//
// # Design Notes
//
// btm shells out to the git, gh, blocklet and yarn CLIs rather than using
// Go libraries. Tools run exactly as the user would run them, with their
// own credentials and configuration.
package cmd
