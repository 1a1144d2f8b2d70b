package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/btm/internal/log"
)

// Result holds everything a finished command produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int   // -1 if the process never ran or was killed
	Err      error // nil on exit code 0
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.Err == nil
}

// RunContext executes a command in dir and returns stderr in the error
// message if it fails. Returns ctx.Err() if the context was cancelled.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command in dir and returns stdout, with stderr
// in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	res := Capture(ctx, dir, nil, name, args...)
	if res.Err != nil {
		return nil, res.Err
	}
	return []byte(res.Stdout), nil
}

// Capture executes a command and collects stdout, stderr and the exit code.
// env entries ("KEY=value") are appended to the current environment.
// Res.Err carries trimmed stderr when the command fails with output on stderr.
func Capture(ctx context.Context, dir string, env []string, name string, args ...string) Result {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}
	if err == nil {
		return res
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Err = ctxErr
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			res.Err = fmt.Errorf("%s", msg)
			return res
		}
	}
	res.Err = err
	return res
}

// Available reports whether name resolves to an executable on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
