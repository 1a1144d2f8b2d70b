package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// ErrNotRepository indicates the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// notRepo converts git's "not a git repository" failure into ErrNotRepository.
func notRepo(err error) error {
	if err != nil && strings.Contains(err.Error(), "not a git repository") {
		return fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	return err
}
