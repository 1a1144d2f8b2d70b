package forge

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CreateRepoParams contains parameters for publishing a theme folder
type CreateRepoParams struct {
	Org         string
	Name        string
	Description string
	Visibility  string // public, private or internal
}

// CreateRepoResult contains the result of creating a repository
type CreateRepoResult struct {
	URL    string // browser URL of the new repository
	Output string // combined command output
}

// Forge represents a git hosting service that can publish theme folders.
type Forge interface {
	// Name returns the forge name
	Name() string

	// Check verifies the CLI is installed and authenticated
	Check(ctx context.Context) error

	// CreateRepo creates a remote repository from dir and pushes it
	CreateRepo(ctx context.Context, dir string, params CreateRepoParams) (*CreateRepoResult, error)
}

var (
	// ErrInvalidParams is returned when org or repository name are missing.
	ErrInvalidParams = errors.New("org and repository name are required")

	// ErrOriginExists is returned when the theme is already published.
	ErrOriginExists = errors.New("origin remote already exists")
)

// New returns the script forge when script is set, otherwise GitHub.
func New(script string) Forge {
	if script != "" {
		return &Script{Path: script}
	}
	return &GitHub{}
}

// Description returns the default repository description for a theme.
func Description(name string) string {
	return fmt.Sprintf("%s - A blog theme created with Blocklet", name)
}

// RepoURL returns the browser URL for org/name on GitHub.
func RepoURL(org, name string) string {
	return fmt.Sprintf("https://github.com/%s/%s", org, name)
}

func (p CreateRepoParams) validate() error {
	if strings.TrimSpace(p.Org) == "" || strings.TrimSpace(p.Name) == "" {
		return ErrInvalidParams
	}
	if strings.ContainsAny(p.Name, "/ ") {
		return fmt.Errorf("invalid repository name %q", p.Name)
	}
	return nil
}

// combine joins stdout and stderr the way a terminal would show them.
func combine(stdout, stderr string) string {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + "\n" + stderr
	}
}
