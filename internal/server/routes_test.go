package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/theme"
)

// fakeTools installs shell scripts (name -> body) on PATH.
func fakeTools(t *testing.T, tools map[string]string) {
	t.Helper()
	bin := t.TempDir()
	for name, body := range tools {
		if err := os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"+body), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

const notARepo = "echo 'fatal: not a git repository (or any of the parent directories): .git' >&2\nexit 128\n"

func TestUpdateDID(t *testing.T) {
	fakeTools(t, map[string]string{"blocklet": "echo 'Created Blocklet DID: z8iZfresh'\n"})

	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodPost, "/api/themes/forest-theme/update-did", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	got := decode[struct {
		Success bool        `json:"success"`
		Theme   theme.Theme `json:"theme"`
	}](t, rec)
	if !got.Success || got.Theme.DID != "z8iZfresh" || got.Theme.Status != theme.StatusReady {
		t.Errorf("body = %+v", got)
	}
}

func TestUpdateDID_NoDIDInOutput(t *testing.T) {
	fakeTools(t, map[string]string{"blocklet": "echo hello\n"})

	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodPost, "/api/themes/forest-theme/update-did", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	got := decode[map[string]string](t, rec)
	if got["output"] != "hello\n" || got["error"] == "" {
		t.Errorf("body = %v, want error with command output", got)
	}
}

func TestUpdateDID_MissingDescriptor(t *testing.T) {
	fakeTools(t, map[string]string{"blocklet": "echo 'blocklet must not run' >&2\nexit 1\n"})

	env := newTestEnv(t, config.ServerConfig{})
	if err := os.Remove(filepath.Join(env.ws, "forest-theme", theme.DescriptorFile)); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, http.MethodPost, "/api/themes/forest-theme/update-did", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestGitRemote(t *testing.T) {
	fakeTools(t, map[string]string{"git": `if [ "$1 $2" = "remote -v" ]; then
	printf 'origin\tgit@github.com:blocklet/ocean-theme.git (fetch)\n'
	printf 'origin\tgit@github.com:blocklet/ocean-theme.git (push)\n'
fi
`})

	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodGet, "/api/themes/ocean-theme/git-remote", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	got := decode[map[string]any](t, rec)
	if got["isGitRepo"] != true || got["hasOrigin"] != true || got["repoUrl"] != "https://github.com/blocklet/ocean-theme" {
		t.Errorf("body = %v", got)
	}
	if remotes, _ := got["remotes"].([]any); len(remotes) != 2 {
		t.Errorf("remotes = %v, want 2 entries", got["remotes"])
	}
}

func TestGitRemote_NotARepository(t *testing.T) {
	fakeTools(t, map[string]string{"git": notARepo})

	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodGet, "/api/themes/ocean-theme/git-remote", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"isGitRepo":false`, `"hasRemote":false`, `"repoUrl":null`, `"remotes":[]`} {
		if !strings.Contains(body, want) {
			t.Errorf("body = %s, want %s", body, want)
		}
	}
}

func TestGitRemote_Failure(t *testing.T) {
	fakeTools(t, map[string]string{"git": "echo 'fatal: unsafe repository' >&2\nexit 128\n"})

	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodGet, "/api/themes/ocean-theme/git-remote", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSubmoduleStatus(t *testing.T) {
	tests := []struct {
		name      string
		git       string
		isGitRepo bool
		paths     []string
	}{
		{
			name:      "repository",
			git:       "printf ' 1a2b3c4d themes/shared (heads/main)\\n-5e6f7a8b vendor/icons\\n'\n",
			isGitRepo: true,
			paths:     []string{"themes/shared", "vendor/icons"},
		},
		{
			name: "not a repository",
			git:  notARepo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeTools(t, map[string]string{"git": tt.git})

			env := newTestEnv(t, config.ServerConfig{})
			rec := env.do(t, http.MethodGet, "/api/themes/ocean-theme/submodule-status", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			got := decode[struct {
				IsGitRepo  bool `json:"isGitRepo"`
				Submodules []struct {
					Path  string `json:"path"`
					State string `json:"state"`
				} `json:"submodules"`
			}](t, rec)
			if got.IsGitRepo != tt.isGitRepo {
				t.Errorf("isGitRepo = %v, want %v", got.IsGitRepo, tt.isGitRepo)
			}
			var paths []string
			for _, s := range got.Submodules {
				paths = append(paths, s.Path)
			}
			if strings.Join(paths, ",") != strings.Join(tt.paths, ",") {
				t.Errorf("submodules = %v, want %v", paths, tt.paths)
			}
		})
	}
}

func TestCreateGitHubRepo(t *testing.T) {
	fakeTools(t, map[string]string{
		"git": "exit 0\n",
		"gh":  "echo 'https://github.com/blocklet/ocean-theme'\n",
	})

	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodPost, "/api/themes/ocean-theme/create-github-repo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	got := decode[map[string]any](t, rec)
	if got["success"] != true || got["repoUrl"] != "https://github.com/blocklet/ocean-theme" {
		t.Errorf("body = %v", got)
	}
}

func TestCreateGitHubRepo_Failure(t *testing.T) {
	fakeTools(t, map[string]string{
		"git": "exit 0\n",
		"gh":  "echo 'GraphQL: Name already exists on this account' >&2\nexit 1\n",
	})

	env := newTestEnv(t, config.ServerConfig{})
	rec := env.do(t, http.MethodPost, "/api/themes/ocean-theme/create-github-repo", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	got := decode[errorResponse](t, rec)
	if !strings.Contains(got.Details, "Name already exists") {
		t.Errorf("details = %q, want gh output", got.Details)
	}
}

func TestCreateGitHubRepo_OriginExists(t *testing.T) {
	fakeTools(t, map[string]string{
		"git": `if [ "$1 $2" = "remote get-url" ]; then echo git@github.com:blocklet/ocean-theme.git; fi` + "\n",
		"gh":  "echo 'gh must not run' >&2\nexit 1\n",
	})

	env := newTestEnv(t, config.ServerConfig{})
	if err := os.Mkdir(filepath.Join(env.ws, "ocean-theme", ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, http.MethodPost, "/api/themes/ocean-theme/create-github-repo", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body %s)", rec.Code, rec.Body.String())
	}
	got := decode[errorResponse](t, rec)
	if !strings.Contains(got.Details, "git@github.com:blocklet/ocean-theme.git") {
		t.Errorf("details = %q, want existing origin", got.Details)
	}
}
