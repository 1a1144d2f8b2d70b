package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLocal_NoFile(t *testing.T) {
	t.Parallel()

	local, err := LoadLocal(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local != nil {
		t.Fatalf("expected nil, got %+v", local)
	}
}

func TestLoadLocal_AllFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
base_theme_did = "zLocalBase"

[github]
org = "acme"
visibility = "internal"

[bundle]
node_options = "--max-old-space-size=8192"

[hooks.notify]
enabled = false
`
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	local, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal() error: %v", err)
	}
	if local.BaseThemeDID != "zLocalBase" {
		t.Errorf("BaseThemeDID = %q", local.BaseThemeDID)
	}
	if local.GitHub.Org != "acme" || local.GitHub.Visibility != "internal" {
		t.Errorf("GitHub = %+v", local.GitHub)
	}
	if local.Bundle.NodeOptions != "--max-old-space-size=8192" {
		t.Errorf("Bundle = %+v", local.Bundle)
	}
	if h, ok := local.Hooks.Hooks["notify"]; !ok || h.IsEnabled() {
		t.Errorf("notify hook = %+v, want disabled", h)
	}
}

func TestLoadLocal_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad visibility", "[github]\nvisibility = \"hidden\""},
		{"bad toml", "[github"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadLocal(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMergeLocal(t *testing.T) {
	t.Parallel()

	global := Default()
	global.Hooks.Hooks["notify"] = Hook{Command: "notify {id}", On: []string{"all"}}
	global.Hooks.Hooks["log"] = Hook{Command: "echo {id}", On: []string{"delete"}}

	off := false
	local := &LocalConfig{
		GitHub: GitHubConfig{Org: "acme"},
		Hooks: HooksConfig{Hooks: map[string]Hook{
			"notify": {Enabled: &off},
			"open":   {Command: "code {path}", On: []string{"create-repo"}},
		}},
	}

	merged := MergeLocal(&global, local)

	if merged.GitHub.Org != "acme" {
		t.Errorf("GitHub.Org = %q, want acme", merged.GitHub.Org)
	}
	if merged.GitHub.Visibility != DefaultVisibility {
		t.Errorf("GitHub.Visibility = %q, want inherited default", merged.GitHub.Visibility)
	}
	if _, ok := merged.Hooks.Hooks["notify"]; ok {
		t.Error("disabled hook should be removed")
	}
	if _, ok := merged.Hooks.Hooks["log"]; !ok {
		t.Error("global hook should be kept")
	}
	if _, ok := merged.Hooks.Hooks["open"]; !ok {
		t.Error("local hook should be added")
	}
	if global.GitHub.Org != DefaultGitHubOrg {
		t.Error("MergeLocal mutated global config")
	}
	if _, ok := global.Hooks.Hooks["notify"]; !ok {
		t.Error("MergeLocal mutated global hooks")
	}
}

func TestMergeLocal_Nil(t *testing.T) {
	t.Parallel()

	global := Default()
	if got := MergeLocal(&global, nil); got != &global {
		t.Error("MergeLocal(nil) should return global unchanged")
	}
}
