package static

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/btm/internal/git"
	"github.com/raphi011/btm/internal/theme"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testTheme() theme.Theme {
	return theme.Theme{
		ID:        "ocean-theme",
		Name:      "@blocklet/ocean-theme",
		Title:     "Ocean",
		DID:       "z8iZpA1nB2cD3eF4gH5iJ6kL7mN8oP9qR",
		Status:    theme.StatusReady,
		CreatedAt: now.Add(-3 * time.Hour),
	}
}

func TestThemeTableRow(t *testing.T) {
	t.Parallel()

	row := ThemeTableRow(testTheme(), nil, now)

	// Must match headers: ID, STATUS, DID, TITLE, CREATED
	if len(row) != len(ThemeHeaders(false)) {
		t.Fatalf("expected %d columns, got %d", len(ThemeHeaders(false)), len(row))
	}
	if row[0] != "ocean-theme" {
		t.Errorf("column 0 (ID) = %q", row[0])
	}
	if !strings.Contains(ansi.Strip(row[1]), "ready") {
		t.Errorf("column 1 (STATUS) = %q, want ready", ansi.Strip(row[1]))
	}
	if row[2] == "" || row[2] == "-" || len(row[2]) >= len(testTheme().DID) {
		t.Errorf("column 2 (DID) = %q, want shortened DID", row[2])
	}
	if row[3] != "Ocean" {
		t.Errorf("column 3 (TITLE) = %q", row[3])
	}
	if row[4] == "" {
		t.Error("column 4 (CREATED) should not be empty")
	}
}

func TestThemeTableRow_Fallbacks(t *testing.T) {
	t.Parallel()

	th := testTheme()
	th.DID = ""
	th.Title = ""
	th.Status = theme.StatusNoDID

	row := ThemeTableRow(th, nil, now)
	if row[2] != "-" {
		t.Errorf("DID column = %q, want -", row[2])
	}
	if row[3] != "@blocklet/ocean-theme" {
		t.Errorf("TITLE column = %q, want package name", row[3])
	}

	th.Title = strings.Repeat("x", 60)
	row = ThemeTableRow(th, nil, now)
	if n := len([]rune(row[3])); n != maxTitleLen {
		t.Errorf("truncated title has %d runes, want %d", n, maxTitleLen)
	}
}

func TestThemeTableRow_Remote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info git.RemoteInfo
		want string
	}{
		{"not a repo", git.RemoteInfo{}, "no git"},
		{"no remote", git.RemoteInfo{IsGitRepo: true}, "-"},
		{
			"github origin",
			git.RemoteInfo{
				IsGitRepo: true, HasRemote: true, HasOrigin: true,
				RepoURL: ptr("https://github.com/blocklet/ocean-theme"),
				Remotes: []git.Remote{{Name: "origin", URL: "git@github.com:blocklet/ocean-theme.git", Type: "fetch"}},
			},
			"blocklet/ocean-theme",
		},
		{
			"gitlab ssh origin",
			git.RemoteInfo{
				IsGitRepo: true, HasRemote: true, HasOrigin: true,
				RepoURL: ptr("git@gitlab.com:acme/ocean.git"),
				Remotes: []git.Remote{{Name: "origin", URL: "git@gitlab.com:acme/ocean.git", Type: "fetch"}},
			},
			"git@gitlab.com:acme/ocean.git",
		},
		{
			"other remote",
			git.RemoteInfo{
				IsGitRepo: true, HasRemote: true,
				Remotes: []git.Remote{{Name: "mirror", URL: "/srv/git/ocean.git", Type: "fetch"}},
			},
			"/srv/git/ocean.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			row := ThemeTableRow(testTheme(), &tt.info, now)
			if len(row) != len(ThemeHeaders(true)) {
				t.Fatalf("expected %d columns, got %d", len(ThemeHeaders(true)), len(row))
			}
			if got := ansi.Strip(row[5]); got != tt.want {
				t.Errorf("REMOTE = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	if got := RenderTable(ThemeHeaders(false), nil); got != "" {
		t.Errorf("RenderTable(no rows) = %q, want empty", got)
	}

	out := ansi.Strip(RenderTable(ThemeHeaders(false), [][]string{ThemeTableRow(testTheme(), nil, now)}))
	for _, s := range []string{"ID", "STATUS", "ocean-theme", "Ocean"} {
		if !strings.Contains(out, s) {
			t.Errorf("table lacks %q:\n%s", s, out)
		}
	}
}

func ptr(s string) *string { return &s }
