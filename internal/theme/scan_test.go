package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const testBaseDID = "z2qa2aCch4YEq6m9Qd5GnYRo76yhwfuHEKRTF"

func testOptions(ws string, now time.Time) Options {
	return Options{
		Workspace:  ws,
		Marker:     "theme",
		MonitorDir: "blog-theme-monitor",
		BaseDir:    "base_blog_theme",
		BaseDID:    testBaseDID,
		Now:        func() time.Time { return now },
	}
}

func TestIsCandidate(t *testing.T) {
	t.Parallel()

	opts := testOptions("/ws", time.Now())
	tests := []struct {
		name string
		want bool
	}{
		{"ocean-theme", true},
		{"themes-collection", true},
		{"Theme-Upper", false}, // marker match is case-sensitive
		{"blog-theme-monitor", false},
		{"base_blog_theme", false},
		{"docs", false},
	}
	for _, tt := range tests {
		if got := opts.IsCandidate(tt.name); got != tt.want {
			t.Errorf("IsCandidate(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Base template and monitor are never themes
	writeTheme(t, ws, "base_blog_theme", "did: "+testBaseDID+"\n", `{"name":"base"}`)
	writeTheme(t, ws, "blog-theme-monitor", "title: Monitor\n", `{"name":"monitor"}`)

	// Not candidates
	writeTheme(t, ws, "docs", "title: Docs\n", `{"name":"docs"}`)
	writeFiles(t, filepath.Join(ws, "half-theme"), map[string]string{DescriptorFile: "title: Half\n"})
	if err := os.WriteFile(filepath.Join(ws, "file-theme"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	ocean := writeTheme(t, ws, "ocean-theme",
		"title: Ocean\ndescription: Calm blue\ndid: z8iZocean\n", `{"name": "@blocklet/ocean"}`)
	writeFiles(t, ocean, map[string]string{
		LogoFile:    "\x89PNG",
		SidecarFile: `{"createdAt": "2025-05-01T00:00:00.000Z", "createdBy": "blog-theme-monitor"}`,
	})

	forest := writeTheme(t, ws, "forest-theme", "did: "+testBaseDID+"\n", `{"name": "forest",}`)
	writeFiles(t, forest, map[string]string{
		SidecarFile: `{"createdAt": "2025-05-20T00:00:00.000Z", "createdBy": "blog-theme-monitor"}`,
	})

	writeTheme(t, ws, "desert-theme", "title: [broken\n", `not json`)

	themes, err := Scan(context.Background(), testOptions(ws, now))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	oceanLogo := "/api/themes/ocean-theme/logo"
	want := []Theme{
		{
			ID:             "desert-theme",
			Name:           "desert-theme",
			Path:           filepath.Join(ws, "desert-theme"),
			Title:          "[broken",
			NeedsDIDUpdate: true,
			CreatedAt:      now,
			UpdatedAt:      now,
			Status:         StatusNoDID,
		},
		{
			ID:             "forest-theme",
			Name:           "forest",
			Path:           forest,
			Title:          "forest-theme",
			DID:            testBaseDID,
			NeedsDIDUpdate: true,
			CreatedAt:      time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
			UpdatedAt:      now,
			Status:         StatusNeedsUpdate,
		},
		{
			ID:          "ocean-theme",
			Name:        "@blocklet/ocean",
			Path:        ocean,
			Title:       "Ocean",
			Description: "Calm blue",
			DID:         "z8iZocean",
			CreatedAt:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   now,
			Status:      StatusReady,
			Logo:        &oceanLogo,
		},
	}

	if diff := cmp.Diff(want, themes); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}

	// desert-theme got a sidecar on first sight
	if _, err := os.Stat(filepath.Join(ws, "desert-theme", SidecarFile)); err != nil {
		t.Errorf("sidecar not created: %v", err)
	}
}

func TestScan_BaseDIDFromTemplate(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	writeTheme(t, ws, "base_blog_theme", "did: zTemplate\n", `{}`)
	writeTheme(t, ws, "copy-theme", "did: zTemplate\n", `{}`)
	writeTheme(t, ws, "legacy-theme", "did: "+testBaseDID+"\n", `{}`)

	themes, err := Scan(context.Background(), testOptions(ws, time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	status := map[string]Status{}
	for _, th := range themes {
		status[th.ID] = th.Status
	}
	if status["copy-theme"] != StatusNeedsUpdate {
		t.Errorf("copy-theme status = %q, want needs-update", status["copy-theme"])
	}
	if status["legacy-theme"] != StatusReady {
		t.Errorf("legacy-theme status = %q, want ready", status["legacy-theme"])
	}
}

func TestScan_TiesBrokenByID(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"c-theme", "a-theme", "b-theme"} {
		writeTheme(t, ws, id, "title: x\n", `{}`)
	}

	themes, err := Scan(context.Background(), testOptions(ws, now))
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, th := range themes {
		ids = append(ids, th.ID)
	}
	if diff := cmp.Diff([]string{"a-theme", "b-theme", "c-theme"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_FollowsSymlinkedFolders(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	src := writeTheme(t, t.TempDir(), "ocean-theme-src", "title: Ocean\ndid: z8iZocean\n", `{"name":"ocean"}`)
	if err := os.Symlink(src, filepath.Join(ws, "ocean-theme")); err != nil {
		t.Fatal(err)
	}
	// A symlink to a file is still not a theme
	if err := os.WriteFile(filepath.Join(ws, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(ws, "notes.txt"), filepath.Join(ws, "file-theme")); err != nil {
		t.Fatal(err)
	}

	themes, err := Scan(context.Background(), testOptions(ws, time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if len(themes) != 1 {
		t.Fatalf("Scan() found %d themes, want 1", len(themes))
	}
	if got := themes[0]; got.ID != "ocean-theme" || got.Title != "Ocean" || got.Status != StatusReady {
		t.Errorf("Scan() = %+v", got)
	}
}

func TestScan_Empty(t *testing.T) {
	t.Parallel()

	themes, err := Scan(context.Background(), testOptions(t.TempDir(), time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if themes == nil || len(themes) != 0 {
		t.Errorf("Scan() = %#v, want empty non-nil slice", themes)
	}
}

func TestScan_MissingWorkspace(t *testing.T) {
	t.Parallel()

	_, err := Scan(context.Background(), testOptions(filepath.Join(t.TempDir(), "nope"), time.Now()))
	if err == nil {
		t.Fatal("Scan() on missing workspace should fail")
	}
}

func TestApplyDID(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	th := Theme{ID: "ocean-theme", DID: testBaseDID, Status: StatusNeedsUpdate, NeedsDIDUpdate: true}
	th.ApplyDID("z8iZfresh", testBaseDID, now)

	if th.DID != "z8iZfresh" || th.Status != StatusReady || th.NeedsDIDUpdate || !th.UpdatedAt.Equal(now) {
		t.Errorf("ApplyDID() = %+v", th)
	}
}
