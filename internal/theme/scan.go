package theme

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/btm/internal/log"
)

// Options configures a workspace scan.
type Options struct {
	Workspace  string
	Marker     string // substring a folder name must contain
	MonitorDir string // never a theme
	BaseDir    string // base template folder, never a theme
	BaseDID    string // fallback when the base template has no did
	Now        func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// ResolveBaseDID returns the DID of the base template, falling back to
// o.BaseDID when the template is missing or has no did.
func (o Options) ResolveBaseDID() string {
	if o.BaseDir != "" {
		if d, err := ReadDescriptor(filepath.Join(o.Workspace, o.BaseDir)); err == nil && d.DID != "" {
			return d.DID
		}
	}
	return o.BaseDID
}

// IsCandidate reports whether a folder name qualifies as a theme folder
// before its content is checked.
func (o Options) IsCandidate(name string) bool {
	if !strings.Contains(name, o.Marker) {
		return false
	}
	return name != o.MonitorDir && name != o.BaseDir
}

// IsDirEntry reports whether the entry e of parent is a directory.
// A symlink counts when its target is a directory.
func IsDirEntry(parent string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}

// IsTheme reports whether dir holds both blocklet.yml and package.json.
func IsTheme(dir string) bool {
	for _, f := range []string{DescriptorFile, PackageFile} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			return false
		}
	}
	return true
}

// Scan lists the themes of the workspace sorted newest first.
// Only an unreadable workspace fails the scan; per-theme problems are
// logged and leave the affected fields empty.
func Scan(ctx context.Context, opts Options) ([]Theme, error) {
	entries, err := os.ReadDir(opts.Workspace)
	if err != nil {
		return nil, fmt.Errorf("read workspace %s: %w", opts.Workspace, err)
	}

	l := log.FromContext(ctx)
	baseDID := opts.ResolveBaseDID()
	l.Debug("scanning workspace", "dir", opts.Workspace, "base_did", baseDID)

	themes := []Theme{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !opts.IsCandidate(e.Name()) || !IsDirEntry(opts.Workspace, e) {
			continue
		}
		dir := filepath.Join(opts.Workspace, e.Name())
		if !IsTheme(dir) {
			l.Debug("skipping folder", "name", e.Name(), "reason", "missing blocklet.yml or package.json")
			continue
		}
		themes = append(themes, Load(ctx, dir, baseDID, opts.now()))
	}

	Sort(themes)
	l.Debug("scan complete", "themes", len(themes))
	return themes, nil
}

// Load builds the record of the theme folder dir.
func Load(ctx context.Context, dir, baseDID string, now time.Time) Theme {
	l := log.FromContext(ctx)
	id := filepath.Base(dir)
	now = now.UTC().Truncate(time.Millisecond)

	desc, err := ReadDescriptor(dir)
	if err != nil {
		l.Warn("read %s in %s: %v", DescriptorFile, id, err)
	}
	pkg, err := ReadPackage(dir)
	if err != nil {
		l.Warn("read %s in %s: %v", PackageFile, id, err)
	}

	t := Theme{
		ID:          id,
		Name:        cmp.Or(pkg.Name, id),
		Path:        dir,
		Title:       cmp.Or(desc.Title, id),
		Description: desc.Description,
		DID:         desc.DID,
		CreatedAt:   CreationTime(ctx, dir, now),
		UpdatedAt:   now,
	}
	t.Status = DeriveStatus(t.DID, baseDID)
	t.NeedsDIDUpdate = t.Status.NeedsDIDUpdate()
	if HasLogo(dir) {
		logo := LogoURL(id)
		t.Logo = &logo
	}
	return t
}

// Sort orders themes by creation time, newest first, then by id.
func Sort(themes []Theme) {
	slices.SortStableFunc(themes, func(a, b Theme) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
