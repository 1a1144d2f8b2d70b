package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/btm/internal/theme"
)

// requiredTools are the CLIs actions shell out to.
var requiredTools = []string{"git", "gh", "blocklet", "yarn"}

// checkTools reports tools missing from PATH and an unauthenticated gh.
func (d *Doctor) checkTools(ctx context.Context) ([]Issue, int) {
	var issues []Issue
	ok := 0
	for _, tool := range requiredTools {
		if _, err := d.LookPath(tool); err != nil {
			issues = append(issues, Issue{
				Key:         tool,
				Description: "not found in PATH",
			})
			continue
		}
		ok++
	}

	ghMissing := slices.ContainsFunc(issues, func(i Issue) bool { return i.Key == "gh" })
	if !ghMissing && d.Forge != nil {
		if err := d.Forge.Check(ctx); err != nil {
			issues = append(issues, Issue{
				Key:         "gh",
				Description: fmt.Sprintf("not ready: %v", err),
			})
		}
	}
	return issues, ok
}

// folder is a theme folder found without running a scan.
type folder struct {
	id   string
	path string
}

// listThemes returns the theme folders of the workspace.
func (d *Doctor) listThemes() ([]folder, error) {
	entries, err := os.ReadDir(d.Opts.Workspace)
	if err != nil {
		return nil, err
	}
	var out []folder
	for _, e := range entries {
		if !d.Opts.IsCandidate(e.Name()) || !theme.IsDirEntry(d.Opts.Workspace, e) {
			continue
		}
		dir := filepath.Join(d.Opts.Workspace, e.Name())
		if theme.IsTheme(dir) {
			out = append(out, folder{id: e.Name(), path: dir})
		}
	}
	return out, nil
}

// checkBaseTemplate reports a missing base template or one without a DID.
func (d *Doctor) checkBaseTemplate() []Issue {
	dir := filepath.Join(d.Opts.Workspace, d.Opts.BaseDir)
	desc, err := theme.ReadDescriptor(dir)
	switch {
	case err != nil:
		return []Issue{{
			Key:         d.Opts.BaseDir,
			Description: fmt.Sprintf("base template not readable (%v), using built-in DID %s", err, d.Opts.BaseDID),
		}}
	case strings.TrimSpace(desc.DID) == "":
		return []Issue{{
			Key:         d.Opts.BaseDir,
			Description: fmt.Sprintf("base template has no DID, using built-in DID %s", d.Opts.BaseDID),
		}}
	}
	return nil
}

// checkSidecars reports themes without a usable creation time.
func checkSidecars(themes []folder) []Issue {
	var issues []Issue
	for _, f := range themes {
		t, err := theme.ReadSidecar(f.path)
		var desc string
		switch {
		case errors.Is(err, os.ErrNotExist):
			desc = fmt.Sprintf("%s missing", theme.SidecarFile)
		case errors.Is(err, theme.ErrCorruptSidecar):
			desc = fmt.Sprintf("%s unparseable: %v", theme.SidecarFile, err)
		case err != nil:
			desc = fmt.Sprintf("%s unreadable: %v", theme.SidecarFile, err)
		case t.IsZero():
			desc = fmt.Sprintf("%s has no createdAt", theme.SidecarFile)
		default:
			continue
		}
		issues = append(issues, Issue{
			Key:         f.id,
			Description: desc,
			FixAction:   FixWriteSidecar,
			Path:        f.path,
		})
	}
	return issues
}

// checkDIDs reports themes sharing a DID and themes on the base DID.
func checkDIDs(themes []folder, baseDID string) (dups, template []Issue) {
	byDID := map[string][]string{}
	for _, f := range themes {
		desc, err := theme.ReadDescriptor(f.path)
		if err != nil {
			continue
		}
		did := strings.TrimSpace(desc.DID)
		switch {
		case did == "":
		case did == baseDID:
			template = append(template, Issue{
				Key:         f.id,
				Description: "still uses the base template DID, run 'btm did update " + f.id + "'",
				Path:        f.path,
			})
		default:
			byDID[did] = append(byDID[did], f.id)
		}
	}

	for did, ids := range byDID {
		if len(ids) < 2 {
			continue
		}
		for _, id := range ids {
			others := slices.DeleteFunc(slices.Clone(ids), func(o string) bool { return o == id })
			dups = append(dups, Issue{
				Key:         id,
				Description: fmt.Sprintf("DID %s also used by %s", did, strings.Join(others, ", ")),
			})
		}
	}
	slices.SortFunc(dups, func(a, b Issue) int { return strings.Compare(a.Key, b.Key) })
	return dups, template
}
