package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/btm/internal/blocklet"
	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/forge"
	"github.com/raphi011/btm/internal/format"
	"github.com/raphi011/btm/internal/git"
	"github.com/raphi011/btm/internal/hooks"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/theme"
)

// ErrMissingDID is returned when set-did receives no DID.
var ErrMissingDID = errors.New("did is required")

// NotReadyError reports the status of a theme that cannot be launched.
type NotReadyError struct {
	Status theme.Status
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("only ready themes can be launched (current status: %s)", e.Status)
}

func (e *NotReadyError) Unwrap() error {
	return theme.ErrNotReady
}

// HookOptions selects which hooks run after an action.
type HookOptions struct {
	Name   string            // run only this hook
	Skip   bool              // run no hooks
	Env    map[string]string // custom placeholder values
	DryRun bool
}

// Service runs theme actions against a catalog.
type Service struct {
	Catalog *theme.Catalog
	Config  *config.Config
	Forge   forge.Forge
	Hooks   HookOptions
}

// New returns a Service using the forge selected by cfg.
func New(cat *theme.Catalog, cfg *config.Config) *Service {
	return &Service{
		Catalog: cat,
		Config:  cfg,
		Forge:   forge.New(cfg.GitHub.CreateScript),
	}
}

// Get returns the theme with id.
func (s *Service) Get(id string) (theme.Theme, error) {
	return s.Catalog.Get(id)
}

// Refresh rescans the workspace.
func (s *Service) Refresh(ctx context.Context) ([]theme.Theme, error) {
	return s.Catalog.Rescan(ctx)
}

// UpdateDID provisions a fresh DID with the scaffolding tool and writes
// it to the theme's descriptor.
func (s *Service) UpdateDID(ctx context.Context, id string) (theme.Theme, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return theme.Theme{}, err
	}
	if _, err := os.Stat(filepath.Join(t.Path, theme.DescriptorFile)); err != nil {
		return theme.Theme{}, theme.ErrNoDescriptor
	}

	log.FromContext(ctx).Debug("requesting new DID", "theme", id)
	did, err := blocklet.CreateDID(ctx, t.Path)
	if err != nil {
		return theme.Theme{}, err
	}
	return s.applyDID(ctx, t, did, hooks.TriggerUpdateDID)
}

// SetDID writes a user-supplied DID to the theme's descriptor.
func (s *Service) SetDID(ctx context.Context, id, did string) (theme.Theme, error) {
	did = strings.TrimSpace(did)
	if did == "" {
		return theme.Theme{}, ErrMissingDID
	}
	t, err := s.Catalog.Get(id)
	if err != nil {
		return theme.Theme{}, err
	}
	return s.applyDID(ctx, t, did, hooks.TriggerSetDID)
}

func (s *Service) applyDID(ctx context.Context, t theme.Theme, did string, trigger hooks.Trigger) (theme.Theme, error) {
	if err := theme.SetDID(t.Path, did); err != nil {
		return theme.Theme{}, err
	}

	baseDID := s.Catalog.BaseDID()
	now := s.Catalog.Now()
	updated, err := s.Catalog.Update(t.ID, func(th *theme.Theme) {
		th.ApplyDID(did, baseDID, now)
	})
	if err != nil {
		return theme.Theme{}, err
	}

	log.FromContext(ctx).Debug("did updated", "theme", t.ID, "did", did, "status", updated.Status)
	s.runHooks(ctx, trigger, updated, "", updated.Path)
	return updated, nil
}

// BundleResult is the outcome of a bundle check. A failing build is a
// result, not an error.
type BundleResult struct {
	Success bool
	Message string
	Stdout  string
	Stderr  string
	Error   string
	Theme   theme.Theme
}

// CheckBundle runs the theme's bundle script.
func (s *Service) CheckBundle(ctx context.Context, id string) (BundleResult, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return BundleResult{}, err
	}

	res := blocklet.Bundle(ctx, t.Path, s.Config.Bundle.NodeOptions)
	if ctx.Err() != nil {
		return BundleResult{}, ctx.Err()
	}

	out := BundleResult{
		Success: res.Success(),
		Stdout:  res.Stdout,
		Stderr:  res.Stderr,
		Theme:   t,
	}
	if !res.Success() {
		out.Message = "Bundle check failed, manual intervention required"
		out.Error = res.Err.Error()
		log.FromContext(ctx).Warn("bundle check failed for %s: %v", id, res.Err)
		return out, nil
	}

	out.Message = "Bundle check passed, the theme can be packaged"
	s.runHooks(ctx, hooks.TriggerCheckBundle, t, "", t.Path)
	return out, nil
}

// RepoResult is the outcome of creating a remote repository.
type RepoResult struct {
	URL     string
	Output  string
	Message string
}

// CreateRepo publishes the theme folder as a new remote repository.
// The repository is named after the folder and described by the
// package name.
func (s *Service) CreateRepo(ctx context.Context, id string) (RepoResult, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return RepoResult{}, err
	}

	name := format.SanitizeForPath(t.ID)
	params := forge.CreateRepoParams{
		Org:         s.Config.GitHub.Org,
		Name:        name,
		Description: forge.Description(t.Name),
		Visibility:  s.Config.GitHub.Visibility,
	}

	res, err := s.Forge.CreateRepo(ctx, t.Path, params)
	if err != nil {
		var output string
		if res != nil {
			output = res.Output
		}
		return RepoResult{Output: output}, err
	}

	s.runHooks(ctx, hooks.TriggerCreateRepo, t, res.URL, t.Path)
	return RepoResult{
		URL:     res.URL,
		Output:  res.Output,
		Message: fmt.Sprintf("Created repository %s/%s", params.Org, params.Name),
	}, nil
}

// Delete removes the theme folder and drops it from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return err
	}
	if err := s.checkInWorkspace(t.Path); err != nil {
		return err
	}

	if err := os.RemoveAll(t.Path); err != nil {
		return fmt.Errorf("delete %s: %w", t.ID, err)
	}
	if err := s.Catalog.Remove(id); err != nil && !errors.Is(err, theme.ErrNotFound) {
		return err
	}

	log.FromContext(ctx).Debug("theme deleted", "theme", id, "path", t.Path)
	s.runHooks(ctx, hooks.TriggerDelete, t, "", s.Catalog.Options().Workspace)
	return nil
}

// checkInWorkspace refuses paths that are not direct children of the workspace.
func (s *Service) checkInWorkspace(path string) error {
	ws := s.Catalog.Options().Workspace
	rel, err := filepath.Rel(ws, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return fmt.Errorf("refusing to delete %s: not a theme folder of %s", path, ws)
	}
	return nil
}

// LaunchResult is the dev command for a ready theme.
type LaunchResult struct {
	Theme   theme.Theme
	Command string
	Message string
}

// Launch returns the command that starts the theme in dev mode.
func (s *Service) Launch(ctx context.Context, id string) (LaunchResult, error) {
	t, err := s.ready(id)
	if err != nil {
		return LaunchResult{}, err
	}
	return LaunchResult{
		Theme:   t,
		Command: blocklet.DevCommand(t.Path),
		Message: "Run the command in a terminal to start the theme",
	}, nil
}

// LaunchStudio starts the studio of a ready theme in the background.
// Output is forwarded to out (may be nil).
func (s *Service) LaunchStudio(ctx context.Context, id string, out io.Writer) (*blocklet.Studio, theme.Theme, error) {
	t, err := s.ready(id)
	if err != nil {
		return nil, theme.Theme{}, err
	}
	studio, err := blocklet.StartStudio(ctx, t.Path, out)
	if err != nil {
		return nil, t, err
	}
	return studio, t, nil
}

func (s *Service) ready(id string) (theme.Theme, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return theme.Theme{}, err
	}
	if t.Status != theme.StatusReady {
		return t, &NotReadyError{Status: t.Status}
	}
	return t, nil
}

// Remotes returns the git remotes of the theme. A folder outside any
// repository is reported through RemoteInfo.IsGitRepo, not as an error.
func (s *Service) Remotes(ctx context.Context, id string) (git.RemoteInfo, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return git.RemoteInfo{}, err
	}
	info, err := git.ListRemotes(ctx, t.Path)
	if errors.Is(err, git.ErrNotRepository) {
		return info, nil
	}
	return info, err
}

// LoadRemotes returns remote info for every theme in order.
func (s *Service) LoadRemotes(ctx context.Context, themes []theme.Theme) []git.RemoteInfo {
	refs := make([]git.RepoRef, len(themes))
	for i, t := range themes {
		refs[i] = git.RepoRef{Name: t.ID, Path: t.Path}
	}
	return git.LoadRemotes(ctx, refs)
}

// SubmoduleResult lists the submodules of a theme.
type SubmoduleResult struct {
	IsGitRepo  bool            `json:"isGitRepo"`
	Submodules []git.Submodule `json:"submodules"`
}

// Submodules returns the submodule status of the theme.
func (s *Service) Submodules(ctx context.Context, id string) (SubmoduleResult, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return SubmoduleResult{}, err
	}
	subs, err := git.SubmoduleStatus(ctx, t.Path)
	if errors.Is(err, git.ErrNotRepository) {
		return SubmoduleResult{Submodules: []git.Submodule{}}, nil
	}
	if err != nil {
		return SubmoduleResult{}, err
	}
	return SubmoduleResult{IsGitRepo: true, Submodules: subs}, nil
}

// Readme renders the theme README to HTML.
func (s *Service) Readme(id string) (string, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return "", err
	}
	return theme.RenderReadme(t.Path)
}

// Logo loads the theme logo.
func (s *Service) Logo(id string) (theme.Logo, error) {
	t, err := s.Catalog.Get(id)
	if err != nil {
		return theme.Logo{}, err
	}
	return theme.ReadLogo(t.Path)
}

func (s *Service) runHooks(ctx context.Context, trigger hooks.Trigger, t theme.Theme, repoURL, workDir string) {
	matches, err := hooks.SelectHooks(s.Config.Hooks, s.Hooks.Name, s.Hooks.Skip, trigger)
	if err != nil {
		log.FromContext(ctx).Warn("%v", err)
		return
	}
	if len(matches) == 0 {
		return
	}
	hctx := hooks.ContextFor(t.Path, t.DID, trigger, s.Hooks.Env)
	hctx.RepoURL = repoURL
	hctx.DryRun = s.Hooks.DryRun
	hooks.RunAllNonFatal(ctx, matches, hctx, workDir)
}
