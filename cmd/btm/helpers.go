package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/actions"
	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/format"
	"github.com/raphi011/btm/internal/hooks"
	"github.com/raphi011/btm/internal/theme"
	"github.com/raphi011/btm/internal/ui/prompt"
)

// maxSuggestions limits "did you mean" candidates for unknown ids.
const maxSuggestions = 3

// scanOptions returns the workspace scan options for cfg.
func scanOptions(cfg *config.Config) theme.Options {
	return theme.Options{
		Workspace:  cfg.WorkspaceDir,
		Marker:     cfg.ThemeMarker,
		MonitorDir: cfg.MonitorDir,
		BaseDir:    cfg.BaseThemeDir,
		BaseDID:    cfg.BaseThemeDID,
	}
}

// loadService scans the workspace and returns an action service over it.
func loadService(ctx context.Context) (*actions.Service, error) {
	cfg := config.FromContext(ctx)
	cat := theme.NewCatalog(scanOptions(cfg))
	if _, err := cat.Rescan(ctx); err != nil {
		return nil, fmt.Errorf("scan workspace: %w", err)
	}
	return actions.New(cat, cfg), nil
}

// findTheme returns the theme with id. Unknown ids are reported together
// with the closest known ids.
func findTheme(svc *actions.Service, id string) (theme.Theme, error) {
	t, err := svc.Get(id)
	if errors.Is(err, theme.ErrNotFound) {
		return t, notFoundError(id, svc.Catalog.IDs())
	}
	return t, err
}

func notFoundError(id string, ids []string) error {
	matches := fuzzy.Find(id, ids)
	if len(matches) == 0 {
		return fmt.Errorf("theme %q: %w", id, theme.ErrNotFound)
	}
	var names []string
	for _, m := range matches[:min(maxSuggestions, len(matches))] {
		names = append(names, m.Str)
	}
	return fmt.Errorf("theme %q: %w (did you mean: %s?)", id, theme.ErrNotFound, strings.Join(names, ", "))
}

// themeArg returns the theme named by args[0]. Without an argument it
// asks the user to pick one when stdin is a terminal.
func themeArg(svc *actions.Service, args []string) (theme.Theme, error) {
	if len(args) > 0 {
		return findTheme(svc, args[0])
	}
	if !isTerminal(os.Stdin) {
		return theme.Theme{}, fmt.Errorf("theme id required")
	}

	themes := svc.Catalog.List()
	if len(themes) == 0 {
		return theme.Theme{}, fmt.Errorf("no themes found in %s", svc.Catalog.Options().Workspace)
	}
	options := make([]prompt.Option, len(themes))
	for i, t := range themes {
		desc := string(t.Status)
		if t.DID != "" {
			desc += "  " + format.ShortDID(t.DID)
		}
		options[i] = prompt.Option{Value: t.ID, Description: desc}
	}

	result, err := prompt.Select("Select a theme", options)
	if err != nil {
		return theme.Theme{}, err
	}
	if result.Cancelled {
		return theme.Theme{}, fmt.Errorf("cancelled")
	}
	return findTheme(svc, result.Value)
}

// hookFlags are the post-action hook flags shared by action commands.
type hookFlags struct {
	name   string
	noHook bool
	env    []string
	dryRun bool
}

func addHookFlags(cmd *cobra.Command, f *hookFlags) {
	cmd.Flags().StringVar(&f.name, "hook", "", "Run only this hook after the action")
	cmd.Flags().BoolVar(&f.noHook, "no-hook", false, "Skip post-action hooks")
	cmd.Flags().StringSliceVarP(&f.env, "arg", "a", nil, "Set hook variable KEY=VALUE")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print hook commands without executing")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")
	cmd.RegisterFlagCompletionFunc("hook", completeHookNames)
	cmd.RegisterFlagCompletionFunc("arg", cobra.NoFileCompletions)
}

// apply validates the flags and sets them on svc.
func (f hookFlags) apply(svc *actions.Service) error {
	env, err := hooks.ParseEnv(f.env)
	if err != nil {
		return err
	}
	if f.name != "" {
		if _, ok := svc.Config.Hooks.Hooks[f.name]; !ok {
			return fmt.Errorf("unknown hook %q", f.name)
		}
	}
	svc.Hooks = actions.HookOptions{
		Name:   f.name,
		Skip:   f.noHook,
		Env:    env,
		DryRun: f.dryRun,
	}
	return nil
}
