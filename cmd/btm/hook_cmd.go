package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/hooks"
	"github.com/raphi011/btm/internal/log"
)

func newHookCmd() *cobra.Command {
	var (
		env    []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "hook <id> <name>...",
		Short:   "Run configured hooks in a theme",
		GroupID: GroupUtility,
		Args:    cobra.MinimumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeThemeIDs(cmd, args, toComplete)
			}
			return completeHookNames(cmd, args, toComplete)
		},
		Long: `Run one or more configured hooks in a theme folder.

Hooks are defined in config.toml or the workspace .btm.toml and can use
the placeholders {id}, {path}, {did}, {repo-url} and {trigger}, plus
custom {key} values set with -a key=value.`,
		Example: `  btm hook ocean-theme notify             # Run 'notify' in ocean-theme
  btm hook ocean-theme notify -a ch=ops   # Set {ch} for the hook
  btm hook ocean-theme notify --dry-run   # Print command without executing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			hookEnv, err := hooks.ParseEnv(env)
			if err != nil {
				return err
			}

			// Validate all hooks exist before running any
			names := args[1:]
			var missing []string
			for _, name := range names {
				if _, ok := cfg.Hooks.Hooks[name]; !ok {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				available := slices.Sorted(maps.Keys(cfg.Hooks.Hooks))
				if len(available) == 0 {
					return fmt.Errorf("unknown hook(s) %v (no hooks configured)", missing)
				}
				return fmt.Errorf("unknown hook(s) %v (available: %v)", missing, available)
			}

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}
			t, err := findTheme(svc, args[0])
			if err != nil {
				return err
			}

			hctx := hooks.ContextFor(t.Path, t.DID, hooks.TriggerRun, hookEnv)
			hctx.DryRun = dryRun
			l.Debug("running hooks", "theme", t.ID, "hooks", names, "dryRun", dryRun)

			for _, name := range names {
				hook := cfg.Hooks.Hooks[name]
				if err := hooks.RunSingle(ctx, name, &hook, hctx); err != nil {
					return fmt.Errorf("hook %s: %w", name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&env, "arg", "a", nil, "Set hook variable KEY=VALUE")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Print command without executing")
	cmd.RegisterFlagCompletionFunc("arg", cobra.NoFileCompletions)

	return cmd
}
