package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/theme"
)

// completeThemeIDs completes the first argument with theme folder names.
// It lists the workspace without scanning so completion never writes
// sidecar files.
func completeThemeIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg := config.FromContext(cmd.Context())
	ws, _ := cmd.Flags().GetString("workspace")
	if ws == "" {
		ws = cfg.WorkspaceDir
	}
	if ws == "" {
		var err error
		if ws, err = cfg.ResolveWorkspace(config.WorkDirFromContext(cmd.Context())); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}

	entries, err := os.ReadDir(ws)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	opts := scanOptions(cfg)
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, toComplete) || !opts.IsCandidate(name) || !theme.IsDirEntry(ws, e) {
			continue
		}
		if theme.IsTheme(filepath.Join(ws, name)) {
			ids = append(ids, name)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// completeHookNames completes configured hook names.
func completeHookNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.FromContext(cmd.Context())
	var names []string
	for name := range cfg.Hooks.Hooks {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}
