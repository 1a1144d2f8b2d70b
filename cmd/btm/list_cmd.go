package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/git"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/theme"
	"github.com/raphi011/btm/internal/ui/static"
)

// listEntry is one theme in `btm list --json` output.
type listEntry struct {
	theme.Theme
	GitInfo *git.RemoteInfo `json:"gitInfo,omitempty"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		status     string
		remotes    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List themes",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the themes of the workspace.

Themes are sorted by creation date (most recent first). Scanning creates
the .theme-metadata.json sidecar of themes seen for the first time.`,
		Example: `  btm list                     # List all themes
  btm list --status no-did     # Only themes without a DID
  btm list --remotes           # Include the git origin of each theme
  btm list --json              # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var want theme.Status
			if status != "" {
				st, ok := theme.ParseStatus(status)
				if !ok {
					return fmt.Errorf("invalid status %q (valid: %v)", status, theme.AllStatuses)
				}
				want = st
			}

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}

			themes := svc.Catalog.List()
			if want != "" {
				themes = slices.DeleteFunc(themes, func(t theme.Theme) bool {
					return t.Status != want
				})
			}
			l.Debug("listing themes", "count", len(themes), "status", status)

			var infos []git.RemoteInfo
			if remotes {
				infos = svc.LoadRemotes(ctx, themes)
			}

			if jsonOutput {
				entries := make([]listEntry, len(themes))
				for i, t := range themes {
					entries[i] = listEntry{Theme: t}
					if remotes {
						entries[i].GitInfo = &infos[i]
					}
				}
				return out.JSON(entries)
			}

			if len(themes) == 0 {
				out.Printf("No themes found in %s\n", svc.Catalog.Options().Workspace)
				return nil
			}

			now := time.Now()
			rows := make([][]string, len(themes))
			for i, t := range themes {
				var info *git.RemoteInfo
				if remotes {
					info = &infos[i]
				}
				rows[i] = static.ThemeTableRow(t, info, now)
			}
			out.Print(static.RenderTable(static.ThemeHeaders(remotes), rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status: ready, needs-update, no-did")
	cmd.Flags().BoolVarP(&remotes, "remotes", "r", false, "Show the git origin of each theme")

	cmd.RegisterFlagCompletionFunc("status", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, s := range theme.AllStatuses {
			names = append(names, string(s))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
