package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/ui/prompt"
)

func newDeleteCmd() *cobra.Command {
	var (
		force bool
		hf    hookFlags
	)

	cmd := &cobra.Command{
		Use:               "delete <id>",
		Short:             "Delete a theme folder",
		Aliases:           []string{"rm"},
		GroupID:           GroupActions,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemeIDs,
		Long: `Delete a theme folder from disk.

Asks for confirmation unless --force is given. Without a terminal,
--force is required. Hooks with on = ["delete"] run in the workspace
afterwards.`,
		Example: `  btm delete ocean-theme      # Delete after confirmation
  btm delete ocean-theme -f   # Delete without confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}
			if err := hf.apply(svc); err != nil {
				return err
			}
			t, err := findTheme(svc, args[0])
			if err != nil {
				return err
			}

			if !force {
				if !isTerminal(os.Stdin) {
					return fmt.Errorf("refusing to delete %s without confirmation (use -f)", t.Path)
				}
				result, err := prompt.Confirm(fmt.Sprintf("Delete %s from disk?", t.Path))
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					l.Println("Cancelled")
					return nil
				}
			}

			l.Debug("deleting theme", "id", t.ID, "path", t.Path)
			if err := svc.Delete(ctx, t.ID); err != nil {
				return fmt.Errorf("delete %s: %w", t.ID, err)
			}

			out.Printf("Deleted: %s\n", t.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")
	addHookFlags(cmd, &hf)

	return cmd
}
