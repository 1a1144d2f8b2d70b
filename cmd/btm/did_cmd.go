package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/blocklet"
	"github.com/raphi011/btm/internal/format"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/theme"
	"github.com/raphi011/btm/internal/ui/prompt"
	"github.com/raphi011/btm/internal/ui/styles"
)

func newDIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "did",
		Short:   "Manage theme DIDs",
		GroupID: GroupActions,
		Long: `Manage the DID stored in a theme's blocklet.yml.

A theme without a DID, or still carrying the base template's DID, cannot
be launched until it gets a DID of its own.`,
		Example: `  btm did update ocean-theme          # Provision a new DID with blocklet
  btm did set ocean-theme z8iZ...      # Write a known DID`,
	}

	cmd.AddCommand(newDIDUpdateCmd())
	cmd.AddCommand(newDIDSetCmd())

	return cmd
}

func newDIDUpdateCmd() *cobra.Command {
	var hf hookFlags

	cmd := &cobra.Command{
		Use:               "update <id>",
		Short:             "Provision a new DID",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemeIDs,
		Long: `Provision a new DID with "blocklet meta did" and write it to the
theme's blocklet.yml. Hooks with on = ["update-did"] run afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if err := blocklet.Check("blocklet"); err != nil {
				return err
			}

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

			updated, err := svc.UpdateDID(ctx, t.ID)
			var didErr *blocklet.DIDError
			if errors.As(err, &didErr) {
				l.Printf("blocklet output:\n%s\n", didErr.Output)
			}
			if err != nil {
				return fmt.Errorf("update DID of %s: %w", t.ID, err)
			}

			printDIDResult(output.FromContext(ctx), updated)
			return nil
		},
	}

	addHookFlags(cmd, &hf)

	return cmd
}

func newDIDSetCmd() *cobra.Command {
	var hf hookFlags

	cmd := &cobra.Command{
		Use:               "set <id> [did]",
		Short:             "Write a DID",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeThemeIDs,
		Long: `Write a DID to the theme's blocklet.yml.

Without a DID argument, prompt for it when stdin is a terminal.
Hooks with on = ["set-did"] run afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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

			var did string
			if len(args) == 2 {
				did = args[1]
			} else {
				if !isTerminal(os.Stdin) {
					return fmt.Errorf("did required (stdin is not a terminal)")
				}
				result, err := prompt.TextInput(fmt.Sprintf("DID for %s", t.ID), t.DID, true)
				if err != nil {
					return err
				}
				if result.Cancelled {
					return fmt.Errorf("cancelled")
				}
				did = result.Value
			}

			updated, err := svc.SetDID(ctx, t.ID, did)
			if err != nil {
				return fmt.Errorf("set DID of %s: %w", t.ID, err)
			}

			printDIDResult(output.FromContext(ctx), updated)
			return nil
		},
	}

	addHookFlags(cmd, &hf)

	return cmd
}

func printDIDResult(out *output.Printer, t theme.Theme) {
	out.Printf("%s %s: %s (%s)\n",
		styles.SuccessStyle.Render("✓"), t.ID, format.ShortDID(t.DID), styles.FormatStatus(t.Status))
}
