package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/format"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/theme"
	"github.com/raphi011/btm/internal/ui/styles"
)

func newShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:               "show [id]",
		Short:             "Show theme details",
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeThemeIDs,
		Long: `Show the metadata and status of a theme.

Without an id, pick a theme interactively.`,
		Example: `  btm show ocean-theme          # Show details
  btm show ocean-theme --json   # Output as JSON
  btm show                      # Pick a theme interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}
			t, err := themeArg(svc, args)
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(t)
			}
			printTheme(out, t, time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func printTheme(out *output.Printer, t theme.Theme, now time.Time) {
	field := func(name, value string) {
		if value == "" {
			value = styles.MutedStyle.Render("-")
		}
		out.Printf("%-12s %s\n", name+":", value)
	}

	out.Println(styles.Bold.Render(t.ID))
	field("Title", t.Title)
	field("Name", t.Name)
	field("Status", styles.FormatStatus(t.Status)+"  "+styles.MutedStyle.Render(t.Status.Label()))
	field("DID", t.DID)
	field("Path", t.Path)
	field("Created", t.CreatedAt.Format(time.RFC3339)+" ("+format.RelativeTime(t.CreatedAt, now)+")")
	field("Updated", t.UpdatedAt.Format(time.RFC3339))
	if t.Logo != nil {
		field("Logo", theme.LogoFile)
	} else {
		field("Logo", "")
	}
	if t.Description != "" {
		out.Println()
		out.Println(t.Description)
	}
}
