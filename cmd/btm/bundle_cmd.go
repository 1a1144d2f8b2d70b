package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/blocklet"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/ui/progress"
	"github.com/raphi011/btm/internal/ui/styles"
)

// bundleTailLines is how much build output a failed check prints.
const bundleTailLines = 20

func newBundleCmd() *cobra.Command {
	var hf hookFlags

	cmd := &cobra.Command{
		Use:               "bundle <id>",
		Short:             "Check that a theme bundles",
		GroupID:           GroupActions,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemeIDs,
		Long: `Run "yarn run bundle" in the theme folder with the configured
NODE_OPTIONS. Hooks with on = ["check-bundle"] run when the bundle passes.`,
		Example: `  btm bundle ocean-theme
  btm bundle ocean-theme --no-hook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if err := blocklet.Check("yarn"); err != nil {
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

			var sp *progress.Spinner
			if isTerminal(os.Stderr) && !l.IsVerbose() {
				sp = progress.NewSpinner(os.Stderr, fmt.Sprintf("Bundling %s...", t.ID))
				sp.Start()
			}
			res, err := svc.CheckBundle(ctx, t.ID)
			if sp != nil {
				sp.Stop()
			}
			if err != nil {
				return fmt.Errorf("bundle %s: %w", t.ID, err)
			}

			if !res.Success {
				if tail := lastLines(res.Stderr+res.Stdout, bundleTailLines); tail != "" {
					l.Println(tail)
				}
				return fmt.Errorf("%s: %s", res.Message, res.Error)
			}

			out.Printf("%s %s: %s\n", styles.SuccessStyle.Render("✓"), t.ID, res.Message)
			return nil
		},
	}

	addHookFlags(cmd, &hf)

	return cmd
}

// lastLines returns the last n lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
