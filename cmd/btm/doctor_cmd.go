package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/doctor"
	"github.com/raphi011/btm/internal/forge"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair issues",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Diagnose and repair workspace issues.

Checks:
- External tools installed (git, gh, blocklet, yarn) and gh logged in
- Workspace is readable and the base template exists
- Every theme has a valid .theme-metadata.json
- No two themes share a DID, no theme still uses the template DID

--fix rewrites missing or broken metadata files using the folder's
modification time as the creation time.`,
		Example: `  btm doctor          # Check for issues
  btm doctor --fix    # Auto-fix recoverable issues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			d := doctor.New(scanOptions(cfg))
			d.Forge = forge.New(cfg.GitHub.CreateScript)
			_, err := d.Run(ctx, fix)
			return err
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")

	return cmd
}
