package main

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/actions"
	"github.com/raphi011/btm/internal/blocklet"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/ui/styles"
)

func newLaunchCmd() *cobra.Command {
	var (
		studio          bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:               "launch <id>",
		Short:             "Start a ready theme",
		GroupID:           GroupActions,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemeIDs,
		Long: `Print the command that starts a theme in development mode.

Only themes with status "ready" can be launched. With --studio the
blocklet studio is started in the foreground instead and stopped on
Ctrl+C.`,
		Example: `  btm launch ocean-theme            # Print the dev command
  btm launch ocean-theme --copy     # Copy the dev command to the clipboard
  eval "$(btm launch ocean-theme)"  # Run it in the current shell
  btm launch ocean-theme --studio   # Run blocklet dev studio`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}
			t, err := findTheme(svc, args[0])
			if err != nil {
				return err
			}

			if studio {
				return runStudio(cmd, svc, t.ID)
			}

			res, err := svc.Launch(ctx, t.ID)
			if err != nil {
				return notReadyHint(t.ID, err)
			}

			out.Println(res.Command)
			if copyToClipboard {
				if err := clipboard.WriteAll(res.Command); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				l.Println("Copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&studio, "studio", false, "Run blocklet dev studio in the foreground")
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the dev command to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("studio", "copy")

	return cmd
}

// runStudio runs the studio until it exits or the command is interrupted.
func runStudio(cmd *cobra.Command, svc *actions.Service, id string) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if err := blocklet.Check("blocklet"); err != nil {
		return err
	}

	st, _, err := svc.LaunchStudio(ctx, id, l.Writer())
	if err != nil {
		return notReadyHint(id, err)
	}
	l.Debug("studio started", "theme", id, "pid", st.PID())

	go func() {
		if u, ok := st.WaitURL(ctx); ok {
			out.Println(styles.FormatLink(u, u))
		}
	}()

	done := make(chan error, 1)
	go func() { done <- st.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		l.Println("Stopping studio...")
		if err := st.Stop(); err != nil {
			return err
		}
		<-done
		return nil
	}
}

// notReadyHint adds the fixing command to a not-ready error.
func notReadyHint(id string, err error) error {
	var nr *actions.NotReadyError
	if errors.As(err, &nr) {
		return fmt.Errorf("%w\n  Provision a DID first: btm did update %s", err, id)
	}
	return err
}
