package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/git"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/ui/progress"
	"github.com/raphi011/btm/internal/ui/styles"
)

func newRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repo",
		Short:   "Manage theme repositories",
		GroupID: GroupActions,
		Long:    `Create and inspect the git repositories of themes.`,
		Example: `  btm repo create ocean-theme      # Publish to GitHub
  btm repo remotes ocean-theme     # Show git remotes
  btm repo submodules ocean-theme  # Show submodule status`,
	}

	cmd.AddCommand(newRepoCreateCmd())
	cmd.AddCommand(newRepoRemotesCmd())
	cmd.AddCommand(newRepoSubmodulesCmd())

	return cmd
}

func newRepoCreateCmd() *cobra.Command {
	var hf hookFlags

	cmd := &cobra.Command{
		Use:               "create <id>",
		Short:             "Publish a theme as a new repository",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemeIDs,
		Long: `Create a repository named after the theme folder in the configured
organization and push the theme to it. Uses gh unless
[github] create_script is set. Hooks with on = ["create-repo"] run
afterwards with {repo-url} set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			cfg := config.FromContext(ctx)

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
				sp = progress.NewSpinner(os.Stderr, fmt.Sprintf("Checking %s...", svc.Forge.Name()))
				sp.Start()
				defer sp.Stop()
			}

			if err := svc.Forge.Check(ctx); err != nil {
				return err
			}
			if sp != nil {
				sp.UpdateMessage(fmt.Sprintf("Creating %s/%s...", cfg.GitHub.Org, t.ID))
			}

			res, err := svc.CreateRepo(ctx, t.ID)
			if sp != nil {
				sp.Stop()
			}
			if err != nil {
				if res.Output != "" {
					l.Println(res.Output)
				}
				return fmt.Errorf("create repository for %s: %w", t.ID, err)
			}

			l.Debug("repository created", "output", res.Output)
			out.Printf("%s %s\n", styles.SuccessStyle.Render("✓"), res.Message)
			out.Println(styles.FormatLink(res.URL, res.URL))
			return nil
		},
	}

	addHookFlags(cmd, &hf)

	return cmd
}

func newRepoRemotesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:               "remotes <id>",
		Short:             "Show git remotes",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemeIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if err := git.CheckGit(); err != nil {
				return err
			}

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}
			t, err := findTheme(svc, args[0])
			if err != nil {
				return err
			}

			info, err := svc.Remotes(ctx, t.ID)
			if err != nil {
				return fmt.Errorf("list remotes of %s: %w", t.ID, err)
			}

			if jsonOutput {
				return out.JSON(info)
			}
			switch {
			case !info.IsGitRepo:
				out.Printf("%s is not a git repository\n", t.ID)
			case !info.HasRemote:
				out.Printf("%s has no remotes\n", t.ID)
			default:
				for _, r := range info.Remotes {
					out.Printf("%s\t%s (%s)\n", r.Name, r.URL, r.Type)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newRepoSubmodulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:               "submodules <id>",
		Short:             "Show submodule status",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemeIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if err := git.CheckGit(); err != nil {
				return err
			}

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}
			t, err := findTheme(svc, args[0])
			if err != nil {
				return err
			}

			res, err := svc.Submodules(ctx, t.ID)
			if err != nil {
				return fmt.Errorf("submodule status of %s: %w", t.ID, err)
			}

			if jsonOutput {
				return out.JSON(res)
			}
			switch {
			case !res.IsGitRepo:
				out.Printf("%s is not a git repository\n", t.ID)
			case len(res.Submodules) == 0:
				out.Printf("%s has no submodules\n", t.ID)
			default:
				for _, s := range res.Submodules {
					line := fmt.Sprintf("%s\t%s\t%s", s.State, s.Commit, s.Path)
					if s.Ref != "" {
						line += " (" + s.Ref + ")"
					}
					out.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
