package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupActions = "actions"
	GroupUtility = "utility"
)

// isTerminal reports whether f is an interactive terminal.
var isTerminal = func(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// globalFlags are shared by every command.
type globalFlags struct {
	verbose   bool
	quiet     bool
	workspace string
}

// newRootCmd builds the command tree. loadConfig reads the global config.
func newRootCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "btm",
		Short: "Blog theme monitor",
		Long: `btm monitors a workspace of blog theme projects.

It scans the workspace for theme folders, derives a status from each
theme's DID and runs maintenance actions (DID provisioning, bundle
checks, repository creation) from the command line or over HTTP.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, flags, loadConfig)
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&flags.workspace, "workspace", "w", "", "Workspace directory (default: parent of the monitor checkout, else cwd)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkPersistentFlagDirname("workspace")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupActions, Title: "Action Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newServeCmd())

	// Action commands
	rootCmd.AddCommand(newDIDCmd())
	rootCmd.AddCommand(newBundleCmd())
	rootCmd.AddCommand(newRepoCmd())
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newDeleteCmd())

	// Utility commands
	rootCmd.AddCommand(newHookCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup attaches logger, printer and the effective config to the command
// context. The workspace is resolved once and stored in the config.
func setup(cmd *cobra.Command, flags globalFlags, loadConfig func() (config.Config, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Colors are downsampled to what each stream supports (none when piped)
	stdout := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
	stderr := colorprofile.NewWriter(cmd.ErrOrStderr(), os.Environ())

	// Create logger (stderr for diagnostics)
	logger := log.New(stderr, flags.verbose, flags.quiet)
	ctx = log.WithLogger(ctx, logger)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, stdout)

	loaded, err := loadConfig()
	if err != nil {
		logger.Warn("%v", err)
	}
	cfg := &loaded
	styles.Init(cfg.UI)

	if flags.workspace != "" {
		abs, err := filepath.Abs(flags.workspace)
		if err != nil {
			return fmt.Errorf("resolve --workspace: %w", err)
		}
		cfg.WorkspaceDir = abs
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	ws, err := cfg.ResolveWorkspace(cwd)
	if err != nil {
		return fmt.Errorf("resolve workspace: %w", err)
	}
	cfg.WorkspaceDir = ws

	local, err := config.LoadLocal(ws)
	if err != nil {
		logger.Warn("%v", err)
	} else {
		cfg = config.MergeLocal(cfg, local)
	}

	logger.Debug("workspace resolved", "path", ws)
	ctx = config.WithWorkDir(ctx, cwd)
	cmd.SetContext(config.WithConfig(ctx, cfg))
	return nil
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd(config.Load)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'btm -h' for help")
		os.Exit(1)
	}
	cancel()
}
