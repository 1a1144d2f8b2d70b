package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/ui/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupUtility,
		Long: `Manage btm configuration.

Global config: ~/.config/btm/config.toml
Local config:  .btm.toml (in the workspace)`,
		Example: `  btm config init          # Create default global config
  btm config init --local  # Create workspace config
  btm config show          # Show effective config
  btm config hooks         # List available hooks`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigHooksCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config at ~/.config/btm/config.toml.
With --local, creates .btm.toml in the workspace.`,
		Example: `  btm config init           # Create global config
  btm config init --local   # Create workspace config
  btm config init -f        # Overwrite existing config
  btm config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			content := config.DefaultConfig()
			if local {
				content = config.DefaultLocalConfig()
			}
			if stdout {
				out.Print(content)
				return nil
			}

			var path string
			if local {
				path = filepath.Join(config.FromContext(ctx).WorkspaceDir, config.LocalConfigFileName)
			} else {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}

			if err := writeConfigFile(path, content, force); err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create workspace .btm.toml instead of global config")

	return cmd
}

func writeConfigFile(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Print the effective configuration as TOML: the global file merged
with the workspace .btm.toml, environment overrides and defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			return encodeConfig(output.FromContext(ctx), cfg)
		},
	}

	return cmd
}

// encodeConfig writes cfg as TOML. Hooks are encoded as [hooks.NAME]
// tables after the regular keys.
func encodeConfig(out *output.Printer, cfg *config.Config) error {
	enc := toml.NewEncoder(out.Writer())
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	if len(cfg.Hooks.Hooks) == 0 {
		return nil
	}
	out.Println()
	return enc.Encode(map[string]map[string]config.Hook{"hooks": cfg.Hooks.Hooks})
}

func newConfigHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List configured hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if len(cfg.Hooks.Hooks) == 0 {
				out.Println("No hooks configured")
				return nil
			}
			for _, name := range slices.Sorted(maps.Keys(cfg.Hooks.Hooks)) {
				hook := cfg.Hooks.Hooks[name]
				on := "manual"
				if len(hook.On) > 0 {
					on = strings.Join(hook.On, ", ")
				}
				out.Printf("%s %s\n", styles.Bold.Render(name), styles.MutedStyle.Render("("+on+")"))
				if hook.Description != "" {
					out.Printf("  %s\n", hook.Description)
				}
				out.Printf("  %s\n", hook.Command)
			}
			return nil
		},
	}

	return cmd
}
