// Package config handles loading and validation of btm configuration.
//
// Configuration is read from ~/.config/btm/config.toml, optionally
// overridden per workspace by a .btm.toml file in the workspace directory,
// with environment variable overrides on top.
//
// # Configuration Sources (highest priority first)
//
//   - BTM_WORKSPACE_DIR env var: directory scanned for themes
//   - BTM_ADDR env var: HTTP listen address
//   - PORT env var: replaces only the port of the listen address
//   - Workspace .btm.toml (github, bundle, base_theme_did, hooks)
//   - Global config file settings
//   - Default values
//
// # Key Settings
//
//   - workspace_dir: where theme folders live (must be absolute or ~/...)
//   - theme_marker: substring a folder name must contain (default: "theme")
//   - monitor_dir, base_theme_dir: folders never treated as themes
//   - base_theme_did: DID inherited from the template; themes carrying it
//     need a fresh one
//
// # Hooks Configuration
//
// Hooks are defined in [hooks.NAME] sections and run after successful
// actions:
//
//	[hooks.notify]
//	command = "notify-send btm '{trigger} {id}'"
//	on = ["update-did", "create-repo"]
//
// A hook without "on" never runs automatically.
package config
