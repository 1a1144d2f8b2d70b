package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-workspace override file.
const LocalConfigFileName = ".btm.toml"

// LocalConfig holds per-workspace overrides from .btm.toml.
// Zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	Hooks        HooksConfig  `toml:"-"` // merge by name into global
	BaseThemeDID string       `toml:"base_theme_did"`
	GitHub       GitHubConfig `toml:"github"`
	Bundle       BundleConfig `toml:"bundle"`
}

type rawLocalConfig struct {
	Hooks        map[string]any `toml:"hooks"`
	BaseThemeDID string         `toml:"base_theme_did"`
	GitHub       GitHubConfig   `toml:"github"`
	Bundle       BundleConfig   `toml:"bundle"`
}

// LoadLocal reads a .btm.toml from the workspace directory.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(workspace string) (*LocalConfig, error) {
	configFile := filepath.Join(workspace, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var raw rawLocalConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	local := &LocalConfig{
		Hooks:        parseHooksConfig(raw.Hooks),
		BaseThemeDID: raw.BaseThemeDID,
		GitHub:       raw.GitHub,
		Bundle:       raw.Bundle,
	}

	if err := validateEnum(local.GitHub.Visibility, "github.visibility", ValidVisibilities); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}
	if local.GitHub.CreateScript, err = expandPath(local.GitHub.CreateScript); err != nil {
		return nil, fmt.Errorf("expand github.create_script in %s: %w", configFile, err)
	}

	return local, nil
}

// MergeLocal merges a workspace config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global
	merged.Hooks = mergeHooks(global.Hooks, local.Hooks)

	if local.BaseThemeDID != "" {
		merged.BaseThemeDID = local.BaseThemeDID
	}
	if local.GitHub.Org != "" {
		merged.GitHub.Org = local.GitHub.Org
	}
	if local.GitHub.Visibility != "" {
		merged.GitHub.Visibility = local.GitHub.Visibility
	}
	if local.GitHub.CreateScript != "" {
		merged.GitHub.CreateScript = local.GitHub.CreateScript
	}
	if local.Bundle.NodeOptions != "" {
		merged.Bundle.NodeOptions = local.Bundle.NodeOptions
	}

	return &merged
}

// mergeHooks merges local hooks into global hooks.
// Local hooks with the same name override global hooks.
// Local hooks with enabled=false remove the global hook.
func mergeHooks(global, local HooksConfig) HooksConfig {
	merged := HooksConfig{
		Hooks: make(map[string]Hook, len(global.Hooks)),
	}
	for name, hook := range global.Hooks {
		merged.Hooks[name] = hook
	}
	for name, hook := range local.Hooks {
		if !hook.IsEnabled() {
			delete(merged.Hooks, name)
			continue
		}
		merged.Hooks[name] = hook
	}
	return merged
}

const defaultLocalConfig = `# btm workspace config
# Place this file in the workspace directory.
# Settings here override the global ~/.config/btm/config.toml.

# base_theme_did = ""

# [github]
# org = "blocklet"
# visibility = "private"

# [bundle]
# node_options = "--max-old-space-size=8192"

# Hooks - add workspace hooks or override global hooks
# Set enabled = false to disable a global hook here
#
# [hooks.global-hook-name]
# enabled = false
`

// DefaultLocalConfig returns the workspace configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
