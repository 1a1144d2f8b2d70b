package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults for the blog-theme-monitor workspace layout.
const (
	DefaultThemeMarker  = "theme"
	DefaultMonitorDir   = "blog-theme-monitor"
	DefaultBaseThemeDir = "base_blog_theme"
	DefaultBaseThemeDID = "z2qa2aCch4YEq6m9Qd5GnYRo76yhwfuHEKRTF"
	DefaultAddr         = ":3007"
	DefaultDevRedirect  = "http://localhost:3008"
	DefaultGitHubOrg    = "blocklet"
	DefaultVisibility   = "public"
	DefaultNodeOptions  = "--max-old-space-size=6144"
)

// Hook defines a post-action hook
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"` // actions this hook runs on ("all" matches every action)
	Enabled     *bool    `toml:"enabled"` // nil = true; false disables a global hook from the local file
}

// IsEnabled reports whether the hook is enabled (nil counts as enabled).
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	StaticDir      string   `toml:"static_dir"`      // prebuilt client bundle
	DevRedirect    string   `toml:"dev_redirect"`    // "/" redirect target when StaticDir is empty
	AllowedOrigins []string `toml:"allowed_origins"` // empty = any origin
	Watch          bool     `toml:"watch"`           // rescan on workspace changes
}

// GitHubConfig holds settings for remote repository creation
type GitHubConfig struct {
	Org          string `toml:"org"`
	Visibility   string `toml:"visibility"`    // public, private or internal
	CreateScript string `toml:"create_script"` // optional replacement for the built-in flow
}

// BundleConfig holds settings for the bundle check
type BundleConfig struct {
	NodeOptions string `toml:"node_options"`
}

// UIConfig holds terminal output settings
type UIConfig struct {
	Palette  string `toml:"palette"`  // color preset: default, none, dracula, nord, gruvbox, catppuccin
	Mode     string `toml:"mode"`     // auto, light or dark
	Nerdfont bool   `toml:"nerdfont"` // use nerd font status symbols
}

// Config holds the btm configuration
type Config struct {
	WorkspaceDir string       `toml:"workspace_dir"`
	ThemeMarker  string       `toml:"theme_marker"`
	MonitorDir   string       `toml:"monitor_dir"`
	BaseThemeDir string       `toml:"base_theme_dir"`
	BaseThemeDID string       `toml:"base_theme_did"`
	Server       ServerConfig `toml:"server"`
	GitHub       GitHubConfig `toml:"github"`
	Bundle       BundleConfig `toml:"bundle"`
	UI           UIConfig     `toml:"ui"`
	Hooks        HooksConfig  `toml:"-"` // custom parsing needed
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	WorkspaceDir string         `toml:"workspace_dir"`
	ThemeMarker  string         `toml:"theme_marker"`
	MonitorDir   string         `toml:"monitor_dir"`
	BaseThemeDir string         `toml:"base_theme_dir"`
	BaseThemeDID string         `toml:"base_theme_did"`
	Server       ServerConfig   `toml:"server"`
	GitHub       GitHubConfig   `toml:"github"`
	Bundle       BundleConfig   `toml:"bundle"`
	UI           UIConfig       `toml:"ui"`
	Hooks        map[string]any `toml:"hooks"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		ThemeMarker:  DefaultThemeMarker,
		MonitorDir:   DefaultMonitorDir,
		BaseThemeDir: DefaultBaseThemeDir,
		BaseThemeDID: DefaultBaseThemeDID,
		Server: ServerConfig{
			Addr:        DefaultAddr,
			DevRedirect: DefaultDevRedirect,
		},
		GitHub: GitHubConfig{
			Org:        DefaultGitHubOrg,
			Visibility: DefaultVisibility,
		},
		Bundle: BundleConfig{
			NodeOptions: DefaultNodeOptions,
		},
		Hooks: HooksConfig{Hooks: map[string]Hook{}},
	}
}

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns a pointer to Default() if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	d := Default()
	return &d
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the global config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "btm", "config.toml"), nil
}

// Load reads the global config file and applies environment overrides.
// Returns Default() (with overrides) if the file doesn't exist.
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		return cfg, applyEnv(&cfg, os.Getenv)
	}
	return LoadFile(path, os.Getenv)
}

// LoadFile reads config from path, then applies overrides looked up with getenv.
func LoadFile(path string, getenv func(string) string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := Default()
		if errors.Is(err, os.ErrNotExist) {
			return cfg, applyEnv(&cfg, getenv)
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Default(), err
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes and validates TOML config content, filling defaults for
// empty values.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Config{
		WorkspaceDir: raw.WorkspaceDir,
		ThemeMarker:  raw.ThemeMarker,
		MonitorDir:   raw.MonitorDir,
		BaseThemeDir: raw.BaseThemeDir,
		BaseThemeDID: raw.BaseThemeDID,
		Server:       raw.Server,
		GitHub:       raw.GitHub,
		Bundle:       raw.Bundle,
		UI:           raw.UI,
		Hooks:        parseHooksConfig(raw.Hooks),
	}

	if err := ValidatePath(cfg.WorkspaceDir, "workspace_dir"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(cfg.Server.StaticDir, "server.static_dir"); err != nil {
		return Default(), err
	}
	if err := validateEnum(cfg.GitHub.Visibility, "github.visibility", ValidVisibilities); err != nil {
		return Default(), err
	}
	if err := validateEnum(cfg.UI.Palette, "ui.palette", ValidPalettes); err != nil {
		return Default(), err
	}
	if err := validateEnum(cfg.UI.Mode, "ui.mode", ValidModes); err != nil {
		return Default(), err
	}
	if err := validateName(cfg.MonitorDir, "monitor_dir"); err != nil {
		return Default(), err
	}
	if err := validateName(cfg.BaseThemeDir, "base_theme_dir"); err != nil {
		return Default(), err
	}

	var err error
	if cfg.WorkspaceDir, err = expandPath(cfg.WorkspaceDir); err != nil {
		return Default(), fmt.Errorf("expand workspace_dir: %w", err)
	}
	if cfg.Server.StaticDir, err = expandPath(cfg.Server.StaticDir); err != nil {
		return Default(), fmt.Errorf("expand server.static_dir: %w", err)
	}
	if cfg.GitHub.CreateScript, err = expandPath(cfg.GitHub.CreateScript); err != nil {
		return Default(), fmt.Errorf("expand github.create_script: %w", err)
	}

	fillDefaults(&cfg)
	return cfg, nil
}

func fillDefaults(cfg *Config) {
	d := Default()
	if cfg.ThemeMarker == "" {
		cfg.ThemeMarker = d.ThemeMarker
	}
	if cfg.MonitorDir == "" {
		cfg.MonitorDir = d.MonitorDir
	}
	if cfg.BaseThemeDir == "" {
		cfg.BaseThemeDir = d.BaseThemeDir
	}
	if cfg.BaseThemeDID == "" {
		cfg.BaseThemeDID = d.BaseThemeDID
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = d.Server.Addr
	}
	if cfg.Server.DevRedirect == "" {
		cfg.Server.DevRedirect = d.Server.DevRedirect
	}
	if cfg.GitHub.Org == "" {
		cfg.GitHub.Org = d.GitHub.Org
	}
	if cfg.GitHub.Visibility == "" {
		cfg.GitHub.Visibility = d.GitHub.Visibility
	}
	if cfg.Bundle.NodeOptions == "" {
		cfg.Bundle.NodeOptions = d.Bundle.NodeOptions
	}
}

// applyEnv applies BTM_WORKSPACE_DIR, BTM_ADDR and PORT overrides.
// PORT only replaces the port of the listen address.
func applyEnv(cfg *Config, getenv func(string) string) error {
	if dir := getenv("BTM_WORKSPACE_DIR"); dir != "" {
		if err := ValidatePath(dir, "BTM_WORKSPACE_DIR"); err != nil {
			return err
		}
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("expand BTM_WORKSPACE_DIR: %w", err)
		}
		cfg.WorkspaceDir = expanded
	}
	if addr := getenv("BTM_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if port := getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q: must be a number", port)
		}
		host := cfg.Server.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		cfg.Server.Addr = host + ":" + port
	}
	return nil
}

// ResolveWorkspace returns the absolute workspace directory. An unset
// workspace_dir resolves relative to cwd: inside the monitor checkout it
// is the checkout's parent, otherwise cwd itself.
func (c *Config) ResolveWorkspace(cwd string) (string, error) {
	if c.WorkspaceDir != "" {
		return filepath.Abs(c.WorkspaceDir)
	}
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", err
	}
	for d := dir; ; d = filepath.Dir(d) {
		if filepath.Base(d) == c.MonitorDir {
			return filepath.Dir(d), nil
		}
		if filepath.Dir(d) == d {
			break
		}
	}
	return dir, nil
}

// parseHooksConfig extracts HooksConfig from raw TOML map
// Handles [hooks.NAME] sections
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{
		Hooks: make(map[string]Hook),
	}

	for key, value := range raw {
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if enabled, ok := hookMap["enabled"].(bool); ok {
			hook.Enabled = &enabled
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		hc.Hooks[key] = hook
	}

	return hc
}

// DefaultConfig returns the commented default config file content.
func DefaultConfig() string {
	return defaultConfig
}

const defaultConfig = `# btm configuration

# Directory scanned for theme folders.
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# When unset, btm uses the parent of the blog-theme-monitor checkout
# it runs from, or the current directory.
# workspace_dir = "~/Code/blog-themes"

# Folder names must contain this marker to be considered themes.
# theme_marker = "theme"

# Folders never treated as themes.
# monitor_dir = "blog-theme-monitor"
# base_theme_dir = "base_blog_theme"

# DID of the base template, used when base_theme_dir has no did of its own.
# Themes still carrying this DID need a fresh one.
# base_theme_did = "z2qa2aCch4YEq6m9Qd5GnYRo76yhwfuHEKRTF"

[server]
# addr = ":3007"
# static_dir = "~/Code/blog-theme-monitor/client/build"
# dev_redirect = "http://localhost:3008"
# allowed_origins = ["http://localhost:3008"]
# watch = false

[github]
# org = "blocklet"
# visibility = "public"   # public, private or internal
# Replace the built-in git/gh flow with a script called as:
#   <script> <org> <repo> <description>
# create_script = "~/bin/create_github_repo.sh"

[bundle]
# node_options = "--max-old-space-size=6144"

[ui]
# palette = "default"   # default, none, dracula, nord, gruvbox, catppuccin
# mode = "auto"         # auto, light or dark
# nerdfont = false

# Hooks run after successful actions.
# Placeholders: {id} {path} {did} {repo-url} {trigger}
# Triggers: update-did, set-did, create-repo, check-bundle, delete, all
#
# [hooks.notify]
# command = "notify-send 'btm' '{trigger}: {id}'"
# description = "Desktop notification"
# on = ["all"]
`

type workDirKey struct{}

// WithWorkDir stores the working directory in the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory from context,
// falling back to os.Getwd() when not set.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
