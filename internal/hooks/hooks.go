package hooks

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strings"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/log"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Trigger identifies which action is triggering the hook
type Trigger string

const (
	TriggerUpdateDID   Trigger = "update-did"
	TriggerSetDID      Trigger = "set-did"
	TriggerCreateRepo  Trigger = "create-repo"
	TriggerCheckBundle Trigger = "check-bundle"
	TriggerDelete      Trigger = "delete"
	TriggerRun         Trigger = "run" // manual `btm hook`
)

// Context holds the values for placeholder substitution
type Context struct {
	ID      string            // theme folder name
	Path    string            // absolute theme path
	DID     string            // theme DID after the action
	RepoURL string            // remote repository URL (create-repo)
	Trigger string            // action that triggered the hook
	Env     map[string]string // custom variables from -a key=value flags
	DryRun  bool              // if true, print command instead of executing
}

// HookMatch represents a hook that matched the current action
type HookMatch struct {
	Hook *config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookName is specified, only that hook runs.
// Otherwise, all hooks with matching "on" conditions run, sorted by name.
// Returns error if the specified hook doesn't exist.
func SelectHooks(cfg config.HooksConfig, hookName string, noHook bool, trigger Trigger) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	if hookName != "" {
		hook, exists := cfg.Hooks[hookName]
		if !exists {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []HookMatch{{Hook: &hook, Name: hookName}}, nil
	}

	return findMatchingHooks(cfg, trigger), nil
}

// findMatchingHooks returns all hooks that have the trigger in their "on" list.
// Hooks without "on" are skipped (they only run via explicit --hook=name).
func findMatchingHooks(cfg config.HooksConfig, trigger Trigger) []HookMatch {
	var matches []HookMatch
	for name, hook := range cfg.Hooks {
		if len(hook.On) > 0 && hookMatches(hook, trigger) {
			hookCopy := hook
			matches = append(matches, HookMatch{Hook: &hookCopy, Name: name})
		}
	}
	slices.SortFunc(matches, func(a, b HookMatch) int { return strings.Compare(a.Name, b.Name) })
	return matches
}

// hookMatches returns true if trigger is in the hook's "on" list.
// Special value "all" matches every trigger.
func hookMatches(hook config.Hook, trigger Trigger) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(trigger) {
			return true
		}
	}
	return false
}

// RunAllNonFatal runs all matched hooks in workDir, logging failures as
// warnings instead of returning errors.
func RunAllNonFatal(ctx context.Context, matches []HookMatch, hctx Context, workDir string) {
	l := log.FromContext(ctx)
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hctx, workDir); err != nil {
			l.Warn("hook %q failed for %s: %v", match.Name, hctx.ID, err)
		}
	}
}

// RunSingle runs a single hook by name and returns its error.
// Used by `btm hook` to execute a specific hook manually.
func RunSingle(ctx context.Context, name string, hook *config.Hook, hctx Context) error {
	return runHook(ctx, name, hook, hctx, hctx.Path)
}

// runHook executes a single hook with variable substitution.
// Hook output goes to the log writer so it never mixes with data on stdout.
func runHook(ctx context.Context, name string, hook *config.Hook, hctx Context, workDir string) error {
	l := log.FromContext(ctx)
	command := SubstitutePlaceholders(hook.Command, hctx)

	if hctx.DryRun {
		l.Printf("[dry-run] %s: %s\n", name, command)
		return nil
	}

	l.Printf("Running hook '%s'...\n", name)

	shellCmd := exec.CommandContext(ctx, "sh", "-c", command)
	shellCmd.Dir = workDir
	shellCmd.Stdout = l.Writer()
	shellCmd.Stderr = l.Writer()

	if err := shellCmd.Run(); err != nil {
		return err
	}

	if hook.Description != "" {
		l.Printf("  ✓ %s\n", hook.Description)
	}
	return nil
}

// ParseEnv parses a slice of "key=value" strings into a map.
// Returns an error if any entry doesn't contain "=".
func ParseEnv(envSlice []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid env format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid env format %q: key cannot be empty", e)
		}
		result[key] = value
	}
	return result, nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default} patterns for env variables.
// Supported formats:
//   - {key}           - value is shell-quoted
//   - {key:raw}       - value is used as-is (no quoting)
//   - {key:-default}  - value is shell-quoted, uses default if key not set
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from Context.
// Values are properly escaped to prevent command injection.
//
// Static placeholders: {id}, {path}, {did}, {repo-url}, {trigger}
// Env placeholders (from Context.Env):
//   - {key}         - shell-quoted value
//   - {key:raw}     - unquoted value (for embedding in existing quotes)
//   - {key:-default} - shell-quoted value with default if key missing
func SubstitutePlaceholders(command string, hctx Context) string {
	replacements := map[string]string{
		"{id}":       shellQuote(hctx.ID),
		"{path}":     shellQuote(hctx.Path),
		"{did}":      shellQuote(hctx.DID),
		"{repo-url}": shellQuote(hctx.RepoURL),
		"{trigger}":  shellQuote(hctx.Trigger),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return envPlaceholderRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatch := envPlaceholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		defaultVal := submatch[3]

		if val, ok := hctx.Env[key]; ok {
			if isRaw {
				return val
			}
			return shellQuote(val)
		}
		if isRaw {
			return defaultVal
		}
		return shellQuote(defaultVal)
	})
}
