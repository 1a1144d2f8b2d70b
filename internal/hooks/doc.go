// Package hooks provides post-action hook execution with placeholder substitution.
//
// Hooks are shell commands defined in config that run after successful
// theme actions such as a DID update or repository creation. They enable
// workflow automation like notifications or syncing a theme registry.
//
// # Hook Selection
//
//   - Automatic: hooks whose "on" list contains the action (or "all") run
//   - Manual: --hook=name runs one specific hook, --no-hook skips all
//
// Example config:
//
//	[hooks.notify]
//	command = "notify-send btm '{trigger}: {id}'"
//	on = ["update-did", "create-repo"]
//
// # Placeholder Substitution
//
//   - {id}: theme folder name
//   - {path}: absolute theme path
//   - {did}: theme DID after the action
//   - {repo-url}: remote repository URL (create-repo only)
//   - {trigger}: the action name
//
// Custom values passed with -a key=value are available as {key},
// {key:raw} (unquoted) and {key:-default}. All quoted values are safe
// against shell injection.
//
// Hook failures are reported as warnings and never fail the action.
package hooks
