// Package git provides git operations via shell commands.
//
// All operations call the git CLI through [github.com/raphi011/btm/internal/cmd]
// rather than using Go git libraries, so user configuration (SSH keys,
// credential helpers, aliases) applies unchanged.
//
// # Remotes
//
//   - [ListRemotes]: parse `git remote -v` into a [RemoteInfo]
//   - [LoadRemotes]: look up remotes for many theme folders in parallel
//   - [WebURL]: turn a clone URL into a browser URL
//
// # Submodules
//
//   - [SubmoduleStatus]: parse `git submodule status`
//
// # Repository bootstrap
//
// Used before publishing a theme to a new remote repository:
// [EnsureRepo], [AddAll], [HasChanges], [HasCommits], [Commit].
package git
