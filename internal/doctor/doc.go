// Package doctor provides diagnostic and repair functionality for a
// theme workspace.
//
// The doctor package detects and optionally repairs issues including:
//
//   - Tool issues: git, gh, blocklet or yarn missing from PATH, and gh
//     without an authenticated account.
//
//   - Workspace issues: an unreadable workspace and a missing base
//     template folder.
//
//   - Metadata issues: themes whose .theme-metadata.json is missing or
//     unparseable. --fix records the folder's modification time.
//
//   - DID issues: themes sharing a DID and themes still carrying the
//     base template DID.
//
// Doctor never runs a regular scan, since a scan writes missing sidecars
// and would hide the problems it is looking for.
//
// # Usage
//
//	issues, err := doctor.New(opts).Run(ctx, false) // check only
//	issues, err := doctor.New(opts).Run(ctx, true)  // check and fix
//
// Each [Issue] includes a description and, where possible, a fix action.
package doctor
