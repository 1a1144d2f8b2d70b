// Package actions implements the operations users trigger on a theme:
// DID provisioning, bundle checks, repository creation, launching and
// deletion. The CLI and the HTTP server share one [Service] so both
// surfaces behave identically, including hook execution.
package actions
