// Package server exposes the theme catalog and actions as a JSON API
// for the dashboard.
//
// Routes live under /api and are served by a chi router. Every request
// carries the server's logger in its context so that actions and the
// commands they run log the same way as the CLI. Errors are written as
// {"error": "...", "details": "..."} with a status code derived from the
// sentinel errors of the underlying packages.
//
// Outside /api the server either serves a built single-page app from a
// static directory or redirects / to the frontend dev server.
package server
