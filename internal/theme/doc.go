// Package theme discovers blog theme folders in a workspace and keeps
// their state.
//
// A theme is a direct child of the workspace whose name contains the
// theme marker and which holds both blocklet.yml and package.json.
// [Scan] reads every theme's metadata, assigns a stable creation time
// through the .theme-metadata.json sidecar and derives a [Status]:
//
//	DID                    status         needsDidUpdate
//	empty                  no-did         true
//	equals the base DID    needs-update   true
//	anything else          ready          false
//
// # Metadata precedence
//
//   - title: blocklet.yml title, else the folder name
//   - name: package.json name, else the folder name
//
// blocklet.yml is parsed with yaml.v3; a file that fails to parse still
// yields title, description and did through line matching. package.json
// is retried leniently (comments, trailing commas) before giving up.
//
// # Catalog
//
// [Catalog] holds the last scan in memory for the HTTP server and applies
// action results to individual records.
package theme
