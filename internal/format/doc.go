// Package format renders theme data for terminal output.
//
//   - [RelativeTime]: "3 hours ago" style creation times
//   - [ShortDID]: abbreviated DIDs for table columns
//   - [SanitizeForPath]: folder ids turned into valid repository names
//
// Characters replaced with "-" by [SanitizeForPath]: / \ : * ? " < > |
// and whitespace.
package format
