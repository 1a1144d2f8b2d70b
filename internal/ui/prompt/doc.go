// Package prompt provides simple interactive prompts.
//
// Prompts render on stderr so stdout stays clean for data. Callers check
// that stdin is a terminal before prompting.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt (delete)
//   - [TextInput]: Single-line text input (did set)
//   - [Select]: Filterable selection from a list of themes
package prompt
