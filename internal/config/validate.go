package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidVisibilities lists the repository visibilities gh accepts.
var ValidVisibilities = []string{"public", "private", "internal"}

// ValidPalettes lists the color presets of the terminal UI.
var ValidPalettes = []string{"default", "none", "dracula", "nord", "gruvbox", "catppuccin"}

// ValidModes lists the background modes of the terminal UI.
var ValidModes = []string{"auto", "light", "dark"}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// validateName checks that a folder name is a single path element.
func validateName(name, field string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid %s %q: must be a folder name, not a path", field, name)
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// e.g. ["a", "b", "c"] -> "\"a\", \"b\", or \"c\""
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
}
