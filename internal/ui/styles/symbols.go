package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/btm/internal/theme"
)

// Symbols holds the status icons based on nerdfont configuration
type Symbols struct {
	Ready       string
	NeedsUpdate string
	NoDID       string
}

// Default symbols
var defaultSymbols = Symbols{
	Ready:       "●",
	NeedsUpdate: "◐",
	NoDID:       "○",
}

// Nerd font symbols
var nerdfontSymbols = Symbols{
	Ready:       "\uf058", // nf-fa-check_circle
	NeedsUpdate: "\uf021", // nf-fa-refresh
	NoDID:       "\uf05e", // nf-fa-ban
}

// currentSymbols holds the active symbol set
var currentSymbols = defaultSymbols

// SetNerdfont enables or disables nerd font symbols
func SetNerdfont(enabled bool) {
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// StatusSymbol returns the symbol for a theme status
func StatusSymbol(s theme.Status) string {
	switch s {
	case theme.StatusReady:
		return currentSymbols.Ready
	case theme.StatusNeedsUpdate:
		return currentSymbols.NeedsUpdate
	case theme.StatusNoDID:
		return currentSymbols.NoDID
	default:
		return ""
	}
}

// StatusStyle returns the style a status is rendered in
func StatusStyle(s theme.Status) lipgloss.Style {
	switch s {
	case theme.StatusReady:
		return SuccessStyle
	case theme.StatusNeedsUpdate:
		return WarningStyle
	case theme.StatusNoDID:
		return ErrorStyle
	default:
		return NormalStyle
	}
}

// FormatStatus returns the colored symbol and status name
func FormatStatus(s theme.Status) string {
	return StatusStyle(s).Render(StatusSymbol(s) + " " + string(s))
}

// FormatLink returns text wrapped in an OSC 8 hyperlink to url.
// Returns text unchanged if url is empty.
func FormatLink(text, url string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}
