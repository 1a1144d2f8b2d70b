// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as the theme table.
package static

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/btm/internal/format"
	"github.com/raphi011/btm/internal/git"
	"github.com/raphi011/btm/internal/theme"
	"github.com/raphi011/btm/internal/ui/styles"
)

// maxTitleLen truncates long titles in the theme table.
const maxTitleLen = 40

// ThemeHeaders returns the column headers of the theme table.
func ThemeHeaders(withRemote bool) []string {
	headers := []string{"ID", "STATUS", "DID", "TITLE", "CREATED"}
	if withRemote {
		headers = append(headers, "REMOTE")
	}
	return headers
}

// ThemeTableRow renders one theme. info is nil when remotes were not loaded.
func ThemeTableRow(t theme.Theme, info *git.RemoteInfo, now time.Time) []string {
	did := format.ShortDID(t.DID)
	if did == "" {
		did = "-"
	}

	title := t.Title
	if title == "" {
		title = t.Name
	}
	if r := []rune(title); len(r) > maxTitleLen {
		title = string(r[:maxTitleLen-1]) + "…"
	}

	row := []string{
		t.ID,
		styles.FormatStatus(t.Status),
		did,
		title,
		format.RelativeTime(t.CreatedAt, now),
	}
	if info != nil {
		row = append(row, formatRemote(*info))
	}
	return row
}

// formatRemote shows the origin as a hyperlinked owner/repo, or why there is none.
func formatRemote(info git.RemoteInfo) string {
	switch {
	case !info.IsGitRepo:
		return styles.MutedStyle.Render("no git")
	case info.RepoURL != nil && strings.HasPrefix(*info.RepoURL, "https://"):
		name := strings.TrimPrefix(*info.RepoURL, "https://github.com/")
		return styles.FormatLink(name, *info.RepoURL)
	case info.RepoURL != nil:
		return *info.RepoURL
	case info.HasRemote:
		return info.Remotes[0].URL
	default:
		return styles.MutedStyle.Render("-")
	}
}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}
