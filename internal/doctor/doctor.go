package doctor

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/raphi011/btm/internal/forge"
	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/theme"
)

// Doctor checks a workspace. LookPath and Forge are replaceable for tests.
type Doctor struct {
	Opts     theme.Options
	LookPath func(string) (string, error)
	Forge    forge.Forge // nil skips the authentication check
}

// New returns a Doctor using the real PATH and gh.
func New(opts theme.Options) *Doctor {
	return &Doctor{
		Opts:     opts,
		LookPath: exec.LookPath,
		Forge:    &forge.GitHub{},
	}
}

// Run performs all checks, prints a report and returns the issues found.
// Only an unreadable workspace is an error.
func (d *Doctor) Run(ctx context.Context, fix bool) ([]Issue, error) {
	out := output.FromContext(ctx)
	var stats IssueStats
	var allIssues []Issue

	add := func(cat IssueCategory, issues []Issue) {
		for i := range issues {
			issues[i].Category = cat
		}
		allIssues = append(allIssues, issues...)
	}

	// Category 1: Tools
	out.Println("Checking tools...")
	toolIssues, ok := d.checkTools(ctx)
	stats.ToolsOK = ok
	stats.ToolIssues = len(toolIssues)
	add(CategoryTools, toolIssues)

	// Category 2: Workspace
	out.Println("Checking workspace...")
	themes, err := d.listThemes()
	if err != nil {
		return nil, fmt.Errorf("read workspace %s: %w", d.Opts.Workspace, err)
	}
	stats.Themes = len(themes)
	add(CategoryWorkspace, d.checkBaseTemplate())

	// Category 3: Creation-time metadata
	out.Println("Checking theme metadata...")
	sidecarIssues := checkSidecars(themes)
	stats.SidecarIssues = len(sidecarIssues)
	stats.SidecarsValid = len(themes) - len(sidecarIssues)
	add(CategoryMetadata, sidecarIssues)

	// Category 4: DIDs
	out.Println("Checking DIDs...")
	dups, template := checkDIDs(themes, d.Opts.ResolveBaseDID())
	stats.DIDDuplicates = len(dups)
	stats.DIDTemplate = len(template)
	add(CategoryDID, dups)
	add(CategoryDID, template)

	printSummary(out, stats)

	if len(allIssues) == 0 {
		out.Println("\n✓ No issues found")
		return nil, nil
	}

	out.Printf("\nFound %d issues:\n", len(allIssues))
	printIssuesByCategory(out, allIssues)

	fixable := 0
	for _, issue := range allIssues {
		if issue.FixAction != "" {
			fixable++
		}
	}
	switch {
	case fix && fixable > 0:
		fixAllIssues(ctx, allIssues)
	case fixable > 0:
		out.Printf("\nRun 'btm doctor --fix' to repair %d of them.\n", fixable)
	}
	return allIssues, nil
}

// printSummary prints a categorized summary.
func printSummary(out *output.Printer, stats IssueStats) {
	out.Println()

	out.Printf("  ✓ %d tools available\n", stats.ToolsOK)
	if stats.ToolIssues > 0 {
		out.Printf("  ⚠ %d tool issues\n", stats.ToolIssues)
	}

	out.Printf("  ✓ %d themes found\n", stats.Themes)
	if stats.SidecarIssues > 0 {
		out.Printf("  ⚠ %d themes without a creation time\n", stats.SidecarIssues)
	} else if stats.SidecarsValid > 0 {
		out.Printf("  ✓ %d creation times recorded\n", stats.SidecarsValid)
	}

	if stats.DIDDuplicates > 0 {
		out.Printf("  ✗ %d themes share a DID\n", stats.DIDDuplicates)
	}
	if stats.DIDTemplate > 0 {
		out.Printf("  ⚠ %d themes still on the template DID\n", stats.DIDTemplate)
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	for _, cat := range categoryOrder {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			out.Printf("  • %s: %s\n", issue.Key, issue.Description)
		}
	}
}
