package doctor

import (
	"context"
	"os"

	"github.com/raphi011/btm/internal/output"
	"github.com/raphi011/btm/internal/theme"
)

// fixAllIssues applies fixes for all detected issues that have one.
func fixAllIssues(ctx context.Context, issues []Issue) (fixed, failed int) {
	out := output.FromContext(ctx)
	out.Println("\nFixing issues...")

	for _, issue := range issues {
		switch issue.FixAction {
		case FixWriteSidecar:
			info, err := os.Stat(issue.Path)
			if err == nil {
				err = theme.WriteSidecar(issue.Path, info.ModTime())
			}
			if err != nil {
				out.Printf("  ✗ Failed to write metadata for %q: %v\n", issue.Key, err)
				failed++
				continue
			}
			out.Printf("  ✓ Recorded creation time for %q\n", issue.Key)
			fixed++
		}
	}

	out.Printf("\nFixed %d issues", fixed)
	if failed > 0 {
		out.Printf(", %d failed", failed)
	}
	out.Println()
	return fixed, failed
}
