package git

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/btm/internal/log"
)

// RepoRef identifies a folder for the loader.
// Keeps the git package independent of the theme package.
type RepoRef struct {
	Name string
	Path string
}

// LoadRemotes fetches remote info for all folders in parallel.
// Results keep the order of refs. Failures degrade to an empty RemoteInfo
// and are logged; a folder outside any repository is not a failure.
func LoadRemotes(ctx context.Context, refs []RepoRef) []RemoteInfo {
	results := make([]RemoteInfo, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // Bound concurrent git operations

	for i, ref := range refs {
		g.Go(func() error {
			info, err := ListRemotes(ctx, ref.Path)
			if err != nil && !errors.Is(err, ErrNotRepository) {
				log.FromContext(ctx).Debug("remote lookup failed", "theme", ref.Name, "err", err)
			}
			results[i] = info
			return nil // missing info is non-fatal
		})
	}

	_ = g.Wait()
	return results
}
