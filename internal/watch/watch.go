// Package watch rescans the workspace when theme folders change on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/theme"
)

// DefaultDebounce collapses bursts of events into one rescan.
const DefaultDebounce = 500 * time.Millisecond

// relevant lists the theme files whose changes affect a scan.
var relevant = map[string]bool{
	theme.DescriptorFile: true,
	theme.PackageFile:    true,
	theme.LogoFile:       true,
}

// Watcher watches the workspace and every theme candidate folder in it.
type Watcher struct {
	opts     theme.Options
	debounce time.Duration
	fs       *fsnotify.Watcher
	dirs     map[string]bool // watched candidate folders
}

// New creates a watcher for the workspace of opts. A zero debounce uses
// DefaultDebounce.
func New(opts theme.Options, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		opts:     opts,
		debounce: debounce,
		fs:       fs,
		dirs:     map[string]bool{},
	}, nil
}

// Run calls onChange after each burst of relevant changes until ctx is
// cancelled. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	defer w.fs.Close()
	l := log.FromContext(ctx)

	if err := w.fs.Add(w.opts.Workspace); err != nil {
		return fmt.Errorf("watch %s: %w", w.opts.Workspace, err)
	}
	w.sync(ctx)
	l.Debug("watching workspace", "dir", w.opts.Workspace, "folders", len(w.dirs))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.Relevant(ev) {
				continue
			}
			l.Debug("workspace changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			l.Warn("watcher: %v", err)

		case <-fire:
			fire = nil
			w.sync(ctx)
			onChange(ctx)
		}
	}
}

// Relevant reports whether ev can change the result of a scan.
// Sidecar writes and temporary files never are.
func (w *Watcher) Relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(ev.Name)
	if name == theme.SidecarFile || strings.HasSuffix(name, ".tmp") {
		return false
	}

	dir := filepath.Dir(ev.Name)
	if dir == filepath.Clean(w.opts.Workspace) {
		return w.opts.IsCandidate(name)
	}
	return relevant[name] && w.opts.IsCandidate(filepath.Base(dir))
}

// sync adds new candidate folders to the watch list and forgets removed ones.
func (w *Watcher) sync(ctx context.Context) {
	entries, err := os.ReadDir(w.opts.Workspace)
	if err != nil {
		log.FromContext(ctx).Warn("watcher: %v", err)
		return
	}

	seen := map[string]bool{}
	for _, e := range entries {
		if !w.opts.IsCandidate(e.Name()) || !theme.IsDirEntry(w.opts.Workspace, e) {
			continue
		}
		dir := filepath.Join(w.opts.Workspace, e.Name())
		seen[dir] = true
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			log.FromContext(ctx).Debug("watch folder", "dir", dir, "err", err)
			continue
		}
		w.dirs[dir] = true
	}

	for dir := range w.dirs {
		if !seen[dir] {
			_ = w.fs.Remove(dir) // inotify drops removed folders itself
			delete(w.dirs, dir)
		}
	}
}
