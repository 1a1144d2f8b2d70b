package theme

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Catalog holds the themes of the last scan.
// Safe for concurrent use; rescans are serialized.
type Catalog struct {
	opts Options

	scanMu sync.Mutex // serializes Rescan

	mu        sync.RWMutex
	themes    []Theme
	scannedAt time.Time
}

// NewCatalog returns an empty catalog that scans with opts.
func NewCatalog(opts Options) *Catalog {
	return &Catalog{opts: opts, themes: []Theme{}}
}

// Options returns the scan options of the catalog.
func (c *Catalog) Options() Options {
	return c.opts
}

// BaseDID resolves the DID of the base template.
func (c *Catalog) BaseDID() string {
	return c.opts.ResolveBaseDID()
}

// Now returns the current time as seen by the catalog.
func (c *Catalog) Now() time.Time {
	return c.opts.now().UTC().Truncate(time.Millisecond)
}

// Rescan scans the workspace and replaces the catalog content.
// On failure the previous content is kept.
func (c *Catalog) Rescan(ctx context.Context) ([]Theme, error) {
	c.scanMu.Lock()
	defer c.scanMu.Unlock()

	themes, err := Scan(ctx, c.opts)
	if err != nil {
		return nil, err
	}
	c.Replace(themes)
	return c.List(), nil
}

// Replace swaps the catalog content for themes.
func (c *Catalog) Replace(themes []Theme) {
	cp := slices.Clone(themes)
	if cp == nil {
		cp = []Theme{}
	}
	c.mu.Lock()
	c.themes = cp
	c.scannedAt = time.Now()
	c.mu.Unlock()
}

// List returns a copy of all themes in scan order.
func (c *Catalog) List() []Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.themes)
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.themes)
}

// ScannedAt returns when the catalog content was last replaced.
func (c *Catalog) ScannedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scannedAt
}

// IDs returns the ids of all themes.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, len(c.themes))
	for i, t := range c.themes {
		ids[i] = t.ID
	}
	return ids
}

// Get returns the theme with id or ErrNotFound.
func (c *Catalog) Get(id string) (Theme, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.themes[i], nil
	}
	return Theme{}, ErrNotFound
}

// Update applies fn to the theme with id and returns the updated record.
func (c *Catalog) Update(id string, fn func(*Theme)) (Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return Theme{}, ErrNotFound
	}
	fn(&c.themes[i])
	return c.themes[i], nil
}

// Remove drops the theme with id.
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	c.themes = slices.Delete(c.themes, i, i+1)
	return nil
}

// index must be called with mu held.
func (c *Catalog) index(id string) int {
	return slices.IndexFunc(c.themes, func(t Theme) bool { return t.ID == id })
}
