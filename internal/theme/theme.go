package theme

import (
	"errors"
	"time"
)

// Well-known file names inside a theme folder.
const (
	DescriptorFile = "blocklet.yml"
	PackageFile    = "package.json"
	LogoFile       = "logo.png"
	ReadmeFile     = "README.md"
	SidecarFile    = ".theme-metadata.json"
)

var (
	// ErrNotFound indicates no theme with the requested id exists.
	ErrNotFound = errors.New("theme not found")

	// ErrNoDescriptor indicates the theme folder has no blocklet.yml.
	ErrNoDescriptor = errors.New("blocklet.yml not found")

	// ErrNotReady indicates an action requires a ready theme.
	ErrNotReady = errors.New("theme is not ready")
)

// Theme is one scanned theme folder.
type Theme struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Path           string    `json:"path"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DID            string    `json:"did"`
	NeedsDIDUpdate bool      `json:"needsDidUpdate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Status         Status    `json:"status"`
	Logo           *string   `json:"logo"` // API URL of the logo, nil without logo.png
}

// LogoURL returns the API path serving the logo of theme id.
func LogoURL(id string) string {
	return "/api/themes/" + id + "/logo"
}

// ApplyDID sets a new DID and re-derives everything that depends on it.
func (t *Theme) ApplyDID(did, baseDID string, now time.Time) {
	t.DID = did
	t.Status = DeriveStatus(did, baseDID)
	t.NeedsDIDUpdate = t.Status.NeedsDIDUpdate()
	t.UpdatedAt = now
}
