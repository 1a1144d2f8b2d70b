package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/storage"
)

// sidecarAuthor is recorded as createdBy in new sidecars.
const sidecarAuthor = "blog-theme-monitor"

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrCorruptSidecar indicates the sidecar exists but cannot be parsed.
var ErrCorruptSidecar = errors.New("corrupt theme metadata")

// Sidecar is the content of .theme-metadata.json.
type Sidecar struct {
	CreatedAt string `json:"createdAt"`
	CreatedBy string `json:"createdBy"`
}

// ReadSidecar returns the creation time recorded in dir.
// A missing file returns an error matching os.ErrNotExist; a file without
// createdAt returns the zero time and no error; anything unparseable
// returns ErrCorruptSidecar.
func ReadSidecar(dir string) (time.Time, error) {
	var sc Sidecar
	if err := storage.LoadJSON(filepath.Join(dir, SidecarFile), &sc); err != nil {
		if errors.Is(err, storage.ErrInvalidJSON) {
			return time.Time{}, fmt.Errorf("%w: %v", ErrCorruptSidecar, err)
		}
		return time.Time{}, err
	}

	raw := strings.TrimSpace(sc.CreatedAt)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrCorruptSidecar, err)
	}
	return t, nil
}

// WriteSidecar records t as the creation time of dir.
func WriteSidecar(dir string, t time.Time) error {
	return storage.SaveJSON(filepath.Join(dir, SidecarFile), Sidecar{
		CreatedAt: FormatTimestamp(t),
		CreatedBy: sidecarAuthor,
	})
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// CreationTime returns the stable creation time of the theme in dir.
// The first call records now in the sidecar; later calls return the
// recorded time. A corrupt sidecar is left untouched and now is returned.
func CreationTime(ctx context.Context, dir string, now time.Time) time.Time {
	l := log.FromContext(ctx)
	now = now.UTC().Truncate(time.Millisecond)

	t, err := ReadSidecar(dir)
	switch {
	case err == nil && !t.IsZero():
		return t
	case errors.Is(err, ErrCorruptSidecar):
		l.Warn("%s in %s: %v", SidecarFile, filepath.Base(dir), err)
		return now
	case err != nil && !errors.Is(err, os.ErrNotExist):
		l.Warn("read %s in %s: %v", SidecarFile, filepath.Base(dir), err)
		return now
	}

	if err := WriteSidecar(dir, now); err != nil {
		l.Warn("write %s in %s: %v", SidecarFile, filepath.Base(dir), err)
	}
	return now
}
