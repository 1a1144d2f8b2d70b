package theme

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/zeebo/blake3"
)

// Logo is the content of a theme's logo.png.
type Logo struct {
	Data    []byte
	ETag    string
	ModTime time.Time
}

// ReadLogo loads logo.png from dir together with a content hash for
// HTTP caching. A missing logo returns an error matching os.ErrNotExist.
func ReadLogo(dir string) (Logo, error) {
	path := filepath.Join(dir, LogoFile)
	info, err := os.Stat(path)
	if err != nil {
		return Logo{}, err
	}
	if !info.Mode().IsRegular() {
		return Logo{}, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Logo{}, err
	}
	sum := blake3.Sum256(data)
	return Logo{
		Data:    data,
		ETag:    `"` + hex.EncodeToString(sum[:16]) + `"`,
		ModTime: info.ModTime(),
	}, nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderReadme renders README.md of dir to HTML.
// A missing README returns an error matching os.ErrNotExist.
func RenderReadme(dir string) (string, error) {
	src, err := os.ReadFile(filepath.Join(dir, ReadmeFile))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", ReadmeFile, err)
	}
	return buf.String(), nil
}
