package theme

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Package holds the fields of package.json the monitor cares about.
type Package struct {
	Name string `json:"name"`
}

// ReadPackage reads package.json from dir. Strict JSON is tried first,
// then the content is retried with comments and trailing commas removed.
// Content that still fails to parse yields an empty Package and the error.
func ReadPackage(dir string) (Package, error) {
	data, err := os.ReadFile(filepath.Join(dir, PackageFile))
	if err != nil {
		return Package{}, err
	}
	return ParsePackage(data)
}

// ParsePackage decodes package.json content leniently.
func ParsePackage(data []byte) (Package, error) {
	var p Package
	if err := json.Unmarshal(data, &p); err == nil {
		p.Name = strings.TrimSpace(p.Name)
		return p, nil
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
		return Package{}, err
	}
	p.Name = strings.TrimSpace(p.Name)
	return p, nil
}

// HasLogo reports whether dir contains a regular logo.png.
func HasLogo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, LogoFile))
	return err == nil && info.Mode().IsRegular()
}
