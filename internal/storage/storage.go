// Package storage reads and writes the small JSON files btm keeps next to
// the data it tracks, such as the per-theme metadata sidecar.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidJSON indicates a file exists but does not hold valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// SaveJSON writes data as indented JSON to path.
//
// The content goes to a uniquely named temp file in the same directory
// which is then renamed over path, so readers never see a partial file
// and concurrent writers (a scan racing the watcher) never share a temp file.
func SaveJSON(path string, data any) error {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	body = append(body, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// LoadJSON decodes the JSON file at path into dest.
// A missing file returns an error matching os.ErrNotExist; an empty or
// malformed file returns an error matching ErrInvalidJSON.
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidJSON, filepath.Base(path), err)
	}
	return nil
}
