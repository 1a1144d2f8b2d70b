package theme

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates dir and writes files (name -> content) into it.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// writeTheme creates a complete theme folder in ws.
func writeTheme(t *testing.T, ws, id, descriptor, pkg string) string {
	t.Helper()
	dir := filepath.Join(ws, id)
	writeFiles(t, dir, map[string]string{
		DescriptorFile: descriptor,
		PackageFile:    pkg,
	})
	return dir
}
