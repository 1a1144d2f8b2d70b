package theme

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestReadLogo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{LogoFile: "\x89PNG\r\n\x1a\nfake"})

	logo, err := ReadLogo(dir)
	if err != nil {
		t.Fatalf("ReadLogo() error: %v", err)
	}
	if string(logo.Data) != "\x89PNG\r\n\x1a\nfake" {
		t.Errorf("Data = %q", logo.Data)
	}
	if len(logo.ETag) != 34 || !strings.HasPrefix(logo.ETag, `"`) {
		t.Errorf("ETag = %q, want quoted 32 hex chars", logo.ETag)
	}

	again, _ := ReadLogo(dir)
	if again.ETag != logo.ETag {
		t.Error("ETag not stable for identical content")
	}

	writeFiles(t, dir, map[string]string{LogoFile: "other"})
	changed, _ := ReadLogo(dir)
	if changed.ETag == logo.ETag {
		t.Error("ETag unchanged after content change")
	}
}

func TestReadLogo_Missing(t *testing.T) {
	t.Parallel()

	if _, err := ReadLogo(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadLogo() error = %v, want ErrNotExist", err)
	}
}

func TestRenderReadme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		ReadmeFile: "# Ocean\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n- [x] done\n",
	})

	html, err := RenderReadme(dir)
	if err != nil {
		t.Fatalf("RenderReadme() error: %v", err)
	}
	for _, want := range []string{"<h1>Ocean</h1>", "<table>", `type="checkbox"`} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered README missing %q:\n%s", want, html)
		}
	}
}

func TestRenderReadme_Missing(t *testing.T) {
	t.Parallel()

	if _, err := RenderReadme(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("RenderReadme() error = %v, want ErrNotExist", err)
	}
}
