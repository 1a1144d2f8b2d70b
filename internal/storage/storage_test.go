package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type sidecar struct {
	CreatedAt string `json:"createdAt"`
	CreatedBy string `json:"createdBy"`
}

func TestSaveLoadJSON_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".theme-metadata.json")
	original := sidecar{CreatedAt: "2024-03-01T10:00:00.000Z", CreatedBy: "blog-theme-monitor"}

	if err := SaveJSON(path, original); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	var loaded sidecar
	if err := LoadJSON(path, &loaded); err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}
	if loaded != original {
		t.Errorf("LoadJSON() = %+v, want %+v", loaded, original)
	}
}

func TestSaveJSON_Format(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meta.json")
	if err := SaveJSON(path, sidecar{CreatedAt: "x", CreatedBy: "y"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"createdAt\": \"x\",\n  \"createdBy\": \"y\"\n}\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("file mode = %o, want 644", perm)
	}
}

func TestSaveJSON_CreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "data.json")
	if err := SaveJSON(path, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	var loaded map[string]string
	if err := LoadJSON(path, &loaded); err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}
	if loaded["key"] != "value" {
		t.Errorf("key = %q, want value", loaded["key"])
	}
}

func TestSaveJSON_MarshalError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := SaveJSON(filepath.Join(dir, "bad.json"), make(chan int)); err == nil {
		t.Fatal("SaveJSON() of a channel should fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save left %d files behind", len(entries))
	}
}

func TestSaveJSON_Overwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "atomic.json")

	if err := SaveJSON(path, map[string]int{"v": 1}); err != nil {
		t.Fatal(err)
	}
	if err := SaveJSON(path, map[string]int{"v": 2}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir contains %v, want only atomic.json", names)
	}

	var loaded map[string]int
	if err := LoadJSON(path, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded["v"] != 2 {
		t.Errorf("v = %d, want 2", loaded["v"])
	}
}

func TestSaveJSON_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".theme-metadata.json")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := SaveJSON(path, sidecar{CreatedAt: fmt.Sprint(i), CreatedBy: "btm"}); err != nil {
				t.Errorf("SaveJSON() error: %v", err)
			}
		}()
	}
	wg.Wait()

	var loaded sidecar
	if err := LoadJSON(path, &loaded); err != nil {
		t.Fatalf("file corrupted by concurrent writers: %v", err)
	}
	if loaded.CreatedBy != "btm" {
		t.Errorf("CreatedBy = %q, want btm", loaded.CreatedBy)
	}
}

func TestLoadJSON_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"empty.json":   "",
		"invalid.json": "{not valid json}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		file     string
		notExist bool
	}{
		{"missing.json", true},
		{"empty.json", false},
		{"invalid.json", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSuffix(tt.file, ".json"), func(t *testing.T) {
			t.Parallel()

			var data map[string]any
			err := LoadJSON(filepath.Join(dir, tt.file), &data)
			if err == nil {
				t.Fatal("LoadJSON() should fail")
			}
			if got := errors.Is(err, os.ErrNotExist); got != tt.notExist {
				t.Errorf("errors.Is(err, os.ErrNotExist) = %v, want %v (err: %v)", got, tt.notExist, err)
			}
			if got := errors.Is(err, ErrInvalidJSON); got == tt.notExist {
				t.Errorf("errors.Is(err, ErrInvalidJSON) = %v, want %v (err: %v)", got, !tt.notExist, err)
			}
		})
	}
}
