package theme

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readSidecarFile(t *testing.T, dir string) Sidecar {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, SidecarFile))
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		t.Fatalf("parse sidecar: %v", err)
	}
	return sc
}

func TestCreationTime_WritesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	first := time.Date(2025, 3, 14, 9, 26, 53, 589_793_238, time.UTC)

	got := CreationTime(ctx, dir, first)
	want := first.Truncate(time.Millisecond)
	if !got.Equal(want) {
		t.Fatalf("CreationTime() = %v, want %v", got, want)
	}

	sc := readSidecarFile(t, dir)
	if sc.CreatedAt != "2025-03-14T09:26:53.589Z" {
		t.Errorf("createdAt = %q", sc.CreatedAt)
	}
	if sc.CreatedBy != "blog-theme-monitor" {
		t.Errorf("createdBy = %q", sc.CreatedBy)
	}

	// A later scan keeps the recorded time
	later := CreationTime(ctx, dir, first.Add(48*time.Hour))
	if !later.Equal(want) {
		t.Errorf("second CreationTime() = %v, want %v", later, want)
	}
}

func TestCreationTime_MissingCreatedAt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{SidecarFile: `{"createdBy": "someone"}`})
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	got := CreationTime(context.Background(), dir, now)
	if !got.Equal(now) {
		t.Errorf("CreationTime() = %v, want %v", got, now)
	}
	if sc := readSidecarFile(t, dir); sc.CreatedAt != "2025-01-02T03:04:05.000Z" {
		t.Errorf("sidecar not rewritten: %+v", sc)
	}
}

func TestCreationTime_CorruptLeftAlone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"broken json", `{"createdAt": `},
		{"bad timestamp", `{"createdAt": "last tuesday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeFiles(t, dir, map[string]string{SidecarFile: tt.content})
			now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

			if got := CreationTime(context.Background(), dir, now); !got.Equal(now) {
				t.Errorf("CreationTime() = %v, want now", got)
			}
			data, _ := os.ReadFile(filepath.Join(dir, SidecarFile))
			if string(data) != tt.content {
				t.Errorf("corrupt sidecar was overwritten: %q", data)
			}
		})
	}
}

func TestReadSidecar(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		if _, err := ReadSidecar(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadSidecar() error = %v, want ErrNotExist", err)
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{SidecarFile: "not json"})
		if _, err := ReadSidecar(dir); !errors.Is(err, ErrCorruptSidecar) {
			t.Errorf("ReadSidecar() error = %v, want ErrCorruptSidecar", err)
		}
	})

	t.Run("without milliseconds", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{SidecarFile: `{"createdAt": "2024-05-01T10:00:00Z"}`})
		got, err := ReadSidecar(dir)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
			t.Errorf("ReadSidecar() = %v", got)
		}
	})
}
