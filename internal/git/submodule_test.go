package git

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSubmoduleStatus(t *testing.T) {
	t.Parallel()

	output := " 1a2b3c4d themes/base (heads/main)\n" +
		"-5e6f7a8b vendor/ui\n" +
		"+9c0d1e2f packages/blocks (v1.2.0-3-g9c0d1e2)\n" +
		"U0000000 conflicted\n\n"

	want := []Submodule{
		{Path: "themes/base", Commit: "1a2b3c4d", State: SubmoduleInitialized, Ref: "heads/main"},
		{Path: "vendor/ui", Commit: "5e6f7a8b", State: SubmoduleUninitialized},
		{Path: "packages/blocks", Commit: "9c0d1e2f", State: SubmoduleModified, Ref: "v1.2.0-3-g9c0d1e2"},
		{Path: "conflicted", Commit: "0000000", State: SubmoduleConflict},
	}

	got := ParseSubmoduleStatus(output)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSubmoduleStatus() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSubmoduleStatus_Empty(t *testing.T) {
	t.Parallel()

	got := ParseSubmoduleStatus("")
	if got == nil || len(got) != 0 {
		t.Errorf("ParseSubmoduleStatus(\"\") = %#v, want empty non-nil slice", got)
	}
}

func TestSubmoduleStatus_NoSubmodules(t *testing.T) {
	t.Parallel()

	subs, err := SubmoduleStatus(context.Background(), setupTestRepo(t))
	if err != nil {
		t.Fatalf("SubmoduleStatus() error: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("SubmoduleStatus() = %v, want none", subs)
	}
}
