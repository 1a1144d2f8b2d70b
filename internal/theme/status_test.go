package theme

import "testing"

func TestDeriveStatus(t *testing.T) {
	t.Parallel()

	const base = "z2qa2aCch4YEq6m9Qd5GnYRo76yhwfuHEKRTF"
	tests := []struct {
		name      string
		did       string
		want      Status
		needsNext bool
	}{
		{"empty", "", StatusNoDID, true},
		{"base did", base, StatusNeedsUpdate, true},
		{"own did", "z8iZfresh", StatusReady, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DeriveStatus(tt.did, base)
			if got != tt.want {
				t.Errorf("DeriveStatus(%q) = %q, want %q", tt.did, got, tt.want)
			}
			if got.NeedsDIDUpdate() != tt.needsNext {
				t.Errorf("NeedsDIDUpdate() = %v, want %v", got.NeedsDIDUpdate(), tt.needsNext)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, st := range AllStatuses {
		got, ok := ParseStatus(string(st))
		if !ok || got != st {
			t.Errorf("ParseStatus(%q) = (%q, %v)", st, got, ok)
		}
	}
	if _, ok := ParseStatus("launched"); ok {
		t.Error("ParseStatus(\"launched\") should fail")
	}
}
