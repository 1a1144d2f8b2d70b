package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/btm/internal/theme"
)

func TestSetNerdfont(t *testing.T) {
	SetNerdfont(false)
	if got := StatusSymbol(theme.StatusReady); got != "●" {
		t.Errorf("expected default ready symbol, got %q", got)
	}

	SetNerdfont(true)
	if got := StatusSymbol(theme.StatusReady); got != "\uf058" {
		t.Errorf("expected nerdfont ready symbol, got %q", got)
	}

	SetNerdfont(false)
}

func TestStatusSymbol(t *testing.T) {
	SetNerdfont(false)

	tests := []struct {
		status theme.Status
		want   string
	}{
		{theme.StatusReady, "●"},
		{theme.StatusNeedsUpdate, "◐"},
		{theme.StatusNoDID, "○"},
		{theme.Status("bogus"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := StatusSymbol(tt.status); got != tt.want {
				t.Errorf("StatusSymbol(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestFormatStatus(t *testing.T) {
	SetNerdfont(false)

	for _, s := range theme.AllStatuses {
		got := ansi.Strip(FormatStatus(s))
		want := StatusSymbol(s) + " " + string(s)
		if got != want {
			t.Errorf("FormatStatus(%q) = %q, want %q", s, got, want)
		}
	}
}

func TestFormatLink(t *testing.T) {
	t.Parallel()

	if got := FormatLink("ocean", ""); got != "ocean" {
		t.Errorf("FormatLink without url = %q, want plain text", got)
	}

	got := FormatLink("ocean", "https://github.com/blocklet/ocean-theme")
	if !strings.Contains(got, "https://github.com/blocklet/ocean-theme") {
		t.Errorf("FormatLink() = %q, want url in escape sequence", got)
	}
	if ansi.Strip(got) != "ocean" {
		t.Errorf("visible text = %q, want %q", ansi.Strip(got), "ocean")
	}
}
