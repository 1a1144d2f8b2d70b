package prompt

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
}

// runConfirm feeds keys to the delete prompt until it quits.
func runConfirm(keys ...string) (confirmModel, bool) {
	var m tea.Model = confirmModel{prompt: "Delete /ws/ocean-theme from disk?"}
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(keyPress(k))
		if cmd != nil {
			return m.(confirmModel), true
		}
	}
	return m.(confirmModel), false
}

func TestConfirm_DeleteAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []string
		want ConfirmResult
	}{
		{"yes deletes", []string{"y"}, ConfirmResult{Confirmed: true}},
		{"stray keys before yes", []string{"d", "e", "Y"}, ConfirmResult{Confirmed: true}},
		{"enter keeps the folder", []string{"enter"}, ConfirmResult{}},
		{"no keeps the folder", []string{"N"}, ConfirmResult{}},
		{"esc aborts", []string{"esc"}, ConfirmResult{Cancelled: true}},
		{"ctrl+c aborts", []string{"ctrl+c"}, ConfirmResult{Cancelled: true}},
		{"q aborts", []string{"q"}, ConfirmResult{Cancelled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, quit := runConfirm(tt.keys...)
			if !quit {
				t.Fatalf("prompt did not finish after %v", tt.keys)
			}
			if got := m.result(); got != tt.want {
				t.Errorf("result() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfirm_WaitsForAnswer(t *testing.T) {
	t.Parallel()

	m, quit := runConfirm("x", "1", " ")
	if quit || m.done {
		t.Fatal("unrelated keys must not answer the prompt")
	}
	if got, want := ansi.Strip(m.View().Content), "Delete /ws/ocean-theme from disk? [y/N] "; got != want {
		t.Errorf("View() = %q, want %q", got, want)
	}

	m, _ = runConfirm("n")
	if got := m.View().Content; got != "" {
		t.Errorf("View() after answer = %q, want empty", got)
	}
	if m.Init() != nil {
		t.Error("Init() should return nil cmd")
	}
}
