package prompt

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/btm/internal/ui/styles"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s ", m.prompt, styles.MutedStyle.Render("[y/N]")))
}

// Confirm shows a yes/no prompt on stderr and returns the user's choice.
// Enter without input answers no.
func Confirm(prompt string) (ConfirmResult, error) {
	p := newProgram(confirmModel{prompt: prompt})
	finalModel, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	return finalModel.(confirmModel).result(), nil
}

func (m confirmModel) result() ConfirmResult {
	return ConfirmResult{Confirmed: m.confirmed, Cancelled: m.cancelled}
}
