package prompt

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/btm/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	required  bool
	errMsg    string
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			if m.required && strings.TrimSpace(m.textInput.Value()) == "" {
				m.errMsg = "a value is required"
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
		m.errMsg = ""
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	view := fmt.Sprintf("%s\n%s", m.prompt, m.textInput.View())
	if m.errMsg != "" {
		view += "\n" + styles.ErrorStyle.Render(m.errMsg)
	}
	return tea.NewView(view)
}

func newTextInputModel(prompt, placeholder string, required bool) textInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 128
	ti.SetWidth(50)

	return textInputModel{
		textInput: ti,
		prompt:    prompt,
		required:  required,
	}
}

// TextInput shows a text input prompt on stderr and returns the trimmed
// input. With required set, enter is refused until a value is typed.
func TextInput(prompt, placeholder string, required bool) (TextInputResult, error) {
	p := newProgram(newTextInputModel(prompt, placeholder, required))
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     strings.TrimSpace(m.textInput.Value()),
		Cancelled: m.cancelled,
	}, nil
}
