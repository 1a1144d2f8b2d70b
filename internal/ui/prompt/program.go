package prompt

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// newProgram renders on stderr so stdout stays free for piping.
func newProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)
}
