package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/pesel"
)

// checkModel verifies a typed or pasted identifier and shows its
// decoded fields.
type checkModel struct {
	input   textinput.Model
	checked bool
	decoded pesel.Decoded
	err     error
}

func newCheckModel() checkModel {
	ti := textinput.New()
	ti.Placeholder = "11 digits"
	ti.CharLimit = 32
	ti.Width = 30
	ti.Focus()

	return checkModel{input: ti}
}

func (m checkModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m checkModel) Update(msg tea.Msg) (checkModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		// 'q' must reach the input; only ctrl+c quits here
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.runCheck(), nil
		}

		// editing invalidates the previous verdict
		m.checked = false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m checkModel) runCheck() checkModel {
	val := strings.TrimSpace(m.input.Value())
	if val == "" {
		return m
	}

	m.checked = true
	m.decoded, m.err = pesel.Decode(val)
	return m
}

func (m checkModel) View() string {
	s := "\n  " + zstyle.MutedText.Render("identifier:") + "\n"
	s += "  " + m.input.View() + "\n\n"

	switch {
	case !m.checked:
		s += "\n\n\n\n"

	case m.err != nil:
		s += "  " + zstyle.StatusErr.Render("invalid: "+m.err.Error()) + "\n"
		s += "\n\n\n"

	default:
		s += "  " + zstyle.StatusOK.Render("valid") + "\n"
		s += m.fieldLine("date", m.decoded.Date.String())
		s += m.fieldLine("serial", fmt.Sprintf("%d", m.decoded.Serial))
		s += m.fieldLine("sex", m.decoded.Sex.String())
	}

	s += "\n"
	return s
}

func (m checkModel) fieldLine(label, value string) string {
	l := zstyle.MutedText.Render(fmt.Sprintf("%-8s", label))
	return fmt.Sprintf("  %s %s\n", l, value)
}
