package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/export"
)

// runListModel displays past export runs, newest first.
type runListModel struct {
	runs   []export.Manifest
	cursor int
	flash  string
}

// viewRunMsg requests viewing a specific run.
type viewRunMsg struct {
	run export.Manifest
}

func newRunListModel(runs []export.Manifest) runListModel {
	return runListModel{runs: runs}
}

func (m runListModel) Init() tea.Cmd {
	return nil
}

func (m runListModel) Update(msg tea.Msg) (runListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m runListModel) handleKey(msg tea.KeyMsg) (runListModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.runs) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.runs)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		run := m.runs[m.cursor]
		return m, func() tea.Msg { return viewRunMsg{run: run} }
	}

	return m, nil
}

func (m runListModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"

	if len(m.runs) == 0 {
		s += "  " + zstyle.MutedText.Render("no export runs yet") + "\n"
		s += "\n"
		s += "\n"
		return s
	}

	for i, run := range m.runs {
		line := fmt.Sprintf("%s  %d-%d %-7s %12d ids  %s",
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.StartYear, run.EndYear,
			run.Sex,
			run.Count,
			export.FormatBytes(run.Bytes),
		)

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
