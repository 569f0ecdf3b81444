package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/record"
)

// listModel displays saved records in a scrollable list.
type listModel struct {
	records []record.Record
	cursor  int
	flash   string
	confirm bool
}

// deleteRecordMsg requests deletion of a record.
type deleteRecordMsg struct {
	id string
}

// viewRecordMsg requests viewing a specific record.
type viewRecordMsg struct {
	rec record.Record
}

func newListModel(recs []record.Record) listModel {
	return listModel{records: recs}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if m.confirm {
		return m.handleConfirm(msg)
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.records) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		rec := m.records[m.cursor]
		return m, func() tea.Msg { return viewRecordMsg{rec: rec} }
	}

	if msg.String() == "d" {
		m.confirm = true
		return m, nil
	}

	return m, nil
}

func (m listModel) handleConfirm(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.records[m.cursor].ID
		m.confirm = false
		return m, func() tea.Msg { return deleteRecordMsg{id: id} }
	default:
		m.confirm = false
		return m, nil
	}
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"

	if len(m.records) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved identifiers") + "\n"
		s += "\n"
		// reserved flash line (empty for empty state)
		s += "\n"
		return s
	}

	for i, rec := range m.records {
		line := fmt.Sprintf("%-13s %-24s %s",
			rec.Value,
			truncate(rec.Label, 24),
			zstyle.MutedText.Render(rec.CreatedAt.Format("2006-01-02")),
		)

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	if m.confirm {
		value := m.records[m.cursor].Value
		s += "  " + zstyle.StatusWarn.Render(fmt.Sprintf("delete %s? this cannot be undone. (y/n)", value)) + "\n"
	} else if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
