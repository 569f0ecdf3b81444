package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/pesel"
	"github.com/Sidolux/pesel-generator/internal/record"
)

// detailModel displays all fields of a saved record.
type detailModel struct {
	rec     record.Record
	fields  []identifierField
	cursor  int
	flash   string
	confirm bool
}

func newDetailModel(rec record.Record) detailModel {
	return detailModel{
		rec:    rec,
		fields: recordFields(rec),
	}
}

// recordFields decodes the stored value for display. A record that no
// longer decodes (it never should) still shows its raw value.
func recordFields(rec record.Record) []identifierField {
	fields := []identifierField{{"pesel", rec.Value}}

	if dec, err := pesel.Decode(rec.Value); err == nil {
		fields = append(fields,
			identifierField{"date", dec.Date.String()},
			identifierField{"serial", fmt.Sprintf("%d", dec.Serial)},
			identifierField{"sex", dec.Sex.String()},
			identifierField{"check", rec.Value[10:]},
		)
	}

	if rec.Label != "" {
		fields = append(fields, identifierField{"label", rec.Label})
	}
	if rec.Notes != "" {
		fields = append(fields, identifierField{"notes", rec.Notes})
	}
	return fields
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if m.confirm {
		return m.handleConfirm(msg)
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		val := m.fields[m.cursor].value
		if err := copyToClipboard(val); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		return m, clearFlashAfter()
	}

	switch msg.String() {
	case "c":
		all := m.allFieldsText()
		if err := copyToClipboard(all); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied all!"
		return m, clearFlashAfter()

	case "d":
		m.confirm = true
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleConfirm(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.rec.ID
		m.confirm = false
		return m, func() tea.Msg { return deleteRecordMsg{id: id} }
	default:
		m.confirm = false
		return m, nil
	}
}

func (m detailModel) allFieldsText() string {
	var b strings.Builder
	for _, f := range m.fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func (m detailModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n  " + zstyle.Subtitle.Render(m.rec.Value) + "\n\n"

	for i, f := range m.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-8s", f.label))
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + label + " " + f.value + "\n"
		} else {
			s += "    " + label + " " + f.value + "\n"
		}
	}

	s += "\n"
	s += "  " + zstyle.MutedText.Render("created  "+m.rec.CreatedAt.Format(time.RFC3339)) + "\n"
	s += "\n"

	if m.confirm {
		s += "  " + zstyle.StatusWarn.Render(fmt.Sprintf("delete %s? this cannot be undone. (y/n)", m.rec.Value)) + "\n"
	} else if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
