package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/pesel"
	"github.com/Sidolux/pesel-generator/internal/record"
)

// identifierField is a labeled field for display and selection.
type identifierField struct {
	label string
	value string
}

// generateModel displays a freshly generated identifier with actions.
type generateModel struct {
	decoded pesel.Decoded
	value   string
	fields  []identifierField
	cursor  int
	flash   string
}

// saveRecordMsg requests saving a record to the vault.
type saveRecordMsg struct {
	rec record.Record
}

// recordSavedMsg confirms the record was saved.
type recordSavedMsg struct{}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newGenerateModel(dec pesel.Decoded) generateModel {
	value := pesel.Encode(dec.Date, dec.Serial, dec.Sex)
	return generateModel{
		decoded: dec,
		value:   value,
		fields:  identifierFields(dec, value),
	}
}

func identifierFields(dec pesel.Decoded, value string) []identifierField {
	return []identifierField{
		{"pesel", value},
		{"date", dec.Date.String()},
		{"serial", strconv.Itoa(dec.Serial)},
		{"sex", dec.Sex.String()},
		{"check", value[10:]},
	}
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case recordSavedMsg:
		m.flash = "saved"
		return m, clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
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
		// copy selected field
		val := m.fields[m.cursor].value
		if err := copyToClipboard(val); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		return m, clearFlashAfter()
	}

	switch msg.String() {
	case "s":
		rec := record.Record{
			ID:        record.NewID(),
			Value:     m.value,
			CreatedAt: time.Now(),
		}
		return m, func() tea.Msg { return saveRecordMsg{rec: rec} }

	case "c":
		all := m.allFieldsText()
		if err := copyToClipboard(all); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied all!"
		return m, clearFlashAfter()

	case "n":
		return m, func() tea.Msg { return navigateMsg{view: viewGenerate} }
	}

	return m, nil
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m generateModel) allFieldsText() string {
	var b strings.Builder
	for _, f := range m.fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func (m generateModel) View() string {
	s := "\n"

	for i, f := range m.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-8s", f.label))
		if i == m.cursor {
			s += zstyle.ActiveBorder.Render(fmt.Sprintf("  > %s %s", label, f.value)) + "\n"
		} else {
			s += fmt.Sprintf("    %s %s\n", label, f.value)
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
