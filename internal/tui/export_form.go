package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/export"
	"github.com/Sidolux/pesel-generator/internal/pesel"
)

type efField int

const (
	efStartYear efField = iota
	efEndYear
	efSex
	efOutDir
	efWorkers
	efFieldCount
)

var efLabels = [efFieldCount]string{
	"start year",
	"end year",
	"sex",
	"output dir",
	"workers",
}

var sexOptions = []string{"both", "male", "female"}

// exportStartMsg carries a validated export request to the root model.
type exportStartMsg struct {
	req export.Request
}

// exportFormModel is the form for configuring an export run.
type exportFormModel struct {
	inputs [efFieldCount]textinput.Model // efSex slot unused, sex is a cycle field
	sexIdx int
	focus  int
	flash  string
}

func newExportFormModel(d Defaults) exportFormModel {
	m := exportFormModel{}

	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		ti.Prompt = ""
		m.inputs[i] = ti
	}

	m.inputs[efStartYear].SetValue(strconv.Itoa(d.StartYear))
	m.inputs[efStartYear].Width = 8
	m.inputs[efEndYear].SetValue(strconv.Itoa(d.EndYear))
	m.inputs[efEndYear].Width = 8
	m.inputs[efOutDir].SetValue(d.OutDir)
	m.inputs[efWorkers].SetValue(strconv.Itoa(d.Workers))
	m.inputs[efWorkers].Width = 8

	for i, opt := range sexOptions {
		if opt == d.Sex {
			m.sexIdx = i
		}
	}

	m.inputs[efStartYear].Focus()
	return m
}

func (m exportFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exportFormModel) Update(msg tea.Msg) (exportFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m exportFormModel) handleKey(msg tea.KeyMsg) (exportFormModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if msg.Type == tea.KeyEsc {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
		return m.nextField(), nil
	}

	if msg.Type == tea.KeyUp || msg.Type == tea.KeyShiftTab {
		return m.prevField(), nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		// enter on last field submits; otherwise advance
		if m.focus == int(efFieldCount)-1 {
			return m.submit()
		}
		return m.nextField(), nil
	}

	if msg.String() == "ctrl+s" {
		return m.submit()
	}

	// space cycles the sex field
	if efField(m.focus) == efSex && msg.String() == " " {
		m.sexIdx = (m.sexIdx + 1) % len(sexOptions)
		return m, nil
	}

	return m.updateInput(msg)
}

func (m exportFormModel) submit() (exportFormModel, tea.Cmd) {
	req, err := m.buildRequest()
	if err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	return m, func() tea.Msg { return exportStartMsg{req: req} }
}

// buildRequest parses the form into a validated export request.
func (m exportFormModel) buildRequest() (export.Request, error) {
	startYear, err := strconv.Atoi(strings.TrimSpace(m.inputs[efStartYear].Value()))
	if err != nil {
		return export.Request{}, fmt.Errorf("start year must be a number")
	}
	endYear, err := strconv.Atoi(strings.TrimSpace(m.inputs[efEndYear].Value()))
	if err != nil {
		return export.Request{}, fmt.Errorf("end year must be a number")
	}

	workers := 1
	if v := strings.TrimSpace(m.inputs[efWorkers].Value()); v != "" {
		workers, err = strconv.Atoi(v)
		if err != nil || workers < 1 {
			return export.Request{}, fmt.Errorf("workers must be a positive number")
		}
	}

	sex, err := pesel.ParseSex(sexOptions[m.sexIdx])
	if err != nil {
		return export.Request{}, err
	}

	req := export.Request{
		StartYear: startYear,
		EndYear:   endYear,
		Sex:       sex,
		OutDir:    strings.TrimSpace(m.inputs[efOutDir].Value()),
		Workers:   workers,
	}
	if err := export.Validate(req); err != nil {
		return export.Request{}, err
	}
	return req, nil
}

func (m exportFormModel) nextField() exportFormModel {
	m.blurFocused()
	m.focus = (m.focus + 1) % int(efFieldCount)
	m.focusCurrent()
	return m
}

func (m exportFormModel) prevField() exportFormModel {
	m.blurFocused()
	m.focus--
	if m.focus < 0 {
		m.focus = int(efFieldCount) - 1
	}
	m.focusCurrent()
	return m
}

func (m *exportFormModel) blurFocused() {
	if efField(m.focus) != efSex {
		m.inputs[m.focus].Blur()
	}
}

func (m *exportFormModel) focusCurrent() {
	if efField(m.focus) != efSex {
		m.inputs[m.focus].Focus()
	}
}

func (m exportFormModel) updateInput(msg tea.Msg) (exportFormModel, tea.Cmd) {
	if efField(m.focus) == efSex {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m exportFormModel) View() string {
	return renderForm(m.inputs[:], efLabels[:], int(efSex), m.sexIdx, m.focus, m.flash)
}

// renderForm draws a labeled field list shared by the export and
// settings forms. sexPos names the cycle field's position.
func renderForm(inputs []textinput.Model, labels []string, sexPos, sexIdx, focus int, flash string) string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"

	for i := range labels {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-12s", labels[i]))

		var fieldView string
		if i == sexPos {
			fieldView = sexOptions[sexIdx] + " " + zstyle.MutedText.Render("(space to cycle)")
		} else {
			fieldView = inputs[i].View()
		}

		if i == focus {
			s += accentStyle.Render("▸") + " " + label + fieldView + "\n"
		} else {
			s += "  " + label + fieldView + "\n"
		}
	}

	s += "\n"

	if flash != "" {
		s += "  " + zstyle.StatusOK.Render(flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
