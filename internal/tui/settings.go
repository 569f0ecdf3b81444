package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/pesel"
)

// saveDefaultsMsg requests persisting the edited defaults.
type saveDefaultsMsg struct {
	defaults Defaults
}

// settingsModel edits the saved export defaults. Same field layout as
// the export form, but submitting persists instead of running.
type settingsModel struct {
	inputs [efFieldCount]textinput.Model
	sexIdx int
	focus  int
	flash  string
}

func newSettingsModel(d Defaults) settingsModel {
	m := settingsModel{}

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

func (m settingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m settingsModel) handleKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
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
		if m.focus == int(efFieldCount)-1 {
			return m.save()
		}
		return m.nextField(), nil
	}

	if msg.String() == "ctrl+s" {
		return m.save()
	}

	if efField(m.focus) == efSex && msg.String() == " " {
		m.sexIdx = (m.sexIdx + 1) % len(sexOptions)
		return m, nil
	}

	return m.updateInput(msg)
}

func (m settingsModel) save() (settingsModel, tea.Cmd) {
	d, err := m.buildDefaults()
	if err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	return m, func() tea.Msg { return saveDefaultsMsg{defaults: d} }
}

func (m settingsModel) buildDefaults() (Defaults, error) {
	startYear, err := strconv.Atoi(strings.TrimSpace(m.inputs[efStartYear].Value()))
	if err != nil {
		return Defaults{}, fmt.Errorf("start year must be a number")
	}
	endYear, err := strconv.Atoi(strings.TrimSpace(m.inputs[efEndYear].Value()))
	if err != nil {
		return Defaults{}, fmt.Errorf("end year must be a number")
	}
	workers, err := strconv.Atoi(strings.TrimSpace(m.inputs[efWorkers].Value()))
	if err != nil || workers < 1 {
		return Defaults{}, fmt.Errorf("workers must be a positive number")
	}

	outDir := strings.TrimSpace(m.inputs[efOutDir].Value())
	if outDir == "" {
		return Defaults{}, fmt.Errorf("output dir is required")
	}

	sex := sexOptions[m.sexIdx]
	if _, err := pesel.YearSpan(startYear, endYear, pesel.Both); err != nil {
		return Defaults{}, err
	}
	if _, err := pesel.ParseSex(sex); err != nil {
		return Defaults{}, err
	}

	return Defaults{
		StartYear: startYear,
		EndYear:   endYear,
		Sex:       sex,
		OutDir:    outDir,
		Workers:   workers,
	}, nil
}

func (m settingsModel) nextField() settingsModel {
	m.blurFocused()
	m.focus = (m.focus + 1) % int(efFieldCount)
	m.focusCurrent()
	return m
}

func (m settingsModel) prevField() settingsModel {
	m.blurFocused()
	m.focus--
	if m.focus < 0 {
		m.focus = int(efFieldCount) - 1
	}
	m.focusCurrent()
	return m
}

func (m *settingsModel) blurFocused() {
	if efField(m.focus) != efSex {
		m.inputs[m.focus].Blur()
	}
}

func (m *settingsModel) focusCurrent() {
	if efField(m.focus) != efSex {
		m.inputs[m.focus].Focus()
	}
}

func (m settingsModel) updateInput(msg tea.Msg) (settingsModel, tea.Cmd) {
	if efField(m.focus) == efSex {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) View() string {
	return renderForm(m.inputs[:], efLabels[:], int(efSex), m.sexIdx, m.focus, m.flash)
}
