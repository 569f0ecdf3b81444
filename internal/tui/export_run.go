package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/export"
)

type exportPhase int

const (
	exportConfirm exportPhase = iota
	exportRunning
	exportDone
)

// exportProgressMsg carries one progress event from the running export.
type exportProgressMsg struct {
	event export.Event
}

// exportDoneMsg carries the result of a completed export.
type exportDoneMsg struct {
	req export.Request
	res export.Result
	err error
}

// exportRunModel walks an export through confirm, running and done.
type exportRunModel struct {
	req  export.Request
	plan []string

	phase      exportPhase
	bar        progress.Model
	frac       float64
	lastMille  int
	event      export.Event
	cancel     context.CancelFunc
	events     chan export.Event
	cancelling bool

	res export.Result
	err error
}

func newExportRunModel(req export.Request, plan []string) exportRunModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return exportRunModel{
		req:   req,
		plan:  plan,
		phase: exportConfirm,
		bar:   bar,
	}
}

func (m exportRunModel) Init() tea.Cmd {
	return nil
}

func (m exportRunModel) Update(msg tea.Msg) (exportRunModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case exportProgressMsg:
		m.event = msg.event
		m.frac = m.fraction(msg.event)
		// keep draining events while the run is live
		if m.phase == exportRunning {
			return m, m.waitForEvent()
		}
		return m, nil

	case exportDoneMsg:
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.phase = exportDone
		m.res = msg.res
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// fraction maps an event onto [0, 1]: files weigh equally, days fill
// within the current file. Clamped monotonic so uneven year lengths
// never move the bar backwards.
func (m *exportRunModel) fraction(e export.Event) float64 {
	if e.FilesTotal == 0 || e.DaysTotal == 0 {
		return m.frac
	}
	mille := e.FilesDone*1000 + 1000*e.DaysDone/e.DaysTotal
	if mille > m.lastMille {
		m.lastMille = mille
	}
	return float64(m.lastMille) / float64(e.FilesTotal*1000)
}

func (m exportRunModel) handleKey(msg tea.KeyMsg) (exportRunModel, tea.Cmd) {
	switch m.phase {
	case exportConfirm:
		return m.handleConfirmKey(msg)

	case exportRunning:
		// esc or x asks the workers to stop at the next day boundary
		if key.Matches(msg, zstyle.KeyBack) || msg.String() == "x" {
			if m.cancel != nil {
				m.cancel()
				m.cancelling = true
			}
		}
		return m, nil

	case exportDone:
		// any key returns to the menu
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}
	return m, nil
}

func (m exportRunModel) handleConfirmKey(msg tea.KeyMsg) (exportRunModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	switch msg.String() {
	case "y":
		return m.start()
	default:
		// any other key cancels, back to the form
		return m, func() tea.Msg { return navigateMsg{view: viewExportForm} }
	}
}

// start launches the export in the background. Progress flows through a
// buffered channel; stale events are dropped rather than stalling the
// writers behind a slow terminal.
func (m exportRunModel) start() (exportRunModel, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.events = make(chan export.Event, 64)
	m.phase = exportRunning

	req := m.req
	events := m.events
	req.Progress = func(e export.Event) {
		select {
		case events <- e:
		default:
		}
	}

	run := func() tea.Msg {
		res, err := export.Execute(ctx, req)
		return exportDoneMsg{req: m.req, res: res, err: err}
	}

	return m, tea.Batch(run, m.waitForEvent())
}

func (m exportRunModel) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return exportProgressMsg{event: <-events}
	}
}

func (m exportRunModel) View() string {
	switch m.phase {
	case exportConfirm:
		return m.viewConfirm()
	case exportRunning:
		return m.viewRunning()
	case exportDone:
		return m.viewDone()
	}
	return ""
}

func (m exportRunModel) viewConfirm() string {
	title := fmt.Sprintf("export %d-%d %s?", m.req.StartYear, m.req.EndYear, m.req.Sex)
	s := "\n  " + zstyle.Subtitle.Render(title) + "\n\n"

	s += "  " + zstyle.MutedText.Render("this will:") + "\n"
	for _, step := range m.plan {
		s += fmt.Sprintf("  %s %s\n", zstyle.StatusWarn.Render("-"), step)
	}

	s += "\n"
	s += "  " + zstyle.StatusWarn.Render("large ranges take a while and fill disks.") + " (y/n)\n"

	return s
}

func (m exportRunModel) viewRunning() string {
	s := "\n  " + m.bar.ViewAs(m.frac) + "\n\n"

	e := m.event
	if e.FilesTotal > 0 {
		s += "  " + zstyle.MutedText.Render(fmt.Sprintf(
			"writing %d_%s.txt  day %d/%d  file %d/%d",
			e.Year, e.Sex, e.DaysDone, e.DaysTotal, e.FilesDone+1, e.FilesTotal,
		)) + "\n"
	} else {
		s += "  " + zstyle.MutedText.Render("starting...") + "\n"
	}

	if m.cancelling {
		s += "\n  " + zstyle.StatusWarn.Render("cancelling...") + "\n"
	} else {
		s += "\n  " + zstyle.MutedText.Render("esc cancel") + "\n"
	}

	return s
}

func (m exportRunModel) viewDone() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString("\n  " + zstyle.StatusWarn.Render("export stopped: "+m.err.Error()) + "\n\n")
	} else {
		lines := strings.Split(m.res.Summary(), "\n")
		if m.res.HasErrors() {
			b.WriteString("\n  " + zstyle.StatusWarn.Render(lines[0]) + "\n\n")
		} else {
			b.WriteString("\n  " + zstyle.StatusOK.Render(lines[0]) + "\n\n")
		}
		for _, line := range lines[1:] {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + zstyle.MutedText.Render("press any key to continue") + "\n")
	return b.String()
}
