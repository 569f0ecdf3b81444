package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/export"
)

// runDetailModel displays one export run with its per-file outcomes.
type runDetailModel struct {
	run export.Manifest
}

func newRunDetailModel(run export.Manifest) runDetailModel {
	return runDetailModel{run: run}
}

func (m runDetailModel) Init() tea.Cmd {
	return nil
}

func (m runDetailModel) Update(msg tea.Msg) (runDetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewRunList} }
		}
	}
	return m, nil
}

func (m runDetailModel) View() string {
	title := fmt.Sprintf("%d-%d %s", m.run.StartYear, m.run.EndYear, m.run.Sex)
	s := "\n  " + zstyle.Subtitle.Render(title) + "\n\n"

	s += m.fieldLine("created", m.run.CreatedAt.Format(time.RFC3339))
	s += m.fieldLine("total", fmt.Sprintf("%d identifiers", m.run.Count))
	s += m.fieldLine("size", export.FormatBytes(m.run.Bytes))
	s += "\n"

	for _, f := range m.run.Files {
		switch {
		case f.Error != "":
			s += "  " + zstyle.StatusErr.Render(fmt.Sprintf("%-20s %s", f.Name, f.Error)) + "\n"
		case f.Skipped:
			s += fmt.Sprintf("  %-20s %s\n", f.Name, zstyle.MutedText.Render("skipped, already existed"))
		default:
			s += fmt.Sprintf("  %-20s %10d ids  %s\n", f.Name, f.Count, export.FormatBytes(f.Bytes))
		}
	}

	s += "\n"
	return s
}

func (m runDetailModel) fieldLine(label, value string) string {
	l := zstyle.MutedText.Render(fmt.Sprintf("%-8s", label))
	return fmt.Sprintf("  %s %s\n", l, value)
}
