package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCheckValid(t *testing.T) {
	m := newCheckModel()
	m.input.SetValue(testValue)
	m, _ = m.Update(enterKey())

	view := m.View()
	if !strings.Contains(view, "valid") || strings.Contains(view, "invalid") {
		t.Error("should show valid verdict")
	}
	if !strings.Contains(view, "1990-06-15") {
		t.Error("should show decoded date")
	}
	if !strings.Contains(view, "male") {
		t.Error("should show decoded sex")
	}
}

func TestCheckBadChecksum(t *testing.T) {
	m := newCheckModel()
	m.input.SetValue("90061512350") // last digit wrong
	m, _ = m.Update(enterKey())

	if !strings.Contains(m.View(), "invalid") {
		t.Error("should show invalid verdict")
	}
}

func TestCheckMalformed(t *testing.T) {
	m := newCheckModel()
	m.input.SetValue("abc")
	m, _ = m.Update(enterKey())

	if !strings.Contains(m.View(), "invalid") {
		t.Error("should show invalid verdict for malformed input")
	}
}

func TestCheckEmptyIgnored(t *testing.T) {
	m := newCheckModel()
	m, _ = m.Update(enterKey())
	if m.checked {
		t.Error("enter on empty input should not check")
	}
}

func TestCheckEditingResetsVerdict(t *testing.T) {
	m := newCheckModel()
	m.input.SetValue(testValue)
	m, _ = m.Update(enterKey())
	if !m.checked {
		t.Fatal("verdict should be set")
	}

	m, _ = m.Update(keyMsg('1'))
	if m.checked {
		t.Error("editing should clear the previous verdict")
	}
}

func TestCheckTypedQReachesInput(t *testing.T) {
	m := newCheckModel()
	m, cmd := m.Update(keyMsg('q'))

	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q should not quit the check view")
		}
	}
	if m.input.Value() != "q" {
		t.Errorf("input = %q, want %q", m.input.Value(), "q")
	}
}

func TestCheckBackToMenu(t *testing.T) {
	m := newCheckModel()
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("esc should produce command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok {
		t.Fatal("should emit navigateMsg")
	}
	if nav.view != viewMenu {
		t.Errorf("view = %d, want viewMenu", nav.view)
	}
}

func TestCheckQuit(t *testing.T) {
	m := newCheckModel()
	_, cmd := m.Update(specialKey(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
}
