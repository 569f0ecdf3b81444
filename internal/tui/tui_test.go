package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sidolux/pesel-generator/internal/pesel"
	"github.com/Sidolux/pesel-generator/internal/record"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// testValue is Encode(1990-06-15, 1234, Male): serial bumped to 1235,
// check digit 8.
const testValue = "90061512358"

func testDecoded() pesel.Decoded {
	return pesel.Decoded{
		Date:   pesel.MustDate(1990, time.June, 15),
		Serial: 1235,
		Sex:    pesel.Male,
	}
}

func testRecord() record.Record {
	return record.Record{
		ID:        "abc12345",
		Value:     testValue,
		Label:     "test subject",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// password view tests

func TestPasswordViewShowsPrompt(t *testing.T) {
	m := newPasswordModel(false)
	view := m.View()

	if !strings.Contains(view, "vault password") {
		t.Error("view should show vault password prompt")
	}
	if strings.Contains(view, "create") {
		t.Error("non-first-run view should not contain 'create'")
	}
	if !strings.Contains(view, "peselgen") {
		t.Error("view should show wordmark")
	}
}

func TestPasswordFirstRunShowsCreate(t *testing.T) {
	m := newPasswordModel(true)
	view := m.View()

	if !strings.Contains(view, "create vault password") {
		t.Error("first-run view should show 'create vault password'")
	}
}

func TestPasswordFirstRunShowsConfirm(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret")
	m, _ = m.Update(enterKey())

	if !m.confirming {
		t.Error("should be in confirming state after first entry")
	}
	if !strings.Contains(m.View(), "confirm password") {
		t.Error("view should show confirm prompt")
	}
}

func TestPasswordFirstRunMismatch(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret1")
	m, _ = m.Update(enterKey())

	m.input.SetValue("secret2")
	m, _ = m.Update(enterKey())

	if !strings.Contains(m.View(), "passwords do not match") {
		t.Error("should show mismatch error")
	}
	if m.confirming {
		t.Error("should reset confirming state")
	}
}

func TestPasswordFirstRunMatch(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret")
	m, _ = m.Update(enterKey())

	m.input.SetValue("secret")
	m, cmd := m.Update(enterKey())

	if cmd == nil {
		t.Fatal("should emit command on matching passwords")
	}

	msg := cmd()
	if submit, ok := msg.(passwordSubmitMsg); !ok {
		t.Error("should emit passwordSubmitMsg")
	} else if submit.password != "secret" {
		t.Errorf("password = %q, want %q", submit.password, "secret")
	}
	_ = m
}

func TestPasswordSubmitEmptyIgnored(t *testing.T) {
	m := newPasswordModel(false)
	m.input.SetValue("")
	_, cmd := m.Update(enterKey())
	if cmd != nil {
		t.Error("empty password should not emit command")
	}
}

func TestPasswordQuit(t *testing.T) {
	m := newPasswordModel(false)
	_, cmd := m.Update(specialKey(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
}

func TestPasswordErrMsgClearsInput(t *testing.T) {
	m := newPasswordModel(false)
	m.input.SetValue("wrong")

	m, _ = m.Update(passwordErrMsg{err: errTest("bad password")})

	if m.input.Value() != "" {
		t.Error("input should be cleared on error")
	}
	if !strings.Contains(m.View(), "bad password") {
		t.Error("should display error message")
	}
}

// menu view tests

func TestMenuViewShowsItems(t *testing.T) {
	m := newMenuModel("1.0")
	view := m.View()

	for _, item := range menuItems {
		if !strings.Contains(view, item) {
			t.Errorf("menu should contain %q", item)
		}
	}
	if !strings.Contains(view, "1.0") {
		t.Error("menu should show version")
	}
}

func TestMenuRecordCountBadge(t *testing.T) {
	m := newMenuModel("1.0")
	m.recordCount = 4
	if !strings.Contains(m.View(), "(4)") {
		t.Error("menu should show record count next to Browse saved")
	}
}

func TestMenuNoBadgeWhenEmpty(t *testing.T) {
	m := newMenuModel("1.0")
	if strings.Contains(m.View(), "(0)") {
		t.Error("menu should not show a (0) badge")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := newMenuModel("1.0")

	if m.cursor != 0 {
		t.Fatal("cursor should start at 0")
	}

	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	// don't go below 0
	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (clamped)", m.cursor)
	}
}

func TestMenuCursorClampMax(t *testing.T) {
	m := newMenuModel("1.0")
	for i := 0; i < len(menuItems); i++ {
		m, _ = m.Update(keyMsg('j'))
	}
	if m.cursor != len(menuItems)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(menuItems)-1)
	}
}

func TestMenuSelect(t *testing.T) {
	cases := []struct {
		choice menuChoice
		want   viewID
	}{
		{menuGenerate, viewGenerate},
		{menuExport, viewExportForm},
		{menuCheck, viewCheck},
		{menuBrowse, viewList},
		{menuRuns, viewRunList},
		{menuSettings, viewSettings},
	}

	for _, tc := range cases {
		m := newMenuModel("1.0")
		m.cursor = int(tc.choice)
		_, cmd := m.Update(enterKey())
		if cmd == nil {
			t.Fatalf("choice %d: enter should produce command", tc.choice)
		}
		msg := cmd()
		nav, ok := msg.(navigateMsg)
		if !ok {
			t.Fatalf("choice %d: should emit navigateMsg", tc.choice)
		}
		if nav.view != tc.want {
			t.Errorf("choice %d: view = %d, want %d", tc.choice, nav.view, tc.want)
		}
	}
}

func TestMenuQuitOnQ(t *testing.T) {
	m := newMenuModel("1.0")
	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestMenuQuitFromLastItem(t *testing.T) {
	m := newMenuModel("1.0")
	m.cursor = len(menuItems) - 1
	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("selecting Quit should produce command")
	}
}

// generate view tests

func TestGenerateViewShowsFields(t *testing.T) {
	m := newGenerateModel(testDecoded())
	view := m.View()

	checks := []string{testValue, "1990-06-15", "1235", "male"}
	for _, c := range checks {
		if !strings.Contains(view, c) {
			t.Errorf("view should contain %q", c)
		}
	}
}

func TestGenerateEncodesValue(t *testing.T) {
	m := newGenerateModel(testDecoded())
	if m.value != testValue {
		t.Errorf("value = %q, want %q", m.value, testValue)
	}
}

func TestGenerateNavigation(t *testing.T) {
	m := newGenerateModel(testDecoded())

	if m.cursor != 0 {
		t.Fatal("cursor should start at 0")
	}

	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestGenerateBackToMenu(t *testing.T) {
	m := newGenerateModel(testDecoded())
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("esc should produce command")
	}
	msg := cmd()
	nav, ok := msg.(navigateMsg)
	if !ok {
		t.Fatal("should emit navigateMsg")
	}
	if nav.view != viewMenu {
		t.Errorf("view = %d, want viewMenu", nav.view)
	}
}

func TestGenerateNewIdentifier(t *testing.T) {
	m := newGenerateModel(testDecoded())
	_, cmd := m.Update(keyMsg('n'))
	if cmd == nil {
		t.Fatal("n should produce command")
	}
	msg := cmd()
	nav, ok := msg.(navigateMsg)
	if !ok {
		t.Fatal("should emit navigateMsg")
	}
	if nav.view != viewGenerate {
		t.Errorf("view = %d, want viewGenerate", nav.view)
	}
}

func TestGenerateSave(t *testing.T) {
	m := newGenerateModel(testDecoded())
	_, cmd := m.Update(keyMsg('s'))
	if cmd == nil {
		t.Fatal("s should produce command")
	}
	msg := cmd()
	save, ok := msg.(saveRecordMsg)
	if !ok {
		t.Fatal("should emit saveRecordMsg")
	}
	if save.rec.Value != testValue {
		t.Errorf("saved value = %q, want %q", save.rec.Value, testValue)
	}
	if save.rec.ID == "" {
		t.Error("saved record should carry an ID")
	}
}

func TestGenerateQuit(t *testing.T) {
	m := newGenerateModel(testDecoded())
	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("q should quit from generate view")
	}
}

func TestGenerateSavedFlash(t *testing.T) {
	m := newGenerateModel(testDecoded())
	m, _ = m.Update(recordSavedMsg{})
	if m.flash != "saved" {
		t.Errorf("flash = %q, want %q", m.flash, "saved")
	}
}

func TestGenerateFlashClears(t *testing.T) {
	m := newGenerateModel(testDecoded())
	m.flash = "saved"
	m, _ = m.Update(flashMsg{})
	if m.flash != "" {
		t.Errorf("flash should be empty after flashMsg, got %q", m.flash)
	}
}

// list view tests

func TestListViewEmpty(t *testing.T) {
	m := newListModel(nil)
	view := m.View()

	if !strings.Contains(view, "no saved identifiers") {
		t.Error("should show empty state")
	}
}

func TestListViewShowsRecords(t *testing.T) {
	m := newListModel([]record.Record{testRecord()})
	view := m.View()

	if !strings.Contains(view, testValue) {
		t.Error("should show the identifier value")
	}
	if !strings.Contains(view, "test subject") {
		t.Error("should show the label")
	}
	if !strings.Contains(view, "2025-01-01") {
		t.Error("should show the created date")
	}
}

func TestListNavigation(t *testing.T) {
	recs := []record.Record{
		testRecord(),
		{ID: "second", Value: "44051401458", CreatedAt: time.Now()},
	}
	m := newListModel(recs)

	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestListSelectRecord(t *testing.T) {
	m := newListModel([]record.Record{testRecord()})
	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("enter should produce command")
	}
	msg := cmd()
	view, ok := msg.(viewRecordMsg)
	if !ok {
		t.Fatal("should emit viewRecordMsg")
	}
	if view.rec.ID != "abc12345" {
		t.Errorf("record ID = %q, want %q", view.rec.ID, "abc12345")
	}
}

func TestListDeleteNeedsConfirm(t *testing.T) {
	m := newListModel([]record.Record{testRecord()})

	m, cmd := m.Update(keyMsg('d'))
	if cmd != nil {
		t.Fatal("d alone should not delete")
	}
	if !m.confirm {
		t.Fatal("d should arm the confirm prompt")
	}
	if !strings.Contains(m.View(), "cannot be undone") {
		t.Error("confirm prompt should warn")
	}

	_, cmd = m.Update(keyMsg('y'))
	if cmd == nil {
		t.Fatal("y should produce command")
	}
	msg := cmd()
	del, ok := msg.(deleteRecordMsg)
	if !ok {
		t.Fatal("should emit deleteRecordMsg")
	}
	if del.id != "abc12345" {
		t.Errorf("delete id = %q, want %q", del.id, "abc12345")
	}
}

func TestListDeleteAborted(t *testing.T) {
	m := newListModel([]record.Record{testRecord()})

	m, _ = m.Update(keyMsg('d'))
	m, cmd := m.Update(keyMsg('n'))

	if cmd != nil {
		t.Error("aborting confirm should not produce command")
	}
	if m.confirm {
		t.Error("confirm state should clear")
	}
}

func TestListBackToMenu(t *testing.T) {
	m := newListModel(nil)
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("esc should produce command")
	}
	msg := cmd()
	nav, ok := msg.(navigateMsg)
	if !ok {
		t.Fatal("should emit navigateMsg")
	}
	if nav.view != viewMenu {
		t.Errorf("view = %d, want viewMenu", nav.view)
	}
}

func TestListQuit(t *testing.T) {
	m := newListModel(nil)
	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("q should quit from list view")
	}
}

// detail view tests

func TestDetailViewShowsDecodedFields(t *testing.T) {
	m := newDetailModel(testRecord())
	view := m.View()

	checks := []string{testValue, "1990-06-15", "1235", "male", "test subject"}
	for _, c := range checks {
		if !strings.Contains(view, c) {
			t.Errorf("detail view should contain %q", c)
		}
	}
}

func TestDetailViewUndecodableValue(t *testing.T) {
	rec := testRecord()
	rec.Value = "not-a-pesel"
	m := newDetailModel(rec)
	view := m.View()

	if !strings.Contains(view, "not-a-pesel") {
		t.Error("should still show the raw value")
	}
	if strings.Contains(view, "serial") {
		t.Error("should not show decoded fields for a bad value")
	}
}

func TestDetailNavigation(t *testing.T) {
	m := newDetailModel(testRecord())

	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestDetailBackToList(t *testing.T) {
	m := newDetailModel(testRecord())
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("esc should produce command")
	}
	msg := cmd()
	nav, ok := msg.(navigateMsg)
	if !ok {
		t.Fatal("should emit navigateMsg")
	}
	if nav.view != viewList {
		t.Errorf("view = %d, want viewList", nav.view)
	}
}

func TestDetailDeleteNeedsConfirm(t *testing.T) {
	m := newDetailModel(testRecord())

	m, cmd := m.Update(keyMsg('d'))
	if cmd != nil {
		t.Fatal("d alone should not delete")
	}
	if !m.confirm {
		t.Fatal("d should arm the confirm prompt")
	}

	_, cmd = m.Update(keyMsg('y'))
	if cmd == nil {
		t.Fatal("y should produce command")
	}
	msg := cmd()
	del, ok := msg.(deleteRecordMsg)
	if !ok {
		t.Fatal("should emit deleteRecordMsg")
	}
	if del.id != "abc12345" {
		t.Errorf("delete id = %q, want %q", del.id, "abc12345")
	}
}

func TestDetailFlashClears(t *testing.T) {
	m := newDetailModel(testRecord())
	m.flash = "copied!"
	m, _ = m.Update(flashMsg{})
	if m.flash != "" {
		t.Errorf("flash should be empty after flashMsg, got %q", m.flash)
	}
}

// root model tests

func TestRootViewTitles(t *testing.T) {
	views := []viewID{
		viewGenerate, viewList, viewDetail, viewRunList, viewRunDetail,
		viewCheck, viewExportForm, viewExportRun, viewSettings,
	}
	for _, v := range views {
		if viewTitle(v) == "" {
			t.Errorf("viewTitle(%d) should not be empty", v)
		}
		if helpFor(v) == nil {
			t.Errorf("helpFor(%d) should not be nil", v)
		}
	}
}

func TestRootStartsAtPassword(t *testing.T) {
	m := New("1.0", t.TempDir(), false)
	if m.active != viewPassword {
		t.Errorf("active = %d, want viewPassword", m.active)
	}
	if !strings.Contains(m.View(), "vault password") {
		t.Error("initial view should show the password prompt")
	}
}

func TestRootDefaultsNormalizedAtStart(t *testing.T) {
	m := New("1.0", t.TempDir(), false)
	if m.defaults.StartYear == 0 || m.defaults.EndYear == 0 {
		t.Error("defaults should be normalized at construction")
	}
	if m.defaults.Sex != "both" {
		t.Errorf("default sex = %q, want %q", m.defaults.Sex, "both")
	}
}

func TestRootWindowSize(t *testing.T) {
	m := New("1.0", t.TempDir(), false)
	result, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	rm := result.(Model)
	if rm.width != 120 || rm.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", rm.width, rm.height)
	}
}

// errTest is a simple error for testing.
type errTest string

func (e errTest) Error() string { return string(e) }
