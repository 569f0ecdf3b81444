// Package tui implements the root Bubble Tea model for peselgen.
package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/Sidolux/pesel-generator/internal/export"
	"github.com/Sidolux/pesel-generator/internal/pesel"
	"github.com/Sidolux/pesel-generator/internal/record"
)

// accent is the interface color for peselgen views.
var accent = lipgloss.Color("#C9435E")

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewGenerate
	viewList
	viewDetail
	viewRunList
	viewRunDetail
	viewCheck
	viewExportForm
	viewExportRun
	viewSettings
)

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	store    *zstore.Store
	records  *zstore.Collection[record.Record]
	runs     *zstore.Collection[export.Manifest]
	configs  *zstore.Collection[configEnvelope]
	firstRun bool
	defaults Defaults

	active     viewID
	password   passwordModel
	menu       menuModel
	generate   generateModel
	list       listModel
	detail     detailModel
	runList    runListModel
	runDetail  runDetailModel
	check      checkModel
	exportForm exportFormModel
	exportRun  exportRunModel
	settings   settingsModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version, dataDir string, firstRun bool) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		firstRun: firstRun,
		defaults: Defaults{}.normalized(),
		active:   viewPassword,
		password: newPasswordModel(firstRun),
		menu:     newMenuModel(version),
	}
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case saveRecordMsg:
		return m.handleSaveRecord(msg.rec)

	case deleteRecordMsg:
		return m.handleDeleteRecord(msg.id)

	case viewRecordMsg:
		m.detail = newDetailModel(msg.rec)
		m.active = viewDetail
		return m, nil

	case viewRunMsg:
		m.runDetail = newRunDetailModel(msg.run)
		m.active = viewRunDetail
		return m, nil

	case exportStartMsg:
		m.exportRun = newExportRunModel(msg.req, export.Plan(msg.req))
		m.active = viewExportRun
		return m, nil

	case exportDoneMsg:
		return m.handleExportDone(msg)

	case saveDefaultsMsg:
		return m.handleSaveDefaults(msg.defaults)
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// password and menu carry the wordmark — render directly
	switch m.active {
	case viewPassword:
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	// all other views: header + separator + content + footer
	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	case viewRunList:
		content = m.runList.View()
	case viewRunDetail:
		content = m.runDetail.View()
	case viewCheck:
		content = m.check.View()
	case viewExportForm:
		content = m.exportForm.View()
	case viewExportRun:
		content = m.exportRun.View()
	case viewSettings:
		content = m.settings.View()
	}

	header := zstyle.RenderHeader("peselgen", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Generate"
	case viewList:
		return "Saved Identifiers"
	case viewDetail:
		return "Identifier"
	case viewRunList:
		return "Run History"
	case viewRunDetail:
		return "Export Run"
	case viewCheck:
		return "Check"
	case viewExportForm:
		return "Export"
	case viewExportRun:
		return "Export"
	case viewSettings:
		return "Settings"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "s", Desc: "save"},
			{Key: "c", Desc: "copy all"},
			{Key: "enter", Desc: "copy field"},
			{Key: "n", Desc: "new"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewRunList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewRunDetail:
		return []zstyle.HelpPair{
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewCheck:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "check"},
			{Key: "esc", Desc: "back"},
		}
	case viewExportForm:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "space", Desc: "cycle"},
			{Key: "ctrl+s", Desc: "start"},
			{Key: "esc", Desc: "back"},
		}
	case viewExportRun:
		return []zstyle.HelpPair{
			{Key: "y", Desc: "confirm"},
			{Key: "n", Desc: "cancel"},
			{Key: "q", Desc: "quit"},
		}
	case viewSettings:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "space", Desc: "cycle"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "esc", Desc: "back"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case viewRunList:
		m.runList, cmd = m.runList.Update(msg)
	case viewRunDetail:
		m.runDetail, cmd = m.runDetail.Update(msg)
	case viewCheck:
		m.check, cmd = m.check.Update(msg)
	case viewExportForm:
		m.exportForm, cmd = m.exportForm.Update(msg)
	case viewExportRun:
		m.exportRun, cmd = m.exportRun.Update(msg)
	case viewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{
			err: fmt.Errorf("create data dir: %w", err),
		})
		return m, nil
	}

	fsys := zfilesystem.NewOSFileSystem(m.dataDir)
	s, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	recCol, err := zstore.NewCollection[record.Record](s, "records")
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	runCol, err := zstore.NewCollection[export.Manifest](s, "runs")
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	cfgCol, err := zstore.NewCollection[configEnvelope](s, "config")
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = s
	m.records = recCol
	m.runs = runCol
	m.configs = cfgCol
	m.defaults = loadConfig[Defaults](m.configs, "defaults").normalized()
	m.active = viewMenu
	return m, nil
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version)
		if m.records != nil {
			if recs, err := m.records.List(); err == nil {
				mm.recordCount = len(recs)
			}
		}
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewGenerate:
		dec, err := m.newIdentifier()
		if err != nil {
			return m, nil
		}
		m.generate = newGenerateModel(dec)
		m.active = viewGenerate
		return m, tea.ClearScreen

	case viewList:
		m, cmd := m.loadList()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen

	case viewRunList:
		m, cmd := m.loadRuns()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewCheck:
		m.check = newCheckModel()
		m.active = viewCheck
		return m, tea.Batch(m.check.Init(), tea.ClearScreen)

	case viewExportForm:
		m.exportForm = newExportFormModel(m.defaults)
		m.active = viewExportForm
		return m, tea.Batch(m.exportForm.Init(), tea.ClearScreen)

	case viewExportRun:
		m.active = viewExportRun
		return m, tea.ClearScreen

	case viewSettings:
		m.settings = newSettingsModel(m.defaults)
		m.active = viewSettings
		return m, tea.Batch(m.settings.Init(), tea.ClearScreen)
	}

	return m, nil
}

// newIdentifier draws one random identifier inside the default span.
func (m Model) newIdentifier() (pesel.Decoded, error) {
	sex, err := pesel.ParseSex(m.defaults.Sex)
	if err != nil {
		return pesel.Decoded{}, err
	}
	span, err := pesel.YearSpan(m.defaults.StartYear, m.defaults.EndYear, sex)
	if err != nil {
		return pesel.Decoded{}, err
	}
	id, err := pesel.Random(span)
	if err != nil {
		return pesel.Decoded{}, err
	}
	return pesel.Decode(id)
}

func (m Model) loadList() (tea.Model, tea.Cmd) {
	if m.records == nil {
		m.list = newListModel(nil)
		m.active = viewList
		return m, nil
	}

	recs, err := m.records.List()
	if err != nil {
		// show empty list with error flash
		m.list = newListModel(nil)
		m.list.flash = "load: " + err.Error()
		m.active = viewList
		return m, clearFlashAfter()
	}

	// sort by CreatedAt descending — zstore.List does not guarantee order
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	m.list = newListModel(recs)
	m.active = viewList
	return m, nil
}

func (m Model) loadRuns() (tea.Model, tea.Cmd) {
	if m.runs == nil {
		m.runList = newRunListModel(nil)
		m.active = viewRunList
		return m, nil
	}

	runs, err := m.runs.List()
	if err != nil {
		m.runList = newRunListModel(nil)
		m.runList.flash = "load: " + err.Error()
		m.active = viewRunList
		return m, clearFlashAfter()
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	m.runList = newRunListModel(runs)
	m.active = viewRunList
	return m, nil
}

func (m Model) handleSaveRecord(rec record.Record) (tea.Model, tea.Cmd) {
	if m.records == nil {
		return m, nil
	}

	if err := m.records.Put(rec.ID, rec); err != nil {
		m.generate.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.generate, _ = m.generate.Update(recordSavedMsg{})
	return m, clearFlashAfter()
}

func (m Model) handleDeleteRecord(id string) (tea.Model, tea.Cmd) {
	if m.records == nil {
		return m, nil
	}

	if err := m.records.Delete(id); err != nil {
		if m.active == viewDetail {
			m.detail.flash = "delete: " + err.Error()
			return m, clearFlashAfter()
		}
		m.list.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	// back to a fresh list after deleting from either view
	return m.loadList()
}

// handleExportDone records the run in the vault, then lets the run view
// render the outcome.
func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil && m.runs != nil {
		// best-effort history; the manifest on disk is authoritative
		_ = m.runs.Put(record.NewID(), export.NewManifest(msg.req, msg.res))
	}

	var cmd tea.Cmd
	m.exportRun, cmd = m.exportRun.Update(msg)
	return m, cmd
}

func (m Model) handleSaveDefaults(d Defaults) (tea.Model, tea.Cmd) {
	if err := saveConfig(m.configs, "defaults", d); err != nil {
		m.settings.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.defaults = d
	m.settings.flash = "saved"
	return m, clearFlashAfter()
}

// loadConfig reads a typed config from the envelope collection. A
// missing config returns the zero value.
func loadConfig[T any](col *zstore.Collection[configEnvelope], key string) T {
	var zero T
	if col == nil {
		return zero
	}

	env, err := col.Get(key)
	if err != nil {
		return zero
	}

	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return zero
	}

	return v
}

// saveConfig persists a typed config into the envelope collection.
func saveConfig[T any](col *zstore.Collection[configEnvelope], key string, v T) error {
	if col == nil {
		return fmt.Errorf("store is not open")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return col.Put(key, configEnvelope{Data: data})
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
