package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
)

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyTheme    = "t"
	keyWindow   = "w"
	keyRefresh  = "r"
)

// tableChrome is the vertical space taken by tabs, header and status bar.
const tableChrome = 6

// ViewState is the dashboard's current screen.
type ViewState int

// Dashboard screens.
const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateQuitting
)

// Tab is one dashboard tab.
type Tab int

// Dashboard tabs.
const (
	TabOverview Tab = iota
	TabActivities
	TabChart
	TabAchievements
	numTabs
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabActivities:
		return "Activities"
	case TabChart:
		return "Chart"
	case TabAchievements:
		return "Achievements"
	default:
		return "Unknown"
	}
}

//nolint:gochecknoglobals // Read-only cycle order.
var windows = []engine.Window{engine.WindowWeek, engine.WindowMonth, engine.WindowQuarter}

// DashboardModel is the Bubble Tea model for `ecotrack dashboard`.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx    context.Context
	engine *engine.Engine
	now    func() time.Time

	state    ViewState
	tab      Tab
	window   int
	styles   Styles
	selected int

	activities []ledger.Activity
	summary    engine.Summary
	table      table.Model

	width  int
	height int
}

// NewDashboardModel returns a dashboard over eng. now supplies the clock.
func NewDashboardModel(ctx context.Context, eng *engine.Engine, theme ledger.Theme, now func() time.Time) DashboardModel {
	if now == nil {
		now = time.Now
	}
	m := DashboardModel{
		ctx:    ctx,
		engine: eng,
		now:    now,
		state:  ViewStateList,
		styles: NewStyles(theme),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.refresh()
	return m
}

// Theme returns the theme the user left the dashboard in.
func (m DashboardModel) Theme() ledger.Theme {
	return m.styles.Theme
}

// ActiveTab returns the selected tab.
func (m DashboardModel) ActiveTab() Tab {
	return m.tab
}

// State returns the current screen.
func (m DashboardModel) State() ViewState {
	return m.state
}

// Window returns the chart window.
func (m DashboardModel) Window() engine.Window {
	return windows[m.window]
}

// Init initializes the model (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case tea.KeyMsg:
		if m.state == ViewStateDetail {
			return m.handleDetailKey(msg)
		}
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyTab:
		m.tab = (m.tab + 1) % numTabs
	case keyShiftTab:
		m.tab = (m.tab + numTabs - 1) % numTabs
	case "1", "2", "3", "4":
		m.tab = Tab(msg.String()[0] - '1')
	case keyTheme:
		m.styles = NewStyles(m.styles.Theme.Toggle())
		m.rebuildTable()
	case keyWindow:
		m.window = (m.window + 1) % len(windows)
	case keyRefresh:
		m.refresh()
	case keyEnter:
		if m.tab == TabActivities && len(m.activities) > 0 {
			m.selected = m.table.Cursor()
			if m.selected >= 0 && m.selected < len(m.activities) {
				m.state = ViewStateDetail
			}
		}
	default:
		if m.tab == TabActivities {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m DashboardModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc:
		m.state = ViewStateList
		m.table.Focus()
	}
	return m, nil
}

// refresh reloads derived values from the engine.
func (m *DashboardModel) refresh() {
	now := m.now()
	m.activities = m.engine.Ledger().All()
	m.summary = m.engine.Summary(m.ctx, now)
	m.rebuildTable()

	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Int("activities", len(m.activities)).
		Msg("dashboard refreshed")
}

func (m *DashboardModel) rebuildTable() {
	cursor := m.table.Cursor()
	m.table = NewActivityTable(m.styles, m.activities, m.height-tableChrome)
	if cursor > 0 && cursor < len(m.activities) {
		m.table.SetCursor(cursor)
	}
}
