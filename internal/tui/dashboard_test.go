package tui

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/gamify"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

func fixedNow() time.Time {
	return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, drafts ...ledger.Draft) *engine.Engine {
	t.Helper()
	n := 0
	l := ledger.NewWithIDFunc(nil, func(time.Time) string {
		n++
		return "act-" + string(rune('0'+n))
	})
	for _, d := range drafts {
		l.Log(d, fixedNow())
	}
	return engine.New(l)
}

func km(v float64) *float64 { return &v }

func press(t *testing.T, m DashboardModel, key string) (DashboardModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case keyEnter:
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case keyEsc:
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case keyTab:
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case keyShiftTab:
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	out, ok := updated.(DashboardModel)
	require.True(t, ok)
	return out, cmd
}

func TestNewDashboardModel(t *testing.T) {
	eng := newTestEngine(t, ledger.Draft{Category: greenops.CategoryTransport, Type: "car", Magnitude: km(10)})
	m := NewDashboardModel(context.Background(), eng, ledger.ThemeLight, fixedNow)

	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, TabOverview, m.ActiveTab())
	assert.Equal(t, ledger.ThemeLight, m.Theme())
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "CARBON SUMMARY")
}

func TestDashboard_TabNavigation(t *testing.T) {
	m := NewDashboardModel(context.Background(), newTestEngine(t), ledger.ThemeLight, fixedNow)

	m, _ = press(t, m, keyTab)
	assert.Equal(t, TabActivities, m.ActiveTab())
	assert.Contains(t, m.View(), "No activities logged yet.")

	m, _ = press(t, m, keyShiftTab)
	m, _ = press(t, m, keyShiftTab)
	assert.Equal(t, TabAchievements, m.ActiveTab(), "shift+tab wraps")
	assert.Contains(t, m.View(), "ACHIEVEMENTS 0/5")

	m, _ = press(t, m, "3")
	assert.Equal(t, TabChart, m.ActiveTab())
	assert.Contains(t, m.View(), "LAST 7 DAYS")

	m, _ = press(t, m, keyWindow)
	assert.Equal(t, engine.WindowMonth, m.Window())
	assert.Contains(t, m.View(), "LAST 30 DAYS")
}

func TestDashboard_DetailView(t *testing.T) {
	eng := newTestEngine(t,
		ledger.Draft{Category: greenops.CategoryTransport, Type: "car", Magnitude: km(10)},
		ledger.Draft{Category: greenops.CategoryMeals, Type: "beef"},
	)
	m := NewDashboardModel(context.Background(), eng, ledger.ThemeDark, fixedNow)

	// Enter does nothing outside the activities tab.
	m, _ = press(t, m, keyEnter)
	assert.Equal(t, ViewStateList, m.State())

	m, _ = press(t, m, "2")
	m, _ = press(t, m, keyEnter)
	require.Equal(t, ViewStateDetail, m.State())
	view := m.View()
	assert.Contains(t, view, "ACTIVITY DETAIL")
	assert.Contains(t, view, "beef", "newest activity is first")
	assert.Contains(t, view, "TRY INSTEAD")

	m, _ = press(t, m, keyEsc)
	assert.Equal(t, ViewStateList, m.State())
}

func TestDashboard_ThemeToggleAndQuit(t *testing.T) {
	m := NewDashboardModel(context.Background(), newTestEngine(t), ledger.ThemeLight, fixedNow)

	m, _ = press(t, m, keyTheme)
	assert.Equal(t, ledger.ThemeDark, m.Theme())
	assert.Contains(t, m.View(), "dark theme")

	m, cmd := press(t, m, keyQuit)
	assert.Equal(t, ViewStateQuitting, m.State())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestDashboard_RefreshPicksUpNewActivities(t *testing.T) {
	eng := newTestEngine(t)
	m := NewDashboardModel(context.Background(), eng, ledger.ThemeLight, fixedNow)
	assert.Contains(t, m.View(), "No activities yet")

	eng.Ledger().Log(ledger.Draft{Category: greenops.CategoryEnergy, Type: "heating", Magnitude: km(2)}, fixedNow())
	m, _ = press(t, m, keyRefresh)
	assert.Contains(t, m.View(), "Energy")
}

func TestDashboard_WindowResize(t *testing.T) {
	m := NewDashboardModel(context.Background(), newTestEngine(t), ledger.ThemeLight, fixedNow)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(DashboardModel)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestRenderTrend(t *testing.T) {
	st := NewStyles(ledger.ThemeLight)
	assert.Contains(t, RenderTrend(st, 12.5), "+12.5% "+IconArrowUp)
	assert.Contains(t, RenderTrend(st, -3), "-3.0% "+IconArrowDown)
	assert.Contains(t, RenderTrend(st, 0), IconArrowRight)
}

func TestRenderChart(t *testing.T) {
	st := NewStyles(ledger.ThemeLight)
	points := []engine.DayPoint{
		{Label: "Jun 9", CarbonKg: 0},
		{Label: "Jun 10", CarbonKg: 4},
	}
	lines := strings.Split(RenderChart(st, points, 60), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "█")
	assert.Contains(t, lines[1], "█")
	assert.Contains(t, lines[1], "4.00")

	assert.Contains(t, RenderChart(st, nil, 60), "No data.")
}

func TestRenderLevel(t *testing.T) {
	st := NewStyles(ledger.ThemeLight)
	assert.Contains(t, RenderLevel(st, gamify.LevelFor(50)), "to 🥈 Silver")
	assert.Contains(t, RenderLevel(st, gamify.LevelFor(900)), "Top level reached")
}

func TestNewActivityRow(t *testing.T) {
	row := NewActivityRow(ledger.Activity{
		ID:       "01J00000000000000000000000",
		Category: greenops.CategoryTransport,
		Type:     "bus",
		Distance: km(12),
		Date:     "2026-06-10",
		CarbonKg: 1.068,
	})
	assert.Equal(t, "01J00000000…", row.ID)
	assert.Equal(t, "Transport", row.Category)
	assert.Equal(t, "12.0 km", row.Amount)
	assert.Equal(t, "1.07", row.Carbon)
	assert.Len(t, row.Fields(), len(ActivityColumns()))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTTY(f))
	assert.Equal(t, defaultWidth, TerminalWidth(f))
}
