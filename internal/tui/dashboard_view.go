package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const msgSelectedOutOfBounds = "Selected activity no longer exists."

// View renders the current screen (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		if m.selected < 0 || m.selected >= len(m.activities) {
			return msgSelectedOutOfBounds
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderActivityDetail(m.styles, m.activities[m.selected], m.width),
			m.styles.Subtle.Render("Press ESC to return"))
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderTabs(),
			m.renderTab(),
			m.renderStatusBar())
	}
}

func (m DashboardModel) renderTabs() string {
	tabs := make([]string, 0, numTabs)
	for t := range numTabs {
		label := fmt.Sprintf("%d %s", t+1, t)
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m DashboardModel) renderTab() string {
	switch m.tab {
	case TabActivities:
		if len(m.activities) == 0 {
			return m.styles.Subtle.Render("No activities logged yet.")
		}
		return m.table.View()
	case TabChart:
		w := windows[m.window]
		header := m.styles.Header.Render(fmt.Sprintf("LAST %d DAYS", w.Days()))
		return header + "\n" + RenderChart(m.styles, m.engine.Series(w, m.now()), m.width)
	case TabAchievements:
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderLevel(m.styles, m.summary.Level),
			"",
			RenderAchievements(m.styles, m.summary.Achievements))
	default:
		return RenderSummary(m.styles, m.summary, m.width)
	}
}

func (m DashboardModel) renderStatusBar() string {
	hints := []string{"tab/1-4 switch", "t theme", "r refresh", "q quit"}
	switch m.tab {
	case TabActivities:
		hints = append([]string{"↑/↓ move", "enter details"}, hints...)
	case TabChart:
		hints = append([]string{"w window"}, hints...)
	case TabOverview, TabAchievements, numTabs:
	}
	return m.styles.Subtle.Render(fmt.Sprintf("%s theme | %s",
		m.styles.Theme, strings.Join(hints, " · ")))
}
