package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/gamify"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

const (
	chartLabelWidth = 7
	chartValueWidth = 9
	minBarWidth     = 10
	levelBarWidth   = 30
)

// RenderTrend renders a week-over-week percent change with a directional
// arrow. Lower emissions are good, so a decrease is drawn in the OK color.
func RenderTrend(st Styles, pct float64) string {
	var icon, sign string
	var color lipgloss.Color

	switch {
	case pct > 0:
		icon, sign, color = IconArrowUp, "+", st.Warning
	case pct < 0:
		icon, color = IconArrowDown, st.OK
	default:
		icon, color = IconArrowRight, st.Muted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(fmt.Sprintf("%s%.1f%% %s", sign, pct, icon))
}

// RenderSummary renders the boxed headline statistics.
func RenderSummary(st Styles, s engine.Summary, width int) string {
	var content strings.Builder

	content.WriteString(st.Header.Render(IconLeaf + " CARBON SUMMARY"))
	content.WriteString("\n\n")

	writeField(&content, st, "Total:        ", greenops.FormatKg(s.TotalKg))
	writeField(&content, st, "Daily avg:    ", greenops.FormatKg(s.AvgDailyKg))
	writeField(&content, st, "Activities:   ", fmt.Sprint(s.ActivityCount))
	writeField(&content, st, "Streak:       ", fmt.Sprintf("%d days %s (best %d)", s.Streak, IconFire, s.LongestStreak))
	writeField(&content, st, "Saved (est.): ", greenops.FormatKg(s.SavedEstimateKg))
	writeField(&content, st, "Level:        ", s.Level.Level.Badge+" "+s.Level.Level.Name)

	if p := s.Projection; p != nil {
		content.WriteString("\n")
		content.WriteString(st.Header.Render("PROJECTION"))
		content.WriteString("\n")
		writeField(&content, st, "Month:        ", greenops.FormatKg(p.MonthKg))
		writeField(&content, st, "Year:         ", greenops.FormatKg(p.YearKg))
		writeField(&content, st, "Trees/year:   ", fmt.Sprint(p.TreesToOffset))
		content.WriteString(st.Label.Render("Week trend:   "))
		content.WriteString(RenderTrend(st, p.TrendPercent))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(RenderBreakdown(st, s.Breakdown))
	content.WriteString("\n")
	content.WriteString(st.Subtle.Render(s.Insight))

	return st.Box.Width(max(width-borderPadding, minBarWidth)).Render(content.String())
}

func writeField(b *strings.Builder, st Styles, label, value string) {
	b.WriteString(st.Label.Render(label))
	b.WriteString(st.Value.Render(value))
	b.WriteString("\n")
}

// RenderBreakdown lists category shares, or a placeholder when the ledger is
// empty.
func RenderBreakdown(st Styles, b engine.Breakdown) string {
	if b.Empty {
		return st.Subtle.Render("No activities yet. Log one to see your breakdown.")
	}
	var out strings.Builder
	out.WriteString(st.Header.Render("BY CATEGORY"))
	out.WriteString("\n")
	for _, share := range b.Shares {
		fmt.Fprintf(&out, "%-10s %10s  %5.1f%%  (%d)\n",
			share.Name, greenops.FormatKg(share.CarbonKg), share.Percent, share.Count)
	}
	return strings.TrimRight(out.String(), "\n")
}

// RenderChart draws a horizontal bar per day, scaled to the largest day.
func RenderChart(st Styles, points []engine.DayPoint, width int) string {
	if len(points) == 0 {
		return st.Subtle.Render("No data.")
	}

	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, p.CarbonKg)
	}
	barMax := max(width-chartLabelWidth-chartValueWidth-borderPadding, minBarWidth)

	var out strings.Builder
	for _, p := range points {
		n := 0
		if peak > 0 {
			n = int(math.Round(p.CarbonKg / peak * float64(barMax)))
		}
		bar := st.Bar.Render(strings.Repeat("█", n))
		fmt.Fprintf(&out, "%-*s %s %s\n", chartLabelWidth, p.Label, bar,
			st.Label.Render(fmt.Sprintf("%.2f", p.CarbonKg)))
	}
	return strings.TrimRight(out.String(), "\n")
}

// RenderLevel draws the current level and a progress bar toward the next.
func RenderLevel(st Styles, ls gamify.LevelStatus) string {
	bar := progress.New(
		progress.WithSolidFill(ls.Level.Color),
		progress.WithoutPercentage(),
		progress.WithWidth(levelBarWidth),
	)

	var out strings.Builder
	out.WriteString(st.Header.Render(fmt.Sprintf("%s %s", ls.Level.Badge, ls.Level.Name)))
	out.WriteString("\n")
	out.WriteString(bar.ViewAs(ls.ProgressPercent / 100)) //nolint:mnd // Percent to ratio.
	fmt.Fprintf(&out, " %.0f%%\n", ls.ProgressPercent)
	if ls.Next != nil {
		out.WriteString(st.Subtle.Render(fmt.Sprintf("%s to %s %s",
			greenops.FormatKg(ls.RemainingKg), ls.Next.Badge, ls.Next.Name)))
	} else {
		out.WriteString(st.Subtle.Render("Top level reached"))
	}
	return out.String()
}

// RenderAchievements lists every achievement with its unlock state.
func RenderAchievements(st Styles, statuses []gamify.AchievementStatus) string {
	var out strings.Builder
	out.WriteString(st.Header.Render(fmt.Sprintf("ACHIEVEMENTS %d/%d",
		gamify.UnlockedCount(statuses), len(statuses))))
	out.WriteString("\n")
	for _, a := range statuses {
		icon, style := IconLock, st.Label
		if a.Unlocked {
			icon, style = a.Icon, st.Value
		}
		fmt.Fprintf(&out, "%s %s  %s\n", icon, style.Render(a.Name),
			st.Subtle.Render(fmt.Sprintf("%s (%s/%s)", a.Description,
				greenops.FormatFloat(math.Min(a.Current, a.Threshold), 0),
				greenops.FormatFloat(a.Threshold, 0))))
	}
	return strings.TrimRight(out.String(), "\n")
}

// RenderActivityDetail renders one activity with its suggestion, if any.
func RenderActivityDetail(st Styles, a ledger.Activity, width int) string {
	var content strings.Builder

	content.WriteString(st.Header.Render("ACTIVITY DETAIL"))
	content.WriteString("\n\n")
	writeField(&content, st, "ID:        ", a.ID)
	writeField(&content, st, "Date:      ", a.Date)
	writeField(&content, st, "Category:  ", a.Category.Title())
	writeField(&content, st, "Type:      ", a.Type)
	writeField(&content, st, "Amount:    ",
		greenops.FormatFloat(a.Magnitude(), 2)+" "+a.Category.Unit())
	writeField(&content, st, "Carbon:    ", greenops.FormatKg(a.CarbonKg))
	writeField(&content, st, "Source:    ", a.Source)

	if s, ok := a.Suggest(); ok {
		content.WriteString("\n")
		content.WriteString(st.Header.Render("TRY INSTEAD"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%s: save about %s\n",
			s.AlternativeLabel, greenops.FormatKg(s.EstimatedSavingKg)))
	}

	return st.Box.Width(max(width-borderPadding, minBarWidth)).Render(content.String())
}
