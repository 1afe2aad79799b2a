package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rshade/ecotrack/internal/ledger"
)

// Window is a chart range ending today.
type Window string

// Supported windows.
const (
	WindowWeek    Window = "week"
	WindowMonth   Window = "month"
	WindowQuarter Window = "quarter"
)

// Days returns the number of days the window covers.
func (w Window) Days() int {
	switch w {
	case WindowMonth:
		return 30
	case WindowQuarter:
		return 90
	default:
		return 7
	}
}

// ParseWindow validates a window name.
func ParseWindow(s string) (Window, error) {
	switch Window(strings.ToLower(s)) {
	case WindowWeek:
		return WindowWeek, nil
	case WindowMonth:
		return WindowMonth, nil
	case WindowQuarter:
		return WindowQuarter, nil
	default:
		return "", fmt.Errorf("invalid window %q: must be week, month or quarter", s)
	}
}

// DayPoint is one day of a time series.
type DayPoint struct {
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	CarbonKg float64 `json:"carbon_kg"`
	Count    int     `json:"count"`
}

// Series returns one point per day in the window, oldest first and ending
// today. Days without activity are present with zero carbon.
func Series(activities []ledger.Activity, w Window, now time.Time) []DayPoint {
	days := w.Days()
	today := ledger.DayKey(now)
	from := ledger.AddDays(today, -(days - 1))

	carbon := make(map[string]float64)
	counts := make(map[string]int)
	for _, a := range activities {
		if a.Date < from || a.Date > today {
			continue
		}
		carbon[a.Date] += a.CarbonKg
		counts[a.Date]++
	}

	points := make([]DayPoint, 0, days)
	for i := range days {
		day := ledger.AddDays(from, i)
		points = append(points, DayPoint{
			Date:     day,
			Label:    dayLabel(day),
			CarbonKg: roundCarbon(carbon[day]),
			Count:    counts[day],
		})
	}
	return points
}

// dayLabel renders "2026-01-02" as "Jan 2".
func dayLabel(day string) string {
	t, ok := ledger.ParseDay(day)
	if !ok {
		return day
	}
	return t.Format("Jan 2")
}
