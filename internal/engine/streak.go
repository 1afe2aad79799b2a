package engine

import (
	"sort"
	"time"

	"github.com/rshade/ecotrack/internal/ledger"
)

// activeDays returns the set of valid dates not after today.
func activeDays(activities []ledger.Activity, today string) map[string]bool {
	days := make(map[string]bool)
	for _, a := range activities {
		if _, ok := ledger.ParseDay(a.Date); !ok || a.Date > today {
			continue
		}
		days[a.Date] = true
	}
	return days
}

// Streak counts consecutive active days ending at the most recent active
// day: today when today has an activity, otherwise the latest logged date.
// Dates after today are ignored. An empty ledger has streak 0.
func Streak(activities []ledger.Activity, now time.Time) int {
	today := ledger.DayKey(now)
	days := activeDays(activities, today)
	if len(days) == 0 {
		return 0
	}

	anchor := today
	if !days[today] {
		anchor = ""
		for d := range days {
			if d > anchor {
				anchor = d
			}
		}
	}

	streak := 0
	for day := anchor; days[day]; day = ledger.AddDays(day, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days ever logged.
func LongestStreak(activities []ledger.Activity, now time.Time) int {
	days := activeDays(activities, ledger.DayKey(now))
	if len(days) == 0 {
		return 0
	}

	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if ledger.AddDays(sorted[i-1], 1) == sorted[i] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
