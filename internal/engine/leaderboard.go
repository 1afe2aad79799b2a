package engine

import (
	"sort"

	"github.com/rshade/ecotrack/internal/greenops"
)

// LeaderboardEntry is one row of the simulated leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	AvgDailyKg float64 `json:"avg_daily_kg"`
	IsUser     bool    `json:"is_user"`
}

// peers are fixed personas; there is no real multi-user data.
//
//nolint:gochecknoglobals // Read-only persona list.
var peers = []LeaderboardEntry{
	{Name: "EcoWarrior", AvgDailyKg: 2.1},
	{Name: "GreenThumb", AvgDailyKg: 3.4},
	{Name: "BikeCommuter", AvgDailyKg: 4.2},
	{Name: "CityDweller", AvgDailyKg: 7.8},
	{Name: "RoadTripper", AvgDailyKg: 12.5},
}

// Leaderboard ranks the user among simulated peers, lowest daily average
// first. On ties the user ranks ahead.
func Leaderboard(avgDailyKg float64, userName string) []LeaderboardEntry {
	if userName == "" {
		userName = "You"
	}
	entries := append([]LeaderboardEntry(nil), peers...)
	entries = append(entries, LeaderboardEntry{Name: userName, AvgDailyKg: avgDailyKg, IsUser: true})

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AvgDailyKg != entries[j].AvgDailyKg {
			return entries[i].AvgDailyKg < entries[j].AvgDailyKg
		}
		return entries[i].IsUser && !entries[j].IsUser
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// UserRank returns the user's 1-based position in entries, or 0.
func UserRank(entries []LeaderboardEntry) int {
	for _, e := range entries {
		if e.IsUser {
			return e.Rank
		}
	}
	return 0
}

// CountryComparison compares the user's daily average with per-capita
// reference figures (USA, UK, India, global).
func CountryComparison(avgDailyKg float64) []greenops.CountryComparison {
	return greenops.CompareCountries(avgDailyKg)
}
