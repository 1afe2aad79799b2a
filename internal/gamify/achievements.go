// Package gamify implements achievements, levels and weekly challenges.
// Everything here is recomputed from the ledger; only the active challenge
// and challenge history are persisted (in ledger.State).
package gamify

import "github.com/rshade/ecotrack/internal/ledger"

// Achievement is one badge in the fixed catalog.
type Achievement struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Threshold   float64 `json:"threshold"`

	metric func(Inputs) float64
}

// Inputs are the values achievements are evaluated against.
type Inputs struct {
	Activities []ledger.Activity
	Streak     int
	SavedKg    float64
}

// AchievementStatus pairs an achievement with whether it is unlocked.
type AchievementStatus struct {
	Achievement
	Unlocked bool    `json:"unlocked"`
	Current  float64 `json:"current"`
}

func activityCount(in Inputs) float64 { return float64(len(in.Activities)) }
func streakDays(in Inputs) float64    { return float64(in.Streak) }
func savedKg(in Inputs) float64       { return in.SavedKg }

// catalog is ordered as shown to users.
//
//nolint:gochecknoglobals // Read-only catalog.
var catalog = []Achievement{
	{ID: "first-step", Name: "First Step", Description: "Log your first activity", Icon: "🌱", Threshold: 1, metric: activityCount},
	{ID: "week-warrior", Name: "Week Warrior", Description: "7 day streak", Icon: "🔥", Threshold: 7, metric: streakDays},
	{ID: "green-giant", Name: "Green Giant", Description: "Save 10kg CO2", Icon: "🌳", Threshold: 10, metric: savedKg},
	{ID: "eco-champion", Name: "Eco Champion", Description: "30 day streak", Icon: "👑", Threshold: 30, metric: streakDays},
	{ID: "carbon-crusher", Name: "Carbon Crusher", Description: "Save 50kg CO2", Icon: "⚡", Threshold: 50, metric: savedKg},
}

// Achievements returns the catalog.
func Achievements() []Achievement {
	return append([]Achievement(nil), catalog...)
}

// Evaluate reports every achievement's unlock state for in. The result
// depends only on in, so evaluation order and repetition do not matter.
func Evaluate(in Inputs) []AchievementStatus {
	out := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		current := a.metric(in)
		out = append(out, AchievementStatus{
			Achievement: a,
			Unlocked:    current >= a.Threshold,
			Current:     current,
		})
	}
	return out
}

// UnlockedCount returns how many statuses are unlocked.
func UnlockedCount(statuses []AchievementStatus) int {
	n := 0
	for _, s := range statuses {
		if s.Unlocked {
			n++
		}
	}
	return n
}
