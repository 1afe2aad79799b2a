package gamify

import "math"

// Level is a tier of cumulative logged carbon. Max is nil for the top tier.
type Level struct {
	Name  string   `json:"name"`
	Badge string   `json:"badge"`
	Color string   `json:"color"`
	Min   float64  `json:"min_kg"`
	Max   *float64 `json:"max_kg,omitempty"`
}

// LevelStatus is the current level and progress toward the next one.
type LevelStatus struct {
	Level           Level   `json:"level"`
	Next            *Level  `json:"next,omitempty"`
	ProgressPercent float64 `json:"progress_percent"`
	RemainingKg     float64 `json:"remaining_kg"`
}

func bound(v float64) *float64 { return &v }

//nolint:gochecknoglobals // Read-only thresholds, ascending by Min.
var levels = []Level{
	{Name: "Bronze", Badge: "🥉", Color: "#CD7F32", Min: 0, Max: bound(100)},
	{Name: "Silver", Badge: "🥈", Color: "#C0C0C0", Min: 100, Max: bound(250)},
	{Name: "Gold", Badge: "🥇", Color: "#FFD700", Min: 250, Max: bound(500)},
	{Name: "Platinum", Badge: "💎", Color: "#E5E4E2", Min: 500},
}

// Levels returns the thresholds in ascending order.
func Levels() []Level {
	return append([]Level(nil), levels...)
}

// LevelFor returns the highest level whose lower bound is <= totalKg and the
// linear progress toward the next level's lower bound. At the top level
// progress is 100.
func LevelFor(totalKg float64) LevelStatus {
	if math.IsNaN(totalKg) || totalKg < 0 {
		totalKg = 0
	}

	idx := 0
	for i, l := range levels {
		if totalKg >= l.Min {
			idx = i
		}
	}

	current := levels[idx]
	if idx == len(levels)-1 {
		return LevelStatus{Level: current, ProgressPercent: 100}
	}

	next := levels[idx+1]
	span := next.Min - current.Min
	progress := (totalKg - current.Min) / span * 100
	return LevelStatus{
		Level:           current,
		Next:            &next,
		ProgressPercent: math.Round(math.Min(progress, 100)*10) / 10,
		RemainingKg:     math.Round((next.Min-totalKg)*100) / 100,
	}
}
