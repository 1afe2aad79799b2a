package engine

import (
	"fmt"
	"time"

	"github.com/rshade/ecotrack/internal/greenops"
)

// Insight thresholds.
const (
	insightMinTotalKg  = 10
	insightExcellentKg = 5
	insightGoodKg      = 8
)

// Insight returns a one-line comment on the user's footprint.
func Insight(totalKg, avgDailyKg float64) string {
	switch {
	case totalKg < insightMinTotalKg:
		return "Great start! Keep tracking to see your full impact."
	case avgDailyKg < insightExcellentKg:
		return "🌟 Amazing! You're 60% below average daily emissions (12kg)!"
	case avgDailyKg < insightGoodKg:
		return "💚 Good job! You're 33% below average daily emissions!"
	default:
		return fmt.Sprintf("Your total footprint equals %.1f trees needed to offset it. Let's reduce it together!",
			totalKg/greenops.TreeAbsorptionKgPerYear)
	}
}

// ShareText is the blurb offered for sharing progress.
func ShareText(totalKg, avgDailyKg float64, streak int) string {
	return fmt.Sprintf("🌱 I've tracked %.2f kg of CO₂ with EcoTrack!\n"+
		"📊 Daily average: %.2f kg\n"+
		"🔥 %d day streak!\n\n"+
		"Join me in tracking your carbon footprint! #CarbonTracking #EcoTrack #ClimateAction",
		totalKg, avgDailyKg, streak)
}

//nolint:gochecknoglobals // Read-only tip list.
var tips = []string{
	"🚴 Biking just 5km instead of driving saves 1kg of CO2!",
	"🌱 One vegan meal per day can save 500kg CO2 per year",
	"💡 LED bulbs use 75% less energy than traditional bulbs",
	"🚗 Carpooling can cut your commute emissions in half",
	"🔌 Unplugging devices saves phantom energy consumption",
	"🛍️ Buying second-hand reduces manufacturing emissions by 80%",
	"🌡️ Lowering thermostat by 1°C saves 300kg CO2 yearly",
	"🥗 Local produce has 5x less carbon footprint than imported",
}

// Tips returns every tip.
func Tips() []string {
	return append([]string(nil), tips...)
}

// TipFor returns the tip of the day for now; the same day always yields the same tip.
func TipFor(now time.Time) string {
	return tips[now.YearDay()%len(tips)]
}
