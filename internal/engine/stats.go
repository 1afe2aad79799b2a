// Package engine derives statistics from the activity ledger: totals,
// averages, time series, category breakdowns, streaks and projections.
//
// Every function that takes ([]ledger.Activity, time.Time) is pure. The
// Engine type wraps them with a memo keyed on the ledger version.
package engine

import (
	"math"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

// savedBaselineKgPerActivity is the per-activity baseline of the "saved"
// placeholder metric.
const savedBaselineKgPerActivity = 10

// TotalCarbon sums CarbonKg over activities, rounded to 2 dp.
func TotalCarbon(activities []ledger.Activity) float64 {
	return greenops.Round2(sumCarbon(activities))
}

func sumCarbon(activities []ledger.Activity) float64 {
	var total float64
	for _, a := range activities {
		total += a.CarbonKg
	}
	return total
}

// DistinctDays returns the number of different dates with at least one activity.
func DistinctDays(activities []ledger.Activity) int {
	days := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		days[a.Date] = struct{}{}
	}
	return len(days)
}

// AverageDaily is the 2 dp total divided by the number of distinct active
// days, rounded to 2 dp. An empty ledger averages 0.
func AverageDaily(activities []ledger.Activity) float64 {
	return greenops.Round2(dailyMean(activities))
}

// dailyMean is the unrounded counterpart of AverageDaily, used where the
// result is scaled further before display.
func dailyMean(activities []ledger.Activity) float64 {
	days := DistinctDays(activities)
	if days == 0 {
		return 0
	}
	return TotalCarbon(activities) / float64(days)
}

// SavedEstimate is a placeholder "CO2 saved" figure: 10 kg per logged
// activity minus everything actually emitted, floored at 0. It has no
// baseline derivation behind it and should be presented as an estimate.
func SavedEstimate(activities []ledger.Activity) float64 {
	saved := float64(len(activities))*savedBaselineKgPerActivity - sumCarbon(activities)
	return greenops.Round2(math.Max(0, saved))
}

// CarbonBetween sums carbon for activities dated within [from, to] inclusive.
func CarbonBetween(activities []ledger.Activity, from, to string) float64 {
	var total float64
	for _, a := range activities {
		if a.Date >= from && a.Date <= to {
			total += a.CarbonKg
		}
	}
	return total
}
