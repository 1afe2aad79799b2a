package engine

import (
	"context"
	"time"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
)

// MinActivitiesForProjection is the ledger size below which no projection is made.
const MinActivitiesForProjection = 3

// trendWindowDays is the length of each window compared by TrendPercent.
const trendWindowDays = 7

// Projection extrapolates the daily average and compares recent weeks.
type Projection struct {
	AvgDailyKg      float64 `json:"avg_daily_kg"`
	MonthKg         float64 `json:"month_kg"`
	YearKg          float64 `json:"year_kg"`
	TrendPercent    float64 `json:"trend_percent"`
	TreesToOffset   int     `json:"trees_to_offset"`
	VsGlobalPercent float64 `json:"vs_global_percent"`
}

// Improving reports whether the last week emitted less than the one before.
func (p *Projection) Improving() bool {
	return p != nil && p.TrendPercent < 0
}

// Project extrapolates from the daily average using linear scaling.
//
// Formula: month = avg * 30, year = avg * 365 (both 1 dp). The unrounded
// average feeds every derived figure; only AvgDailyKg is rounded to 2 dp.
//
// TrendPercent compares [today-6, today] with [today-13, today-7]; it is 0
// when the earlier window has no carbon. Returns nil when fewer than
// MinActivitiesForProjection activities exist.
func Project(activities []ledger.Activity, now time.Time) *Projection {
	if len(activities) < MinActivitiesForProjection {
		return nil
	}

	avg := dailyMean(activities)
	year := greenops.Round1(avg * greenops.DaysPerYear)

	return &Projection{
		AvgDailyKg:      greenops.Round2(avg),
		MonthKg:         greenops.Round1(avg * greenops.DaysPerMonth),
		YearKg:          year,
		TrendPercent:    TrendPercent(activities, now),
		TreesToOffset:   greenops.TreesToOffset(year),
		VsGlobalPercent: greenops.PercentVs(avg, greenops.GlobalAverageDailyKg),
	}
}

// TrendPercent is the percent change of the trailing 7 days versus the 7
// days before, 1 dp; 0 when the earlier window is empty.
func TrendPercent(activities []ledger.Activity, now time.Time) float64 {
	today := ledger.DayKey(now)
	curFrom := ledger.AddDays(today, -(trendWindowDays - 1))
	prevTo := ledger.AddDays(curFrom, -1)
	prevFrom := ledger.AddDays(prevTo, -(trendWindowDays - 1))

	current := CarbonBetween(activities, curFrom, today)
	previous := CarbonBetween(activities, prevFrom, prevTo)
	if previous == 0 {
		return 0
	}
	return greenops.Round1((current - previous) / previous * 100)
}

// LogProjection records a projection at debug level.
func LogProjection(ctx context.Context, p *Projection) {
	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "Project").
		Logger()

	if p == nil {
		logger.Debug().Msg("not enough activities for a projection")
		return
	}

	logger.Debug().
		Float64("avg_daily_kg", p.AvgDailyKg).
		Float64("year_kg", p.YearKg).
		Float64("trend_percent", p.TrendPercent).
		Int("trees_to_offset", p.TreesToOffset).
		Msg("computed projection")
}
