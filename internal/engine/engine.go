package engine

import (
	"context"
	"slices"
	"time"

	"github.com/rshade/ecotrack/internal/engine/cache"
	"github.com/rshade/ecotrack/internal/gamify"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
)

// Summary is the dashboard view of the ledger at one point in time.
type Summary struct {
	Day             string                     `json:"day"`
	ActivityCount   int                        `json:"activity_count"`
	TotalKg         float64                    `json:"total_kg"`
	AvgDailyKg      float64                    `json:"avg_daily_kg"`
	Streak          int                        `json:"streak"`
	LongestStreak   int                        `json:"longest_streak"`
	Breakdown       Breakdown                  `json:"breakdown"`
	Projection      *Projection                `json:"projection,omitempty"`
	Level           gamify.LevelStatus         `json:"level"`
	SavedEstimateKg float64                    `json:"saved_estimate_kg"`
	Achievements    []gamify.AchievementStatus `json:"achievements"`
	Insight         string                     `json:"insight"`
}

// Engine computes derived values for a ledger, memoizing each one until the
// ledger changes or the day rolls over.
type Engine struct {
	ledger *ledger.Ledger
	memo   *cache.Store
}

// New returns an engine over l with a fresh memo.
func New(l *ledger.Ledger) *Engine {
	return NewWithCache(l, cache.New())
}

// NewWithCache returns an engine using store for memoization.
func NewWithCache(l *ledger.Ledger, store *cache.Store) *Engine {
	return &Engine{ledger: l, memo: store}
}

// Ledger returns the underlying ledger.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// CacheStats reports memo effectiveness.
func (e *Engine) CacheStats() cache.Stats {
	return e.memo.Stats()
}

func (e *Engine) key(name string, now time.Time) cache.Key {
	return cache.Key{Name: name, Version: e.ledger.Version(), Day: ledger.DayKey(now)}
}

// Total returns TotalCarbon for the current ledger.
func (e *Engine) Total(now time.Time) float64 {
	return cache.Memo(e.memo, e.key("total", now), func() float64 {
		return TotalCarbon(e.ledger.All())
	})
}

// Average returns AverageDaily for the current ledger.
func (e *Engine) Average(now time.Time) float64 {
	return cache.Memo(e.memo, e.key("average", now), func() float64 {
		return AverageDaily(e.ledger.All())
	})
}

// Streak returns the current streak.
func (e *Engine) Streak(now time.Time) int {
	return cache.Memo(e.memo, e.key("streak", now), func() int {
		return Streak(e.ledger.All(), now)
	})
}

// Series returns the chart series for w. The slice is the caller's own.
func (e *Engine) Series(w Window, now time.Time) []DayPoint {
	return slices.Clone(cache.Memo(e.memo, e.key("series:"+string(w), now), func() []DayPoint {
		return Series(e.ledger.All(), w, now)
	}))
}

// Breakdown returns the category breakdown. Shares is the caller's own.
func (e *Engine) Breakdown(now time.Time) Breakdown {
	return cache.Memo(e.memo, e.key("breakdown", now), func() Breakdown {
		return BreakdownByCategory(e.ledger.All())
	}).clone()
}

// Projection returns the projection, or nil with too few activities.
func (e *Engine) Projection(now time.Time) *Projection {
	return cache.Memo(e.memo, e.key("projection", now), func() *Projection {
		return Project(e.ledger.All(), now)
	}).clone()
}

// Summary assembles every derived value. Nothing in the returned value
// aliases the memo.
func (e *Engine) Summary(ctx context.Context, now time.Time) Summary {
	return cache.Memo(e.memo, e.key("summary", now), func() Summary {
		return e.buildSummary(ctx, now)
	}).clone()
}

func (s Summary) clone() Summary {
	s.Breakdown = s.Breakdown.clone()
	s.Projection = s.Projection.clone()
	s.Achievements = slices.Clone(s.Achievements)
	return s
}

func (b Breakdown) clone() Breakdown {
	b.Shares = slices.Clone(b.Shares)
	return b
}

func (p *Projection) clone() *Projection {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (e *Engine) buildSummary(ctx context.Context, now time.Time) Summary {
	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "Summary").
		Logger()

	activities := e.ledger.All()
	total := e.Total(now)
	avg := e.Average(now)
	streak := e.Streak(now)
	saved := SavedEstimate(activities)
	projection := e.Projection(now)
	LogProjection(ctx, projection)

	s := Summary{
		Day:             ledger.DayKey(now),
		ActivityCount:   len(activities),
		TotalKg:         total,
		AvgDailyKg:      avg,
		Streak:          streak,
		LongestStreak:   LongestStreak(activities, now),
		Breakdown:       e.Breakdown(now),
		Projection:      projection,
		Level:           gamify.LevelFor(total),
		SavedEstimateKg: saved,
		Achievements: gamify.Evaluate(gamify.Inputs{
			Activities: activities,
			Streak:     streak,
			SavedKg:    saved,
		}),
		Insight: Insight(total, avg),
	}

	logger.Debug().
		Int("activities", s.ActivityCount).
		Float64("total_kg", s.TotalKg).
		Int("streak", s.Streak).
		Uint64("ledger_version", e.ledger.Version()).
		Msg("built summary")

	return s
}
