package gamify

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

// ErrUnknownChallenge is returned for IDs outside the catalog.
var ErrUnknownChallenge = errors.New("unknown challenge")

// ChallengeWindowDays is the trailing window a challenge is scored over.
const ChallengeWindowDays = 7

// Energy reduction is capped at this many percent.
const maxEnergyReductionPercent = 20

// Challenge is a weekly goal from the fixed catalog.
type Challenge struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    greenops.Category `json:"category"`
	Target      float64           `json:"target"`
	Icon        string            `json:"icon"`
}

// ChallengeProgress is a challenge's score over the trailing window.
type ChallengeProgress struct {
	Value    float64 `json:"value"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
	Achieved bool    `json:"achieved"`
}

//nolint:gochecknoglobals // Read-only catalog.
var challenges = []Challenge{
	{ID: "bike-week", Name: "Bike Week", Description: "Bike or walk 5 days this week",
		Category: greenops.CategoryTransport, Target: 5, Icon: "🚴"},
	{ID: "meatless", Name: "Meatless Monday", Description: "Have 4 plant-based meals",
		Category: greenops.CategoryMeals, Target: 4, Icon: "🥗"},
	{ID: "zero-waste", Name: "Zero Waste", Description: "No new shopping this week",
		Category: greenops.CategoryShopping, Target: 5, Icon: "♻️"},
	{ID: "energy-saver", Name: "Energy Saver", Description: "Reduce energy use by 20%",
		Category: greenops.CategoryEnergy, Target: maxEnergyReductionPercent, Icon: "💡"},
}

// Challenges returns the catalog.
func Challenges() []Challenge {
	return append([]Challenge(nil), challenges...)
}

// LookupChallenge finds a challenge by ID.
func LookupChallenge(id string) (Challenge, error) {
	for _, c := range challenges {
		if c.ID == id {
			return c, nil
		}
	}
	return Challenge{}, fmt.Errorf("%w: %q", ErrUnknownChallenge, id)
}

// plantBased meal types count toward the meals challenge.
//
//nolint:gochecknoglobals // Read-only set.
var plantBased = map[string]bool{"vegetarian": true, "vegan": true}

// Progress scores c over [today-6, today]:
//   - transport: distinct days with a zero-emission transport activity
//   - meals: number of plant-based meals
//   - shopping: max(0, target - purchases); achieved only with no purchases
//   - energy: percent reduction of this window's energy carbon versus the
//     previous 7 days, clamped to [0, 20]; 0 when the previous window is empty
func Progress(c Challenge, activities []ledger.Activity, now time.Time) ChallengeProgress {
	today := ledger.DayKey(now)
	from := ledger.AddDays(today, -(ChallengeWindowDays - 1))

	var value float64
	achieved := false

	switch c.Category {
	case greenops.CategoryTransport:
		days := make(map[string]bool)
		for _, a := range activities {
			if inRange(a.Date, from, today) && a.Category == greenops.CategoryTransport &&
				greenops.IsZeroEmission(a.Category, a.Type) {
				days[a.Date] = true
			}
		}
		value = float64(len(days))
		achieved = value >= c.Target

	case greenops.CategoryMeals:
		for _, a := range activities {
			if inRange(a.Date, from, today) && a.Category == greenops.CategoryMeals && plantBased[a.Type] {
				value++
			}
		}
		achieved = value >= c.Target

	case greenops.CategoryShopping:
		purchases := 0
		for _, a := range activities {
			if inRange(a.Date, from, today) && a.Category == greenops.CategoryShopping {
				purchases++
			}
		}
		value = math.Max(0, c.Target-float64(purchases))
		achieved = purchases == 0

	case greenops.CategoryEnergy:
		prevTo := ledger.AddDays(from, -1)
		prevFrom := ledger.AddDays(prevTo, -(ChallengeWindowDays - 1))
		var current, previous float64
		for _, a := range activities {
			if a.Category != greenops.CategoryEnergy {
				continue
			}
			switch {
			case inRange(a.Date, from, today):
				current += a.CarbonKg
			case inRange(a.Date, prevFrom, prevTo):
				previous += a.CarbonKg
			}
		}
		if previous > 0 {
			reduction := (previous - current) / previous * 100
			value = math.Round(math.Max(0, math.Min(maxEnergyReductionPercent, reduction))*10) / 10
		}
		achieved = value >= c.Target
	}

	percent := 100.0
	if c.Target > 0 {
		percent = math.Round(math.Min(100, value/c.Target*100)*10) / 10
	}

	return ChallengeProgress{
		Value:    value,
		Target:   c.Target,
		Percent:  percent,
		Achieved: achieved,
	}
}

// ActiveProgress scores the state's active challenge.
func ActiveProgress(st ledger.State, activities []ledger.Activity, now time.Time) (Challenge, ChallengeProgress, error) {
	if st.ActiveChallenge == nil {
		return Challenge{}, ChallengeProgress{}, ledger.ErrNoActiveChallenge
	}
	c, err := LookupChallenge(st.ActiveChallenge.ChallengeID)
	if err != nil {
		return Challenge{}, ChallengeProgress{}, err
	}
	return c, Progress(c, activities, now), nil
}

// Start validates id against the catalog and makes it the active challenge.
func Start(st *ledger.State, id string, now time.Time) (Challenge, error) {
	c, err := LookupChallenge(id)
	if err != nil {
		return Challenge{}, err
	}
	if _, err = st.StartChallenge(c.ID, now); err != nil {
		return Challenge{}, err
	}
	return c, nil
}

// Complete ends the active challenge, recording its current progress.
func Complete(st *ledger.State, activities []ledger.Activity, now time.Time) (ledger.CompletedChallenge, error) {
	_, p, err := ActiveProgress(*st, activities, now)
	if err != nil {
		return ledger.CompletedChallenge{}, err
	}
	return st.CompleteChallenge(p.Value, p.Achieved, now)
}

// Cancel abandons the active challenge, keeping its progress in history.
func Cancel(st *ledger.State, activities []ledger.Activity, now time.Time) (ledger.CompletedChallenge, error) {
	var value float64
	if _, p, err := ActiveProgress(*st, activities, now); err == nil {
		value = p.Value
	}
	return st.CancelChallenge(value, now)
}

// inRange reports from <= day <= to on YYYY-MM-DD strings.
func inRange(day, from, to string) bool {
	return day >= from && day <= to
}
