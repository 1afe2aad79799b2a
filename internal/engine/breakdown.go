package engine

import (
	"sort"

	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

// CategoryShare is one category's part of total carbon.
type CategoryShare struct {
	Category greenops.Category `json:"category"`
	Name     string            `json:"name"`
	CarbonKg float64           `json:"carbon_kg"`
	Percent  float64           `json:"percent"`
	Count    int               `json:"count"`
}

// Breakdown splits carbon by category. Empty is set, and Shares is nil,
// when there are no activities at all; renderers decide how to draw that.
type Breakdown struct {
	Empty   bool            `json:"empty"`
	TotalKg float64         `json:"total_kg"`
	Shares  []CategoryShare `json:"shares,omitempty"`
}

// BreakdownByCategory groups activities by category, sorted by carbon
// descending (ties in category display order). Only categories with at
// least one activity appear.
func BreakdownByCategory(activities []ledger.Activity) Breakdown {
	if len(activities) == 0 {
		return Breakdown{Empty: true}
	}

	carbon := make(map[greenops.Category]float64)
	counts := make(map[greenops.Category]int)
	var total float64
	for _, a := range activities {
		carbon[a.Category] += a.CarbonKg
		counts[a.Category]++
		total += a.CarbonKg
	}

	order := make(map[greenops.Category]int)
	for i, c := range greenops.Categories() {
		order[c] = i
	}

	shares := make([]CategoryShare, 0, len(carbon))
	for cat, kg := range carbon {
		pct := 0.0
		if total > 0 {
			pct = greenops.Round1(kg / total * 100)
		}
		shares = append(shares, CategoryShare{
			Category: cat,
			Name:     cat.Title(),
			CarbonKg: roundCarbon(kg),
			Percent:  pct,
			Count:    counts[cat],
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].CarbonKg != shares[j].CarbonKg {
			return shares[i].CarbonKg > shares[j].CarbonKg
		}
		oi, iKnown := order[shares[i].Category]
		oj, jKnown := order[shares[j].Category]
		if iKnown != jKnown {
			return iKnown
		}
		if oi != oj {
			return oi < oj
		}
		return shares[i].Category < shares[j].Category
	})

	return Breakdown{TotalKg: roundCarbon(total), Shares: shares}
}

func roundCarbon(kg float64) float64 {
	return greenops.Round2(kg)
}
