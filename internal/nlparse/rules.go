package nlparse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rshade/ecotrack/internal/greenops"
)

// Rule names.
const (
	RuleTransportDrive = "transport-drive"
	RuleTransportMode  = "transport-mode"
	RuleMeals          = "meals"
	RuleShopping       = "shopping"
	RuleEnergy         = "energy"
)

// Rule matches one kind of activity. Extract receives the submatches of
// Pattern against normalized text. A rule listing names in SkipIfMatched is
// ignored when its match overlaps the span matched by any of those rules.
type Rule struct {
	Name          string
	Category      greenops.Category
	Pattern       *regexp.Regexp
	Extract       func(match []string) (Candidate, bool)
	SkipIfMatched []string
}

// keyword tables map words in text to activity types.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	transportModes = map[string]string{
		"bus":        "bus",
		"train":      "train",
		"motorcycle": "motorcycle",
		"bike":       "bike",
		"biked":      "bike",
		"cycled":     "bike",
		"walk":       "walk",
		"walked":     "walk",
	}

	foods = map[string]string{
		"beef":       "beef",
		"burger":     "beef",
		"burgers":    "beef",
		"steak":      "beef",
		"pork":       "pork",
		"bacon":      "pork",
		"ham":        "pork",
		"chicken":    "chicken",
		"fish":       "fish",
		"salmon":     "fish",
		"tuna":       "fish",
		"vegetarian": "vegetarian",
		"veggie":     "vegetarian",
		"vegan":      "vegan",
		"tofu":       "vegan",
	}

	items = map[string]string{
		"laptop":      "electronics",
		"laptops":     "electronics",
		"phone":       "electronics",
		"phones":      "electronics",
		"tablet":      "electronics",
		"tv":          "electronics",
		"computer":    "electronics",
		"headphones":  "electronics",
		"camera":      "electronics",
		"electronics": "electronics",
		"shirt":       "clothing",
		"shirts":      "clothing",
		"shoes":       "clothing",
		"jeans":       "clothing",
		"jacket":      "clothing",
		"dress":       "clothing",
		"clothes":     "clothing",
		"clothing":    "clothing",
		"groceries":   "groceries",
		"grocery":     "groceries",
		"vegetables":  "groceries",
		"fruit":       "groceries",
		"furniture":   "other",
		"book":        "other",
		"books":       "other",
		"toy":         "other",
		"toys":        "other",
		"gift":        "other",
	}

	appliances = map[string]string{
		"ac":               "cooling",
		"air conditioning": "cooling",
		"air conditioner":  "cooling",
		"fan":              "cooling",
		"heater":           "heating",
		"heating":          "heating",
		"furnace":          "heating",
		"lights":           "electricity",
		"tv":               "electricity",
		"television":       "electricity",
		"computer":         "electricity",
		"dryer":            "electricity",
		"oven":             "electricity",
	}
)

// alternation builds a regexp alternation of the keys of m, longest first
// so multi-word keywords win over their prefixes.
func alternation(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return strings.Join(keys, "|")
}

// filler allows up to three words between a keyword and its measurement,
// as in "took the bus for 12 km".
const filler = `(?:\s+[a-z]+){0,3}?`

// DefaultRules returns the built-in rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     RuleTransportDrive,
			Category: greenops.CategoryTransport,
			Pattern: regexp.MustCompile(`\b(?:drove|drive|driving|commuted)\b` + filler +
				`\s+` + number + `\s+(` + distanceUnits + `)\b`),
			Extract: func(m []string) (Candidate, bool) {
				return distanceCandidate("car", m[1], m[2])
			},
		},
		{
			Name:     RuleTransportMode,
			Category: greenops.CategoryTransport,
			Pattern: regexp.MustCompile(`\b(` + alternation(transportModes) + `)\b` + filler +
				`\s+` + number + `\s+(` + distanceUnits + `)\b`),
			Extract: func(m []string) (Candidate, bool) {
				return distanceCandidate(transportModes[m[1]], m[2], m[3])
			},
			SkipIfMatched: []string{RuleTransportDrive},
		},
		{
			Name:     RuleMeals,
			Category: greenops.CategoryMeals,
			Pattern:  regexp.MustCompile(`(?:\b(\d+)\s+)?\b(` + alternation(foods) + `)\b`),
			Extract: func(m []string) (Candidate, bool) {
				return countCandidate(foods[m[2]], m[1])
			},
		},
		{
			Name:     RuleShopping,
			Category: greenops.CategoryShopping,
			Pattern: regexp.MustCompile(`\b(?:bought|buy|purchased|ordered)\b` +
				`(?:\s+(\d+))?` + filler + `\s+(` + alternation(items) + `)\b`),
			Extract: func(m []string) (Candidate, bool) {
				return countCandidate(items[m[2]], m[1])
			},
		},
		{
			Name:     RuleEnergy,
			Category: greenops.CategoryEnergy,
			Pattern: regexp.MustCompile(`\b(` + alternation(appliances) + `)\b` + filler +
				`\s+` + number + `\s+(` + durationUnits + `)\b`),
			Extract: func(m []string) (Candidate, bool) {
				v, ok := parseNumber(m[2])
				if !ok {
					return Candidate{}, false
				}
				hours := toHours(v, m[3])
				return Candidate{Type: appliances[m[1]], Magnitude: &hours}, true
			},
		},
	}
}

func distanceCandidate(activityType, value, unit string) (Candidate, bool) {
	v, ok := parseNumber(value)
	if !ok {
		return Candidate{}, false
	}
	km := toKilometres(v, unit)
	return Candidate{Type: activityType, Magnitude: &km}, true
}

// countCandidate defaults the quantity to one when no count was captured.
func countCandidate(activityType, count string) (Candidate, bool) {
	qty, ok := parseNumber(count)
	if !ok || qty <= 0 {
		qty = 1
	}
	return Candidate{Type: activityType, Magnitude: &qty}, true
}
