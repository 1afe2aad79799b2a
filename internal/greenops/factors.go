package greenops

import "sort"

// factorTable maps category -> activity type -> kg CO2 per unit.
// Zero-emission types are valid entries with factor 0.
//
//nolint:gochecknoglobals // Read-only after package initialisation.
var factorTable = map[Category]map[string]float64{
	CategoryTransport: {
		"car":        0.21,
		"bus":        0.089,
		"train":      0.041,
		"bike":       0,
		"walk":       0,
		"motorcycle": 0.113,
	},
	CategoryMeals: {
		"beef":       2.5,
		"pork":       1.2,
		"chicken":    0.9,
		"fish":       0.7,
		"vegetarian": 0.4,
		"vegan":      0.2,
	},
	CategoryShopping: {
		"electronics": 50,
		"clothing":    10,
		"groceries":   2,
		"other":       5,
	},
	CategoryEnergy: {
		"electricity": 0.92,
		"heating":     2.3,
		"cooling":     1.8,
	},
}

// Factor returns the emission factor for a category/type pair.
// Unknown pairs yield (0, false).
func Factor(category Category, activityType string) (float64, bool) {
	types, ok := factorTable[category]
	if !ok {
		return 0, false
	}
	f, ok := types[activityType]
	return f, ok
}

// IsKnownType reports whether activityType exists for category.
func IsKnownType(category Category, activityType string) bool {
	_, ok := Factor(category, activityType)
	return ok
}

// IsZeroEmission reports whether a known type has a zero factor (walk, bike).
func IsZeroEmission(category Category, activityType string) bool {
	f, ok := Factor(category, activityType)
	return ok && f == 0
}

// Types returns the activity types of a category sorted by descending factor,
// so the highest-emitting option is listed first.
func Types(category Category) []string {
	types := factorTable[category]
	out := make([]string, 0, len(types))
	for t := range types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		fi, fj := types[out[i]], types[out[j]]
		if fi != fj {
			return fi > fj
		}
		return out[i] < out[j]
	})
	return out
}

// DefaultType returns the type pre-selected for a category in forms.
func DefaultType(category Category) string {
	switch category {
	case CategoryTransport:
		return "car"
	case CategoryMeals:
		return "beef"
	case CategoryShopping:
		return "groceries"
	case CategoryEnergy:
		return "electricity"
	default:
		return ""
	}
}
