package greenops

// alternative is a lower-carbon option for an activity type.
type alternative struct {
	label         string
	savingPerUnit float64
}

// alternatives maps category -> type -> lower-carbon option.
// Types that are already the lowest-emission choice (walk, bike, vegan) are absent.
//
//nolint:gochecknoglobals // Read-only lookup table.
var alternatives = map[Category]map[string]alternative{
	CategoryTransport: {
		"car":        {"public transit or bike", 0.12},
		"motorcycle": {"bike or e-scooter", 0.113},
		"bus":        {"train or carpool", 0.048},
		"train":      {"bike for short trips", 0.041},
	},
	CategoryMeals: {
		"beef":       {"chicken or fish", 1.6},
		"pork":       {"vegetarian meal", 0.8},
		"chicken":    {"vegan option", 0.7},
		"fish":       {"vegetarian meal", 0.3},
		"vegetarian": {"vegan option", 0.2},
	},
	CategoryShopping: {
		"electronics": {"refurbished device", 30},
		"clothing":    {"second-hand clothing", 8},
		"groceries":   {"local produce", 0.5},
		"other":       {"buy used or rent", 3},
	},
	CategoryEnergy: {
		"electricity": {"renewable energy plan", 0.46},
		"heating":     {"lower thermostat 1°C", 0.5},
		"cooling":     {"use fans instead", 0.9},
	},
}

// Suggestion is a lower-carbon alternative for one logged activity.
type Suggestion struct {
	Category           Category `json:"category"`
	Type               string   `json:"type"`
	AlternativeLabel   string   `json:"alternative"`
	SavingPerUnitKg    float64  `json:"saving_per_unit_kg"`
	EstimatedSavingKg  float64  `json:"estimated_saving_kg"`
	EffectiveMagnitude float64  `json:"magnitude"`
}

// Suggest returns the lower-carbon alternative for a category/type pair and
// the saving for the given raw magnitude (resolved with the same defaults
// as the calculator). ok is false when no better option exists.
func Suggest(category Category, activityType string, raw *float64) (Suggestion, bool) {
	alt, ok := alternatives[category][activityType]
	if !ok {
		return Suggestion{}, false
	}

	magnitude := ResolveMagnitude(category, raw)
	return Suggestion{
		Category:           category,
		Type:               activityType,
		AlternativeLabel:   alt.label,
		SavingPerUnitKg:    alt.savingPerUnit,
		EstimatedSavingKg:  Round2(magnitude * alt.savingPerUnit),
		EffectiveMagnitude: magnitude,
	}, true
}
