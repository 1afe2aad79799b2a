// Package greenops provides the carbon accounting primitives.
//
// It holds the static emission factor table, the carbon calculator that maps
// an activity's magnitude to kg CO2, the lower-carbon alternative advisor and
// helpers that express kg CO2 as relatable equivalencies ("miles driven",
// "trees needed").
package greenops

import (
	"fmt"
	"strings"
)

// Category is the closed set of activity categories.
type Category string

const (
	// CategoryTransport measures distance in kilometres.
	CategoryTransport Category = "transport"
	// CategoryMeals measures a count of meals.
	CategoryMeals Category = "meals"
	// CategoryShopping measures a count of purchased items.
	CategoryShopping Category = "shopping"
	// CategoryEnergy measures a duration in hours.
	CategoryEnergy Category = "energy"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryTransport, CategoryMeals, CategoryShopping, CategoryEnergy}
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTransport, CategoryMeals, CategoryShopping, CategoryEnergy:
		return true
	default:
		return false
	}
}

// Title returns the capitalised display name ("Transport").
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Unit returns the magnitude unit label for the category.
func (c Category) Unit() string {
	switch c {
	case CategoryTransport:
		return "km"
	case CategoryEnergy:
		return "h"
	case CategoryMeals, CategoryShopping:
		return "x"
	default:
		return ""
	}
}

// MagnitudeField names the activity field that carries the magnitude for c.
func (c Category) MagnitudeField() string {
	switch c {
	case CategoryTransport:
		return "distance"
	case CategoryEnergy:
		return "hours"
	default:
		return "quantity"
	}
}

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreesYear converts CO2e to tree-years of absorption.
	EquivalencyTreesYear
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreesYear:
		return "TreesYear"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the carbon value the equivalencies were computed from.
	InputKg float64 `json:"input_kg"`

	// Results contains calculated equivalencies in priority order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to driving ~781 miles or charging ~18,248 smartphones".
	DisplayText string `json:"display_text"`

	// IsEmpty is true when the input was below MinEquivalencyThresholdKg.
	IsEmpty bool `json:"is_empty"`
}
