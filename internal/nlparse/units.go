package nlparse

import (
	"strconv"

	"github.com/rshade/ecotrack/internal/greenops"
)

// KmPerMile converts miles to kilometres.
const KmPerMile = 1.609344

const minutesPerHour = 60

const (
	distanceUnits = `km|kms|kilometres|kilometers|kilometre|kilometer|mi|mile|miles`
	durationUnits = `h|hr|hrs|hour|hours|min|mins|minute|minutes`
	number        = `(\d+(?:\.\d+)?)`
)

// toKilometres converts value in unit to km, 2 dp.
func toKilometres(value float64, unit string) float64 {
	switch unit {
	case "mi", "mile", "miles":
		return greenops.Round2(value * KmPerMile)
	default:
		return greenops.Round2(value)
	}
}

// toHours converts value in unit to hours, 2 dp.
func toHours(value float64, unit string) float64 {
	switch unit {
	case "min", "mins", "minute", "minutes":
		return greenops.Round2(value / minutesPerHour)
	default:
		return greenops.Round2(value)
	}
}

// parseNumber returns the value of a captured number, or false when the
// group did not participate in the match.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
