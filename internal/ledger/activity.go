// Package ledger holds the activity model, the ordered activity ledger and
// the persisted user state it is stored in.
package ledger

import (
	"time"

	"github.com/rshade/ecotrack/internal/greenops"
)

// Activity sources.
const (
	SourceManual = "manual"
	SourceText   = "text"
	SourceImport = "import"
)

// Activity is one logged action. CarbonKg is computed once at creation and
// never recomputed, so later factor changes do not rewrite history.
type Activity struct {
	ID        string            `json:"id"`
	Category  greenops.Category `json:"category"`
	Type      string            `json:"type"`
	Distance  *float64          `json:"distance,omitempty"`
	Quantity  *float64          `json:"quantity,omitempty"`
	Hours     *float64          `json:"hours,omitempty"`
	Date      string            `json:"date"`
	CarbonKg  float64           `json:"carbon"`
	CreatedAt time.Time         `json:"timestamp"`
	Source    string            `json:"source,omitempty"`
}

// Draft is the user input an Activity is created from.
type Draft struct {
	Category  greenops.Category
	Type      string
	Magnitude *float64
	Date      string
	Source    string
}

// RawMagnitude returns the magnitude field that is active for the category.
func (a Activity) RawMagnitude() *float64 {
	switch a.Category {
	case greenops.CategoryTransport:
		return a.Distance
	case greenops.CategoryEnergy:
		return a.Hours
	default:
		return a.Quantity
	}
}

// Magnitude returns the active magnitude with category defaults applied.
func (a Activity) Magnitude() float64 {
	return greenops.ResolveMagnitude(a.Category, a.RawMagnitude())
}

// Suggest returns the lower-carbon alternative for this activity, if any.
func (a Activity) Suggest() (greenops.Suggestion, bool) {
	return greenops.Suggest(a.Category, a.Type, a.RawMagnitude())
}

// newActivity builds an Activity from d. The date is clamped to today and an
// empty or malformed date becomes today; no validation error is raised.
func newActivity(id string, d Draft, now time.Time) Activity {
	source := d.Source
	if source == "" {
		source = SourceManual
	}

	a := Activity{
		ID:        id,
		Category:  d.Category,
		Type:      d.Type,
		Date:      NormalizeDate(d.Date, now),
		CarbonKg:  greenops.CalculateRaw(d.Category, d.Type, d.Magnitude),
		CreatedAt: now,
		Source:    source,
	}

	if d.Magnitude != nil {
		v := *d.Magnitude
		switch d.Category {
		case greenops.CategoryTransport:
			a.Distance = &v
		case greenops.CategoryEnergy:
			a.Hours = &v
		default:
			a.Quantity = &v
		}
	}
	return a
}

// clone returns a deep copy of a.
func (a Activity) clone() Activity {
	c := a
	c.Distance = copyFloat(a.Distance)
	c.Quantity = copyFloat(a.Quantity)
	c.Hours = copyFloat(a.Hours)
	return c
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
