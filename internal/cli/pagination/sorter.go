package pagination

import (
	"fmt"
	"sort"

	"github.com/rshade/ecotrack/internal/ledger"
)

// ErrInvalidSortField is returned for a field ActivitySorter does not know.
var ErrInvalidSortField = fmt.Errorf("invalid sort field")

type activityLess func(a, b ledger.Activity) bool

// ActivitySorter sorts activities by a named field.
type ActivitySorter struct {
	fields map[string]activityLess
}

// NewActivitySorter returns a sorter over date, carbon, category and type.
// Date ties are broken by creation time.
func NewActivitySorter() *ActivitySorter {
	return &ActivitySorter{
		fields: map[string]activityLess{
			"date": func(a, b ledger.Activity) bool {
				if a.Date != b.Date {
					return a.Date < b.Date
				}
				return a.CreatedAt.Before(b.CreatedAt)
			},
			"carbon":   func(a, b ledger.Activity) bool { return a.CarbonKg < b.CarbonKg },
			"category": func(a, b ledger.Activity) bool { return a.Category < b.Category },
			"type":     func(a, b ledger.Activity) bool { return a.Type < b.Type },
		},
	}
}

// IsValidField reports whether field can be sorted on.
func (s *ActivitySorter) IsValidField(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// ValidFields returns the sortable fields in alphabetical order.
func (s *ActivitySorter) ValidFields() []string {
	out := make([]string, 0, len(s.fields))
	for f := range s.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Sort returns a sorted copy of activities. The sort is stable, so equal
// items keep ledger order.
func (s *ActivitySorter) Sort(activities []ledger.Activity, field, order string) ([]ledger.Activity, error) {
	less, ok := s.fields[field]
	if !ok {
		return nil, fmt.Errorf("%w %q: valid fields are %v", ErrInvalidSortField, field, s.ValidFields())
	}

	sorted := append([]ledger.Activity(nil), activities...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted, nil
}
