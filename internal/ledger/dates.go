package ledger

import "time"

// DateLayout is the civil date format used for Activity.Date.
const DateLayout = "2006-01-02"

// DayKey formats t as a civil date in t's location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a civil date into midnight UTC.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts the civil date day by n days. Malformed input is returned unchanged.
func AddDays(day string, n int) string {
	t, ok := ParseDay(day)
	if !ok {
		return day
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// NormalizeDate returns day if it is a valid date not after today, today if
// it is empty or malformed, and today if it lies in the future.
func NormalizeDate(day string, now time.Time) string {
	today := DayKey(now)
	if _, ok := ParseDay(day); !ok {
		return today
	}
	if day > today {
		return today
	}
	return day
}
