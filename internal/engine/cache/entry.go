package cache

import "time"

// Key identifies a derived value: what it is (Name, e.g. "series:week"),
// which ledger state it was computed from (Version), and which day "today"
// was (Day, YYYY-MM-DD).
type Key struct {
	Name    string
	Version uint64
	Day     string
}

// Entry is a memoized value.
type Entry struct {
	Key       Key
	Value     any
	CreatedAt time.Time
}

// Matches reports whether e was computed for k.
func (e *Entry) Matches(k Key) bool {
	return e != nil && e.Key == k
}
