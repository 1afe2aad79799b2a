package ledger

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rshade/ecotrack/internal/logging"
)

var (
	// ErrActivityNotFound is returned when an activity ID is not in the ledger.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrDuplicateActivity is returned when inserting an ID that already exists.
	ErrDuplicateActivity = errors.New("activity already exists")
)

// IDFunc generates an activity ID for a creation time.
type IDFunc func(time.Time) string

// ulidID is the default IDFunc; ULIDs sort by creation time.
func ulidID(t time.Time) string {
	return logging.NewULID(t, rand.Reader)
}

// Ledger is the ordered collection of a user's activities, newest first by
// insertion. It is mutated only by Log and Remove; each mutation bumps
// Version so derived values can be memoized against it.
type Ledger struct {
	mu         sync.RWMutex
	activities []Activity
	version    uint64
	newID      IDFunc
}

// New returns a ledger seeded with activities (assumed newest first).
func New(activities []Activity) *Ledger {
	return NewWithIDFunc(activities, ulidID)
}

// NewWithIDFunc is New with a custom ID generator, for deterministic tests.
func NewWithIDFunc(activities []Activity, newID IDFunc) *Ledger {
	if newID == nil {
		newID = ulidID
	}
	l := &Ledger{
		activities: make([]Activity, 0, len(activities)),
		newID:      newID,
	}
	for _, a := range activities {
		l.activities = append(l.activities, a.clone())
	}
	return l
}

// Log creates an activity from d and prepends it to the ledger.
func (l *Ledger) Log(d Draft, now time.Time) Activity {
	a := newActivity(l.newID(now), d, now)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.activities = append([]Activity{a}, l.activities...)
	l.version++
	return a.clone()
}

// Insert adds a previously created activity, such as one read from an export,
// keeping its ID and stored carbon. It is placed by CreatedAt so the ledger
// stays newest first.
func (l *Ledger) Insert(a Activity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos := len(l.activities)
	for i, existing := range l.activities {
		if existing.ID == a.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateActivity, a.ID)
		}
		if pos == len(l.activities) && existing.CreatedAt.Before(a.CreatedAt) {
			pos = i
		}
	}

	l.activities = append(l.activities, Activity{})
	copy(l.activities[pos+1:], l.activities[pos:])
	l.activities[pos] = a.clone()
	l.version++
	return nil
}

// Remove deletes the activity with id. It returns ErrActivityNotFound when
// there is no such activity.
func (l *Ledger) Remove(id string) (Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, a := range l.activities {
		if a.ID == id {
			l.activities = append(l.activities[:i], l.activities[i+1:]...)
			l.version++
			return a, nil
		}
	}
	return Activity{}, ErrActivityNotFound
}

// Get returns the activity with id.
func (l *Ledger) Get(id string) (Activity, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, a := range l.activities {
		if a.ID == id {
			return a.clone(), true
		}
	}
	return Activity{}, false
}

// All returns a copy of every activity, newest first.
func (l *Ledger) All() []Activity {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Activity, len(l.activities))
	for i, a := range l.activities {
		out[i] = a.clone()
	}
	return out
}

// Recent returns at most n activities, newest first.
func (l *Ledger) Recent(n int) []Activity {
	all := l.All()
	if n >= 0 && len(all) > n {
		return all[:n]
	}
	return all
}

// Len returns the number of activities.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.activities)
}

// Version returns the mutation counter.
func (l *Ledger) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}
