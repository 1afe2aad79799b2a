package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Challenge lifecycle errors.
var (
	// ErrChallengeActive is returned when starting a challenge while another is running.
	ErrChallengeActive = errors.New("a challenge is already active")
	// ErrNoActiveChallenge is returned when completing or cancelling with nothing running.
	ErrNoActiveChallenge = errors.New("no active challenge")
)

// Theme is the UI color theme preference.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("invalid theme %q: must be %q or %q", s, ThemeLight, ThemeDark)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ActiveChallenge is a challenge instance that has been started and not yet ended.
type ActiveChallenge struct {
	InstanceID  string    `json:"instance_id"`
	ChallengeID string    `json:"challenge_id"`
	StartedAt   time.Time `json:"started_at"`
}

// ChallengeOutcome records how a challenge instance ended.
type ChallengeOutcome string

// Challenge outcomes.
const (
	OutcomeCompleted ChallengeOutcome = "completed"
	OutcomeCancelled ChallengeOutcome = "cancelled"
)

// CompletedChallenge is a challenge instance that has ended.
type CompletedChallenge struct {
	InstanceID    string           `json:"instance_id"`
	ChallengeID   string           `json:"challenge_id"`
	StartedAt     time.Time        `json:"started_at"`
	EndedAt       time.Time        `json:"ended_at"`
	Outcome       ChallengeOutcome `json:"outcome"`
	FinalProgress float64          `json:"final_progress"`
	Achieved      bool             `json:"achieved"`
}

// State is everything persisted for a user besides configuration.
type State struct {
	SchemaVersion       string               `json:"schema_version"`
	Activities          []Activity           `json:"activities"`
	Streak              int                  `json:"streak"`
	ActiveChallenge     *ActiveChallenge     `json:"active_challenge"`
	CompletedChallenges []CompletedChallenge `json:"completed_challenges"`
	Onboarded           bool                 `json:"onboarded"`
	Theme               Theme                `json:"theme"`
}

// NewState returns an empty state at the current schema version.
func NewState() State {
	return State{
		SchemaVersion:       SchemaVersion,
		Activities:          []Activity{},
		CompletedChallenges: []CompletedChallenge{},
		Theme:               ThemeLight,
	}
}

// StartChallenge begins challengeID. Only one challenge may be active.
func (s *State) StartChallenge(challengeID string, now time.Time) (ActiveChallenge, error) {
	if s.ActiveChallenge != nil {
		return ActiveChallenge{}, fmt.Errorf("%w: %s", ErrChallengeActive, s.ActiveChallenge.ChallengeID)
	}
	ac := ActiveChallenge{
		InstanceID:  uuid.NewString(),
		ChallengeID: challengeID,
		StartedAt:   now,
	}
	s.ActiveChallenge = &ac
	return ac, nil
}

// CompleteChallenge ends the active challenge and records its final progress.
func (s *State) CompleteChallenge(progress float64, achieved bool, now time.Time) (CompletedChallenge, error) {
	return s.endChallenge(OutcomeCompleted, progress, achieved, now)
}

// CancelChallenge abandons the active challenge. The instance is kept in history.
func (s *State) CancelChallenge(progress float64, now time.Time) (CompletedChallenge, error) {
	return s.endChallenge(OutcomeCancelled, progress, false, now)
}

func (s *State) endChallenge(
	outcome ChallengeOutcome,
	progress float64,
	achieved bool,
	now time.Time,
) (CompletedChallenge, error) {
	if s.ActiveChallenge == nil {
		return CompletedChallenge{}, ErrNoActiveChallenge
	}
	cc := CompletedChallenge{
		InstanceID:    s.ActiveChallenge.InstanceID,
		ChallengeID:   s.ActiveChallenge.ChallengeID,
		StartedAt:     s.ActiveChallenge.StartedAt,
		EndedAt:       now,
		Outcome:       outcome,
		FinalProgress: progress,
		Achieved:      achieved,
	}
	s.CompletedChallenges = append(s.CompletedChallenges, cc)
	s.ActiveChallenge = nil
	return cc, nil
}

// clone returns a deep copy of s.
func (s State) clone() State {
	c := s
	c.Activities = make([]Activity, len(s.Activities))
	for i, a := range s.Activities {
		c.Activities[i] = a.clone()
	}
	c.CompletedChallenges = append([]CompletedChallenge(nil), s.CompletedChallenges...)
	if s.ActiveChallenge != nil {
		ac := *s.ActiveChallenge
		c.ActiveChallenge = &ac
	}
	return c
}
