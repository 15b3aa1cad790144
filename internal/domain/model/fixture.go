package model

import (
	"strings"
	"time"
)

// Fixture is a single scheduled or played match between two teams.
// Rows are created by the ingestion command and are read-only afterwards,
// except for the two notified flags which the notifiers flip.
type Fixture struct {
	ID         int64
	UTCStart   time.Time
	LeagueID   int64
	Round      string
	HomeTeamID int64
	AwayTeamID int64
	Venue      string
	Referee    string
	Status     string

	// Scores are nil until the match has started.
	HomeScore   *int
	AwayScore   *int
	HomePenalty *int
	AwayPenalty *int

	ApproachNotified bool
	PlayedNotified   bool

	// Populated by repository joins; nil when the lookup was fixture-only.
	League   *League
	HomeTeam *Team
	AwayTeam *Team
}

// Finished reports whether the match has a final result.
func (f *Fixture) Finished() bool {
	return strings.Contains(strings.ToLower(f.Status), "finished")
}

// InProgress reports whether the match has started but not ended.
// Provider statuses here look like "First Half", "Halftime", "Second Half",
// "Extra Time" or "Penalty".
func (f *Fixture) InProgress() bool {
	s := strings.ToLower(f.Status)
	for _, marker := range []string{"half", "extra", "penalt", "kick off", "in progress"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// Abandoned reports a match that was called off after starting or never
// rescheduled ("Match Abandoned", "Match Postponed", "Match Cancelled").
func (f *Fixture) Abandoned() bool {
	s := strings.ToLower(f.Status)
	return strings.Contains(s, "abandoned") || strings.Contains(s, "postponed") || strings.Contains(s, "cancelled")
}

// HasScore reports whether both score fields are present.
func (f *Fixture) HasScore() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

// WentToPenalties reports whether a penalty shootout result is recorded.
func (f *Fixture) WentToPenalties() bool {
	return f.HomePenalty != nil && f.AwayPenalty != nil
}

// HomeTeamName returns the joined team name or a placeholder when the
// reference row was not loaded.
func (f *Fixture) HomeTeamName() string {
	if f.HomeTeam != nil {
		return f.HomeTeam.Name
	}
	return "?"
}

func (f *Fixture) AwayTeamName() string {
	if f.AwayTeam != nil {
		return f.AwayTeam.Name
	}
	return "?"
}

func (f *Fixture) LeagueName() string {
	if f.League != nil {
		return f.League.Name
	}
	return "?"
}
