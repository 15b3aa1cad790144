package repository

import (
	"context"
	"time"

	"telegram-football-fixtures/internal/domain/model"
)

// FixtureQuery describes one fixture store lookup. Zero-valued fields are
// ignored; when both LeagueIDs and TeamIDs are empty every fixture in the
// time range qualifies.
type FixtureQuery struct {
	From *time.Time // inclusive UTC lower bound on start time
	To   *time.Time // exclusive UTC upper bound on start time

	LeagueIDs []int64
	TeamIDs   []int64 // matches either home or away side

	// OrderDesc returns most recent first ("last" semantics).
	OrderDesc bool
	Limit     int
}

// FixtureRepository is the read side of the fixture store plus the two
// notified-flag mutations. Query results come back joined with their league
// and team reference rows, ordered by UTC start time.
type FixtureRepository interface {
	Query(ctx context.Context, q FixtureQuery) ([]*model.Fixture, error)
	FindByID(ctx context.Context, id int64) (*model.Fixture, error)

	// FinishedUnnotified returns finished fixtures whose played flag is
	// still false, oldest first.
	FinishedUnnotified(ctx context.Context) ([]*model.Fixture, error)

	// MarkPlayedNotified flips played_notified with a conditional update
	// (WHERE played_notified = false) and reports whether this call won the
	// flip. A false return means another pass already claimed the fixture.
	MarkPlayedNotified(ctx context.Context, fixtureID int64) (bool, error)
	MarkApproachNotified(ctx context.Context, fixtureID int64) (bool, error)

	// Upsert is used by ingestion only.
	Upsert(ctx context.Context, f *model.Fixture) error
}
