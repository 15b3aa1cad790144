package adapter

import (
	"context"
	"time"

	"telegram-football-fixtures/internal/domain/model"
)

// FootballDataProvider is the upstream sports API the ingestion command
// pulls from. Calls are synchronous with a fixed timeout; the client is
// expected to pace itself against provider rate limits.
type FootballDataProvider interface {
	Leagues(ctx context.Context, country string) ([]*model.League, error)
	Teams(ctx context.Context, leagueID int64, season int) ([]*model.Team, error)
	Fixtures(ctx context.Context, leagueID int64, season int, from, to time.Time) ([]*model.Fixture, error)
}
