package repository

import (
	"context"

	"telegram-football-fixtures/internal/domain/model"
)

// ReferenceRepository looks up and refreshes the immutable team and league
// reference entities.
type ReferenceRepository interface {
	FindTeamByID(ctx context.Context, id int64) (*model.Team, error)
	// FindTeamByName matches case-insensitively on the exact name.
	FindTeamByName(ctx context.Context, name string) (*model.Team, error)
	FindLeagueByID(ctx context.Context, id int64) (*model.League, error)
	FindLeagueByName(ctx context.Context, name string) (*model.League, error)

	UpsertTeam(ctx context.Context, t *model.Team) error
	UpsertLeague(ctx context.Context, l *model.League) error
}
