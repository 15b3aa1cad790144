package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/repository"
)

// Ensure referenceRepo implements repository.ReferenceRepository
var _ repository.ReferenceRepository = (*referenceRepo)(nil)

type referenceRepo struct {
	pool *pgxpool.Pool
}

func NewReferenceRepo(pool *pgxpool.Pool) *referenceRepo {
	return &referenceRepo{pool: pool}
}

func (r *referenceRepo) FindTeamByID(ctx context.Context, id int64) (*model.Team, error) {
	const q = `SELECT id, name, country, logo_url FROM teams WHERE id = $1;`
	return r.scanTeam(ctx, q, id)
}

func (r *referenceRepo) FindTeamByName(ctx context.Context, name string) (*model.Team, error) {
	const q = `SELECT id, name, country, logo_url FROM teams WHERE LOWER(name) = LOWER($1) LIMIT 1;`
	return r.scanTeam(ctx, q, name)
}

func (r *referenceRepo) FindLeagueByID(ctx context.Context, id int64) (*model.League, error) {
	const q = `SELECT id, name, country, logo_url FROM leagues WHERE id = $1;`
	return r.scanLeague(ctx, q, id)
}

func (r *referenceRepo) FindLeagueByName(ctx context.Context, name string) (*model.League, error) {
	const q = `SELECT id, name, country, logo_url FROM leagues WHERE LOWER(name) = LOWER($1) LIMIT 1;`
	return r.scanLeague(ctx, q, name)
}

func (r *referenceRepo) UpsertTeam(ctx context.Context, t *model.Team) error {
	const q = `
INSERT INTO teams (id, name, country, logo_url) VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET name=$2, country=$3, logo_url=$4;`
	_, err := execSQL(ctx, r.pool, repository.NoTX, "teams.upsert", q, t.ID, t.Name, t.Country, t.LogoURL)
	return mapError(err)
}

func (r *referenceRepo) UpsertLeague(ctx context.Context, l *model.League) error {
	const q = `
INSERT INTO leagues (id, name, country, logo_url) VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET name=$2, country=$3, logo_url=$4;`
	_, err := execSQL(ctx, r.pool, repository.NoTX, "leagues.upsert", q, l.ID, l.Name, l.Country, l.LogoURL)
	return mapError(err)
}

func (r *referenceRepo) scanTeam(ctx context.Context, q string, args ...interface{}) (*model.Team, error) {
	row, err := pickRow(ctx, r.pool, repository.NoTX, q, args...)
	if err != nil {
		return nil, err
	}
	var t model.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Country, &t.LogoURL); err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *referenceRepo) scanLeague(ctx context.Context, q string, args ...interface{}) (*model.League, error) {
	row, err := pickRow(ctx, r.pool, repository.NoTX, q, args...)
	if err != nil {
		return nil, err
	}
	var l model.League
	if err := row.Scan(&l.ID, &l.Name, &l.Country, &l.LogoURL); err != nil {
		return nil, mapError(err)
	}
	return &l, nil
}
