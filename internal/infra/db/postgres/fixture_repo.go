package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/repository"
)

// Ensure fixtureRepo implements repository.FixtureRepository
var _ repository.FixtureRepository = (*fixtureRepo)(nil)

type fixtureRepo struct {
	pool *pgxpool.Pool
}

func NewFixtureRepo(pool *pgxpool.Pool) *fixtureRepo {
	return &fixtureRepo{pool: pool}
}

// fixtureColumns is the join used by every read; repositories always return
// fixtures with their league and team reference rows attached.
const fixtureColumns = `
SELECT f.id, f.utc_start, f.league_id, f.round, f.home_team_id, f.away_team_id,
       f.venue, f.referee, f.status,
       f.home_score, f.away_score, f.home_penalty, f.away_penalty,
       f.approach_notified, f.played_notified,
       l.name, l.country, l.logo_url,
       ht.name, ht.country, ht.logo_url,
       at.name, at.country, at.logo_url
  FROM fixtures f
  JOIN leagues l ON l.id = f.league_id
  JOIN teams ht ON ht.id = f.home_team_id
  JOIN teams at ON at.id = f.away_team_id`

func (r *fixtureRepo) Query(ctx context.Context, q repository.FixtureQuery) ([]*model.Fixture, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.From != nil {
		where = append(where, "f.utc_start >= "+arg(*q.From))
	}
	if q.To != nil {
		where = append(where, "f.utc_start < "+arg(*q.To))
	}
	if len(q.LeagueIDs) > 0 {
		where = append(where, "f.league_id = ANY("+arg(q.LeagueIDs)+")")
	}
	if len(q.TeamIDs) > 0 {
		p := arg(q.TeamIDs)
		where = append(where, fmt.Sprintf("(f.home_team_id = ANY(%s) OR f.away_team_id = ANY(%s))", p, p))
	}

	sql := fixtureColumns
	if len(where) > 0 {
		sql += "\n WHERE " + strings.Join(where, " AND ")
	}
	if q.OrderDesc {
		sql += "\n ORDER BY f.utc_start DESC, f.id ASC"
	} else {
		sql += "\n ORDER BY f.utc_start ASC, f.id ASC"
	}
	if q.Limit > 0 {
		sql += "\n LIMIT " + arg(q.Limit)
	}

	rows, err := queryRows(ctx, r.pool, repository.NoTX, "fixtures.query", sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return scanFixtures(rows)
}

func (r *fixtureRepo) FindByID(ctx context.Context, id int64) (*model.Fixture, error) {
	rows, err := queryRows(ctx, r.pool, repository.NoTX, "fixtures.find_by_id", fixtureColumns+"\n WHERE f.id = $1", id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	out, err := scanFixtures(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out[0], nil
}

func (r *fixtureRepo) FinishedUnnotified(ctx context.Context) ([]*model.Fixture, error) {
	const cond = `
 WHERE f.played_notified = FALSE
   AND f.utc_start < NOW()
   AND LOWER(f.status) LIKE '%finished%'
 ORDER BY f.utc_start ASC`
	rows, err := queryRows(ctx, r.pool, repository.NoTX, "fixtures.finished_unnotified", fixtureColumns+cond)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return scanFixtures(rows)
}

// MarkPlayedNotified flips the flag with a conditional update so overlapping
// notifier passes cannot both claim the fixture.
func (r *fixtureRepo) MarkPlayedNotified(ctx context.Context, fixtureID int64) (bool, error) {
	const q = `UPDATE fixtures SET played_notified = TRUE WHERE id = $1 AND played_notified = FALSE;`
	tag, err := execSQL(ctx, r.pool, repository.NoTX, "fixtures.mark_played", q, fixtureID)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *fixtureRepo) MarkApproachNotified(ctx context.Context, fixtureID int64) (bool, error) {
	const q = `UPDATE fixtures SET approach_notified = TRUE WHERE id = $1 AND approach_notified = FALSE;`
	tag, err := execSQL(ctx, r.pool, repository.NoTX, "fixtures.mark_approach", q, fixtureID)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() == 1, nil
}

// Upsert refreshes a fixture row from ingestion. The notified flags are
// never overwritten: they only move false -> true via the Mark methods.
func (r *fixtureRepo) Upsert(ctx context.Context, f *model.Fixture) error {
	const q = `
INSERT INTO fixtures (
  id, utc_start, league_id, round, home_team_id, away_team_id,
  venue, referee, status, home_score, away_score, home_penalty, away_penalty
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
  utc_start=$2, league_id=$3, round=$4, home_team_id=$5, away_team_id=$6,
  venue=$7, referee=$8, status=$9, home_score=$10, away_score=$11,
  home_penalty=$12, away_penalty=$13;`
	_, err := execSQL(ctx, r.pool, repository.NoTX, "fixtures.upsert", q,
		f.ID, f.UTCStart, f.LeagueID, f.Round, f.HomeTeamID, f.AwayTeamID,
		f.Venue, f.Referee, f.Status, f.HomeScore, f.AwayScore, f.HomePenalty, f.AwayPenalty)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func scanFixtures(rows pgx.Rows) ([]*model.Fixture, error) {
	var out []*model.Fixture
	for rows.Next() {
		f := &model.Fixture{League: &model.League{}, HomeTeam: &model.Team{}, AwayTeam: &model.Team{}}
		if err := rows.Scan(
			&f.ID, &f.UTCStart, &f.LeagueID, &f.Round, &f.HomeTeamID, &f.AwayTeamID,
			&f.Venue, &f.Referee, &f.Status,
			&f.HomeScore, &f.AwayScore, &f.HomePenalty, &f.AwayPenalty,
			&f.ApproachNotified, &f.PlayedNotified,
			&f.League.Name, &f.League.Country, &f.League.LogoURL,
			&f.HomeTeam.Name, &f.HomeTeam.Country, &f.HomeTeam.LogoURL,
			&f.AwayTeam.Name, &f.AwayTeam.Country, &f.AwayTeam.LogoURL,
		); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		f.League.ID = f.LeagueID
		f.HomeTeam.ID = f.HomeTeamID
		f.AwayTeam.ID = f.AwayTeamID
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

// mapError folds pgx errors into the domain taxonomy.
func mapError(err error) error {
	switch err {
	case nil:
		return nil
	case pgx.ErrNoRows:
		return domain.ErrNotFound
	case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
		return err
	default:
		return domain.ErrOperationFailed
	}
}
