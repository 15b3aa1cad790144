package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/repository"
)

// Ensure prefsRepo implements repository.PrefsRepository
var _ repository.PrefsRepository = (*prefsRepo)(nil)

type prefsRepo struct {
	pool *pgxpool.Pool
}

func NewPrefsRepo(pool *pgxpool.Pool) *prefsRepo {
	return &prefsRepo{pool: pool}
}

// ---- time zones ----

func (r *prefsRepo) TimeZones(ctx context.Context, chatID int64) ([]*model.UserTimeZone, error) {
	const q = `SELECT chat_id, zone_name, is_main FROM user_time_zones WHERE chat_id = $1 ORDER BY is_main DESC, zone_name ASC;`
	rows, err := queryRows(ctx, r.pool, repository.NoTX, "tz.list", q, chatID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	var out []*model.UserTimeZone
	for rows.Next() {
		var z model.UserTimeZone
		if err := rows.Scan(&z.ChatID, &z.Name, &z.Main); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &z)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *prefsRepo) MainTimeZone(ctx context.Context, chatID int64) (*model.UserTimeZone, error) {
	const q = `SELECT chat_id, zone_name, is_main FROM user_time_zones WHERE chat_id = $1 AND is_main = TRUE;`
	row, err := pickRow(ctx, r.pool, repository.NoTX, q, chatID)
	if err != nil {
		return nil, err
	}
	var z model.UserTimeZone
	if err := row.Scan(&z.ChatID, &z.Name, &z.Main); err != nil {
		return nil, mapError(err)
	}
	return &z, nil
}

// SaveTimeZone upserts one zone row. A main insert first demotes the chat's
// previous main zone; run it inside TxManager.WithTx so the demote and the
// insert land together, keeping at most one main row per chat.
func (r *prefsRepo) SaveTimeZone(ctx context.Context, tx repository.Tx, z *model.UserTimeZone) error {
	if z.Main {
		const demote = `UPDATE user_time_zones SET is_main = FALSE WHERE chat_id = $1 AND is_main = TRUE;`
		if _, err := execSQL(ctx, r.pool, tx, "tz.demote_main", demote, z.ChatID); err != nil {
			return mapError(err)
		}
	}
	const q = `
INSERT INTO user_time_zones (chat_id, zone_name, is_main) VALUES ($1,$2,$3)
ON CONFLICT (chat_id, zone_name) DO UPDATE SET is_main=$3;`
	_, err := execSQL(ctx, r.pool, tx, "tz.save", q, z.ChatID, z.Name, z.Main)
	return mapError(err)
}

// ---- favourites ----

func (r *prefsRepo) FavouriteTeams(ctx context.Context, chatID int64) ([]*model.Team, error) {
	const q = `
SELECT t.id, t.name, t.country, t.logo_url
  FROM favourite_teams ft
  JOIN teams t ON t.id = ft.team_id
 WHERE ft.chat_id = $1
 ORDER BY t.name ASC;`
	rows, err := queryRows(ctx, r.pool, repository.NoTX, "fav.teams", q, chatID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	var out []*model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Country, &t.LogoURL); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *prefsRepo) FavouriteLeagues(ctx context.Context, chatID int64) ([]*model.League, error) {
	const q = `
SELECT l.id, l.name, l.country, l.logo_url
  FROM favourite_leagues fl
  JOIN leagues l ON l.id = fl.league_id
 WHERE fl.chat_id = $1
 ORDER BY l.name ASC;`
	rows, err := queryRows(ctx, r.pool, repository.NoTX, "fav.leagues", q, chatID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	var out []*model.League
	for rows.Next() {
		var l model.League
		if err := rows.Scan(&l.ID, &l.Name, &l.Country, &l.LogoURL); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *prefsRepo) AddFavouriteTeam(ctx context.Context, chatID, teamID int64) error {
	const q = `INSERT INTO favourite_teams (chat_id, team_id) VALUES ($1,$2);`
	_, err := execSQL(ctx, r.pool, repository.NoTX, "fav.add_team", q, chatID, teamID)
	return mapInsertError(err)
}

func (r *prefsRepo) RemoveFavouriteTeam(ctx context.Context, chatID, teamID int64) error {
	const q = `DELETE FROM favourite_teams WHERE chat_id = $1 AND team_id = $2;`
	tag, err := execSQL(ctx, r.pool, repository.NoTX, "fav.remove_team", q, chatID, teamID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *prefsRepo) AddFavouriteLeague(ctx context.Context, chatID, leagueID int64) error {
	const q = `INSERT INTO favourite_leagues (chat_id, league_id) VALUES ($1,$2);`
	_, err := execSQL(ctx, r.pool, repository.NoTX, "fav.add_league", q, chatID, leagueID)
	return mapInsertError(err)
}

func (r *prefsRepo) RemoveFavouriteLeague(ctx context.Context, chatID, leagueID int64) error {
	const q = `DELETE FROM favourite_leagues WHERE chat_id = $1 AND league_id = $2;`
	tag, err := execSQL(ctx, r.pool, repository.NoTX, "fav.remove_league", q, chatID, leagueID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- notification subscriptions ----

func (r *prefsRepo) Subscriptions(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error) {
	const q = `SELECT chat_id, notif_type, enabled, COALESCE(daily_time, '') FROM notif_subscriptions WHERE chat_id = $1 ORDER BY notif_type ASC;`
	rows, err := queryRows(ctx, r.pool, repository.NoTX, "subs.list", q, chatID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

func (r *prefsRepo) SaveSubscription(ctx context.Context, tx repository.Tx, s *model.NotifSubscription) error {
	const q = `
INSERT INTO notif_subscriptions (chat_id, notif_type, enabled, daily_time) VALUES ($1,$2,$3,NULLIF($4,''))
ON CONFLICT (chat_id, notif_type) DO UPDATE SET enabled=$3, daily_time=NULLIF($4,'');`
	_, err := execSQL(ctx, r.pool, tx, "subs.save", q, s.ChatID, int(s.Type), s.Enabled, s.DailyTime)
	return mapError(err)
}

func (r *prefsRepo) SubscribersOf(ctx context.Context, t model.NotificationType) ([]*model.NotifSubscription, error) {
	const q = `SELECT chat_id, notif_type, enabled, COALESCE(daily_time, '') FROM notif_subscriptions WHERE notif_type = $1 AND enabled = TRUE ORDER BY chat_id ASC;`
	rows, err := queryRows(ctx, r.pool, repository.NoTX, "subs.subscribers", q, int(t))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

func scanSubscriptions(rows pgx.Rows) ([]*model.NotifSubscription, error) {
	var out []*model.NotifSubscription
	for rows.Next() {
		var (
			s model.NotifSubscription
			t int
		)
		if err := rows.Scan(&s.ChatID, &t, &s.Enabled, &s.DailyTime); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		s.Type = model.NotificationType(t)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

// ---- language ----

func (r *prefsRepo) Language(ctx context.Context, chatID int64) (string, error) {
	const q = `SELECT COALESCE(lang, '') FROM chat_settings WHERE chat_id = $1;`
	row, err := pickRow(ctx, r.pool, repository.NoTX, q, chatID)
	if err != nil {
		return "", err
	}
	var lang string
	if err := row.Scan(&lang); err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", mapError(err)
	}
	return lang, nil
}

func (r *prefsRepo) SaveLanguage(ctx context.Context, chatID int64, lang string) error {
	const q = `
INSERT INTO chat_settings (chat_id, lang) VALUES ($1, NULLIF($2,''))
ON CONFLICT (chat_id) DO UPDATE SET lang=NULLIF($2,'');`
	_, err := execSQL(ctx, r.pool, repository.NoTX, "settings.save_lang", q, chatID, lang)
	return mapError(err)
}

// mapInsertError maps a unique violation on a favourite pair to the domain
// duplicate error.
func mapInsertError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateFavourite
	}
	return mapError(err)
}
