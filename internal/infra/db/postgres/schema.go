package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema is the full DDL; cmd/seed applies it with -init before the first
// ingestion run.
const Schema = `
CREATE TABLE IF NOT EXISTS leagues (
    id        BIGINT PRIMARY KEY,
    name      TEXT NOT NULL,
    country   TEXT NOT NULL DEFAULT '',
    logo_url  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS teams (
    id        BIGINT PRIMARY KEY,
    name      TEXT NOT NULL,
    country   TEXT NOT NULL DEFAULT '',
    logo_url  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS fixtures (
    id                BIGINT PRIMARY KEY,
    utc_start         TIMESTAMPTZ NOT NULL,
    league_id         BIGINT NOT NULL REFERENCES leagues(id),
    round             TEXT NOT NULL DEFAULT '',
    home_team_id      BIGINT NOT NULL REFERENCES teams(id),
    away_team_id      BIGINT NOT NULL REFERENCES teams(id),
    venue             TEXT NOT NULL DEFAULT '',
    referee           TEXT NOT NULL DEFAULT '',
    status            TEXT NOT NULL DEFAULT '',
    home_score        INT,
    away_score        INT,
    home_penalty      INT,
    away_penalty      INT,
    approach_notified BOOLEAN NOT NULL DEFAULT FALSE,
    played_notified   BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_fixtures_utc_start ON fixtures (utc_start);
CREATE INDEX IF NOT EXISTS idx_fixtures_league ON fixtures (league_id, utc_start);

CREATE TABLE IF NOT EXISTS user_time_zones (
    chat_id   BIGINT NOT NULL,
    zone_name TEXT NOT NULL,
    is_main   BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (chat_id, zone_name)
);

CREATE TABLE IF NOT EXISTS notif_subscriptions (
    chat_id    BIGINT NOT NULL,
    notif_type INT NOT NULL,
    enabled    BOOLEAN NOT NULL DEFAULT TRUE,
    daily_time TEXT,
    PRIMARY KEY (chat_id, notif_type)
);

CREATE TABLE IF NOT EXISTS favourite_teams (
    chat_id BIGINT NOT NULL,
    team_id BIGINT NOT NULL REFERENCES teams(id),
    PRIMARY KEY (chat_id, team_id)
);

CREATE TABLE IF NOT EXISTS favourite_leagues (
    chat_id   BIGINT NOT NULL,
    league_id BIGINT NOT NULL REFERENCES leagues(id),
    PRIMARY KEY (chat_id, league_id)
);

CREATE TABLE IF NOT EXISTS chat_settings (
    chat_id BIGINT PRIMARY KEY,
    lang    TEXT
);
`

// EnsureSchema applies the DDL; every statement is idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
