// Command seed initializes the schema and pulls reference data and fixtures
// from the football API into Postgres. It is meant to run from cron; a
// second run refreshes statuses and scores of already stored fixtures.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"telegram-football-fixtures/internal/config"
	"telegram-football-fixtures/internal/infra/adapters/football"
	pg "telegram-football-fixtures/internal/infra/db/postgres"
	"telegram-football-fixtures/internal/infra/logging"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	initSchema := flag.Bool("init", false, "create tables before seeding")
	country := flag.String("country", "", "discover leagues of this country instead of using -leagues")
	leagues := flag.String("leagues", "", "comma-separated league ids to ingest")
	days := flag.Int("days", 14, "fixture window: from -days/2 before now to days after")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if *initSchema {
		if err := pg.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
		fmt.Println("schema ready")
	}

	if cfg.Football.Key == "" {
		log.Fatalf("football.key is required for ingestion")
	}
	client := football.NewClient(cfg.Football, logger)
	refRepo := pg.NewReferenceRepo(pool)
	fixtureRepo := pg.NewFixtureRepo(pool)

	// ---- Resolve the league set ----
	var leagueIDs []int64
	switch {
	case *leagues != "":
		for _, part := range strings.Split(*leagues, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				log.Fatalf("bad league id %q: %v", part, err)
			}
			leagueIDs = append(leagueIDs, id)
		}
	case *country != "":
		found, err := client.Leagues(ctx, *country)
		if err != nil {
			log.Fatalf("list leagues: %v", err)
		}
		for _, l := range found {
			if err := refRepo.UpsertLeague(ctx, l); err != nil {
				log.Fatalf("upsert league %d: %v", l.ID, err)
			}
			leagueIDs = append(leagueIDs, l.ID)
		}
		fmt.Printf("discovered %d leagues in %s\n", len(found), *country)
	default:
		log.Fatalf("pass -leagues or -country")
	}

	from := time.Now().UTC().Add(-time.Duration(*days) * 12 * time.Hour)
	to := time.Now().UTC().Add(time.Duration(*days) * 24 * time.Hour)

	totalTeams, totalFixtures := 0, 0
	for _, leagueID := range leagueIDs {
		teams, err := client.Teams(ctx, leagueID, cfg.Football.Season)
		if err != nil {
			log.Fatalf("teams of league %d: %v", leagueID, err)
		}
		for _, t := range teams {
			if err := refRepo.UpsertTeam(ctx, t); err != nil {
				log.Fatalf("upsert team %d: %v", t.ID, err)
			}
		}
		totalTeams += len(teams)

		fixtures, err := client.Fixtures(ctx, leagueID, cfg.Football.Season, from, to)
		if err != nil {
			log.Fatalf("fixtures of league %d: %v", leagueID, err)
		}
		for _, f := range fixtures {
			// The fixtures feed embeds leagues and teams the /teams call
			// may not cover (cups, promoted sides).
			if f.League != nil {
				if err := refRepo.UpsertLeague(ctx, f.League); err != nil {
					log.Fatalf("upsert league %d: %v", f.League.ID, err)
				}
			}
			if f.HomeTeam != nil {
				if err := refRepo.UpsertTeam(ctx, f.HomeTeam); err != nil {
					log.Fatalf("upsert team %d: %v", f.HomeTeam.ID, err)
				}
			}
			if f.AwayTeam != nil {
				if err := refRepo.UpsertTeam(ctx, f.AwayTeam); err != nil {
					log.Fatalf("upsert team %d: %v", f.AwayTeam.ID, err)
				}
			}
			if err := fixtureRepo.Upsert(ctx, f); err != nil {
				log.Fatalf("upsert fixture %d: %v", f.ID, err)
			}
		}
		totalFixtures += len(fixtures)
		fmt.Printf("league %d: %d teams, %d fixtures\n", leagueID, len(teams), len(fixtures))
	}

	fmt.Printf("✅ Seeding complete: %d teams, %d fixtures.\n", totalTeams, totalFixtures)
}
