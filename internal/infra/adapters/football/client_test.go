//go:build !integration

package football_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/config"
	"telegram-football-fixtures/internal/infra/adapters/football"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *football.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := zerolog.Nop()
	return football.NewClient(config.FootballAPIConfig{
		BaseURL:           srv.URL,
		Key:               "test-key",
		RequestsPerMinute: 6000,
	}, &logger)
}

func TestFixturesMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-apisports-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		if got := r.URL.Query().Get("league"); got != "39" {
			t.Errorf("league param = %q", got)
		}
		fmt.Fprint(w, `{
			"paging": {"current": 1, "total": 1},
			"response": [{
				"fixture": {
					"id": 1001,
					"date": "2026-03-07T15:00:00+00:00",
					"referee": "A. Taylor",
					"venue": {"name": "Anfield"},
					"status": {"long": "Match Finished"}
				},
				"league": {"id": 39, "name": "Premier League", "round": "Regular Season - 28"},
				"teams": {
					"home": {"id": 40, "name": "Liverpool"},
					"away": {"id": 42, "name": "Arsenal"}
				},
				"goals": {"home": 2, "away": 1},
				"score": {"penalty": {"home": null, "away": null}}
			}]
		}`)
	})

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	fixtures, err := client.Fixtures(context.Background(), 39, 2025, from, to)
	if err != nil {
		t.Fatalf("Fixtures: %v", err)
	}
	if len(fixtures) != 1 {
		t.Fatalf("got %d fixtures, want 1", len(fixtures))
	}

	f := fixtures[0]
	if f.ID != 1001 {
		t.Errorf("id = %d", f.ID)
	}
	want := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	if !f.UTCStart.Equal(want) {
		t.Errorf("start = %v, want %v", f.UTCStart, want)
	}
	if f.HomeTeamName() != "Liverpool" || f.AwayTeamName() != "Arsenal" {
		t.Errorf("team names = %q vs %q", f.HomeTeamName(), f.AwayTeamName())
	}
	if f.HomeScore == nil || *f.HomeScore != 2 || f.AwayScore == nil || *f.AwayScore != 1 {
		t.Errorf("score = %v : %v", f.HomeScore, f.AwayScore)
	}
	if !f.Finished() {
		t.Error("expected finished fixture")
	}
	if f.Venue != "Anfield" || f.Referee != "A. Taylor" {
		t.Errorf("venue/referee = %q / %q", f.Venue, f.Referee)
	}
}

func TestFixturesSkipsUnparseableDates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"paging": {"current": 1, "total": 1},
			"response": [
				{"fixture": {"id": 1, "date": "not-a-date"}, "teams": {"home": {"id": 1}, "away": {"id": 2}}},
				{"fixture": {"id": 2, "date": "2026-03-07T15:00:00+00:00"}, "teams": {"home": {"id": 1}, "away": {"id": 2}}}
			]
		}`)
	})

	fixtures, err := client.Fixtures(context.Background(), 39, 2025, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Fixtures: %v", err)
	}
	if len(fixtures) != 1 || fixtures[0].ID != 2 {
		t.Fatalf("expected only the parseable fixture, got %d", len(fixtures))
	}
}

func TestLeaguesPagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			fmt.Fprint(w, `{
				"paging": {"current": 1, "total": 2},
				"response": [{"league": {"id": 39, "name": "Premier League"}, "country": {"name": "England"}}]
			}`)
		case "2":
			fmt.Fprint(w, `{
				"paging": {"current": 2, "total": 2},
				"response": [{"league": {"id": 40, "name": "Championship"}, "country": {"name": "England"}}]
			}`)
		default:
			t.Errorf("unexpected page %q", page)
			http.Error(w, "bad page", http.StatusBadRequest)
		}
	})

	leagues, err := client.Leagues(context.Background(), "England")
	if err != nil {
		t.Fatalf("Leagues: %v", err)
	}
	if len(leagues) != 2 {
		t.Fatalf("got %d leagues, want 2", len(leagues))
	}
	if leagues[0].ID != 39 || leagues[1].ID != 40 {
		t.Errorf("league ids = %d, %d", leagues[0].ID, leagues[1].ID)
	}
	if leagues[0].Country != "England" {
		t.Errorf("country = %q", leagues[0].Country)
	}
}

func TestErrorStatusSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	if _, err := client.Leagues(context.Background(), ""); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
