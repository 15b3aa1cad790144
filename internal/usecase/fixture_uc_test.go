//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
)

func newFixtureUC(fixtures *mockFixtureRepo, refs *mockReferenceRepo, prefs *mockPrefsRepo, now time.Time) *fixtureUC {
	logger := zerolog.Nop()
	uc := NewFixtureUseCase(fixtures, refs, prefs, []string{"Match Postponed", "Match Cancelled"}, &logger)
	uc.now = func() time.Time { return now }
	return uc
}

func TestNextMatchForTeam(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	liverpool := &model.Team{ID: 40, Name: "Liverpool"}

	past := fx(1, now.Add(-24*time.Hour))
	soon := fx(2, now.Add(2*time.Hour))
	later := fx(3, now.Add(48*time.Hour))
	for _, f := range []*model.Fixture{past, soon, later} {
		f.HomeTeamID = liverpool.ID
	}

	fixtures := &mockFixtureRepo{fixtures: []*model.Fixture{past, soon, later}}
	refs := &mockReferenceRepo{teams: []*model.Team{liverpool}}
	uc := newFixtureUC(fixtures, refs, newMockPrefsRepo(), now)

	t.Run("picks nearest future fixture", func(t *testing.T) {
		got, err := uc.NextMatchForTeam(context.Background(), 1, "Liverpool")
		if err != nil {
			t.Fatalf("NextMatchForTeam: %v", err)
		}
		if got.ID != 2 {
			t.Errorf("picked fixture %d, want 2", got.ID)
		}
	})

	t.Run("name lookup is case-insensitive", func(t *testing.T) {
		if _, err := uc.NextMatchForTeam(context.Background(), 1, "liverpool"); err != nil {
			t.Fatalf("NextMatchForTeam: %v", err)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := uc.NextMatchForTeam(context.Background(), 1, "Atlantis FC")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("no upcoming fixtures", func(t *testing.T) {
		emptyUC := newFixtureUC(&mockFixtureRepo{}, refs, newMockPrefsRepo(), now)
		_, err := emptyUC.NextMatchForTeam(context.Background(), 1, "Liverpool")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestLastMatchForTeam(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	team := &model.Team{ID: 40, Name: "Liverpool"}

	older := finishedFx(1, now.Add(-72*time.Hour), 1, 0)
	recent := finishedFx(2, now.Add(-24*time.Hour), 2, 2)
	future := fx(3, now.Add(24*time.Hour))
	for _, f := range []*model.Fixture{older, recent, future} {
		f.AwayTeamID = team.ID
	}

	fixtures := &mockFixtureRepo{fixtures: []*model.Fixture{older, recent, future}}
	refs := &mockReferenceRepo{teams: []*model.Team{team}}
	uc := newFixtureUC(fixtures, refs, newMockPrefsRepo(), now)

	got, err := uc.LastMatchForTeam(context.Background(), 1, "Liverpool")
	if err != nil {
		t.Fatalf("LastMatchForTeam: %v", err)
	}
	if got.ID != 2 {
		t.Errorf("picked fixture %d, want 2", got.ID)
	}
}

func TestNextForFavourites(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	chatID := int64(7)

	// Team 40's next fixture and league 1's next fixture are the same match;
	// the result must carry it once.
	shared := fx(1, now.Add(3*time.Hour))
	shared.HomeTeamID = 40
	shared.LeagueID = 1
	other := fx(2, now.Add(5*time.Hour))
	other.HomeTeamID = 99
	other.LeagueID = 1

	prefs := newMockPrefsRepo()
	prefs.favTeams[chatID] = []*model.Team{{ID: 40, Name: "Liverpool"}}
	prefs.favLeagues[chatID] = []*model.League{{ID: 1, Name: "Premier League"}}

	fixtures := &mockFixtureRepo{fixtures: []*model.Fixture{shared, other}}
	uc := newFixtureUC(fixtures, &mockReferenceRepo{}, prefs, now)

	got, err := uc.NextForFavourites(context.Background(), chatID)
	if err != nil {
		t.Fatalf("NextForFavourites: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d fixtures, want 1 (deduplicated)", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("picked fixture %d, want 1", got[0].ID)
	}

	t.Run("no favourites", func(t *testing.T) {
		_, err := uc.NextForFavourites(context.Background(), 999)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestDayMatchesLocalDayBoundary(t *testing.T) {
	// Chat zone is UTC+3: a fixture at 22:30Z on March 9 is already
	// March 10 locally, while one at 20:00Z is still March 9.
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	chatID := int64(7)

	lateEvening := fx(1, time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC))
	priorDay := fx(2, time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC))
	midDay := fx(3, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	prefs := newMockPrefsRepo()
	prefs.zones[chatID] = []*model.UserTimeZone{{ChatID: chatID, Name: "Europe/Moscow", Main: true}}

	fixtures := &mockFixtureRepo{fixtures: []*model.Fixture{lateEvening, priorDay, midDay}}
	uc := newFixtureUC(fixtures, &mockReferenceRepo{}, prefs, now)

	got, zone, err := uc.DayMatches(context.Background(), chatID, domain.WindowToday)
	if err != nil {
		t.Fatalf("DayMatches: %v", err)
	}
	if zone != "Europe/Moscow" {
		t.Errorf("zone = %q", zone)
	}
	if len(got) != 2 {
		t.Fatalf("got %d fixtures, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("fixture ids = %d, %d; want 1, 3", got[0].ID, got[1].ID)
	}
}

func TestDayMatchesExcludesStatusesAndRestrictsToFavourites(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	chatID := int64(7)

	mine := fx(1, now.Add(2*time.Hour))
	mine.HomeTeamID = 40
	postponed := fx(2, now.Add(3*time.Hour))
	postponed.HomeTeamID = 40
	postponed.Status = "Match Postponed"
	theirs := fx(3, now.Add(4*time.Hour))
	theirs.HomeTeamID = 99

	prefs := newMockPrefsRepo()
	prefs.favTeams[chatID] = []*model.Team{{ID: 40}}

	fixtures := &mockFixtureRepo{fixtures: []*model.Fixture{mine, postponed, theirs}}
	uc := newFixtureUC(fixtures, &mockReferenceRepo{}, prefs, now)

	got, _, err := uc.DayMatches(context.Background(), chatID, domain.WindowToday)
	if err != nil {
		t.Fatalf("DayMatches: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %v, want only fixture 1", ids(got))
	}

	t.Run("no favourites means every fixture", func(t *testing.T) {
		got, _, err := uc.DayMatches(context.Background(), 999, domain.WindowToday)
		if err != nil {
			t.Fatalf("DayMatches: %v", err)
		}
		// Postponed is still excluded by status.
		if len(got) != 2 {
			t.Fatalf("got %v, want fixtures 1 and 3", ids(got))
		}
	})
}

func TestWithinHoursWrapsMidnight(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	before := fx(1, time.Date(2026, 3, 10, 22, 45, 0, 0, time.UTC))
	after := fx(2, time.Date(2026, 3, 11, 0, 15, 0, 0, time.UTC))
	outside := fx(3, time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC))

	fixtures := &mockFixtureRepo{fixtures: []*model.Fixture{before, after, outside}}
	uc := newFixtureUC(fixtures, &mockReferenceRepo{}, newMockPrefsRepo(), now)

	got, err := uc.WithinHours(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("WithinHours: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want fixtures 1 and 2", ids(got))
	}
}

func TestDisplayZone(t *testing.T) {
	prefs := newMockPrefsRepo()
	prefs.zones[7] = []*model.UserTimeZone{{ChatID: 7, Name: "America/Argentina/Buenos_Aires", Main: true}}
	uc := newFixtureUC(&mockFixtureRepo{}, &mockReferenceRepo{}, prefs, time.Now())

	if got := uc.DisplayZone(context.Background(), 7); got != "America/Argentina/Buenos_Aires" {
		t.Errorf("DisplayZone = %q", got)
	}
	if got := uc.DisplayZone(context.Background(), 999); got != "UTC" {
		t.Errorf("DisplayZone fallback = %q, want UTC", got)
	}
}

func ids(fs []*model.Fixture) []int64 {
	out := make([]int64, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.ID)
	}
	return out
}
