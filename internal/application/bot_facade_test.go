//go:build !integration

package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
)

// ---- stub use cases ----

type stubFixtureUC struct {
	NextMatchForTeamFunc func(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error)
	LastMatchForTeamFunc func(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error)
	NextForFavouritesFunc func(ctx context.Context, chatID int64) ([]*model.Fixture, error)
	LastForFavouritesFunc func(ctx context.Context, chatID int64) ([]*model.Fixture, error)
	DayMatchesFunc       func(ctx context.Context, chatID int64, w domain.DayWindow) ([]*model.Fixture, string, error)
	WithinHoursFunc      func(ctx context.Context, chatID int64, hours int) ([]*model.Fixture, error)
	zone                 string
}

func (s *stubFixtureUC) NextMatchForTeam(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error) {
	return s.NextMatchForTeamFunc(ctx, chatID, teamName)
}

func (s *stubFixtureUC) LastMatchForTeam(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error) {
	return s.LastMatchForTeamFunc(ctx, chatID, teamName)
}

func (s *stubFixtureUC) NextForFavourites(ctx context.Context, chatID int64) ([]*model.Fixture, error) {
	return s.NextForFavouritesFunc(ctx, chatID)
}

func (s *stubFixtureUC) LastForFavourites(ctx context.Context, chatID int64) ([]*model.Fixture, error) {
	return s.LastForFavouritesFunc(ctx, chatID)
}

func (s *stubFixtureUC) DayMatches(ctx context.Context, chatID int64, w domain.DayWindow) ([]*model.Fixture, string, error) {
	return s.DayMatchesFunc(ctx, chatID, w)
}

func (s *stubFixtureUC) WithinHours(ctx context.Context, chatID int64, hours int) ([]*model.Fixture, error) {
	return s.WithinHoursFunc(ctx, chatID, hours)
}

func (s *stubFixtureUC) DisplayZone(ctx context.Context, chatID int64) string {
	if s.zone == "" {
		return "UTC"
	}
	return s.zone
}

type stubSubUC struct {
	SubscribeFunc    func(ctx context.Context, chatID int64) error
	EnableFunc       func(ctx context.Context, chatID int64, t model.NotificationType) error
	DisableFunc      func(ctx context.Context, chatID int64, t model.NotificationType) error
	SetDailyTimeFunc func(ctx context.Context, chatID int64, hhmm string) error
	ConfigFunc       func(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error)
}

func (s *stubSubUC) Subscribe(ctx context.Context, chatID int64) error {
	return s.SubscribeFunc(ctx, chatID)
}

func (s *stubSubUC) Enable(ctx context.Context, chatID int64, t model.NotificationType) error {
	return s.EnableFunc(ctx, chatID, t)
}

func (s *stubSubUC) Disable(ctx context.Context, chatID int64, t model.NotificationType) error {
	return s.DisableFunc(ctx, chatID, t)
}

func (s *stubSubUC) SetDailyTime(ctx context.Context, chatID int64, hhmm string) error {
	return s.SetDailyTimeFunc(ctx, chatID, hhmm)
}

func (s *stubSubUC) Config(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error) {
	return s.ConfigFunc(ctx, chatID)
}

func sampleFixture() *model.Fixture {
	return &model.Fixture{
		ID:       1,
		UTCStart: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		HomeTeam: &model.Team{ID: 40, Name: "Liverpool"},
		AwayTeam: &model.Team{ID: 42, Name: "Arsenal"},
		League:   &model.League{ID: 39, Name: "Premier League"},
		Status:   "Not Started",
	}
}

// ---- tests ----

func TestHandleNextMatchWithTeamArg(t *testing.T) {
	fixtureUC := &stubFixtureUC{
		NextMatchForTeamFunc: func(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error) {
			if teamName != "Liverpool" {
				t.Errorf("team arg = %q", teamName)
			}
			return sampleFixture(), nil
		},
	}
	facade := NewBotFacade(fixtureUC, nil, nil)

	chunks, err := facade.HandleNextMatch(context.Background(), 7, "  Liverpool ")
	if err != nil {
		t.Fatalf("HandleNextMatch: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	if !strings.Contains(chunks[0], "Liverpool") || !strings.Contains(chunks[0], "Arsenal") {
		t.Errorf("message = %q", chunks[0])
	}
}

func TestHandleNextMatchNotFoundIsFriendly(t *testing.T) {
	fixtureUC := &stubFixtureUC{
		NextMatchForTeamFunc: func(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error) {
			return nil, domain.ErrNotFound
		},
	}
	facade := NewBotFacade(fixtureUC, nil, nil)

	chunks, err := facade.HandleNextMatch(context.Background(), 7, "Atlantis")
	if err != nil {
		t.Fatalf("not-found must map to text, got error %v", err)
	}
	if len(chunks) != 1 || !strings.Contains(chunks[0], "No upcoming match") {
		t.Errorf("message = %v", chunks)
	}
}

func TestHandleNextMatchNoFavourites(t *testing.T) {
	fixtureUC := &stubFixtureUC{
		NextForFavouritesFunc: func(ctx context.Context, chatID int64) ([]*model.Fixture, error) {
			return nil, domain.ErrNotFound
		},
	}
	facade := NewBotFacade(fixtureUC, nil, nil)

	chunks, err := facade.HandleNextMatch(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("HandleNextMatch: %v", err)
	}
	if !strings.Contains(chunks[0], "/add_favourite_team") {
		t.Errorf("message should point at favourites setup: %q", chunks[0])
	}
}

func TestHandleDayMatches(t *testing.T) {
	fixtureUC := &stubFixtureUC{
		zone: "Europe/Madrid",
		DayMatchesFunc: func(ctx context.Context, chatID int64, w domain.DayWindow) ([]*model.Fixture, string, error) {
			return []*model.Fixture{sampleFixture()}, "Europe/Madrid", nil
		},
	}
	facade := NewBotFacade(fixtureUC, nil, nil)

	chunks, err := facade.HandleDayMatches(context.Background(), 7, domain.WindowToday)
	if err != nil {
		t.Fatalf("HandleDayMatches: %v", err)
	}
	if !strings.HasPrefix(chunks[0], "📅 Matches today (Europe/Madrid)") {
		t.Errorf("header = %q", chunks[0])
	}

	t.Run("empty day", func(t *testing.T) {
		fixtureUC.DayMatchesFunc = func(ctx context.Context, chatID int64, w domain.DayWindow) ([]*model.Fixture, string, error) {
			return nil, "Europe/Madrid", nil
		}
		chunks, err := facade.HandleDayMatches(context.Background(), 7, domain.WindowTomorrow)
		if err != nil {
			t.Fatalf("HandleDayMatches: %v", err)
		}
		if len(chunks) != 1 || !strings.Contains(chunks[0], "No matches tomorrow") {
			t.Errorf("message = %v", chunks)
		}
	})
}

func TestHandleMatchesWithin(t *testing.T) {
	fixtureUC := &stubFixtureUC{
		zone: "Europe/Madrid",
		WithinHoursFunc: func(ctx context.Context, chatID int64, hours int) ([]*model.Fixture, error) {
			if hours != 3 {
				t.Errorf("hours = %d, want 3", hours)
			}
			return []*model.Fixture{sampleFixture()}, nil
		},
	}
	facade := NewBotFacade(fixtureUC, nil, nil)

	chunks, err := facade.HandleMatchesWithin(context.Background(), 7, " 3 ")
	if err != nil {
		t.Fatalf("HandleMatchesWithin: %v", err)
	}
	if !strings.HasPrefix(chunks[0], "🕑 Matches within 3 hours (Europe/Madrid)") {
		t.Errorf("header = %q", chunks[0])
	}
	if !strings.Contains(chunks[0], "Liverpool") {
		t.Errorf("fixture missing: %q", chunks[0])
	}

	t.Run("negative hours use the magnitude", func(t *testing.T) {
		if _, err := facade.HandleMatchesWithin(context.Background(), 7, "-3"); err != nil {
			t.Fatalf("HandleMatchesWithin: %v", err)
		}
	})

	t.Run("non-numeric argument gets usage text", func(t *testing.T) {
		chunks, err := facade.HandleMatchesWithin(context.Background(), 7, "soon")
		if err != nil {
			t.Fatalf("HandleMatchesWithin: %v", err)
		}
		if len(chunks) != 1 || !strings.Contains(chunks[0], "number of hours") {
			t.Errorf("message = %v", chunks)
		}
	})

	t.Run("empty window", func(t *testing.T) {
		fixtureUC.WithinHoursFunc = func(ctx context.Context, chatID int64, hours int) ([]*model.Fixture, error) {
			return nil, nil
		}
		chunks, err := facade.HandleMatchesWithin(context.Background(), 7, "2")
		if err != nil {
			t.Fatalf("HandleMatchesWithin: %v", err)
		}
		if len(chunks) != 1 || !strings.Contains(chunks[0], "No matches within 2 hours") {
			t.Errorf("message = %v", chunks)
		}
	})
}

func TestHandleSubscribeMessages(t *testing.T) {
	subUC := &stubSubUC{
		SubscribeFunc: func(ctx context.Context, chatID int64) error { return nil },
	}
	facade := NewBotFacade(nil, nil, subUC)

	text, err := facade.HandleSubscribe(context.Background(), 7)
	if err != nil {
		t.Fatalf("HandleSubscribe: %v", err)
	}
	if !strings.Contains(text, "Subscribed") {
		t.Errorf("message = %q", text)
	}

	subUC.SubscribeFunc = func(ctx context.Context, chatID int64) error { return domain.ErrAlreadySubscribed }
	text, err = facade.HandleSubscribe(context.Background(), 7)
	if err != nil {
		t.Fatalf("HandleSubscribe: %v", err)
	}
	if !strings.Contains(text, "already subscribed") {
		t.Errorf("message = %q", text)
	}
}

func TestHandleSetDailyTimeValidation(t *testing.T) {
	subUC := &stubSubUC{
		SetDailyTimeFunc: func(ctx context.Context, chatID int64, hhmm string) error {
			return domain.ErrInvalidDailyTime
		},
	}
	facade := NewBotFacade(nil, nil, subUC)

	text, err := facade.HandleSetDailyTime(context.Background(), 7, "25:99")
	if err != nil {
		t.Fatalf("validation must map to text, got error %v", err)
	}
	if !strings.Contains(text, "HH:MM") {
		t.Errorf("message = %q", text)
	}
}

func TestHandleSetEnabledBadArgument(t *testing.T) {
	facade := NewBotFacade(nil, nil, &stubSubUC{})

	text, err := facade.HandleSetEnabled(context.Background(), 7, "not-a-number", true)
	if err != nil {
		t.Fatalf("HandleSetEnabled: %v", err)
	}
	if !strings.Contains(text, "notification type") {
		t.Errorf("message = %q", text)
	}
}

func TestHandleNotifConfigRendersRows(t *testing.T) {
	subUC := &stubSubUC{
		ConfigFunc: func(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error) {
			return []*model.NotifSubscription{
				{ChatID: 7, Type: model.NotifTeamsDaily, Enabled: true, DailyTime: "09:30"},
				{ChatID: 7, Type: model.NotifPlayed, Enabled: false},
			}, nil
		},
	}
	facade := NewBotFacade(nil, nil, subUC)

	text, err := facade.HandleNotifConfig(context.Background(), 7)
	if err != nil {
		t.Fatalf("HandleNotifConfig: %v", err)
	}
	if !strings.Contains(text, "09:30") {
		t.Errorf("daily time missing: %q", text)
	}
	if !strings.Contains(text, "on") || !strings.Contains(text, "off") {
		t.Errorf("states missing: %q", text)
	}
}
