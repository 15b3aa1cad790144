//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
)

func newSubUC(prefs *mockPrefsRepo) *subscriptionUC {
	logger := zerolog.Nop()
	return NewSubscriptionUseCase(prefs, &mockTxManager{}, &logger)
}

func TestSubscribeCreatesFullSet(t *testing.T) {
	prefs := newMockPrefsRepo()
	uc := newSubUC(prefs)
	chatID := int64(7)

	if err := uc.Subscribe(context.Background(), chatID); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	rows := prefs.subs[chatID]
	if len(rows) != len(model.AllNotificationTypes()) {
		t.Fatalf("got %d rows, want %d", len(rows), len(model.AllNotificationTypes()))
	}
	for _, row := range rows {
		if !row.Enabled {
			t.Errorf("type %d starts disabled", row.Type)
		}
		if row.Type.Daily() && row.DailyTime != model.DefaultDailyTime {
			t.Errorf("daily type %d time = %q, want %q", row.Type, row.DailyTime, model.DefaultDailyTime)
		}
		if !row.Type.Daily() && row.DailyTime != "" {
			t.Errorf("non-daily type %d has a daily time", row.Type)
		}
	}
}

func TestSubscribeTwiceRejected(t *testing.T) {
	uc := newSubUC(newMockPrefsRepo())
	chatID := int64(7)

	if err := uc.Subscribe(context.Background(), chatID); err != nil {
		t.Fatalf("first Subscribe: %v", err)
	}
	if err := uc.Subscribe(context.Background(), chatID); !errors.Is(err, domain.ErrAlreadySubscribed) {
		t.Errorf("second Subscribe err = %v, want ErrAlreadySubscribed", err)
	}
}

func TestDisableLeavesOtherTypesAlone(t *testing.T) {
	prefs := newMockPrefsRepo()
	uc := newSubUC(prefs)
	chatID := int64(7)

	if err := uc.Subscribe(context.Background(), chatID); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := uc.Disable(context.Background(), chatID, model.NotifLeaguesDaily); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	for _, row := range prefs.subs[chatID] {
		want := row.Type != model.NotifLeaguesDaily
		if row.Enabled != want {
			t.Errorf("type %d enabled = %v, want %v", row.Type, row.Enabled, want)
		}
	}

	if err := uc.Enable(context.Background(), chatID, model.NotifLeaguesDaily); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	for _, row := range prefs.subs[chatID] {
		if !row.Enabled {
			t.Errorf("type %d still disabled after Enable", row.Type)
		}
	}
}

func TestEnableUnknownTypeRejected(t *testing.T) {
	uc := newSubUC(newMockPrefsRepo())
	chatID := int64(7)

	// Not subscribed at all.
	if err := uc.Enable(context.Background(), chatID, model.NotifApproach); !errors.Is(err, domain.ErrNotSubscribed) {
		t.Errorf("err = %v, want ErrNotSubscribed", err)
	}

	// Subscribed, but the type number is outside the chat's set.
	if err := uc.Subscribe(context.Background(), chatID); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := uc.Enable(context.Background(), chatID, model.NotificationType(42)); !errors.Is(err, domain.ErrNotSubscribed) {
		t.Errorf("err = %v, want ErrNotSubscribed", err)
	}
}

func TestSetDailyTime(t *testing.T) {
	prefs := newMockPrefsRepo()
	uc := newSubUC(prefs)
	chatID := int64(7)

	if err := uc.Subscribe(context.Background(), chatID); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	t.Run("updates daily rows only", func(t *testing.T) {
		if err := uc.SetDailyTime(context.Background(), chatID, "21:15"); err != nil {
			t.Fatalf("SetDailyTime: %v", err)
		}
		for _, row := range prefs.subs[chatID] {
			if row.Type.Daily() && row.DailyTime != "21:15" {
				t.Errorf("daily type %d time = %q", row.Type, row.DailyTime)
			}
			if !row.Type.Daily() && row.DailyTime != "" {
				t.Errorf("non-daily type %d picked up a daily time", row.Type)
			}
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, bad := range []string{"25:00", "8am", "12:60", ""} {
			if err := uc.SetDailyTime(context.Background(), chatID, bad); !errors.Is(err, domain.ErrInvalidDailyTime) {
				t.Errorf("SetDailyTime(%q) err = %v, want ErrInvalidDailyTime", bad, err)
			}
		}
	})

	t.Run("requires a subscription", func(t *testing.T) {
		if err := uc.SetDailyTime(context.Background(), 999, "09:00"); !errors.Is(err, domain.ErrNotSubscribed) {
			t.Errorf("err = %v, want ErrNotSubscribed", err)
		}
	})
}

func TestConfig(t *testing.T) {
	uc := newSubUC(newMockPrefsRepo())
	chatID := int64(7)

	if _, err := uc.Config(context.Background(), chatID); !errors.Is(err, domain.ErrNotSubscribed) {
		t.Errorf("err = %v, want ErrNotSubscribed", err)
	}

	if err := uc.Subscribe(context.Background(), chatID); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	rows, err := uc.Config(context.Background(), chatID)
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if len(rows) != len(model.AllNotificationTypes()) {
		t.Errorf("got %d rows", len(rows))
	}
}
