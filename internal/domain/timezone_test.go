//go:build !integration

package domain_test

import (
	"errors"
	"testing"
	"time"

	"telegram-football-fixtures/internal/domain"
)

func TestLocalize(t *testing.T) {
	instant := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	t.Run("should convert to the named zone", func(t *testing.T) {
		got, err := domain.Localize(instant, "America/Argentina/Buenos_Aires")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got.Hour() != 20 || got.Minute() != 30 {
			t.Errorf("expected 20:30 local, got %s", got.Format("15:04"))
		}
		if got.Day() != 10 {
			t.Errorf("expected local day 10, got %d", got.Day())
		}
	})

	t.Run("should reject an unknown zone name", func(t *testing.T) {
		_, err := domain.Localize(instant, "Mars/Olympus_Mons")
		if !errors.Is(err, domain.ErrUnknownTimeZone) {
			t.Fatalf("expected ErrUnknownTimeZone, got: %v", err)
		}
	})
}

func TestSameCalendarDay(t *testing.T) {
	const zone = "America/Argentina/Buenos_Aires" // UTC-3, no DST

	t.Run("same local day across a UTC day boundary", func(t *testing.T) {
		// 23:30Z on the 10th is still 20:30 on the 10th in Buenos Aires.
		a := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
		b := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
		ok, err := domain.SameCalendarDay(a, b, zone)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !ok {
			t.Error("expected same local calendar day")
		}
	})

	t.Run("different local day when UTC day matches", func(t *testing.T) {
		// 01:30Z on the 11th is 22:30 on the 10th locally, so it shares a
		// local day with the 10th but not with noon on the 11th.
		a := time.Date(2024, 3, 11, 1, 30, 0, 0, time.UTC)
		b := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
		ok, err := domain.SameCalendarDay(a, b, zone)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if ok {
			t.Error("expected different local calendar days")
		}
	})

	t.Run("unknown zone propagates", func(t *testing.T) {
		_, err := domain.SameCalendarDay(time.Now(), time.Now(), "Nowhere/Null")
		if !errors.Is(err, domain.ErrUnknownTimeZone) {
			t.Fatalf("expected ErrUnknownTimeZone, got: %v", err)
		}
	})
}
