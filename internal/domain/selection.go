package domain

import (
	"time"

	"telegram-football-fixtures/internal/domain/model"
)

// PickNearestFuture returns the fixture starting soonest at or after ref,
// or nil when none qualifies. Ties on start time are broken by the smaller
// fixture id so the result is deterministic regardless of input order.
func PickNearestFuture(fixtures []*model.Fixture, ref time.Time) *model.Fixture {
	var best *model.Fixture
	for _, f := range fixtures {
		if f.UTCStart.Before(ref) {
			continue
		}
		if best == nil || f.UTCStart.Before(best.UTCStart) ||
			(f.UTCStart.Equal(best.UTCStart) && f.ID < best.ID) {
			best = f
		}
	}
	return best
}

// PickNearestPast returns the most recently started fixture strictly before
// ref, or nil. Same tie-break as PickNearestFuture.
func PickNearestPast(fixtures []*model.Fixture, ref time.Time) *model.Fixture {
	var best *model.Fixture
	for _, f := range fixtures {
		if !f.UTCStart.Before(ref) {
			continue
		}
		if best == nil || f.UTCStart.After(best.UTCStart) ||
			(f.UTCStart.Equal(best.UTCStart) && f.ID < best.ID) {
			best = f
		}
	}
	return best
}

// Deduplicate removes repeated fixture ids, keeping the first occurrence and
// preserving order. Multi-league/multi-team favourite queries union
// overlapping result sets, so the same fixture can show up more than once.
func Deduplicate(fixtures []*model.Fixture) []*model.Fixture {
	seen := make(map[int64]struct{}, len(fixtures))
	out := fixtures[:0:0]
	for _, f := range fixtures {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}
	return out
}
