package domain

import (
	"sort"
	"strings"
	"time"

	"telegram-football-fixtures/internal/domain/model"
)

// DayWindow selects fixtures around a single local calendar day.
//
// A fixture stored by UTC date may appear to belong to the wrong local day
// near zone boundaries, so candidates are fetched for the three UTC calendar
// days surrounding the target offset and the zone-aware filter then removes
// the false positives. The sweep guarantees the true local-day fixture is
// never missed.
type DayWindow struct {
	// Target is the day offset from "now": negative past, 0 today, positive future.
	Target int
}

var (
	WindowYesterday = DayWindow{Target: -1}
	WindowToday     = DayWindow{Target: 0}
	WindowTomorrow  = DayWindow{Target: 1}
)

// Sweep returns the UTC day offsets to fetch candidates for.
func (w DayWindow) Sweep() [3]int {
	return [3]int{w.Target - 1, w.Target, w.Target + 1}
}

// UTCRange converts the sweep into a half-open [from, to) UTC interval for
// the store query.
func (w DayWindow) UTCRange(now time.Time) (from, to time.Time) {
	sweep := w.Sweep()
	day := now.UTC().Truncate(24 * time.Hour)
	from = day.AddDate(0, 0, sweep[0])
	to = day.AddDate(0, 0, sweep[2]+1)
	return from, to
}

// FilterLocalDay keeps only fixtures whose calendar day, localized to
// zoneName, equals "now" localized to zoneName shifted by the target offset.
// Order is preserved.
func (w DayWindow) FilterLocalDay(fixtures []*model.Fixture, now time.Time, zoneName string) ([]*model.Fixture, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, ErrUnknownTimeZone
	}
	wy, wm, wd := now.In(loc).AddDate(0, 0, w.Target).Date()
	out := fixtures[:0:0]
	for _, f := range fixtures {
		fy, fm, fd := f.UTCStart.In(loc).Date()
		if fy == wy && fm == wm && fd == wd {
			out = append(out, f)
		}
	}
	return out, nil
}

// ExcludeStatuses drops fixtures whose status matches any excluded value,
// case-insensitively. Order is preserved.
func ExcludeStatuses(fixtures []*model.Fixture, excluded []string) []*model.Fixture {
	if len(excluded) == 0 {
		return fixtures
	}
	drop := make(map[string]struct{}, len(excluded))
	for _, s := range excluded {
		drop[strings.ToLower(s)] = struct{}{}
	}
	out := fixtures[:0:0]
	for _, f := range fixtures {
		if _, ok := drop[strings.ToLower(f.Status)]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// HourWindow is a wall-clock time-of-day interval spanning |hours| on either
// side of a reference instant. It is deliberately not calendar-day-bounded:
// when the interval crosses midnight the begin time is later than the end
// time and matching wraps around.
type HourWindow struct {
	begin time.Time
	end   time.Time
}

// NewHourWindow builds the window [ref − |h|, ref + |h|].
func NewHourWindow(ref time.Time, hours int) HourWindow {
	if hours < 0 {
		hours = -hours
	}
	d := time.Duration(hours) * time.Hour
	return HourWindow{begin: ref.Add(-d), end: ref.Add(d)}
}

// NewLookaheadWindow builds the one-sided window [ref, ref + d] used by the
// approach notifier.
func NewLookaheadWindow(ref time.Time, d time.Duration) HourWindow {
	return HourWindow{begin: ref, end: ref.Add(d)}
}

// Contains reports whether the instant's UTC time of day falls inside the
// window, honouring midnight wraparound: when begin > end the window matches
// t >= begin OR t <= end.
func (w HourWindow) Contains(t time.Time) bool {
	ts := secondOfDay(t)
	bs := secondOfDay(w.begin)
	es := secondOfDay(w.end)
	if bs <= es {
		return ts >= bs && ts <= es
	}
	return ts >= bs || ts <= es
}

// Filter keeps fixtures whose start time of day is inside the window.
func (w HourWindow) Filter(fixtures []*model.Fixture) []*model.Fixture {
	out := fixtures[:0:0]
	for _, f := range fixtures {
		if w.Contains(f.UTCStart) {
			out = append(out, f)
		}
	}
	return out
}

func secondOfDay(t time.Time) int {
	u := t.UTC()
	return u.Hour()*3600 + u.Minute()*60 + u.Second()
}

// SortByStart orders fixtures by ascending UTC start time, or descending
// when the caller wants "last" semantics. Equal starts fall back to id so
// output is stable across runs.
func SortByStart(fixtures []*model.Fixture, descending bool) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		a, b := fixtures[i], fixtures[j]
		if a.UTCStart.Equal(b.UTCStart) {
			return a.ID < b.ID
		}
		if descending {
			return a.UTCStart.After(b.UTCStart)
		}
		return a.UTCStart.Before(b.UTCStart)
	})
}

// ParseDailyTime validates and normalizes an "HH:MM" string.
func ParseDailyTime(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", ErrInvalidDailyTime
	}
	return t.Format("15:04"), nil
}

// WithinDailyWindow reports whether "now", localized to zoneName, falls in
// the ±tolerance window centred on the configured HH:MM daily time.
// The scheduler driving this check must itself run at most once per window
// width to keep delivery at-most-once.
func WithinDailyWindow(now time.Time, zoneName, dailyTime string, tolerance time.Duration) (bool, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return false, ErrUnknownTimeZone
	}
	target, err := time.Parse("15:04", dailyTime)
	if err != nil {
		return false, ErrInvalidDailyTime
	}
	local := now.In(loc)
	// A daily time near midnight has part of its window on the other side
	// of the date line, so the nearest centre may sit on the previous or
	// next calendar day.
	best := time.Duration(1<<63 - 1)
	for _, dayOffset := range []int{-1, 0, 1} {
		centre := time.Date(local.Year(), local.Month(), local.Day()+dayOffset,
			target.Hour(), target.Minute(), 0, 0, loc)
		diff := local.Sub(centre)
		if diff < 0 {
			diff = -diff
		}
		if diff < best {
			best = diff
		}
	}
	return best <= tolerance, nil
}
