package usecase

import (
	"context"
	"time"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ FixtureUseCase = (*fixtureUC)(nil)

// FixtureUseCase answers the fixture-selection questions behind the bot
// commands: which match is next or last, and what is on around a given day
// or hour, in the chat's own time zone.
type FixtureUseCase interface {
	NextMatchForTeam(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error)
	LastMatchForTeam(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error)
	NextForFavourites(ctx context.Context, chatID int64) ([]*model.Fixture, error)
	LastForFavourites(ctx context.Context, chatID int64) ([]*model.Fixture, error)
	// DayMatches returns the fixtures of one local calendar day plus the
	// zone they were resolved in.
	DayMatches(ctx context.Context, chatID int64, w domain.DayWindow) ([]*model.Fixture, string, error)
	WithinHours(ctx context.Context, chatID int64, hours int) ([]*model.Fixture, error)
	// DisplayZone is the chat's main zone, or UTC when none is set.
	DisplayZone(ctx context.Context, chatID int64) string
}

type fixtureUC struct {
	fixtures repository.FixtureRepository
	refs     repository.ReferenceRepository
	prefs    repository.PrefsRepository
	excluded []string // statuses dropped from day listings
	log      *zerolog.Logger
	now      func() time.Time
}

// selectionHorizon bounds how far next/last lookups reach.
const selectionHorizon = 90 * 24 * time.Hour

func NewFixtureUseCase(
	fixtures repository.FixtureRepository,
	refs repository.ReferenceRepository,
	prefs repository.PrefsRepository,
	excludedStatuses []string,
	logger *zerolog.Logger,
) *fixtureUC {
	return &fixtureUC{
		fixtures: fixtures,
		refs:     refs,
		prefs:    prefs,
		excluded: excludedStatuses,
		log:      logger,
		now:      time.Now,
	}
}

func (u *fixtureUC) DisplayZone(ctx context.Context, chatID int64) string {
	z, err := u.prefs.MainTimeZone(ctx, chatID)
	if err != nil || z == nil {
		return "UTC"
	}
	return z.Name
}

func (u *fixtureUC) NextMatchForTeam(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error) {
	team, err := u.refs.FindTeamByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	now := u.now()
	to := now.Add(selectionHorizon)
	pool, err := u.fixtures.Query(ctx, repository.FixtureQuery{
		From:    &now,
		To:      &to,
		TeamIDs: []int64{team.ID},
		Limit:   50,
	})
	if err != nil {
		return nil, err
	}
	f := domain.PickNearestFuture(pool, now)
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (u *fixtureUC) LastMatchForTeam(ctx context.Context, chatID int64, teamName string) (*model.Fixture, error) {
	team, err := u.refs.FindTeamByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	now := u.now()
	from := now.Add(-selectionHorizon)
	pool, err := u.fixtures.Query(ctx, repository.FixtureQuery{
		From:      &from,
		To:        &now,
		TeamIDs:   []int64{team.ID},
		OrderDesc: true,
		Limit:     50,
	})
	if err != nil {
		return nil, err
	}
	f := domain.PickNearestPast(pool, now)
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// NextForFavourites picks the nearest future fixture per favourite team and
// per favourite league, deduplicates the union, and orders ascending.
func (u *fixtureUC) NextForFavourites(ctx context.Context, chatID int64) ([]*model.Fixture, error) {
	return u.pickPerFavourite(ctx, chatID, false)
}

func (u *fixtureUC) LastForFavourites(ctx context.Context, chatID int64) ([]*model.Fixture, error) {
	return u.pickPerFavourite(ctx, chatID, true)
}

func (u *fixtureUC) pickPerFavourite(ctx context.Context, chatID int64, past bool) ([]*model.Fixture, error) {
	teams, err := u.prefs.FavouriteTeams(ctx, chatID)
	if err != nil {
		return nil, err
	}
	leagues, err := u.prefs.FavouriteLeagues(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 && len(leagues) == 0 {
		return nil, domain.ErrNotFound
	}

	now := u.now()
	var picked []*model.Fixture
	pick := func(q repository.FixtureQuery) error {
		pool, err := u.fixtures.Query(ctx, q)
		if err != nil {
			return err
		}
		var f *model.Fixture
		if past {
			f = domain.PickNearestPast(pool, now)
		} else {
			f = domain.PickNearestFuture(pool, now)
		}
		if f != nil {
			picked = append(picked, f)
		}
		return nil
	}

	for _, t := range teams {
		if err := pick(u.selectionQuery(now, past, []int64{t.ID}, nil)); err != nil {
			return nil, err
		}
	}
	for _, l := range leagues {
		if err := pick(u.selectionQuery(now, past, nil, []int64{l.ID})); err != nil {
			return nil, err
		}
	}

	// A favourite team playing in a favourite league yields the same fixture
	// from both branches.
	picked = domain.Deduplicate(picked)
	domain.SortByStart(picked, past)
	return picked, nil
}

func (u *fixtureUC) selectionQuery(now time.Time, past bool, teamIDs, leagueIDs []int64) repository.FixtureQuery {
	q := repository.FixtureQuery{TeamIDs: teamIDs, LeagueIDs: leagueIDs, Limit: 50}
	if past {
		from := now.Add(-selectionHorizon)
		q.From, q.To = &from, &now
		q.OrderDesc = true
	} else {
		to := now.Add(selectionHorizon)
		q.From, q.To = &now, &to
	}
	return q
}

// DayMatches runs the day-offset surrounding window: a three-UTC-day sweep
// narrowed to the requested local calendar day in the chat's main zone.
// When the chat has favourites they restrict the pool; otherwise every
// fixture in range qualifies.
func (u *fixtureUC) DayMatches(ctx context.Context, chatID int64, w domain.DayWindow) ([]*model.Fixture, string, error) {
	zone := u.DisplayZone(ctx, chatID)
	now := u.now()
	from, to := w.UTCRange(now)

	teamIDs, leagueIDs := u.favouriteIDs(ctx, chatID)

	var pool []*model.Fixture
	baseQ := repository.FixtureQuery{From: &from, To: &to}
	if len(teamIDs) == 0 && len(leagueIDs) == 0 {
		var err error
		pool, err = u.fixtures.Query(ctx, baseQ)
		if err != nil {
			return nil, zone, err
		}
	} else {
		// Union of the team branch and the league branch; overlap is
		// removed below.
		if len(teamIDs) > 0 {
			q := baseQ
			q.TeamIDs = teamIDs
			part, err := u.fixtures.Query(ctx, q)
			if err != nil {
				return nil, zone, err
			}
			pool = append(pool, part...)
		}
		if len(leagueIDs) > 0 {
			q := baseQ
			q.LeagueIDs = leagueIDs
			part, err := u.fixtures.Query(ctx, q)
			if err != nil {
				return nil, zone, err
			}
			pool = append(pool, part...)
		}
	}

	pool = domain.Deduplicate(pool)
	pool = domain.ExcludeStatuses(pool, u.excluded)
	pool, err := w.FilterLocalDay(pool, now, zone)
	if err != nil {
		return nil, zone, err
	}
	domain.SortByStart(pool, false)
	return pool, zone, nil
}

// WithinHours returns fixtures whose start time of day falls inside
// [now − |h|, now + |h|], wall clock, midnight wraparound included.
func (u *fixtureUC) WithinHours(ctx context.Context, chatID int64, hours int) ([]*model.Fixture, error) {
	now := u.now()
	if hours < 0 {
		hours = -hours
	}
	// Fetch one day around now so the wall-clock filter has every candidate
	// regardless of which calendar day the window spans.
	from := now.Add(-time.Duration(hours)*time.Hour - time.Hour)
	to := now.Add(time.Duration(hours)*time.Hour + time.Hour)

	teamIDs, _ := u.favouriteIDs(ctx, chatID)
	pool, err := u.fixtures.Query(ctx, repository.FixtureQuery{From: &from, To: &to, TeamIDs: teamIDs})
	if err != nil {
		return nil, err
	}
	pool = domain.NewHourWindow(now, hours).Filter(pool)
	pool = domain.Deduplicate(pool)
	domain.SortByStart(pool, false)
	return pool, nil
}

func (u *fixtureUC) favouriteIDs(ctx context.Context, chatID int64) (teamIDs, leagueIDs []int64) {
	if teams, err := u.prefs.FavouriteTeams(ctx, chatID); err == nil {
		for _, t := range teams {
			teamIDs = append(teamIDs, t.ID)
		}
	}
	if leagues, err := u.prefs.FavouriteLeagues(ctx, chatID); err == nil {
		for _, l := range leagues {
			leagueIDs = append(leagueIDs, l.ID)
		}
	}
	return teamIDs, leagueIDs
}
