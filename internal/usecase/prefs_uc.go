package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/repository"
)

// Compile-time check
var _ PrefsUseCase = (*prefsUC)(nil)

// PrefsUseCase manages per-chat display preferences: time zones,
// favourite teams and leagues, and the optional translation language.
type PrefsUseCase interface {
	SetMainTimeZone(ctx context.Context, chatID int64, zone string) error
	AddTimeZone(ctx context.Context, chatID int64, zone string) error
	ListTimeZones(ctx context.Context, chatID int64) ([]*model.UserTimeZone, error)

	AddFavouriteTeam(ctx context.Context, chatID int64, ref string) (*model.Team, error)
	RemoveFavouriteTeam(ctx context.Context, chatID int64, ref string) (*model.Team, error)
	ListFavouriteTeams(ctx context.Context, chatID int64) ([]*model.Team, error)
	AddFavouriteLeague(ctx context.Context, chatID int64, ref string) (*model.League, error)
	RemoveFavouriteLeague(ctx context.Context, chatID int64, ref string) (*model.League, error)
	ListFavouriteLeagues(ctx context.Context, chatID int64) ([]*model.League, error)

	SetLanguage(ctx context.Context, chatID int64, lang string) error
}

type prefsUC struct {
	prefs repository.PrefsRepository
	refs  repository.ReferenceRepository
	txm   repository.TransactionManager
	log   *zerolog.Logger
}

func NewPrefsUseCase(prefs repository.PrefsRepository, refs repository.ReferenceRepository, txm repository.TransactionManager, logger *zerolog.Logger) *prefsUC {
	return &prefsUC{prefs: prefs, refs: refs, txm: txm, log: logger}
}

// SetMainTimeZone validates the zone name and atomically replaces the
// chat's previous main zone, keeping the at-most-one-main invariant.
func (u *prefsUC) SetMainTimeZone(ctx context.Context, chatID int64, zone string) error {
	if _, err := domain.Localize(noonUTC(), zone); err != nil {
		return err
	}
	return u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		return u.prefs.SaveTimeZone(ctx, tx, &model.UserTimeZone{ChatID: chatID, Name: zone, Main: true})
	})
}

func (u *prefsUC) AddTimeZone(ctx context.Context, chatID int64, zone string) error {
	if _, err := domain.Localize(noonUTC(), zone); err != nil {
		return err
	}
	return u.prefs.SaveTimeZone(ctx, repository.NoTX, &model.UserTimeZone{ChatID: chatID, Name: zone})
}

func (u *prefsUC) ListTimeZones(ctx context.Context, chatID int64) ([]*model.UserTimeZone, error) {
	return u.prefs.TimeZones(ctx, chatID)
}

func (u *prefsUC) AddFavouriteTeam(ctx context.Context, chatID int64, ref string) (*model.Team, error) {
	team, err := u.resolveTeam(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := u.prefs.AddFavouriteTeam(ctx, chatID, team.ID); err != nil {
		return nil, err
	}
	return team, nil
}

func (u *prefsUC) RemoveFavouriteTeam(ctx context.Context, chatID int64, ref string) (*model.Team, error) {
	team, err := u.resolveTeam(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := u.prefs.RemoveFavouriteTeam(ctx, chatID, team.ID); err != nil {
		return nil, err
	}
	return team, nil
}

func (u *prefsUC) ListFavouriteTeams(ctx context.Context, chatID int64) ([]*model.Team, error) {
	return u.prefs.FavouriteTeams(ctx, chatID)
}

func (u *prefsUC) AddFavouriteLeague(ctx context.Context, chatID int64, ref string) (*model.League, error) {
	league, err := u.resolveLeague(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := u.prefs.AddFavouriteLeague(ctx, chatID, league.ID); err != nil {
		return nil, err
	}
	return league, nil
}

func (u *prefsUC) RemoveFavouriteLeague(ctx context.Context, chatID int64, ref string) (*model.League, error) {
	league, err := u.resolveLeague(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := u.prefs.RemoveFavouriteLeague(ctx, chatID, league.ID); err != nil {
		return nil, err
	}
	return league, nil
}

func (u *prefsUC) ListFavouriteLeagues(ctx context.Context, chatID int64) ([]*model.League, error) {
	return u.prefs.FavouriteLeagues(ctx, chatID)
}

func (u *prefsUC) SetLanguage(ctx context.Context, chatID int64, lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang != "" && len(lang) != 2 {
		return domain.ErrInvalidArgument
	}
	return u.prefs.SaveLanguage(ctx, chatID, lang)
}

// noonUTC is an arbitrary probe instant for zone-name validation.
func noonUTC() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// resolveTeam accepts either a numeric id or an exact team name.
func (u *prefsUC) resolveTeam(ctx context.Context, ref string) (*model.Team, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidArgument
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return u.refs.FindTeamByID(ctx, id)
	}
	return u.refs.FindTeamByName(ctx, ref)
}

func (u *prefsUC) resolveLeague(ctx context.Context, ref string) (*model.League, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidArgument
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return u.refs.FindLeagueByID(ctx, id)
	}
	return u.refs.FindLeagueByName(ctx, ref)
}
