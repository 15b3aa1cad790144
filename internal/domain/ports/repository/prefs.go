package repository

import (
	"context"

	"telegram-football-fixtures/internal/domain/model"
)

// PrefsRepository owns all per-chat preference state: time zones,
// favourites, notification subscriptions and the optional language.
type PrefsRepository interface {
	// Time zones. SaveTimeZone with Main set must atomically demote the
	// previous main row for the chat; callers pass the tx from
	// TransactionManager when they need the swap plus a read to be atomic.
	TimeZones(ctx context.Context, chatID int64) ([]*model.UserTimeZone, error)
	MainTimeZone(ctx context.Context, chatID int64) (*model.UserTimeZone, error)
	SaveTimeZone(ctx context.Context, tx Tx, z *model.UserTimeZone) error

	// Favourites. Inserting a duplicate pair returns ErrDuplicateFavourite.
	FavouriteTeams(ctx context.Context, chatID int64) ([]*model.Team, error)
	FavouriteLeagues(ctx context.Context, chatID int64) ([]*model.League, error)
	AddFavouriteTeam(ctx context.Context, chatID, teamID int64) error
	RemoveFavouriteTeam(ctx context.Context, chatID, teamID int64) error
	AddFavouriteLeague(ctx context.Context, chatID, leagueID int64) error
	RemoveFavouriteLeague(ctx context.Context, chatID, leagueID int64) error

	// Notification subscriptions.
	Subscriptions(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error)
	SaveSubscription(ctx context.Context, tx Tx, s *model.NotifSubscription) error
	// SubscribersOf returns enabled rows for one type across all chats.
	SubscribersOf(ctx context.Context, t model.NotificationType) ([]*model.NotifSubscription, error)

	// Language is optional; empty string means "do not translate".
	Language(ctx context.Context, chatID int64) (string, error)
	SaveLanguage(ctx context.Context, chatID int64, lang string) error
}
