package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/repository"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// SubscriptionUseCase is the notification gate's state machine:
// unsubscribed -> subscribed-enabled <-> subscribed-disabled, per
// (chat, notification type).
type SubscriptionUseCase interface {
	// Subscribe creates rows for every notification type at once, all
	// enabled. Returns ErrAlreadySubscribed when any row already exists:
	// a chat either has the full set or none.
	Subscribe(ctx context.Context, chatID int64) error
	// Enable and Disable reject types absent from the chat's own row set
	// with ErrNotSubscribed; the catalog knowing the type is not enough.
	Enable(ctx context.Context, chatID int64, t model.NotificationType) error
	Disable(ctx context.Context, chatID int64, t model.NotificationType) error
	// SetDailyTime updates the HH:MM on the chat's daily types.
	SetDailyTime(ctx context.Context, chatID int64, hhmm string) error
	Config(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error)
}

type subscriptionUC struct {
	prefs repository.PrefsRepository
	txm   repository.TransactionManager
	log   *zerolog.Logger
}

func NewSubscriptionUseCase(prefs repository.PrefsRepository, txm repository.TransactionManager, logger *zerolog.Logger) *subscriptionUC {
	return &subscriptionUC{prefs: prefs, txm: txm, log: logger}
}

func (u *subscriptionUC) Subscribe(ctx context.Context, chatID int64) error {
	existing, err := u.prefs.Subscriptions(ctx, chatID)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if len(existing) > 0 {
		return domain.ErrAlreadySubscribed
	}

	return u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		for _, t := range model.AllNotificationTypes() {
			s := &model.NotifSubscription{ChatID: chatID, Type: t, Enabled: true}
			if t.Daily() {
				s.DailyTime = model.DefaultDailyTime
			}
			if err := u.prefs.SaveSubscription(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (u *subscriptionUC) Enable(ctx context.Context, chatID int64, t model.NotificationType) error {
	return u.setEnabled(ctx, chatID, t, true)
}

func (u *subscriptionUC) Disable(ctx context.Context, chatID int64, t model.NotificationType) error {
	return u.setEnabled(ctx, chatID, t, false)
}

func (u *subscriptionUC) setEnabled(ctx context.Context, chatID int64, t model.NotificationType, enabled bool) error {
	row, err := u.findRow(ctx, chatID, t)
	if err != nil {
		return err
	}
	if row.Enabled == enabled {
		return nil
	}
	row.Enabled = enabled
	return u.prefs.SaveSubscription(ctx, repository.NoTX, row)
}

func (u *subscriptionUC) SetDailyTime(ctx context.Context, chatID int64, hhmm string) error {
	normalized, err := domain.ParseDailyTime(hhmm)
	if err != nil {
		return err
	}
	rows, err := u.prefs.Subscriptions(ctx, chatID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotSubscribed
	}
	return u.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		for _, row := range rows {
			if !row.Type.Daily() {
				continue
			}
			row.DailyTime = normalized
			if err := u.prefs.SaveSubscription(ctx, tx, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (u *subscriptionUC) Config(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error) {
	rows, err := u.prefs.Subscriptions(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotSubscribed
	}
	return rows, nil
}

func (u *subscriptionUC) findRow(ctx context.Context, chatID int64, t model.NotificationType) (*model.NotifSubscription, error) {
	rows, err := u.prefs.Subscriptions(ctx, chatID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Type == t {
			return row, nil
		}
	}
	// Data-integrity check: the type may exist in the catalog without being
	// in this chat's set; mutating anyway would break the all-or-nothing
	// invariant.
	return nil, domain.ErrNotSubscribed
}
