package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/usecase"
)

// PlayedWorker fires the full-time result pass. The persisted notified flag
// makes the pass idempotent, so a short interval is safe.
type PlayedWorker struct {
	interval time.Duration
	notifUC  usecase.NotifierUseCase
	log      *zerolog.Logger
}

func NewPlayedWorker(interval time.Duration, notifUC usecase.NotifierUseCase, logger *zerolog.Logger) *PlayedWorker {
	compLog := logger.With().Str("component", "PlayedWorker").Logger()
	return &PlayedWorker{
		interval: interval,
		notifUC:  notifUC,
		log:      &compLog,
	}
}

func (w *PlayedWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting played worker")
	w.runCheck(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping played worker")
			return ctx.Err()
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *PlayedWorker) runCheck(ctx context.Context) {
	sent, err := w.notifUC.RunPlayed(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("played pass failed")
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("full-time alerts sent")
	}
}
