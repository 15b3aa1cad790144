package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/usecase"
)

// ApproachWorker fires the pre-match alert pass. Its interval must stay
// comfortably below the pass lookahead or fixtures can slip through
// unannounced.
type ApproachWorker struct {
	interval time.Duration
	notifUC  usecase.NotifierUseCase
	log      *zerolog.Logger
}

func NewApproachWorker(interval time.Duration, notifUC usecase.NotifierUseCase, logger *zerolog.Logger) *ApproachWorker {
	compLog := logger.With().Str("component", "ApproachWorker").Logger()
	return &ApproachWorker{
		interval: interval,
		notifUC:  notifUC,
		log:      &compLog,
	}
}

func (w *ApproachWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting approach worker")
	w.runCheck(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping approach worker")
			return ctx.Err()
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *ApproachWorker) runCheck(ctx context.Context) {
	sent, err := w.notifUC.RunApproach(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("approach pass failed")
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("pre-match alerts sent")
	}
}
