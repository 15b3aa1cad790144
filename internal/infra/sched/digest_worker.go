// Package sched hosts the periodic workers that drive the notification
// passes.
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/usecase"
)

// DigestWorker fires the daily digest pass. The pass itself decides which
// chats are due, so the tick interval only bounds delivery latency.
type DigestWorker struct {
	interval time.Duration
	notifUC  usecase.NotifierUseCase
	log      *zerolog.Logger
}

func NewDigestWorker(interval time.Duration, notifUC usecase.NotifierUseCase, logger *zerolog.Logger) *DigestWorker {
	compLog := logger.With().Str("component", "DigestWorker").Logger()
	return &DigestWorker{
		interval: interval,
		notifUC:  notifUC,
		log:      &compLog,
	}
}

func (w *DigestWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting digest worker")
	// Run once on startup, then on every tick
	w.runCheck(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping digest worker")
			return ctx.Err()
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *DigestWorker) runCheck(ctx context.Context) {
	sent, err := w.notifUC.RunDailyDigests(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("digest pass failed")
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("daily digests sent")
	}
}
