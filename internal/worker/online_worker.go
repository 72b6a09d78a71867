package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/repository"
)

// Accounts with no heartbeat for this long are marked offline.
const onlineIdleAfter = 2 * time.Minute

// OnlineSweepWorker marks users offline when their heartbeat goes stale.
type OnlineSweepWorker struct {
	users    *repository.UserRepository
	interval time.Duration
}

// NewOnlineSweepWorker constructs an OnlineSweepWorker.
func NewOnlineSweepWorker(users *repository.UserRepository, interval time.Duration) *OnlineSweepWorker {
	return &OnlineSweepWorker{
		users:    users,
		interval: interval,
	}
}

// Start begins the periodic sweep loop until context is canceled.
func (w *OnlineSweepWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Msg("Starting online sweep worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Online sweep worker stopped")
			return
		}
	}
}

func (w *OnlineSweepWorker) run() {
	swept, err := w.users.SweepIdle(onlineIdleAfter)
	if err != nil {
		log.Error().Err(err).Msg("Online sweep failed")
		return
	}
	if swept > 0 {
		log.Debug().
			Int64("marked_offline", swept).
			Msg("Idle users marked offline")
	}
}
