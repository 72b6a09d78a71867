package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/service"
)

// BestSellerWorker recomputes best seller rankings for festivals currently
// in progress so the dashboard stays current during the festival window.
type BestSellerWorker struct {
	bestSellerSvc *service.BestSellerService
	interval      time.Duration
}

// NewBestSellerWorker constructs a BestSellerWorker.
func NewBestSellerWorker(bestSellerSvc *service.BestSellerService, interval time.Duration) *BestSellerWorker {
	return &BestSellerWorker{
		bestSellerSvc: bestSellerSvc,
		interval:      interval,
	}
}

// Start begins the periodic recompute loop until context is canceled.
func (w *BestSellerWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Msg("Starting best seller worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Best seller worker stopped")
			return
		}
	}
}

func (w *BestSellerWorker) run() {
	festivals, err := w.bestSellerSvc.ActiveFestivals()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get active festivals")
		return
	}
	if len(festivals) == 0 {
		return
	}

	for i := range festivals {
		f := &festivals[i]
		if err := w.bestSellerSvc.RecomputeFestival(f); err != nil {
			log.Error().
				Err(err).
				Int64("festival_id", f.ID).
				Str("festival", f.Name).
				Msg("Failed to recompute best sellers")
			continue
		}
		log.Debug().
			Int64("festival_id", f.ID).
			Str("festival", f.Name).
			Msg("Best sellers recomputed")
	}
}
