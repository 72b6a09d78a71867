package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/service"
)

// LowStockWorker periodically pushes a low stock summary to connected
// LINE accounts so the shop owner restocks before running out.
type LowStockWorker struct {
	lineSvc  *service.LineService
	interval time.Duration
}

// NewLowStockWorker constructs a LowStockWorker.
func NewLowStockWorker(lineSvc *service.LineService, interval time.Duration) *LowStockWorker {
	return &LowStockWorker{
		lineSvc:  lineSvc,
		interval: interval,
	}
}

// Start begins the periodic low stock check loop until context is canceled.
func (w *LowStockWorker) Start(ctx context.Context) {
	if !w.lineSvc.Enabled() {
		log.Info().Msg("Low stock worker disabled, LINE is not configured")
		return
	}

	log.Info().
		Dur("interval", w.interval).
		Msg("Starting low stock worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Low stock worker stopped")
			return
		}
	}
}

func (w *LowStockWorker) run(ctx context.Context) {
	count, err := w.lineSvc.LowStockSweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Low stock sweep failed")
		return
	}
	if count > 0 {
		log.Info().
			Int("low_stock_count", count).
			Msg("Low stock notification sent")
	}
}
