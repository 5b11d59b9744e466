package market

import (
	"context"
	"time"

	"priceoffers/internal/logger"
)

//go:generate mockgen -source=sweeper.go -destination=mock_expirer_test.go -package=market

// Expirer переводит просроченные запросы в expired. Реализуется *Service.
type Expirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

// Sweeper periodically expires overdue demands. Listing reads sweep on their own,
// so the sweeper only keeps statuses fresh between reads.
type Sweeper struct {
	expirer  Expirer
	log      *logger.Logger
	interval time.Duration
}

func NewSweeper(expirer Expirer, log *logger.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		log:      log.With("component", "sweeper"),
		interval: interval,
	}
}

// Run блокируется до отмены ctx. Ошибка одного прохода не останавливает следующие.
func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	sw.log.Info("expiry sweeper started", "interval", sw.interval.String())
	for {
		select {
		case <-ctx.Done():
			sw.log.Info("expiry sweeper stopped")
			return
		case <-ticker.C:
			if _, err := sw.expirer.ExpireOverdue(ctx); err != nil && ctx.Err() == nil {
				sw.log.Error("expiry sweep failed", "error", err)
			}
		}
	}
}
