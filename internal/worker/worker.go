package worker

import (
	"context"
	"time"

	"github.com/innocentteam/restaurant/internal/clock"
	"go.uber.org/zap"
)

// PendingStore removes rows expired at given time
type PendingStore interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Reaper periodically purges expired pending rows. Expiry is still checked
// lazily on verification; the reaper only keeps the tables from growing.
type Reaper struct {
	stores   []PendingStore
	clock    clock.Clock
	logger   *zap.Logger
	interval time.Duration
}

const defaultReapInterval = time.Minute

// NewReaper creates new Reaper instance over pending stores
func NewReaper(clk clock.Clock, logger *zap.Logger, stores ...PendingStore) *Reaper {
	return &Reaper{
		stores:   stores,
		clock:    clk,
		logger:   logger,
		interval: defaultReapInterval,
	}
}

// Run loops until ctx is done
func (rp *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(rp.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rp.logger.Debug("pending reaper is done")
			return
		case <-ticker.C:
			now := rp.clock.Now()
			for _, store := range rp.stores {
				purged, err := store.PurgeExpired(ctx, now)
				if err != nil {
					rp.logger.Error("purge expired pending rows", zap.Error(err))
					continue
				}
				if purged > 0 {
					rp.logger.Debug("purged expired pending rows", zap.Int64("count", purged))
				}
			}
		}
	}
}
