package worker

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	"github.com/piresc/smartlocker/services/transactions"
)

const pickupLease = "pickups"

// PickupSweeper periodically fails transactions whose pickup window closed.
// A Redis lease keeps concurrent replicas from sweeping the same tick.
type PickupSweeper struct {
	uc       transactions.TransactionUC
	cache    transactions.CacheRepo
	nrApp    *newrelic.Application
	interval time.Duration
	holder   string
	now      func() time.Time
}

// NewPickupSweeper creates a sweeper running every interval
func NewPickupSweeper(uc transactions.TransactionUC, cache transactions.CacheRepo, nrApp *newrelic.Application, interval time.Duration) *PickupSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	host, _ := os.Hostname()
	return &PickupSweeper{
		uc:       uc,
		cache:    cache,
		nrApp:    nrApp,
		interval: interval,
		holder:   host + "-" + uuid.NewString(),
		now:      time.Now,
	}
}

// Run sweeps on every tick until ctx is cancelled
func (s *PickupSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("Pickup sweeper started", logger.Duration("interval", s.interval))
	for {
		select {
		case <-ticker.C:
			s.Tick(ctx)
		case <-ctx.Done():
			logger.Info("Pickup sweeper stopped")
			return
		}
	}
}

// Tick runs one sweep if this replica holds the lease. It returns the number of expired transactions.
func (s *PickupSweeper) Tick(ctx context.Context) int {
	ctx, end := nrpkg.StartBackgroundTransaction(ctx, s.nrApp, "Worker.ExpirePickups")
	defer end()

	ok, err := s.cache.AcquireSweepLease(ctx, pickupLease, s.holder, s.interval)
	if err != nil {
		logger.WarnCtx(ctx, "Sweep lease unavailable, skipping tick", logger.Err(err))
		return 0
	}
	if !ok {
		logger.DebugCtx(ctx, "Sweep lease held by another replica")
		return 0
	}
	defer func() {
		if err := s.cache.ReleaseSweepLease(context.WithoutCancel(ctx), pickupLease, s.holder); err != nil {
			logger.WarnCtx(ctx, "Failed to release sweep lease", logger.Err(err))
		}
	}()

	n, err := s.uc.ExpirePickups(ctx, s.now())
	if err != nil {
		logger.ErrorCtx(ctx, "Pickup sweep failed", logger.Err(err))
		nrpkg.NoticeTransactionError(nrpkg.FromContext(ctx), err)
	}
	if n > 0 {
		logger.InfoCtx(ctx, "Expired pickups", logger.Int("count", n))
	}
	return n
}
