package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/shopsync/backend/internal/application/ingest"
	"github.com/shopsync/backend/internal/domain/commerce"
	domainingest "github.com/shopsync/backend/internal/domain/ingest"
	"go.uber.org/zap"
)

// StoreSyncer runs a full backfill for one store
type StoreSyncer interface {
	SyncStore(ctx context.Context, store *commerce.Store) (ingest.StoreSyncStats, error)
}

// SyncCoordinatorConfig holds configuration for the sync coordinator
type SyncCoordinatorConfig struct {
	// Interval is how often a sync run is attempted
	Interval time.Duration
	// StoreDelay is the pause between stores within one run
	StoreDelay time.Duration
}

// SyncCoordinator drives the periodic backfill across every onboarded store.
// Replicas race for a shared run lock each tick; the loser skips the tick
// entirely, so at most one run is in flight cluster-wide.
type SyncCoordinator struct {
	config SyncCoordinatorConfig
	lock   domainingest.RunLock
	stores commerce.StoreRepository
	syncer StoreSyncer
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSyncCoordinator creates a new sync coordinator
func NewSyncCoordinator(
	config SyncCoordinatorConfig,
	lock domainingest.RunLock,
	stores commerce.StoreRepository,
	syncer StoreSyncer,
	logger *zap.Logger,
) *SyncCoordinator {
	return &SyncCoordinator{
		config: config,
		lock:   lock,
		stores: stores,
		syncer: syncer,
		logger: logger,
	}
}

// Start starts the coordinator loop
func (c *SyncCoordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Sync coordinator started",
		zap.Duration("interval", c.config.Interval),
		zap.Duration("store_delay", c.config.StoreDelay),
	)

	return nil
}

// Stop stops the coordinator loop and waits for an in-flight run to finish
func (c *SyncCoordinator) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Sync coordinator stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *SyncCoordinator) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RunOnce(ctx)
		}
	}
}

// RunStats summarizes one coordinator run
type RunStats struct {
	Stores   int
	Imported int
	Failures int
	Skipped  bool
}

// RunOnce attempts a single sync run. Exported so operators and tests can
// trigger a run outside the ticker.
func (c *SyncCoordinator) RunOnce(ctx context.Context) RunStats {
	acquired, err := c.lock.TryAcquire(ctx)
	if err != nil {
		c.logger.Error("Failed to probe run lock", zap.Error(err))
		return RunStats{Skipped: true}
	}
	if !acquired {
		c.logger.Debug("Run lock held elsewhere, skipping tick")
		return RunStats{Skipped: true}
	}
	defer func() {
		if err := c.lock.Release(ctx); err != nil {
			c.logger.Error("Failed to release run lock", zap.Error(err))
		}
	}()

	start := time.Now()
	stats := c.syncAllStores(ctx)

	c.logger.Info("Sync run finished",
		zap.Int("stores", stats.Stores),
		zap.Int("imported", stats.Imported),
		zap.Int("failures", stats.Failures),
		zap.Duration("elapsed", time.Since(start)),
	)
	return stats
}

// syncAllStores visits every store in enumeration order. One store's failure
// never stops the run; it is logged with store context and counted.
func (c *SyncCoordinator) syncAllStores(ctx context.Context) RunStats {
	stores, err := c.stores.FindAll(ctx)
	if err != nil {
		c.logger.Error("Failed to enumerate stores", zap.Error(err))
		return RunStats{Failures: 1}
	}

	stats := RunStats{Stores: len(stores)}
	for i := range stores {
		store := &stores[i]

		imported, err := c.syncStore(ctx, store)
		stats.Imported += imported
		if err != nil {
			stats.Failures++
			c.logger.Error("Store sync failed",
				zap.String("shop_domain", store.ShopDomain),
				zap.Error(err),
			)
		}

		if ctx.Err() != nil {
			break
		}
		if i < len(stores)-1 {
			c.pause(ctx)
		}
	}
	return stats
}

// syncStore wraps one store's backfill so a panic inside it is contained at
// the store boundary.
func (c *SyncCoordinator) syncStore(ctx context.Context, store *commerce.Store) (imported int, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic during store sync",
				zap.String("shop_domain", store.ShopDomain),
				zap.Any("panic", r),
				zap.Stack("stacktrace"),
			)
			err = &PanicError{ShopDomain: store.ShopDomain, Value: r}
		}
	}()

	stats, err := c.syncer.SyncStore(ctx, store)
	return stats.Total(), err
}

func (c *SyncCoordinator) pause(ctx context.Context) {
	if c.config.StoreDelay <= 0 {
		return
	}
	timer := time.NewTimer(c.config.StoreDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
