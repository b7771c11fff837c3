package persistence

import (
	"context"
	"fmt"

	"github.com/shopsync/backend/internal/domain/ingest"
	"gorm.io/gorm"
)

// AdvisoryLock implements RunLock on top of PostgreSQL session advisory
// locks. All replicas must be configured with the same key; whichever session
// acquires it first owns the scheduled run until it releases.
type AdvisoryLock struct {
	db  *gorm.DB
	key int64
}

// NewAdvisoryLock creates an advisory lock bound to the given key
func NewAdvisoryLock(db *gorm.DB, key int64) *AdvisoryLock {
	return &AdvisoryLock{db: db, key: key}
}

// TryAcquire attempts to take the lock without blocking
func (l *AdvisoryLock) TryAcquire(ctx context.Context) (bool, error) {
	var acquired bool
	if err := l.db.WithContext(ctx).
		Raw("SELECT pg_try_advisory_lock(?)", l.key).
		Scan(&acquired).Error; err != nil {
		return false, fmt.Errorf("failed to acquire advisory lock %d: %w", l.key, err)
	}
	return acquired, nil
}

// Release gives the lock back. Safe to call after a failed run; releasing a
// lock the session does not hold returns false upstream and is not an error
// here.
func (l *AdvisoryLock) Release(ctx context.Context) error {
	var released bool
	if err := l.db.WithContext(ctx).
		Raw("SELECT pg_advisory_unlock(?)", l.key).
		Scan(&released).Error; err != nil {
		return fmt.Errorf("failed to release advisory lock %d: %w", l.key, err)
	}
	return nil
}

// Ensure AdvisoryLock implements RunLock
var _ ingest.RunLock = (*AdvisoryLock)(nil)
