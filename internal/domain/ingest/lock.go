package ingest

import "context"

// RunLock serializes scheduled sync runs across processes. TryAcquire never
// blocks; a false return means another holder owns the lock and the caller
// must skip its run. Release must be called by the acquirer even when the run
// failed.
type RunLock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}
