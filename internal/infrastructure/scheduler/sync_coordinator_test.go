package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	appingest "github.com/shopsync/backend/internal/application/ingest"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRunLock is an in-process stand-in for the advisory lock
type fakeRunLock struct {
	mu       sync.Mutex
	held     bool
	releases int32
	probeErr error
}

func (l *fakeRunLock) TryAcquire(ctx context.Context) (bool, error) {
	if l.probeErr != nil {
		return false, l.probeErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *fakeRunLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	atomic.AddInt32(&l.releases, 1)
	return nil
}

type fakeStoreRepo struct {
	commerce.StoreRepository
	stores []commerce.Store
	err    error
}

func (r *fakeStoreRepo) FindAll(ctx context.Context) ([]commerce.Store, error) {
	return r.stores, r.err
}

// fakeSyncer maps shop domain to a canned result
type fakeSyncer struct {
	mu      sync.Mutex
	visited []string
	results map[string]fakeSyncResult
	block   chan struct{}
}

type fakeSyncResult struct {
	stats appingest.StoreSyncStats
	err   error
	panic bool
}

func (s *fakeSyncer) SyncStore(ctx context.Context, store *commerce.Store) (appingest.StoreSyncStats, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.visited = append(s.visited, store.ShopDomain)
	s.mu.Unlock()

	r := s.results[store.ShopDomain]
	if r.panic {
		panic("boom")
	}
	return r.stats, r.err
}

func testStores(t *testing.T, domains ...string) []commerce.Store {
	t.Helper()
	stores := make([]commerce.Store, 0, len(domains))
	for _, d := range domains {
		store, err := commerce.NewStore(uuid.New(), d, "shpat_token")
		require.NoError(t, err)
		stores = append(stores, *store)
	}
	return stores
}

func newTestCoordinator(lock *fakeRunLock, repo *fakeStoreRepo, syncer *fakeSyncer) *SyncCoordinator {
	return NewSyncCoordinator(
		SyncCoordinatorConfig{Interval: time.Hour},
		lock, repo, syncer, zap.NewNop(),
	)
}

func TestSyncCoordinator_RunOnceSyncsAllStores(t *testing.T) {
	lock := &fakeRunLock{}
	repo := &fakeStoreRepo{stores: testStores(t, "a.myshopify.com", "b.myshopify.com")}
	syncer := &fakeSyncer{results: map[string]fakeSyncResult{
		"a.myshopify.com": {stats: appingest.StoreSyncStats{Products: 3, Orders: 2}},
		"b.myshopify.com": {stats: appingest.StoreSyncStats{Customers: 5}},
	}}

	stats := newTestCoordinator(lock, repo, syncer).RunOnce(context.Background())

	assert.False(t, stats.Skipped)
	assert.Equal(t, 2, stats.Stores)
	assert.Equal(t, 10, stats.Imported)
	assert.Equal(t, 0, stats.Failures)
	assert.Equal(t, []string{"a.myshopify.com", "b.myshopify.com"}, syncer.visited)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lock.releases))
}

func TestSyncCoordinator_ConcurrentRunsExcludeEachOther(t *testing.T) {
	lock := &fakeRunLock{}
	repo := &fakeStoreRepo{stores: testStores(t, "a.myshopify.com")}
	syncer := &fakeSyncer{
		results: map[string]fakeSyncResult{"a.myshopify.com": {}},
		block:   make(chan struct{}),
	}
	coordinator := newTestCoordinator(lock, repo, syncer)

	first := make(chan RunStats, 1)
	go func() { first <- coordinator.RunOnce(context.Background()) }()

	// Wait until the first run holds the lock, then race a second run
	require.Eventually(t, func() bool {
		lock.mu.Lock()
		defer lock.mu.Unlock()
		return lock.held
	}, time.Second, time.Millisecond)

	second := coordinator.RunOnce(context.Background())
	assert.True(t, second.Skipped)

	close(syncer.block)
	assert.False(t, (<-first).Skipped)
	assert.Equal(t, []string{"a.myshopify.com"}, syncer.visited)
}

func TestSyncCoordinator_LockProbeFailureSkipsRun(t *testing.T) {
	lock := &fakeRunLock{probeErr: errors.New("connection refused")}
	repo := &fakeStoreRepo{stores: testStores(t, "a.myshopify.com")}
	syncer := &fakeSyncer{results: map[string]fakeSyncResult{}}

	stats := newTestCoordinator(lock, repo, syncer).RunOnce(context.Background())

	assert.True(t, stats.Skipped)
	assert.Empty(t, syncer.visited)
	assert.Equal(t, int32(0), atomic.LoadInt32(&lock.releases))
}

func TestSyncCoordinator_OneStoreFailureDoesNotStopTheRun(t *testing.T) {
	lock := &fakeRunLock{}
	repo := &fakeStoreRepo{stores: testStores(t, "a.myshopify.com", "b.myshopify.com", "c.myshopify.com")}
	syncer := &fakeSyncer{results: map[string]fakeSyncResult{
		"a.myshopify.com": {stats: appingest.StoreSyncStats{Products: 1}},
		"b.myshopify.com": {err: errors.New("upstream 500")},
		"c.myshopify.com": {stats: appingest.StoreSyncStats{Products: 1}},
	}}

	stats := newTestCoordinator(lock, repo, syncer).RunOnce(context.Background())

	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, []string{"a.myshopify.com", "b.myshopify.com", "c.myshopify.com"}, syncer.visited)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lock.releases))
}

func TestSyncCoordinator_PanicContainedAtStoreBoundary(t *testing.T) {
	lock := &fakeRunLock{}
	repo := &fakeStoreRepo{stores: testStores(t, "a.myshopify.com", "b.myshopify.com")}
	syncer := &fakeSyncer{results: map[string]fakeSyncResult{
		"a.myshopify.com": {panic: true},
		"b.myshopify.com": {stats: appingest.StoreSyncStats{Orders: 4}},
	}}

	stats := newTestCoordinator(lock, repo, syncer).RunOnce(context.Background())

	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 4, stats.Imported)
	assert.Contains(t, syncer.visited, "b.myshopify.com")
	assert.Equal(t, int32(1), atomic.LoadInt32(&lock.releases))
}

func TestSyncCoordinator_EnumerationFailureReleasesLock(t *testing.T) {
	lock := &fakeRunLock{}
	repo := &fakeStoreRepo{err: errors.New("db down")}
	syncer := &fakeSyncer{results: map[string]fakeSyncResult{}}

	stats := newTestCoordinator(lock, repo, syncer).RunOnce(context.Background())

	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lock.releases))
}

func TestSyncCoordinator_StartStopIdempotent(t *testing.T) {
	lock := &fakeRunLock{}
	repo := &fakeStoreRepo{}
	syncer := &fakeSyncer{results: map[string]fakeSyncResult{}}
	coordinator := newTestCoordinator(lock, repo, syncer)

	ctx := context.Background()
	require.NoError(t, coordinator.Start(ctx))
	require.NoError(t, coordinator.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, coordinator.Stop(stopCtx))
	require.NoError(t, coordinator.Stop(stopCtx))
}

func TestPanicError_Message(t *testing.T) {
	err := &PanicError{ShopDomain: "a.myshopify.com", Value: "boom"}
	assert.Contains(t, err.Error(), "a.myshopify.com")
	assert.Contains(t, err.Error(), "boom")
}
