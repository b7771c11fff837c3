package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopsync/backend/internal/domain/commerce"
	domainingest "github.com/shopsync/backend/internal/domain/ingest"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func rawItems(jsons ...string) []json.RawMessage {
	items := make([]json.RawMessage, len(jsons))
	for i, s := range jsons {
		items[i] = json.RawMessage(s)
	}
	return items
}

func newBackfillEnv(stores *MockStoreRepository, fetcher *MockPageFetcher, products *MockProductRepository) *BackfillService {
	return NewBackfillService(BackfillServiceConfig{
		Stores:   stores,
		Fetcher:  fetcher,
		Upserter: newTestUpserter(new(MockCustomerRepository), new(MockOrderRepository), products),
		Logger:   zap.NewNop(),
	})
}

func TestBackfillService_FullPaginationAppliesAllPagesInOrder(t *testing.T) {
	store := newTestStore(t, "demo.myshopify.com")
	fetcher := new(MockPageFetcher)

	first := domainingest.FirstPage(domainingest.CursorModeSinceID)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, first).
		Return(domainingest.Page{
			Items: rawItems(`{"id":1,"title":"A"}`, `{"id":2,"title":"B"}`),
			Next:  domainingest.SinceID(2),
		}, nil)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, domainingest.SinceID(2)).
		Return(domainingest.Page{
			Items: rawItems(`{"id":3,"title":"C"}`),
			Next:  domainingest.SinceID(3),
		}, nil)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, domainingest.SinceID(3)).
		Return(domainingest.Page{Next: domainingest.Done()}, nil)

	var seen []string
	products := new(MockProductRepository)
	products.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		seen = append(seen, args.Get(1).(*commerce.Product).ExternalID)
	}).Return(nil)

	service := newBackfillEnv(new(MockStoreRepository), fetcher, products)
	total, err := service.SyncResource(context.Background(), store, domainingest.ResourceProducts, true)

	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"1", "2", "3"}, seen)
	fetcher.AssertExpectations(t)
}

func TestBackfillService_UpstreamRejectionKeepsPartialResult(t *testing.T) {
	store := newTestStore(t, "demo.myshopify.com")
	fetcher := new(MockPageFetcher)

	first := domainingest.FirstPage(domainingest.CursorModeSinceID)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, first).
		Return(domainingest.Page{
			Items: rawItems(`{"id":1,"title":"A"}`, `{"id":2,"title":"B"}`),
			Next:  domainingest.SinceID(2),
		}, nil)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, domainingest.SinceID(2)).
		Return(domainingest.Page{}, &domainingest.UpstreamError{StatusCode: 429, Body: "throttled"})

	products := new(MockProductRepository)
	products.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	service := newBackfillEnv(new(MockStoreRepository), fetcher, products)
	total, err := service.SyncResource(context.Background(), store, domainingest.ResourceProducts, true)

	// Exactly the first page's records, and no error surfaced
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestBackfillService_TransportFailurePropagates(t *testing.T) {
	store := newTestStore(t, "demo.myshopify.com")
	fetcher := new(MockPageFetcher)
	fetcher.On("FetchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domainingest.Page{}, errors.New("dial tcp: connection refused"))

	service := newBackfillEnv(new(MockStoreRepository), fetcher, new(MockProductRepository))
	_, err := service.SyncResource(context.Background(), store, domainingest.ResourceProducts, true)

	assert.Error(t, err)
}

func TestBackfillService_SinglePageModeStopsAfterFirstPage(t *testing.T) {
	store := newTestStore(t, "demo.myshopify.com")
	fetcher := new(MockPageFetcher)

	first := domainingest.FirstPage(domainingest.CursorModeSinceID)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, first).
		Return(domainingest.Page{
			Items: rawItems(`{"id":1,"title":"A"}`),
			Next:  domainingest.SinceID(1),
		}, nil).Once()

	products := new(MockProductRepository)
	products.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	service := newBackfillEnv(new(MockStoreRepository), fetcher, products)
	total, err := service.SyncResource(context.Background(), store, domainingest.ResourceProducts, false)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	fetcher.AssertNumberOfCalls(t, "FetchPage", 1)
}

func TestBackfillService_UndecodableRecordSkipped(t *testing.T) {
	store := newTestStore(t, "demo.myshopify.com")
	fetcher := new(MockPageFetcher)

	first := domainingest.FirstPage(domainingest.CursorModeSinceID)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, first).
		Return(domainingest.Page{
			Items: rawItems(`{"id":1,"title":"A"}`, `{"id":"oops"}`, `{"id":3,"title":"C"}`),
			Next:  domainingest.Done(),
		}, nil)

	products := new(MockProductRepository)
	products.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	service := newBackfillEnv(new(MockStoreRepository), fetcher, products)
	total, err := service.SyncResource(context.Background(), store, domainingest.ResourceProducts, true)

	assert.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestBackfillService_SyncByDomainUnknownStore(t *testing.T) {
	stores := new(MockStoreRepository)
	stores.On("FindByShopDomain", mock.Anything, "ghost.myshopify.com").Return(nil, shared.ErrNotFound)

	service := newBackfillEnv(stores, new(MockPageFetcher), new(MockProductRepository))
	_, err := service.SyncByDomain(context.Background(), "ghost.myshopify.com", domainingest.ResourceProducts, true)

	assert.ErrorIs(t, err, commerce.ErrStoreNotOnboarded)
}

func TestBackfillService_SyncStoreRunsAllResources(t *testing.T) {
	store := newTestStore(t, "demo.myshopify.com")
	fetcher := new(MockPageFetcher)

	sinceFirst := domainingest.FirstPage(domainingest.CursorModeSinceID)
	tokenFirst := domainingest.FirstPage(domainingest.CursorModePageToken)

	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceProducts, sinceFirst).
		Return(domainingest.Page{Items: rawItems(`{"id":1,"title":"A"}`), Next: domainingest.Done()}, nil)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceCustomers, sinceFirst).
		Return(domainingest.Page{Next: domainingest.Done()}, nil)
	fetcher.On("FetchPage", mock.Anything, store.ShopDomain, store.AccessToken, domainingest.ResourceOrders, tokenFirst).
		Return(domainingest.Page{Items: rawItems(`{"id":9001,"total_price":"10.00"}`), Next: domainingest.Done()}, nil)

	products := new(MockProductRepository)
	products.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	orders := new(MockOrderRepository)
	orders.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	service := NewBackfillService(BackfillServiceConfig{
		Stores:   new(MockStoreRepository),
		Fetcher:  fetcher,
		Upserter: newTestUpserter(new(MockCustomerRepository), orders, products),
		Logger:   zap.NewNop(),
	})

	stats, err := service.SyncStore(context.Background(), store)

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Products)
	assert.Equal(t, 0, stats.Customers)
	assert.Equal(t, 1, stats.Orders)
	assert.Equal(t, 2, stats.Total())
}
