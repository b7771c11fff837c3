package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/ingest"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock implementation of commerce.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*commerce.Customer, error) {
	args := m.Called(ctx, storeID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, storeID uuid.UUID, email string) (*commerce.Customer, error) {
	args := m.Called(ctx, storeID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *commerce.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpsertByExternalID(ctx context.Context, customer *commerce.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of commerce.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*commerce.Order, error) {
	args := m.Called(ctx, storeID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Order), args.Error(1)
}

func (m *MockOrderRepository) Upsert(ctx context.Context, order *commerce.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of commerce.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*commerce.Product, error) {
	args := m.Called(ctx, storeID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Product), args.Error(1)
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *commerce.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockStoreRepository is a mock implementation of commerce.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByShopDomain(ctx context.Context, shopDomain string) (*commerce.Store, error) {
	args := m.Called(ctx, shopDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context) ([]commerce.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]commerce.Store), args.Error(1)
}

func (m *MockStoreRepository) Upsert(ctx context.Context, store *commerce.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

// MockPageFetcher is a mock implementation of ingest.PageFetcher
type MockPageFetcher struct {
	mock.Mock
}

func (m *MockPageFetcher) FetchPage(ctx context.Context, shopDomain, accessToken string, resource ingest.Resource, cursor ingest.Cursor) (ingest.Page, error) {
	args := m.Called(ctx, shopDomain, accessToken, resource, cursor)
	return args.Get(0).(ingest.Page), args.Error(1)
}

// MockDedupStore is a mock implementation of shared.IdempotencyStore
type MockDedupStore struct {
	mock.Mock
}

func (m *MockDedupStore) MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, deliveryID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedupStore) IsProcessed(ctx context.Context, deliveryID string) (bool, error) {
	args := m.Called(ctx, deliveryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedupStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
