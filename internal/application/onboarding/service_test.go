package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTenantRepository is a mock implementation of commerce.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByName(ctx context.Context, name string) (*commerce.Tenant, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *commerce.Tenant) error {
	args := m.Called(ctx, tenant)
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

func TestService_RegisterStoreCreatesTenantAndStore(t *testing.T) {
	tenants := new(MockTenantRepository)
	stores := new(MockStoreRepository)

	tenants.On("FindByName", mock.Anything, "acme").Return(nil, shared.ErrNotFound)
	tenants.On("Save", mock.Anything, mock.MatchedBy(func(tn *commerce.Tenant) bool {
		return tn.Name == "acme"
	})).Return(nil)
	stores.On("FindByShopDomain", mock.Anything, "demo.myshopify.com").Return(nil, shared.ErrNotFound)
	stores.On("Upsert", mock.Anything, mock.MatchedBy(func(s *commerce.Store) bool {
		return s.ShopDomain == "demo.myshopify.com" && s.AccessToken == "shpat_new"
	})).Return(nil)

	service := NewService(tenants, stores, zap.NewNop())
	store, err := service.RegisterStore(context.Background(), RegisterStoreRequest{
		TenantName:  "acme",
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_new",
	})

	require.NoError(t, err)
	assert.Equal(t, "demo.myshopify.com", store.ShopDomain)
	tenants.AssertExpectations(t)
	stores.AssertExpectations(t)
}

func TestService_RegisterStoreReusesExistingTenant(t *testing.T) {
	existing, err := commerce.NewTenant("acme")
	require.NoError(t, err)

	tenants := new(MockTenantRepository)
	stores := new(MockStoreRepository)

	tenants.On("FindByName", mock.Anything, "acme").Return(existing, nil)
	stores.On("FindByShopDomain", mock.Anything, "demo.myshopify.com").Return(nil, shared.ErrNotFound)
	stores.On("Upsert", mock.Anything, mock.MatchedBy(func(s *commerce.Store) bool {
		return s.TenantID == existing.ID
	})).Return(nil)

	service := NewService(tenants, stores, zap.NewNop())
	_, err = service.RegisterStore(context.Background(), RegisterStoreRequest{
		TenantName:  "acme",
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_new",
	})

	require.NoError(t, err)
	tenants.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_RegisterStoreRotatesCredentialOnReRegistration(t *testing.T) {
	tenant, err := commerce.NewTenant("acme")
	require.NoError(t, err)
	existing, err := commerce.NewStore(tenant.ID, "demo.myshopify.com", "shpat_old")
	require.NoError(t, err)

	tenants := new(MockTenantRepository)
	stores := new(MockStoreRepository)

	tenants.On("FindByName", mock.Anything, "acme").Return(tenant, nil)
	stores.On("FindByShopDomain", mock.Anything, "demo.myshopify.com").Return(existing, nil)
	stores.On("Upsert", mock.Anything, mock.MatchedBy(func(s *commerce.Store) bool {
		return s.ID == existing.ID && s.AccessToken == "shpat_rotated"
	})).Return(nil)

	service := NewService(tenants, stores, zap.NewNop())
	store, err := service.RegisterStore(context.Background(), RegisterStoreRequest{
		TenantName:  "acme",
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_rotated",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, store.ID)
	stores.AssertExpectations(t)
}

func TestService_RegisterStoreDefaultsTenantName(t *testing.T) {
	tenants := new(MockTenantRepository)
	stores := new(MockStoreRepository)

	tenants.On("FindByName", mock.Anything, "default").Return(nil, shared.ErrNotFound)
	tenants.On("Save", mock.Anything, mock.Anything).Return(nil)
	stores.On("FindByShopDomain", mock.Anything, "demo.myshopify.com").Return(nil, shared.ErrNotFound)
	stores.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	service := NewService(tenants, stores, zap.NewNop())
	_, err := service.RegisterStore(context.Background(), RegisterStoreRequest{
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_new",
	})

	require.NoError(t, err)
	tenants.AssertCalled(t, "FindByName", mock.Anything, "default")
}

func TestService_RegisterStorePropagatesLookupFailure(t *testing.T) {
	tenants := new(MockTenantRepository)
	stores := new(MockStoreRepository)

	tenants.On("FindByName", mock.Anything, "acme").Return(nil, errors.New("db down"))

	service := NewService(tenants, stores, zap.NewNop())
	_, err := service.RegisterStore(context.Background(), RegisterStoreRequest{
		TenantName:  "acme",
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_new",
	})

	assert.Error(t, err)
	stores.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
