// Package onboarding registers tenants and their store connections
package onboarding

import (
	"context"
	"errors"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RegisterStoreRequest carries the onboarding input
type RegisterStoreRequest struct {
	TenantName  string
	ShopDomain  string
	AccessToken string
}

// Service creates or updates tenant and store records. Registration is
// idempotent: re-registering a shop domain rotates its credential instead of
// failing.
type Service struct {
	tenants commerce.TenantRepository
	stores  commerce.StoreRepository
	logger  *zap.Logger
}

// NewService creates a new onboarding service
func NewService(tenants commerce.TenantRepository, stores commerce.StoreRepository, logger *zap.Logger) *Service {
	return &Service{tenants: tenants, stores: stores, logger: logger}
}

// RegisterStore onboards a store under the named tenant, creating the tenant
// on first sight.
func (s *Service) RegisterStore(ctx context.Context, req RegisterStoreRequest) (*commerce.Store, error) {
	tenant, err := s.findOrCreateTenant(ctx, req.TenantName)
	if err != nil {
		return nil, err
	}

	store, err := s.stores.FindByShopDomain(ctx, req.ShopDomain)
	switch {
	case err == nil:
		if err := store.Reconnect(tenant.ID, req.AccessToken); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		store, err = commerce.NewStore(tenant.ID, req.ShopDomain, req.AccessToken)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.stores.Upsert(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info("Store registered",
		zap.String("tenant", tenant.Name),
		zap.String("shop_domain", store.ShopDomain),
	)
	return store, nil
}

func (s *Service) findOrCreateTenant(ctx context.Context, name string) (*commerce.Tenant, error) {
	tenant, err := commerce.NewTenant(name)
	if err != nil {
		return nil, err
	}

	existing, err := s.tenants.FindByName(ctx, tenant.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}
