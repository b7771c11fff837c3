package commerce

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// ErrStoreNotOnboarded indicates a webhook or backfill referenced a shop
// domain that has not been registered. Distinct from an authentication
// failure: the operator must onboard the store before retrying.
var ErrStoreNotOnboarded = shared.NewDomainError("STORE_NOT_ONBOARDED", "Store is not onboarded")

// Store is a tenant-scoped connection to one upstream shop. It is created at
// onboarding, read by every sync operation, and never deleted by the sync
// engine.
type Store struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	ShopDomain  string
	AccessToken string
}

// NewStore creates a new store connection
func NewStore(tenantID uuid.UUID, shopDomain, accessToken string) (*Store, error) {
	shopDomain = strings.ToLower(strings.TrimSpace(shopDomain))
	if shopDomain == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_DOMAIN", "Shop domain cannot be empty")
	}
	if accessToken == "" {
		return nil, shared.NewDomainError("INVALID_ACCESS_TOKEN", "Access token cannot be empty")
	}
	return &Store{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		ShopDomain:  shopDomain,
		AccessToken: accessToken,
	}, nil
}

// Reconnect replaces the access credential and tenant ownership. Used when a
// store is re-registered during onboarding.
func (s *Store) Reconnect(tenantID uuid.UUID, accessToken string) error {
	if accessToken == "" {
		return shared.NewDomainError("INVALID_ACCESS_TOKEN", "Access token cannot be empty")
	}
	s.TenantID = tenantID
	s.AccessToken = accessToken
	s.Touch()
	return nil
}

// StoreRepository defines persistence operations for stores
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindByShopDomain(ctx context.Context, shopDomain string) (*Store, error)
	// FindAll returns every onboarded store in a fixed enumeration order.
	FindAll(ctx context.Context) ([]Store, error)
	// Upsert creates or updates a store keyed by its shop domain.
	Upsert(ctx context.Context, store *Store) error
}
