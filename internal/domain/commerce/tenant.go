package commerce

import (
	"context"
	"strings"

	"github.com/shopsync/backend/internal/domain/shared"
)

// DefaultTenantName is used when onboarding does not name a tenant
const DefaultTenantName = "default"

// Tenant represents an account that owns one or more stores
type Tenant struct {
	shared.BaseEntity
	Name string
}

// NewTenant creates a new tenant
func NewTenant(name string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTenantName
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// TenantRepository defines persistence operations for tenants
type TenantRepository interface {
	FindByName(ctx context.Context, name string) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
}
