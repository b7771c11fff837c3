package commerce

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Customer represents a buyer as seen by one store. ExternalID is the
// identifier assigned by the upstream platform; it may be empty when the
// customer was first observed without one (e.g. guest checkout resolved by
// email). At most one customer per (external id, store) when the external id
// is present.
type Customer struct {
	shared.BaseEntity
	StoreID    uuid.UUID
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
}

// NewCustomer creates a customer from whichever identity fields are known
func NewCustomer(storeID uuid.UUID, externalID, email, firstName, lastName string) (*Customer, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE_ID", "Store ID is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if externalID == "" && email == "" && firstName == "" && lastName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer requires at least one identity field")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		ExternalID: externalID,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
	}, nil
}

// UpdateProfile overwrites the mutable fields. The (external id, store) key
// never changes.
func (c *Customer) UpdateProfile(email, firstName, lastName string) {
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.FirstName = firstName
	c.LastName = lastName
	c.Touch()
}

// FullName returns the display name assembled from name parts
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CustomerRepository defines persistence operations for customers. All
// lookups are scoped by store.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*Customer, error)
	FindByEmail(ctx context.Context, storeID uuid.UUID, email string) (*Customer, error)
	Create(ctx context.Context, customer *Customer) error
	// UpsertByExternalID atomically creates or updates a customer keyed by
	// (external id, store). The customer must carry a non-empty ExternalID.
	UpsertByExternalID(ctx context.Context, customer *Customer) error
}
