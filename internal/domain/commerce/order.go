package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Order represents an upstream order. CustomerID is a weak reference: the
// order may arrive before its customer is resolvable, and the link may be
// attached by a later write. Unique per (external id, store).
type Order struct {
	shared.BaseEntity
	StoreID    uuid.UUID
	ExternalID string
	TotalPrice decimal.Decimal
	Currency   string
	CustomerID *uuid.UUID
}

// NewOrder creates an order scoped to a store
func NewOrder(storeID uuid.UUID, externalID string, totalPrice decimal.Decimal, currency string) (*Order, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE_ID", "Store ID is required")
	}
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Order external ID is required")
	}
	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		ExternalID: externalID,
		TotalPrice: totalPrice,
		Currency:   currency,
	}, nil
}

// AttachCustomer links the order to a resolved customer
func (o *Order) AttachCustomer(customerID uuid.UUID) {
	o.CustomerID = &customerID
	o.Touch()
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*Order, error)
	// Upsert atomically creates or updates an order keyed by
	// (external id, store). An absent customer link never clears an
	// existing one.
	Upsert(ctx context.Context, order *Order) error
}
