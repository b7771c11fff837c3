package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Product represents an upstream product. Unique per (external id, store).
type Product struct {
	shared.BaseEntity
	StoreID    uuid.UUID
	ExternalID string
	Title      string
}

// NewProduct creates a product scoped to a store
func NewProduct(storeID uuid.UUID, externalID, title string) (*Product, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE_ID", "Store ID is required")
	}
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Product external ID is required")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		ExternalID: externalID,
		Title:      title,
	}, nil
}

// Rename overwrites the product title, the only mutable field
func (p *Product) Rename(title string) {
	p.Title = title
	p.Touch()
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*Product, error)
	// Upsert atomically creates or updates a product keyed by
	// (external id, store).
	Upsert(ctx context.Context, product *Product) error
}
