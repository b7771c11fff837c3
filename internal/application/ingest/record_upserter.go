package ingest

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/ingest"
	"go.uber.org/zap"
)

// RecordUpserter applies upstream records idempotently. Webhook and backfill
// deliveries both land here, so applying the same record twice, in either
// order, must leave the same row behind.
type RecordUpserter struct {
	customers commerce.CustomerRepository
	orders    commerce.OrderRepository
	products  commerce.ProductRepository
	resolver  *IdentityResolver
	logger    *zap.Logger
}

// RecordUpserterConfig holds the dependencies for RecordUpserter
type RecordUpserterConfig struct {
	Customers commerce.CustomerRepository
	Orders    commerce.OrderRepository
	Products  commerce.ProductRepository
	Resolver  *IdentityResolver
	Logger    *zap.Logger
}

// NewRecordUpserter creates a new RecordUpserter
func NewRecordUpserter(cfg RecordUpserterConfig) *RecordUpserter {
	return &RecordUpserter{
		customers: cfg.Customers,
		orders:    cfg.Orders,
		products:  cfg.Products,
		resolver:  cfg.Resolver,
		logger:    cfg.Logger,
	}
}

// UpsertProduct creates or updates a product record
func (u *RecordUpserter) UpsertProduct(ctx context.Context, storeID uuid.UUID, payload ingest.ProductPayload) error {
	product, err := commerce.NewProduct(storeID, payload.ExternalID(), payload.Title)
	if err != nil {
		return err
	}
	return u.products.Upsert(ctx, product)
}

// UpsertCustomer creates or updates a customer record. A payload without an
// upstream id cannot be upserted by key and goes through identity resolution
// instead, so a guest observed earlier by email is reused rather than
// duplicated.
func (u *RecordUpserter) UpsertCustomer(ctx context.Context, storeID uuid.UUID, payload ingest.CustomerPayload) error {
	if payload.ExternalID() == "" {
		_, _, err := u.resolver.Resolve(ctx, storeID, payload.Ref())
		return err
	}

	customer, err := commerce.NewCustomer(storeID, payload.ExternalID(), payload.Email, payload.FirstName, payload.LastName)
	if err != nil {
		return err
	}
	return u.customers.UpsertByExternalID(ctx, customer)
}

// UpsertOrder creates or updates an order record, linking its customer when
// the embedded reference resolves. A failed resolution degrades the write
// rather than failing it: the order lands without a link and the outcome
// reports what happened.
func (u *RecordUpserter) UpsertOrder(ctx context.Context, storeID uuid.UUID, payload ingest.OrderPayload) (ingest.LinkOutcome, error) {
	order, err := commerce.NewOrder(storeID, payload.ExternalID(), payload.Total(), payload.CurrencyOrFallback())
	if err != nil {
		return ingest.LinkNone, err
	}

	outcome := ingest.LinkNone
	if payload.Customer != nil {
		customer, o, resolveErr := u.resolver.Resolve(ctx, storeID, payload.Customer.Ref())
		outcome = o
		if resolveErr != nil {
			u.logger.Warn("Customer resolution failed, writing order without link",
				zap.String("store_id", storeID.String()),
				zap.String("order_external_id", order.ExternalID),
				zap.Error(resolveErr),
			)
		} else if customer != nil {
			order.AttachCustomer(customer.ID)
		}
	}

	if err := u.orders.Upsert(ctx, order); err != nil {
		return outcome, err
	}
	return outcome, nil
}
