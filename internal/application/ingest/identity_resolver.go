package ingest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/ingest"
	"github.com/shopsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdentityResolver maps an embedded customer reference to a stored customer.
// Precedence is fixed: the upstream external id wins over the email address,
// and a customer is created only when neither matches. The same reference
// always resolves to the same customer no matter which entity carried it.
type IdentityResolver struct {
	customers commerce.CustomerRepository
	logger    *zap.Logger
}

// NewIdentityResolver creates a new IdentityResolver
func NewIdentityResolver(customers commerce.CustomerRepository, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{customers: customers, logger: logger}
}

// Resolve finds or creates the customer a reference points at.
// LinkNone means the reference carried no identity and no link should be
// attempted. LinkDegraded means resolution failed; the returned error says
// why, and the caller decides whether that is fatal.
func (r *IdentityResolver) Resolve(ctx context.Context, storeID uuid.UUID, ref ingest.CustomerRef) (*commerce.Customer, ingest.LinkOutcome, error) {
	if ref.IsZero() {
		return nil, ingest.LinkNone, nil
	}

	if ref.ExternalID != "" {
		customer, err := r.customers.FindByExternalID(ctx, storeID, ref.ExternalID)
		if err == nil {
			return customer, ingest.Linked, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, ingest.LinkDegraded, err
		}
	}

	if ref.Email != "" {
		customer, err := r.customers.FindByEmail(ctx, storeID, ref.Email)
		if err == nil {
			return customer, ingest.Linked, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, ingest.LinkDegraded, err
		}
	}

	customer, err := commerce.NewCustomer(storeID, ref.ExternalID, ref.Email, ref.FirstName, ref.LastName)
	if err != nil {
		return nil, ingest.LinkDegraded, err
	}
	if err := r.customers.Create(ctx, customer); err != nil {
		return nil, ingest.LinkDegraded, err
	}

	r.logger.Debug("Created customer during identity resolution",
		zap.String("store_id", storeID.String()),
		zap.String("external_id", ref.ExternalID),
	)
	return customer, ingest.Linked, nil
}
