package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/ingest"
	"github.com/shopsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SignatureVerifier authenticates a raw webhook body against its signature
// header.
type SignatureVerifier interface {
	Verify(body []byte, signature string) error
}

// WebhookDelivery is one inbound webhook request, body untouched
type WebhookDelivery struct {
	Body       []byte
	Signature  string
	Topic      ingest.Topic
	ShopDomain string
	WebhookID  string
}

// WebhookResult reports how a delivery was handled. Applied is false for
// ignored topics, duplicates, and malformed payloads; all of those are still
// acknowledged to the sender.
type WebhookResult struct {
	Applied   bool
	Duplicate bool
	Link      ingest.LinkOutcome
}

// WebhookServiceConfig holds the dependencies for WebhookService
type WebhookServiceConfig struct {
	Verifier     SignatureVerifier
	Stores       commerce.StoreRepository
	Upserter     *RecordUpserter
	DedupStore   shared.IdempotencyStore
	DedupEnabled bool
	DedupTTL     time.Duration
	Logger       *zap.Logger
}

// WebhookService authenticates and applies webhook deliveries. Order of
// checks is fixed: signature before store lookup before any payload read, so
// an unauthenticated request learns nothing and mutates nothing.
type WebhookService struct {
	verifier     SignatureVerifier
	stores       commerce.StoreRepository
	upserter     *RecordUpserter
	dedupStore   shared.IdempotencyStore
	dedupEnabled bool
	dedupTTL     time.Duration
	logger       *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(cfg WebhookServiceConfig) *WebhookService {
	return &WebhookService{
		verifier:     cfg.Verifier,
		stores:       cfg.Stores,
		upserter:     cfg.Upserter,
		dedupStore:   cfg.DedupStore,
		dedupEnabled: cfg.DedupEnabled,
		dedupTTL:     cfg.DedupTTL,
		logger:       cfg.Logger,
	}
}

// Process handles one webhook delivery end to end
func (s *WebhookService) Process(ctx context.Context, delivery WebhookDelivery) (WebhookResult, error) {
	if err := s.verifier.Verify(delivery.Body, delivery.Signature); err != nil {
		return WebhookResult{}, err
	}

	store, err := s.stores.FindByShopDomain(ctx, delivery.ShopDomain)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return WebhookResult{}, commerce.ErrStoreNotOnboarded
		}
		return WebhookResult{}, err
	}

	resource, known := delivery.Topic.Resource()
	if !known {
		s.logger.Debug("Ignoring webhook topic",
			zap.String("topic", string(delivery.Topic)),
			zap.String("shop_domain", delivery.ShopDomain),
		)
		return WebhookResult{}, nil
	}

	if s.isDuplicate(ctx, delivery) {
		return WebhookResult{Duplicate: true}, nil
	}

	result, err := s.apply(ctx, store, resource, delivery)
	if err != nil {
		return WebhookResult{}, err
	}

	// Marked only after a successful apply. A failed apply leaves the
	// delivery unmarked so the upstream retry is processed, not suppressed.
	s.markProcessed(ctx, delivery)

	s.logger.Info("Webhook applied",
		zap.String("topic", string(delivery.Topic)),
		zap.String("shop_domain", delivery.ShopDomain),
		zap.Bool("applied", result.Applied),
		zap.String("link", result.Link.String()),
	)
	return result, nil
}

// isDuplicate consults the dedup store without mutating it. Dedup is
// best-effort: a store failure is logged and the delivery falls through to the
// idempotent upsert path.
func (s *WebhookService) isDuplicate(ctx context.Context, delivery WebhookDelivery) bool {
	if !s.dedupEnabled || s.dedupStore == nil || delivery.WebhookID == "" {
		return false
	}

	seen, err := s.dedupStore.IsProcessed(ctx, delivery.WebhookID)
	if err != nil {
		s.logger.Warn("Webhook dedup check failed, applying anyway",
			zap.String("webhook_id", delivery.WebhookID),
			zap.Error(err),
		)
		return false
	}
	if seen {
		s.logger.Debug("Suppressed duplicate webhook delivery",
			zap.String("webhook_id", delivery.WebhookID),
			zap.String("topic", string(delivery.Topic)),
		)
	}
	return seen
}

// markProcessed records a successfully applied delivery. Failures here only
// cost a redundant reapply later, which the upsert absorbs.
func (s *WebhookService) markProcessed(ctx context.Context, delivery WebhookDelivery) {
	if !s.dedupEnabled || s.dedupStore == nil || delivery.WebhookID == "" {
		return
	}

	if _, err := s.dedupStore.MarkProcessed(ctx, delivery.WebhookID, s.dedupTTL); err != nil {
		s.logger.Warn("Failed to record processed webhook delivery",
			zap.String("webhook_id", delivery.WebhookID),
			zap.Error(err),
		)
	}
}

// apply decodes the authenticated payload and routes it to the upserter. A
// payload that fails to decode is acknowledged without mutation; the upstream
// will not repair it by redelivering.
func (s *WebhookService) apply(ctx context.Context, store *commerce.Store, resource ingest.Resource, delivery WebhookDelivery) (WebhookResult, error) {
	switch resource {
	case ingest.ResourceProducts:
		payload, err := ingest.DecodePayload[ingest.ProductPayload](delivery.Body)
		if err != nil {
			return s.malformed(delivery, err), nil
		}
		if err := s.upserter.UpsertProduct(ctx, store.ID, payload); err != nil {
			return WebhookResult{}, err
		}
		return WebhookResult{Applied: true}, nil

	case ingest.ResourceCustomers:
		payload, err := ingest.DecodePayload[ingest.CustomerPayload](delivery.Body)
		if err != nil {
			return s.malformed(delivery, err), nil
		}
		if err := s.upserter.UpsertCustomer(ctx, store.ID, payload); err != nil {
			return WebhookResult{}, err
		}
		return WebhookResult{Applied: true}, nil

	case ingest.ResourceOrders:
		payload, err := ingest.DecodePayload[ingest.OrderPayload](delivery.Body)
		if err != nil {
			return s.malformed(delivery, err), nil
		}
		outcome, err := s.upserter.UpsertOrder(ctx, store.ID, payload)
		if err != nil {
			return WebhookResult{}, err
		}
		return WebhookResult{Applied: true, Link: outcome}, nil
	}

	return WebhookResult{}, nil
}

func (s *WebhookService) malformed(delivery WebhookDelivery, err error) WebhookResult {
	s.logger.Warn("Discarding malformed webhook payload",
		zap.String("topic", string(delivery.Topic)),
		zap.String("shop_domain", delivery.ShopDomain),
		zap.Error(err),
	)
	return WebhookResult{}
}
