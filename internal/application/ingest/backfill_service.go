package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/ingest"
	"github.com/shopsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BackfillService pulls a store's history out of the upstream listing API and
// replays it through the idempotent upserter. Batches are applied as they
// arrive, so memory stays bounded however long the history is.
type BackfillService struct {
	stores   commerce.StoreRepository
	fetcher  ingest.PageFetcher
	upserter *RecordUpserter
	logger   *zap.Logger
}

// BackfillServiceConfig holds the dependencies for BackfillService
type BackfillServiceConfig struct {
	Stores   commerce.StoreRepository
	Fetcher  ingest.PageFetcher
	Upserter *RecordUpserter
	Logger   *zap.Logger
}

// NewBackfillService creates a new BackfillService
func NewBackfillService(cfg BackfillServiceConfig) *BackfillService {
	return &BackfillService{
		stores:   cfg.Stores,
		fetcher:  cfg.Fetcher,
		upserter: cfg.Upserter,
		logger:   cfg.Logger,
	}
}

// SyncByDomain resolves a shop domain and backfills one resource for it
func (s *BackfillService) SyncByDomain(ctx context.Context, shopDomain string, resource ingest.Resource, all bool) (int, error) {
	store, err := s.stores.FindByShopDomain(ctx, shopDomain)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, commerce.ErrStoreNotOnboarded
		}
		return 0, err
	}
	return s.SyncResource(ctx, store, resource, all)
}

// SyncResource pages through one resource for one store and applies every
// record. With all=false only the first page is fetched. A non-success
// upstream status ends the listing early: the count so far is kept and
// returned without error, since a partial backfill is repairable by the next
// run. Transport failures do propagate.
func (s *BackfillService) SyncResource(ctx context.Context, store *commerce.Store, resource ingest.Resource, all bool) (int, error) {
	if !resource.IsValid() {
		return 0, fmt.Errorf("unknown resource %q", resource)
	}

	total := 0
	cursor := ingest.FirstPage(resource.CursorMode())

	for !cursor.IsDone() {
		page, err := s.fetcher.FetchPage(ctx, store.ShopDomain, store.AccessToken, resource, cursor)
		if err != nil {
			var upstream *ingest.UpstreamError
			if errors.As(err, &upstream) {
				s.logger.Warn("Upstream rejected listing request, keeping partial result",
					zap.String("shop_domain", store.ShopDomain),
					zap.String("resource", string(resource)),
					zap.String("cursor", cursor.String()),
					zap.Int("status", upstream.StatusCode),
					zap.String("body", upstream.Body),
					zap.Int("imported", total),
				)
				return total, nil
			}
			return total, err
		}

		applied, err := s.applyBatch(ctx, store, resource, page.Items)
		total += applied
		if err != nil {
			return total, err
		}

		cursor = page.Next
		if !all {
			break
		}
	}

	s.logger.Info("Resource backfill finished",
		zap.String("shop_domain", store.ShopDomain),
		zap.String("resource", string(resource)),
		zap.Int("imported", total),
		zap.Bool("full", all),
	)
	return total, nil
}

// StoreSyncStats summarizes one full store backfill
type StoreSyncStats struct {
	Products  int
	Customers int
	Orders    int
}

// Total returns the number of records imported across all resources
func (s StoreSyncStats) Total() int {
	return s.Products + s.Customers + s.Orders
}

// SyncStore backfills all resources of one store. Products and customers go
// first so order ingestion finds its customers already resolved.
func (s *BackfillService) SyncStore(ctx context.Context, store *commerce.Store) (StoreSyncStats, error) {
	var stats StoreSyncStats
	var err error

	if stats.Products, err = s.SyncResource(ctx, store, ingest.ResourceProducts, true); err != nil {
		return stats, fmt.Errorf("products backfill for %s: %w", store.ShopDomain, err)
	}
	if stats.Customers, err = s.SyncResource(ctx, store, ingest.ResourceCustomers, true); err != nil {
		return stats, fmt.Errorf("customers backfill for %s: %w", store.ShopDomain, err)
	}
	if stats.Orders, err = s.SyncResource(ctx, store, ingest.ResourceOrders, true); err != nil {
		return stats, fmt.Errorf("orders backfill for %s: %w", store.ShopDomain, err)
	}

	return stats, nil
}

// applyBatch upserts one page of records. A record that fails to decode is
// skipped with a warning; a storage failure aborts the run.
func (s *BackfillService) applyBatch(ctx context.Context, store *commerce.Store, resource ingest.Resource, items []json.RawMessage) (int, error) {
	applied := 0
	for _, raw := range items {
		if err := s.applyItem(ctx, store, resource, raw); err != nil {
			var syntax *json.SyntaxError
			var typ *json.UnmarshalTypeError
			if errors.As(err, &syntax) || errors.As(err, &typ) {
				s.logger.Warn("Skipping undecodable record",
					zap.String("shop_domain", store.ShopDomain),
					zap.String("resource", string(resource)),
					zap.Error(err),
				)
				continue
			}
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func (s *BackfillService) applyItem(ctx context.Context, store *commerce.Store, resource ingest.Resource, raw json.RawMessage) error {
	switch resource {
	case ingest.ResourceProducts:
		payload, err := ingest.DecodePayload[ingest.ProductPayload](raw)
		if err != nil {
			return err
		}
		return s.upserter.UpsertProduct(ctx, store.ID, payload)

	case ingest.ResourceCustomers:
		payload, err := ingest.DecodePayload[ingest.CustomerPayload](raw)
		if err != nil {
			return err
		}
		return s.upserter.UpsertCustomer(ctx, store.ID, payload)

	case ingest.ResourceOrders:
		payload, err := ingest.DecodePayload[ingest.OrderPayload](raw)
		if err != nil {
			return err
		}
		_, err = s.upserter.UpsertOrder(ctx, store.ID, payload)
		return err
	}
	return fmt.Errorf("unknown resource %q", resource)
}
