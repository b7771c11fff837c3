// Package report serves read-side aggregations over synchronized data
package report

import (
	"context"
	"errors"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
)

const (
	defaultDateRows     = 30
	defaultTopCustomers = 10
	maxRows             = 365
)

// InsightsService answers aggregation queries for one store. Everything is
// computed from the local tables; no upstream calls are made.
type InsightsService struct {
	stores   commerce.StoreRepository
	insights commerce.InsightsRepository
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(stores commerce.StoreRepository, insights commerce.InsightsRepository) *InsightsService {
	return &InsightsService{stores: stores, insights: insights}
}

// OrdersByDate returns per-day order counts and revenue for a store
func (s *InsightsService) OrdersByDate(ctx context.Context, shopDomain string, limit int) ([]commerce.OrdersByDate, error) {
	store, err := s.findStore(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	return s.insights.OrdersByDate(ctx, store.ID, clampLimit(limit, defaultDateRows))
}

// TopCustomers returns the highest-spending customers of a store
func (s *InsightsService) TopCustomers(ctx context.Context, shopDomain string, limit int) ([]commerce.TopCustomer, error) {
	store, err := s.findStore(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	return s.insights.TopCustomers(ctx, store.ID, clampLimit(limit, defaultTopCustomers))
}

func (s *InsightsService) findStore(ctx context.Context, shopDomain string) (*commerce.Store, error) {
	store, err := s.stores.FindByShopDomain(ctx, shopDomain)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, commerce.ErrStoreNotOnboarded
		}
		return nil, err
	}
	return store, nil
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxRows {
		return maxRows
	}
	return limit
}
