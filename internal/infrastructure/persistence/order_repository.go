package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByExternalID finds an order by its upstream id within a store
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*commerce.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND external_id = ?", storeID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert atomically creates or updates an order keyed by
// (store_id, external_id). The customer link only ever moves from NULL to a
// value: a redelivery without attribution must not detach an earlier link.
func (r *GormOrderRepository) Upsert(ctx context.Context, order *commerce.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "external_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_price": gorm.Expr("excluded.total_price"),
			"currency":    gorm.Expr("excluded.currency"),
			"customer_id": gorm.Expr("COALESCE(excluded.customer_id, orders.customer_id)"),
			"updated_at":  gorm.Expr("excluded.updated_at"),
		}),
	}).Create(model).Error
}

// Ensure GormOrderRepository implements OrderRepository
var _ commerce.OrderRepository = (*GormOrderRepository)(nil)
